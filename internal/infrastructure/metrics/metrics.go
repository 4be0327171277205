package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AnalyticsMetrics содержит все метрики пересчета статистики
type AnalyticsMetrics struct {
	// Счетчики обработанных клиентов
	CustomersProcessedTotal prometheus.CounterVec
	CustomersFailedTotal    prometheus.CounterVec

	// Падения пересчета по мерчанту целиком
	MerchantRecalcFailedTotal prometheus.CounterVec

	// Время пересчета
	RecalcDuration prometheus.HistogramVec

	// Запуски пересчета
	RecalcRunsTotal prometheus.CounterVec
}

// NewAnalyticsMetrics создает новый экземпляр метрик
func NewAnalyticsMetrics() *AnalyticsMetrics {
	return &AnalyticsMetrics{
		CustomersProcessedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "customer_stats_processed_total",
				Help: "Количество клиентов, по которым статистика пересчитана успешно",
			},
			[]string{"merchant_id"},
		),

		CustomersFailedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "customer_stats_failed_total",
				Help: "Количество клиентов, по которым upsert статистики упал",
			},
			[]string{"merchant_id"},
		),

		MerchantRecalcFailedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "merchant_recalc_failed_total",
				Help: "Количество мерчантов, пересчет по которым завершился ошибкой",
			},
			[]string{"merchant_id"},
		),

		RecalcDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "customer_stats_recalc_duration_seconds",
				Help:    "Время полного пересчета статистики мерчанта в секундах",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
			},
			[]string{"merchant_id"},
		),

		RecalcRunsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "customer_stats_recalc_runs_total",
				Help: "Количество запусков пересчета статистики",
			},
			[]string{"merchant_id"},
		),
	}
}

// RecordRecalc - вызывается после завершения пересчета мерчанта
func (m *AnalyticsMetrics) RecordRecalc(merchantID string, processed, failed int, seconds float64) {
	m.RecalcRunsTotal.WithLabelValues(merchantID).Inc()
	m.CustomersProcessedTotal.WithLabelValues(merchantID).Add(float64(processed))
	m.CustomersFailedTotal.WithLabelValues(merchantID).Add(float64(failed))
	m.RecalcDuration.WithLabelValues(merchantID).Observe(seconds)
}

// RecordMerchantFailed - вызывается при падении пересчета мерчанта целиком
func (m *AnalyticsMetrics) RecordMerchantFailed(merchantID string) {
	m.MerchantRecalcFailedTotal.WithLabelValues(merchantID).Inc()
}
