package domain

import "time"

// StatsRecalcEvent публикуется после завершения пересчета статистики
// по одному мерчанту. Консьюмеры (CRM, нотификации) внешние.
type StatsRecalcEvent struct {
	RunID      string    `json:"run_id"`
	MerchantID string    `json:"merchant_id"`
	Processed  int       `json:"processed"`
	Failed     int       `json:"failed"`
	DurationMs int64     `json:"duration_ms"`
	FinishedAt time.Time `json:"finished_at"`
}

type StatsEventPublisher interface {
	PublishRecalc(event StatsRecalcEvent) error
}

// MetricsCache — TTL-кэш для тяжелых дашбордных агрегаций.
type MetricsCache interface {
	Get(key string, dest interface{}) bool
	Set(key string, value interface{})
}
