package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/bonuslab/loyalty-analytics-service/internal/domain"
	"github.com/bonuslab/loyalty-analytics-service/internal/usecase/dashboard"
	"github.com/bonuslab/loyalty-analytics-service/internal/usecase/mechanics"
	"github.com/bonuslab/loyalty-analytics-service/internal/usecase/stats"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AnalyticsHandler struct {
	StatsUsecase     stats.StatsUsecase
	MechanicsUsecase mechanics.MechanicsUsecase
	DashboardUsecase dashboard.DashboardUsecase
}

func NewAnalyticsHandler(
	statsUsecase stats.StatsUsecase,
	mechanicsUsecase mechanics.MechanicsUsecase,
	dashboardUsecase dashboard.DashboardUsecase) *AnalyticsHandler {

	return &AnalyticsHandler{
		StatsUsecase:     statsUsecase,
		MechanicsUsecase: mechanicsUsecase,
		DashboardUsecase: dashboardUsecase,
	}
}

// RecalcStats - ручной запуск пересчета статистики мерчанта.
// Опциональный query-параметр today (YYYY-MM-DD) фиксирует "сегодня".
func (h *AnalyticsHandler) RecalcStats(c *gin.Context) {
	merchantID, ok := parseMerchantID(c)
	if !ok {
		return
	}

	now := time.Now().UTC()
	if today := c.Query("today"); today != "" {
		parsed, err := time.Parse("2006-01-02", today)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid today, expected YYYY-MM-DD"})
			return
		}
		now = parsed
	}

	result, err := h.StatsUsecase.RecalculateMerchant(c.Request.Context(), merchantID, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"run_id":    result.RunID,
		"processed": result.Processed,
		"failed":    result.Failed,
	})
}

// BirthdayMetrics - метрики механики дня рождения за период.
func (h *AnalyticsHandler) BirthdayMetrics(c *gin.Context) {
	merchantID, ok := parseMerchantID(c)
	if !ok {
		return
	}

	from, to, ok := parsePeriod(c)
	if !ok {
		return
	}

	metrics, err := h.MechanicsUsecase.BirthdayMechanicMetrics(c.Request.Context(), merchantID, from, to)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrMerchantNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, metrics)
}

// RevenueSeries - динамика выручки по бакетам day/week/month.
func (h *AnalyticsHandler) RevenueSeries(c *gin.Context) {
	merchantID, ok := parseMerchantID(c)
	if !ok {
		return
	}

	from, to, ok := parsePeriod(c)
	if !ok {
		return
	}

	grouping := domain.Grouping(c.DefaultQuery("grouping", string(domain.GroupingDay)))

	series, err := h.DashboardUsecase.RevenueSeries(c.Request.Context(), merchantID, from, to, grouping)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, domain.ErrInvalidGrouping):
			status = http.StatusBadRequest
		case errors.Is(err, domain.ErrMerchantNotFound):
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"series": series})
}

// CustomerStats - карточка RFM-статистики одного клиента.
func (h *AnalyticsHandler) CustomerStats(c *gin.Context) {
	merchantID, ok := parseMerchantID(c)
	if !ok {
		return
	}
	customerID := c.Param("customerId")
	if _, err := uuid.Parse(customerID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer id"})
		return
	}

	stats, err := h.StatsUsecase.GetCustomerStats(c.Request.Context(), merchantID, customerID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrStatsNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"merchant_id":   stats.MerchantID,
		"customer_id":   stats.CustomerID,
		"visits":        stats.Visits,
		"total_spent":   stats.TotalSpent,
		"avg_check":     stats.AvgCheck,
		"first_seen_at": stats.FirstSeenAt,
		"last_seen_at":  stats.LastSeenAt,
		"last_order_at": stats.LastOrderAt,
		"rfm_r":         stats.RfmR,
		"rfm_f":         stats.RfmF,
		"rfm_m":         stats.RfmM,
		"rfm_score":     stats.RfmScore,
		"rfm_class":     stats.RfmClass,
	})
}

// SuggestThresholds - подсказки порогов frequency/monetary для UI настроек RFM.
func (h *AnalyticsHandler) SuggestThresholds(c *gin.Context) {
	merchantID, ok := parseMerchantID(c)
	if !ok {
		return
	}

	suggestion, err := h.StatsUsecase.SuggestThresholds(c.Request.Context(), merchantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, suggestion)
}

func parseMerchantID(c *gin.Context) (string, bool) {
	merchantID := c.Param("merchantId")
	if _, err := uuid.Parse(merchantID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid merchant id"})
		return "", false
	}
	return merchantID, true
}

func parsePeriod(c *gin.Context) (time.Time, time.Time, bool) {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from, expected YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to, expected YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	// период включительный: to расширяется до конца суток
	to = to.Add(24*time.Hour - time.Millisecond)

	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrEmptyPeriod.Error()})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
