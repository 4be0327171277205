package http

import (
	"net/http"

	"github.com/bonuslab/loyalty-analytics-service/internal/delivery/http/handlers"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter собирает HTTP-поверхность сервиса: админский триггер пересчета,
// портальные дашборды и служебные эндпоинты. Аутентификация живет выше,
// на API-гейтвее.
func NewRouter(analyticsHandler *handlers.AnalyticsHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	admin := router.Group("/admin")
	{
		admin.POST("/merchants/:merchantId/stats/recalc", analyticsHandler.RecalcStats)
	}

	portal := router.Group("/portal/analytics")
	{
		portal.GET("/merchants/:merchantId/birthday", analyticsHandler.BirthdayMetrics)
		portal.GET("/merchants/:merchantId/revenue", analyticsHandler.RevenueSeries)
		portal.GET("/merchants/:merchantId/rfm/thresholds", analyticsHandler.SuggestThresholds)
		portal.GET("/merchants/:merchantId/customers/:customerId/stats", analyticsHandler.CustomerStats)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
