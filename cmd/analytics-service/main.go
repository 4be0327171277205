package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/bonuslab/loyalty-analytics-service/internal/app/background"
	"github.com/bonuslab/loyalty-analytics-service/internal/config"
	httpdelivery "github.com/bonuslab/loyalty-analytics-service/internal/delivery/http"
	"github.com/bonuslab/loyalty-analytics-service/internal/delivery/http/handlers"
	"github.com/bonuslab/loyalty-analytics-service/internal/infrastructure/cache"
	"github.com/bonuslab/loyalty-analytics-service/internal/infrastructure/kafka"
	"github.com/bonuslab/loyalty-analytics-service/internal/infrastructure/metrics"
	"github.com/bonuslab/loyalty-analytics-service/internal/infrastructure/migrate"
	"github.com/bonuslab/loyalty-analytics-service/internal/infrastructure/postgres"
	"github.com/bonuslab/loyalty-analytics-service/internal/infrastructure/postgres/repository"
	"github.com/bonuslab/loyalty-analytics-service/internal/usecase/dashboard"
	"github.com/bonuslab/loyalty-analytics-service/internal/usecase/mechanics"
	"github.com/bonuslab/loyalty-analytics-service/internal/usecase/stats"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	logger := newLogger(cfg)

	// Init database
	db := postgres.MustInitDB(cfg)
	if err := migrate.RunMigrations(db, cfg.AnalyticsDB.MigrationsPath); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Init repos
	merchantRepo := repository.NewDefaultMerchantRepository(db)
	walletRepo := repository.NewDefaultWalletRepository(db)
	receiptRepo := repository.NewDefaultReceiptRepository(db)
	statsRepo := repository.NewDefaultCustomerStatsRepository(db)
	giftLotRepo := repository.NewDefaultGiftLotRepository(db)
	ledgerRepo := repository.NewDefaultLedgerRepository(db)

	// Kafka publisher событий пересчета
	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	recalcPublisher := kafka.NewKafkaPublisher(brokers, cfg.KafkaService.Topic)

	// Prometheus метрики
	analyticsMetrics := metrics.NewAnalyticsMetrics()

	// Redis кэш дашбордов
	metricsCache := cache.NewRedisMetricsCache(
		cfg.RedisCache.Addr,
		cfg.RedisCache.Password,
		cfg.RedisCache.DB,
		cfg.RedisCache.TTL,
		logger,
	)

	// Init usecases
	statsUsecase := stats.NewDefaultStatsUsecase(
		merchantRepo,
		walletRepo,
		receiptRepo,
		statsRepo,
		recalcPublisher,
		analyticsMetrics,
		logger,
	)
	mechanicsUsecase := mechanics.NewDefaultMechanicsUsecase(
		merchantRepo,
		giftLotRepo,
		receiptRepo,
		metricsCache,
		logger,
	)
	dashboardUsecase := dashboard.NewDefaultDashboardUsecase(
		merchantRepo,
		receiptRepo,
		walletRepo,
		ledgerRepo,
		logger,
	)

	// Ночной прогон пересчета
	if cfg.Worker.Enabled {
		tasks := background.NewBackgroundTasks(
			statsUsecase,
			dashboardUsecase,
			merchantRepo.ListMerchantIDs,
			cfg.Worker.SweepInterval,
		)
		tasks.StartAll(context.Background())
	}

	// HTTP server
	analyticsHandler := handlers.NewAnalyticsHandler(statsUsecase, mechanicsUsecase, dashboardUsecase)
	router := httpdelivery.NewRouter(analyticsHandler)

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	log.Printf("analytics service started on %s\n", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}

func newLogger(cfg *config.AnalyticsConfig) *slog.Logger {
	var level slog.Level
	switch cfg.LogConfig.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.LogConfig.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
