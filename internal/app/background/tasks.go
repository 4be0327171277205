package background

import (
	"context"
	"log"
	"time"

	"github.com/bonuslab/loyalty-analytics-service/internal/usecase/dashboard"
	"github.com/bonuslab/loyalty-analytics-service/internal/usecase/stats"
)

type BackgroundTasks struct {
	StatsUsecase     stats.StatsUsecase
	DashboardUsecase dashboard.DashboardUsecase
	MerchantIDs      func(ctx context.Context) ([]string, error)
	SweepInterval    time.Duration
}

func NewBackgroundTasks(
	statsUC stats.StatsUsecase,
	dashboardUC dashboard.DashboardUsecase,
	merchantIDs func(ctx context.Context) ([]string, error),
	sweepInterval time.Duration) *BackgroundTasks {

	if sweepInterval <= 0 {
		sweepInterval = 24 * time.Hour
	}

	return &BackgroundTasks{
		StatsUsecase:     statsUC,
		DashboardUsecase: dashboardUC,
		MerchantIDs:      merchantIDs,
		SweepInterval:    sweepInterval,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.startStatsSweep(ctx)
}

// Ночной прогон: дневная свертка KPI за вчера + полный пересчет статистики
func (bt *BackgroundTasks) startStatsSweep(ctx context.Context) {
	ticker := time.NewTicker(bt.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			bt.runSweep(ctx)
		}
	}
}

func (bt *BackgroundTasks) runSweep(ctx context.Context) {
	yesterday := time.Now().UTC().AddDate(0, 0, -1)

	merchantIDs, err := bt.MerchantIDs(ctx)
	if err != nil {
		log.Printf("Sweep: failed to list merchants: %v\n", err)
	} else {
		for _, merchantID := range merchantIDs {
			if err := bt.DashboardUsecase.AggregateMerchantDaily(ctx, merchantID, yesterday); err != nil {
				log.Printf("Daily KPI aggregation error for merchant %s: %v\n", merchantID, err)
			}
		}
	}

	if _, err := bt.StatsUsecase.RecalculateAll(ctx, time.Now().UTC()); err != nil {
		log.Printf("Stats sweep error: %v\n", err)
	}
}
