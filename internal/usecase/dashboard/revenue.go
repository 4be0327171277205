package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/bonuslab/loyalty-analytics-service/internal/domain"
	"github.com/bonuslab/loyalty-analytics-service/internal/usecase/timeseries"
)

// RevenuePoint — точка ряда динамики выручки. Пустые бакеты присутствуют
// с нулями: ряд всегда плотный.
type RevenuePoint struct {
	Date         string  `json:"date"`
	Revenue      float64 `json:"revenue"`
	Transactions int64   `json:"transactions"`
	Customers    int64   `json:"customers"`
	AverageCheck float64 `json:"averageCheck"`
}

type DashboardUsecase interface {
	RevenueSeries(ctx context.Context, merchantID string, from, to time.Time, grouping domain.Grouping) ([]RevenuePoint, error)
	AggregateMerchantDaily(ctx context.Context, merchantID string, day time.Time) error
}

type DefaultDashboardUsecase struct {
	MerchantRepo domain.MerchantRepository
	ReceiptRepo  domain.ReceiptRepository
	WalletRepo   domain.WalletRepository
	LedgerRepo   domain.LedgerRepository
	Logger       *slog.Logger
}

func NewDefaultDashboardUsecase(
	merchantRepo domain.MerchantRepository,
	receiptRepo domain.ReceiptRepository,
	walletRepo domain.WalletRepository,
	ledgerRepo domain.LedgerRepository,
	logger *slog.Logger) *DefaultDashboardUsecase {

	if logger == nil {
		logger = slog.Default()
	}

	return &DefaultDashboardUsecase{
		MerchantRepo: merchantRepo,
		ReceiptRepo:  receiptRepo,
		WalletRepo:   walletRepo,
		LedgerRepo:   ledgerRepo,
		Logger:       logger,
	}
}

// RevenueSeries строит ряд выручки по бакетам: БД сворачивает чеки по
// date_trunc со сдвигом таймзоны, пропущенные бакеты добиваются нулями.
func (uc *DefaultDashboardUsecase) RevenueSeries(ctx context.Context, merchantID string, from, to time.Time, grouping domain.Grouping) ([]RevenuePoint, error) {
	switch grouping {
	case domain.GroupingDay, domain.GroupingWeek, domain.GroupingMonth:
	default:
		return nil, domain.ErrInvalidGrouping
	}

	tz, err := uc.MerchantRepo.GetTimezone(ctx, merchantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load merchant timezone: %w", err)
	}

	rows, err := uc.ReceiptRepo.GetRevenueBuckets(ctx, merchantID, from, to, grouping, tz)
	if err != nil {
		return nil, fmt.Errorf("failed to load revenue buckets: %w", err)
	}

	byLabel := make(map[string]domain.RevenueBucket, len(rows))
	for _, row := range rows {
		byLabel[timeseries.Label(row.Bucket, tz)] = row
	}

	buckets := timeseries.Range(from, to, grouping, tz)
	series := make([]RevenuePoint, 0, len(buckets))
	for _, bucket := range buckets {
		entry := byLabel[bucket.Label]
		avgCheck := 0.0
		if entry.Orders > 0 {
			avgCheck = entry.Revenue / float64(entry.Orders)
		}
		series = append(series, RevenuePoint{
			Date:         bucket.Label,
			Revenue:      math.Round(entry.Revenue),
			Transactions: entry.Orders,
			Customers:    entry.Customers,
			AverageCheck: math.Round(avgCheck*100) / 100,
		})
	}

	return series, nil
}
