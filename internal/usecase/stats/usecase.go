package stats

import (
	"context"
	"log/slog"
	"time"

	"github.com/bonuslab/loyalty-analytics-service/internal/domain"
	"github.com/bonuslab/loyalty-analytics-service/internal/infrastructure/metrics"
)

// RecalcResult — итог пересчета статистики по одному мерчанту.
type RecalcResult struct {
	RunID      string
	MerchantID string
	Processed  int
	Failed     int
	Duration   time.Duration
}

type StatsUsecase interface {
	RecalculateMerchant(ctx context.Context, merchantID string, now time.Time) (*RecalcResult, error)
	RecalculateAll(ctx context.Context, now time.Time) ([]*RecalcResult, error)
	SuggestThresholds(ctx context.Context, merchantID string) (*ThresholdSuggestion, error)
	GetCustomerStats(ctx context.Context, merchantID, customerID string) (*domain.CustomerStats, error)
}

type DefaultStatsUsecase struct {
	MerchantRepo domain.MerchantRepository
	WalletRepo   domain.WalletRepository
	ReceiptRepo  domain.ReceiptRepository
	StatsRepo    domain.CustomerStatsRepository
	Publisher    domain.StatsEventPublisher
	Metrics      *metrics.AnalyticsMetrics
	Logger       *slog.Logger
}

func NewDefaultStatsUsecase(
	merchantRepo domain.MerchantRepository,
	walletRepo domain.WalletRepository,
	receiptRepo domain.ReceiptRepository,
	statsRepo domain.CustomerStatsRepository,
	publisher domain.StatsEventPublisher,
	analyticsMetrics *metrics.AnalyticsMetrics,
	logger *slog.Logger) *DefaultStatsUsecase {

	if logger == nil {
		logger = slog.Default()
	}

	return &DefaultStatsUsecase{
		MerchantRepo: merchantRepo,
		WalletRepo:   walletRepo,
		ReceiptRepo:  receiptRepo,
		StatsRepo:    statsRepo,
		Publisher:    publisher,
		Metrics:      analyticsMetrics,
		Logger:       logger,
	}
}

// GetCustomerStats — карточка клиента для CRM: текущая строка статистики.
func (uc *DefaultStatsUsecase) GetCustomerStats(ctx context.Context, merchantID, customerID string) (*domain.CustomerStats, error) {
	return uc.StatsRepo.Get(ctx, merchantID, customerID)
}

// ThresholdSuggestion — подсказки порогов для ручного режима в UI настроек.
type ThresholdSuggestion struct {
	Frequency *float64 `json:"frequency"`
	Monetary  *float64 `json:"monetary"`
}

// SuggestThresholds считает подсказки по текущей популяции мерчанта.
func (uc *DefaultStatsUsecase) SuggestThresholds(ctx context.Context, merchantID string) (*ThresholdSuggestion, error) {
	receipts, err := uc.ReceiptRepo.GetAggregates(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	var frequencySamples, monetarySamples []float64
	for _, r := range receipts {
		if r.Visits > 0 {
			frequencySamples = append(frequencySamples, float64(r.Visits))
		}
		if r.TotalSpent > 0 {
			monetarySamples = append(monetarySamples, r.TotalSpent)
		}
	}

	suggestion := &ThresholdSuggestion{}
	if v, ok := SuggestUpperQuantile(frequencySamples, 1); ok {
		suggestion.Frequency = &v
	}
	if v, ok := SuggestUpperQuantile(monetarySamples, 0); ok {
		suggestion.Monetary = &v
	}
	return suggestion, nil
}
