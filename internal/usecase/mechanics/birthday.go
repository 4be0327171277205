package mechanics

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/bonuslab/loyalty-analytics-service/internal/domain"
	"github.com/bonuslab/loyalty-analytics-service/internal/usecase/timeseries"
)

// BirthdayMetrics — атрибуция механики дня рождения за период: сколько
// поздравили, кто из поздравленных покупал за подарочные баллы и какую
// чистую выручку это принесло.
type BirthdayMetrics struct {
	Summary  BirthdaySummary    `json:"summary"`
	Timeline []TimelinePoint    `json:"timeline"`
	Revenue  []RevenueLinePoint `json:"revenue"`
}

type BirthdaySummary struct {
	Greetings         int     `json:"greetings"`
	GiftPurchasers    int     `json:"giftPurchasers"`
	RevenueNet        float64 `json:"revenueNet"`
	AverageCheck      float64 `json:"averageCheck"`
	GiftPointsSpent   float64 `json:"giftPointsSpent"`
	ReceiptsWithGifts int     `json:"receiptsWithGifts"`
}

// TimelinePoint — дневной бакет: уникальные поздравленные и уникальные
// покупатели за подарочные баллы.
type TimelinePoint struct {
	Date      string `json:"date"`
	Greetings int    `json:"greetings"`
	Purchases int    `json:"purchases"`
}

type RevenueLinePoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

type MechanicsUsecase interface {
	BirthdayMechanicMetrics(ctx context.Context, merchantID string, from, to time.Time) (*BirthdayMetrics, error)
}

type DefaultMechanicsUsecase struct {
	MerchantRepo domain.MerchantRepository
	GiftLotRepo  domain.GiftLotRepository
	ReceiptRepo  domain.ReceiptRepository
	Cache        domain.MetricsCache
	Logger       *slog.Logger
}

func NewDefaultMechanicsUsecase(
	merchantRepo domain.MerchantRepository,
	giftLotRepo domain.GiftLotRepository,
	receiptRepo domain.ReceiptRepository,
	cache domain.MetricsCache,
	logger *slog.Logger) *DefaultMechanicsUsecase {

	if logger == nil {
		logger = slog.Default()
	}

	return &DefaultMechanicsUsecase{
		MerchantRepo: merchantRepo,
		GiftLotRepo:  giftLotRepo,
		ReceiptRepo:  receiptRepo,
		Cache:        cache,
		Logger:       logger,
	}
}

// BirthdayMechanicMetrics собирает метрики механики за период [from, to].
func (uc *DefaultMechanicsUsecase) BirthdayMechanicMetrics(ctx context.Context, merchantID string, from, to time.Time) (*BirthdayMetrics, error) {
	cacheKey := fmt.Sprintf("birthday-mechanic|%s|%s|%s",
		merchantID, from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))
	if uc.Cache != nil {
		var cached BirthdayMetrics
		if uc.Cache.Get(cacheKey, &cached) {
			return &cached, nil
		}
	}

	tz, err := uc.MerchantRepo.GetTimezone(ctx, merchantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load merchant timezone: %w", err)
	}

	greetings, err := uc.GiftLotRepo.ListGreetings(ctx, merchantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load greetings: %w", err)
	}

	metrics := &BirthdayMetrics{
		Timeline: []TimelinePoint{},
		Revenue:  []RevenueLinePoint{},
	}
	metrics.Summary.Greetings = len(greetings)
	if len(greetings) == 0 {
		uc.cacheSet(cacheKey, metrics)
		return metrics, nil
	}

	customerIDs := distinctCustomers(greetings)

	lots, err := uc.GiftLotRepo.ListLots(ctx, merchantID, customerIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load gift lots: %w", err)
	}

	receipts, err := uc.ReceiptRepo.GetRedeemReceipts(ctx, merchantID, customerIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load redeem receipts: %w", err)
	}

	lotsByCustomer := make(map[string][]domain.GiftLot)
	for _, lot := range lots {
		lotsByCustomer[lot.CustomerID] = append(lotsByCustomer[lot.CustomerID], lot)
	}
	receiptsByCustomer := make(map[string][]domain.RedeemReceipt)
	for _, r := range receipts {
		receiptsByCustomer[r.CustomerID] = append(receiptsByCustomer[r.CustomerID], r)
	}

	greetingsPerBucket := make(map[string]map[string]bool)
	purchasesPerBucket := make(map[string]map[string]bool)
	revenuePerBucket := make(map[string]float64)

	for _, greet := range greetings {
		key := timeseries.Label(greet.SentAt, tz)
		addToBucket(greetingsPerBucket, key, greet.CustomerID)
	}

	grossRevenue := 0.0
	for _, customerID := range customerIDs {
		customerLots := lotsByCustomer[customerID]
		customerReceipts := receiptsByCustomer[customerID]
		if len(customerLots) == 0 || len(customerReceipts) == 0 {
			continue
		}

		hasGiftPurchase := false
		for _, attr := range MatchLots(customerLots, customerReceipts) {
			if attr.GiftSpend <= 0 {
				continue
			}
			hasGiftPurchase = true
			metrics.Summary.GiftPointsSpent += attr.GiftSpend
			metrics.Summary.ReceiptsWithGifts++
			metrics.Summary.RevenueNet += attr.NetRevenue
			grossRevenue += attr.Receipt.Total

			key := timeseries.Label(attr.Receipt.CreatedAt, tz)
			addToBucket(purchasesPerBucket, key, customerID)
			revenuePerBucket[key] += attr.NetRevenue
		}
		if hasGiftPurchase {
			metrics.Summary.GiftPurchasers++
		}
	}

	if metrics.Summary.ReceiptsWithGifts > 0 {
		metrics.Summary.AverageCheck = math.Round(grossRevenue / float64(metrics.Summary.ReceiptsWithGifts))
	}
	metrics.Summary.RevenueNet = math.Round(metrics.Summary.RevenueNet)
	metrics.Summary.GiftPointsSpent = math.Round(metrics.Summary.GiftPointsSpent)

	metrics.Timeline = buildTimeline(greetingsPerBucket, purchasesPerBucket)
	metrics.Revenue = buildRevenueLine(revenuePerBucket)

	uc.cacheSet(cacheKey, metrics)
	return metrics, nil
}

func (uc *DefaultMechanicsUsecase) cacheSet(key string, value *BirthdayMetrics) {
	if uc.Cache != nil {
		uc.Cache.Set(key, value)
	}
}

func distinctCustomers(greetings []domain.BirthdayGreeting) []string {
	seen := make(map[string]bool, len(greetings))
	ids := make([]string, 0, len(greetings))
	for _, g := range greetings {
		if !seen[g.CustomerID] {
			seen[g.CustomerID] = true
			ids = append(ids, g.CustomerID)
		}
	}
	return ids
}

func addToBucket(buckets map[string]map[string]bool, key, customerID string) {
	set, ok := buckets[key]
	if !ok {
		set = make(map[string]bool)
		buckets[key] = set
	}
	set[customerID] = true
}

func buildTimeline(greetings, purchases map[string]map[string]bool) []TimelinePoint {
	keys := make(map[string]bool, len(greetings)+len(purchases))
	for k := range greetings {
		keys[k] = true
	}
	for k := range purchases {
		keys[k] = true
	}

	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	timeline := make([]TimelinePoint, 0, len(sorted))
	for _, key := range sorted {
		timeline = append(timeline, TimelinePoint{
			Date:      key,
			Greetings: len(greetings[key]),
			Purchases: len(purchases[key]),
		})
	}
	return timeline
}

func buildRevenueLine(revenue map[string]float64) []RevenueLinePoint {
	keys := make([]string, 0, len(revenue))
	for k, v := range revenue {
		if v > 0 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	line := make([]RevenueLinePoint, 0, len(keys))
	for _, key := range keys {
		line = append(line, RevenueLinePoint{Date: key, Revenue: revenue[key]})
	}
	return line
}
