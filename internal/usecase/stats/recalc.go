package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/bonuslab/loyalty-analytics-service/internal/domain"
	"github.com/jaevor/go-nanoid"
)

type customerBatchRow struct {
	customerID  string
	visits      int
	totalSpent  float64
	lastOrderAt *time.Time
	firstSeenAt *time.Time
}

// RecalculateAll прогоняет пересчет по всем мерчантам. Падение одного
// мерчанта не останавливает остальных.
func (uc *DefaultStatsUsecase) RecalculateAll(ctx context.Context, now time.Time) ([]*RecalcResult, error) {
	merchantIDs, err := uc.MerchantRepo.ListMerchantIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list merchants: %w", err)
	}

	results := make([]*RecalcResult, 0, len(merchantIDs))
	for _, merchantID := range merchantIDs {
		result, err := uc.RecalculateMerchant(ctx, merchantID, now)
		if err != nil {
			uc.Logger.Error("merchant recalculation failed",
				"merchant_id", merchantID, "error", err)
			if uc.Metrics != nil {
				uc.Metrics.RecordMerchantFailed(merchantID)
			}
			continue
		}
		results = append(results, result)
	}
	return results, nil
}

// RecalculateMerchant пересчитывает CustomerStats мерчанта целиком:
// кошельки + свертки чеков -> сырые R/F/M -> скоринг -> upsert по клиенту.
// Ошибка upsert одного клиента логируется и не прерывает батч.
func (uc *DefaultStatsUsecase) RecalculateMerchant(ctx context.Context, merchantID string, now time.Time) (*RecalcResult, error) {
	started := time.Now()

	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, err
	}
	runID := idGenerator()

	settings, err := uc.MerchantRepo.GetRfmSettings(ctx, merchantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load rfm settings: %w", err)
	}

	wallets, err := uc.WalletRepo.ListByMerchant(ctx, merchantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallets: %w", err)
	}

	receipts, err := uc.ReceiptRepo.GetAggregates(ctx, merchantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load receipt aggregates: %w", err)
	}

	batch := buildBatch(wallets, receipts)
	horizon := settings.RecencyDays
	if horizon <= 0 {
		horizon = domain.DefaultRecencyHorizonDays
	}

	// Квинтили считаются по популяции текущего батча, не по всей истории
	var frequencySamples, monetarySamples, recencySamples []float64
	for _, row := range batch {
		if row.visits > 0 {
			frequencySamples = append(frequencySamples, float64(row.visits))
		}
		if row.totalSpent > 0 {
			monetarySamples = append(monetarySamples, row.totalSpent)
		}
		if row.visits > 0 && row.lastOrderAt != nil {
			recencySamples = append(recencySamples, RecencyDays(row.lastOrderAt, horizon, now))
		}
	}

	frequencyQuantiles := ComputeQuantiles(frequencySamples)
	monetaryQuantiles := ComputeQuantiles(monetarySamples)
	recencyQuantiles := ComputeQuantiles(recencySamples)

	frequencyThreshold := 0
	if settings.Frequency.Mode == domain.RfmModeManual && settings.Frequency.HasThreshold {
		frequencyThreshold = NormalizeThreshold(settings.Frequency.Threshold, 1)
	}
	monetaryThreshold := 0
	if settings.Monetary.Mode == domain.RfmModeManual && settings.Monetary.HasThreshold {
		monetaryThreshold = NormalizeThreshold(settings.Monetary.Threshold, 0)
	}

	result := &RecalcResult{RunID: runID, MerchantID: merchantID}
	for _, row := range batch {
		daysSince := RecencyDays(row.lastOrderAt, horizon, now)

		var rfmR int
		if settings.RecencyMode == domain.RfmModeManual {
			rfmR = ScoreRecencyBounded(daysSince, horizon)
		} else {
			rfmR = ScoreRecencyQuantile(daysSince, recencyQuantiles)
		}

		freqQ := frequencyQuantiles
		if settings.Frequency.Mode == domain.RfmModeManual && settings.Frequency.HasThreshold {
			freqQ = nil
		}
		monQ := monetaryQuantiles
		if settings.Monetary.Mode == domain.RfmModeManual && settings.Monetary.HasThreshold {
			monQ = nil
		}
		rfmF := ScoreDescending(float64(row.visits), frequencyThreshold, freqQ)
		rfmM := ScoreDescending(row.totalSpent, monetaryThreshold, monQ)

		rfmScore, rfmClass := Composite(rfmR, rfmF, rfmM)

		avgCheck := 0.0
		if row.visits > 0 {
			avgCheck = row.totalSpent / float64(row.visits)
		}

		firstSeenAt := now
		if row.firstSeenAt != nil {
			firstSeenAt = *row.firstSeenAt
		}

		stats := &domain.CustomerStats{
			MerchantID:  merchantID,
			CustomerID:  row.customerID,
			Visits:      row.visits,
			TotalSpent:  row.totalSpent,
			AvgCheck:    avgCheck,
			FirstSeenAt: firstSeenAt,
			LastSeenAt:  now,
			LastOrderAt: row.lastOrderAt,
			RfmR:        rfmR,
			RfmF:        rfmF,
			RfmM:        rfmM,
			RfmScore:    rfmScore,
			RfmClass:    rfmClass,
		}

		if err := uc.StatsRepo.Upsert(ctx, stats); err != nil {
			uc.Logger.Error("customer stats upsert failed",
				"merchant_id", merchantID, "customer_id", row.customerID, "error", err)
			result.Failed++
			continue
		}
		result.Processed++
	}

	result.Duration = time.Since(started)

	if uc.Metrics != nil {
		uc.Metrics.RecordRecalc(merchantID, result.Processed, result.Failed, result.Duration.Seconds())
	}
	if uc.Publisher != nil {
		event := domain.StatsRecalcEvent{
			RunID:      runID,
			MerchantID: merchantID,
			Processed:  result.Processed,
			Failed:     result.Failed,
			DurationMs: result.Duration.Milliseconds(),
			FinishedAt: time.Now(),
		}
		if err := uc.Publisher.PublishRecalc(event); err != nil {
			uc.Logger.Error("failed to publish recalc event",
				"merchant_id", merchantID, "error", err)
		}
	}

	uc.Logger.Info("customer stats recalculated",
		"run_id", runID,
		"merchant_id", merchantID,
		"processed", result.Processed,
		"failed", result.Failed,
		"duration", result.Duration)

	return result, nil
}

// buildBatch объединяет множества клиентов из кошельков и сверток чеков.
// Клиент только с кошельком получает нулевую строку (visits=0, spent=0).
func buildBatch(wallets []domain.Wallet, receipts []domain.ReceiptAggregate) []customerBatchRow {
	firstSeen := make(map[string]time.Time)
	for _, w := range wallets {
		prev, ok := firstSeen[w.CustomerID]
		if !ok || prev.After(w.CreatedAt) {
			firstSeen[w.CustomerID] = w.CreatedAt
		}
	}

	batch := make([]customerBatchRow, 0, len(receipts)+len(wallets))
	seen := make(map[string]bool, len(receipts))
	for _, r := range receipts {
		visits := r.Visits
		if visits < 0 {
			visits = 0
		}
		totalSpent := r.TotalSpent
		if totalSpent < 0 {
			totalSpent = 0
		}
		row := customerBatchRow{
			customerID:  r.CustomerID,
			visits:      visits,
			totalSpent:  totalSpent,
			lastOrderAt: r.LastPurchaseAt,
		}
		if ws, ok := firstSeen[r.CustomerID]; ok {
			first := ws
			row.firstSeenAt = &first
		} else if r.FirstPurchaseAt != nil {
			row.firstSeenAt = r.FirstPurchaseAt
		}
		batch = append(batch, row)
		seen[r.CustomerID] = true
	}

	for customerID, createdAt := range firstSeen {
		if seen[customerID] {
			continue
		}
		first := createdAt
		batch = append(batch, customerBatchRow{
			customerID:  customerID,
			firstSeenAt: &first,
		})
	}

	return batch
}
