package dashboard

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/bonuslab/loyalty-analytics-service/internal/domain"
)

// AggregateMerchantDaily сворачивает леджер и кошельки мерчанта за одни
// сутки в строку merchant_kpi_daily (upsert по merchant_id + date).
func (uc *DefaultDashboardUsecase) AggregateMerchantDaily(ctx context.Context, merchantID string, day time.Time) error {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.Add(24*time.Hour - time.Millisecond)

	earnSum, err := uc.LedgerRepo.SumAmountByType(ctx, merchantID, domain.TxnEarn, from, to)
	if err != nil {
		return fmt.Errorf("failed to sum EARN amount: %w", err)
	}
	redeemSum, err := uc.LedgerRepo.SumAmountByType(ctx, merchantID, domain.TxnRedeem, from, to)
	if err != nil {
		return fmt.Errorf("failed to sum REDEEM amount: %w", err)
	}
	txnCount, err := uc.LedgerRepo.CountByTypes(ctx, merchantID, []domain.TxnType{domain.TxnEarn, domain.TxnRedeem}, from, to)
	if err != nil {
		return fmt.Errorf("failed to count transactions: %w", err)
	}

	newCustomers, err := uc.WalletRepo.CountCreatedBetween(ctx, merchantID, from, to)
	if err != nil {
		return fmt.Errorf("failed to count new wallets: %w", err)
	}
	activeCustomers, err := uc.LedgerRepo.CountDistinctCustomers(ctx, merchantID, from, to)
	if err != nil {
		return fmt.Errorf("failed to count active customers: %w", err)
	}

	revenue := math.Abs(earnSum)
	averageCheck := 0.0
	if txnCount > 0 {
		averageCheck = revenue / float64(txnCount)
	}

	kpi := &domain.MerchantKpiDaily{
		MerchantID:       merchantID,
		Date:             from,
		Revenue:          revenue,
		TransactionCount: txnCount,
		AverageCheck:     averageCheck,
		NewCustomers:     newCustomers,
		ActiveCustomers:  activeCustomers,
		PointsIssued:     math.Abs(earnSum),
		PointsRedeemed:   math.Abs(redeemSum),
	}

	if err := uc.MerchantRepo.UpsertDailyKpi(ctx, kpi); err != nil {
		return fmt.Errorf("failed to upsert daily kpi: %w", err)
	}
	return nil
}
