package domain

import (
	"context"
	"time"
)

type MerchantRepository interface {
	ListMerchantIDs(ctx context.Context) ([]string, error)
	GetRfmSettings(ctx context.Context, merchantID string) (RfmSettings, error)
	GetTimezone(ctx context.Context, merchantID string) (Timezone, error)
	UpsertDailyKpi(ctx context.Context, kpi *MerchantKpiDaily) error
}

type WalletRepository interface {
	ListByMerchant(ctx context.Context, merchantID string) ([]Wallet, error)
	CountCreatedBetween(ctx context.Context, merchantID string, from, to time.Time) (int64, error)
}

type ReceiptRepository interface {
	// GetAggregates исключает отмененные чеки, чеки с total <= 0 и чеки,
	// по заказу которых есть неотмененная REFUND-транзакция.
	GetAggregates(ctx context.Context, merchantID string) ([]ReceiptAggregate, error)
	GetRedeemReceipts(ctx context.Context, merchantID string, customerIDs []string, from, to time.Time) ([]RedeemReceipt, error)
	GetRevenueBuckets(ctx context.Context, merchantID string, from, to time.Time, grouping Grouping, tz Timezone) ([]RevenueBucket, error)
}

type CustomerStatsRepository interface {
	Upsert(ctx context.Context, stats *CustomerStats) error
	Get(ctx context.Context, merchantID, customerID string) (*CustomerStats, error)
}

type GiftLotRepository interface {
	ListGreetings(ctx context.Context, merchantID string, from, to time.Time) ([]BirthdayGreeting, error)
	ListLots(ctx context.Context, merchantID string, customerIDs []string, from, to time.Time) ([]GiftLot, error)
}

type LedgerRepository interface {
	SumAmountByType(ctx context.Context, merchantID string, txType TxnType, from, to time.Time) (float64, error)
	CountByTypes(ctx context.Context, merchantID string, types []TxnType, from, to time.Time) (int64, error)
	CountDistinctCustomers(ctx context.Context, merchantID string, from, to time.Time) (int64, error)
}
