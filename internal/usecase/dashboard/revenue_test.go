package dashboard

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/bonuslab/loyalty-analytics-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMerchantRepo struct {
	tz   domain.Timezone
	kpis []*domain.MerchantKpiDaily
}

func (f *fakeMerchantRepo) ListMerchantIDs(ctx context.Context) ([]string, error) { return nil, nil }

func (f *fakeMerchantRepo) GetRfmSettings(ctx context.Context, merchantID string) (domain.RfmSettings, error) {
	return domain.DefaultRfmSettings(), nil
}

func (f *fakeMerchantRepo) GetTimezone(ctx context.Context, merchantID string) (domain.Timezone, error) {
	return f.tz, nil
}

func (f *fakeMerchantRepo) UpsertDailyKpi(ctx context.Context, kpi *domain.MerchantKpiDaily) error {
	f.kpis = append(f.kpis, kpi)
	return nil
}

type fakeReceiptRepo struct {
	buckets []domain.RevenueBucket
}

func (f *fakeReceiptRepo) GetAggregates(ctx context.Context, merchantID string) ([]domain.ReceiptAggregate, error) {
	return nil, nil
}

func (f *fakeReceiptRepo) GetRedeemReceipts(ctx context.Context, merchantID string, customerIDs []string, from, to time.Time) ([]domain.RedeemReceipt, error) {
	return nil, nil
}

func (f *fakeReceiptRepo) GetRevenueBuckets(ctx context.Context, merchantID string, from, to time.Time, grouping domain.Grouping, tz domain.Timezone) ([]domain.RevenueBucket, error) {
	return f.buckets, nil
}

type fakeWalletRepo struct {
	newWallets int64
}

func (f *fakeWalletRepo) ListByMerchant(ctx context.Context, merchantID string) ([]domain.Wallet, error) {
	return nil, nil
}

func (f *fakeWalletRepo) CountCreatedBetween(ctx context.Context, merchantID string, from, to time.Time) (int64, error) {
	return f.newWallets, nil
}

type fakeLedgerRepo struct {
	sums      map[domain.TxnType]float64
	txnCount  int64
	customers int64
}

func (f *fakeLedgerRepo) SumAmountByType(ctx context.Context, merchantID string, txType domain.TxnType, from, to time.Time) (float64, error) {
	return f.sums[txType], nil
}

func (f *fakeLedgerRepo) CountByTypes(ctx context.Context, merchantID string, types []domain.TxnType, from, to time.Time) (int64, error) {
	return f.txnCount, nil
}

func (f *fakeLedgerRepo) CountDistinctCustomers(ctx context.Context, merchantID string, from, to time.Time) (int64, error) {
	return f.customers, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRevenueSeries_DenseWithZeroFill(t *testing.T) {
	from := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 5, 4, 0, 0, 0, 0, time.UTC)

	receipts := &fakeReceiptRepo{buckets: []domain.RevenueBucket{
		{Bucket: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), Revenue: 1500.4, Orders: 3, Customers: 2},
		{Bucket: time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC), Revenue: 500, Orders: 2, Customers: 2},
	}}

	uc := NewDefaultDashboardUsecase(&fakeMerchantRepo{}, receipts, &fakeWalletRepo{}, &fakeLedgerRepo{}, discardLogger())

	series, err := uc.RevenueSeries(context.Background(), "merchant-1", from, to, domain.GroupingDay)
	require.NoError(t, err)
	require.Len(t, series, 4)

	assert.Equal(t, "2025-05-01", series[0].Date)
	assert.Equal(t, 1500.0, series[0].Revenue)
	assert.Equal(t, int64(3), series[0].Transactions)
	assert.Equal(t, int64(2), series[0].Customers)
	assert.Equal(t, 500.13, series[0].AverageCheck)

	// пустой бакет присутствует с нулями
	assert.Equal(t, "2025-05-02", series[1].Date)
	assert.Equal(t, 0.0, series[1].Revenue)
	assert.Equal(t, int64(0), series[1].Transactions)
	assert.Equal(t, 0.0, series[1].AverageCheck)

	assert.Equal(t, "2025-05-03", series[2].Date)
	assert.Equal(t, 250.0, series[2].AverageCheck)

	assert.Equal(t, "2025-05-04", series[3].Date)
	assert.Equal(t, 0.0, series[3].Revenue)
}

func TestRevenueSeries_InvalidGrouping(t *testing.T) {
	uc := NewDefaultDashboardUsecase(&fakeMerchantRepo{}, &fakeReceiptRepo{}, &fakeWalletRepo{}, &fakeLedgerRepo{}, discardLogger())

	_, err := uc.RevenueSeries(context.Background(), "merchant-1", time.Now(), time.Now(), domain.Grouping("hour"))
	assert.ErrorIs(t, err, domain.ErrInvalidGrouping)
}

func TestAggregateMerchantDaily(t *testing.T) {
	merchantRepo := &fakeMerchantRepo{}
	ledger := &fakeLedgerRepo{
		sums: map[domain.TxnType]float64{
			domain.TxnEarn:   12000,
			domain.TxnRedeem: -3000,
		},
		txnCount:  40,
		customers: 25,
	}

	uc := NewDefaultDashboardUsecase(merchantRepo, &fakeReceiptRepo{}, &fakeWalletRepo{newWallets: 7}, ledger, discardLogger())

	day := time.Date(2025, 5, 10, 13, 30, 0, 0, time.UTC)
	err := uc.AggregateMerchantDaily(context.Background(), "merchant-1", day)
	require.NoError(t, err)

	require.Len(t, merchantRepo.kpis, 1)
	kpi := merchantRepo.kpis[0]
	assert.Equal(t, "merchant-1", kpi.MerchantID)
	assert.Equal(t, time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC), kpi.Date)
	assert.Equal(t, 12000.0, kpi.Revenue)
	assert.Equal(t, int64(40), kpi.TransactionCount)
	assert.Equal(t, 300.0, kpi.AverageCheck)
	assert.Equal(t, int64(7), kpi.NewCustomers)
	assert.Equal(t, int64(25), kpi.ActiveCustomers)
	assert.Equal(t, 12000.0, kpi.PointsIssued)
	assert.Equal(t, 3000.0, kpi.PointsRedeemed)
}
