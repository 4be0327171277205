package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bonuslab/loyalty-analytics-service/internal/domain"
	"github.com/bonuslab/loyalty-analytics-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultReceiptRepository struct {
	DB *gorm.DB
}

func NewDefaultReceiptRepository(db *gorm.DB) *DefaultReceiptRepository {
	return &DefaultReceiptRepository{DB: db}
}

type receiptAggregateRow struct {
	CustomerID      string
	Visits          int
	TotalSpent      float64
	FirstPurchaseAt *time.Time
	LastPurchaseAt  *time.Time
}

// GetAggregates сворачивает чеки по клиентам. Исключаются отмененные чеки,
// чеки с total <= 0 и чеки, по заказу которых есть живая REFUND-транзакция.
func (r *DefaultReceiptRepository) GetAggregates(ctx context.Context, merchantID string) ([]domain.ReceiptAggregate, error) {
	var rows []receiptAggregateRow

	err := r.DB.WithContext(ctx).Raw(`
		SELECT r.customer_id,
		       COUNT(*) AS visits,
		       COALESCE(SUM(r.total), 0) AS total_spent,
		       MIN(r.created_at) AS first_purchase_at,
		       MAX(r.created_at) AS last_purchase_at
		FROM receipt_models r
		WHERE r.merchant_id = ?
		  AND r.canceled_at IS NULL
		  AND r.total > 0
		  AND NOT EXISTS (
		      SELECT 1 FROM transaction_models refund
		      WHERE refund.merchant_id = r.merchant_id
		        AND refund.order_id = r.order_id
		        AND refund.type = 'REFUND'
		        AND refund.canceled_at IS NULL
		  )
		GROUP BY r.customer_id`, merchantID).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate receipts: %w", err)
	}

	aggregates := make([]domain.ReceiptAggregate, 0, len(rows))
	for _, row := range rows {
		aggregates = append(aggregates, domain.ReceiptAggregate{
			CustomerID:      row.CustomerID,
			Visits:          row.Visits,
			TotalSpent:      row.TotalSpent,
			FirstPurchaseAt: row.FirstPurchaseAt,
			LastPurchaseAt:  row.LastPurchaseAt,
		})
	}
	return aggregates, nil
}

// GetRedeemReceipts возвращает чеки клиентов со списанием баллов в окне,
// упорядоченные по (created_at, id) для детерминизма матчинга.
func (r *DefaultReceiptRepository) GetRedeemReceipts(ctx context.Context, merchantID string, customerIDs []string, from, to time.Time) ([]domain.RedeemReceipt, error) {
	if len(customerIDs) == 0 {
		return nil, nil
	}

	var receiptModels []models.ReceiptModel
	err := r.DB.WithContext(ctx).
		Where("merchant_id = ?", merchantID).
		Where("customer_id IN (?)", customerIDs).
		Where("redeem_applied > 0").
		Where("canceled_at IS NULL").
		Where("created_at >= ? AND created_at <= ?", from, to).
		Order("created_at ASC, id ASC").
		Find(&receiptModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load redeem receipts: %w", err)
	}

	receipts := make([]domain.RedeemReceipt, 0, len(receiptModels))
	for _, m := range receiptModels {
		receipts = append(receipts, domain.RedeemReceipt{
			ID:            m.ID,
			CustomerID:    m.CustomerID,
			Total:         m.Total,
			RedeemApplied: m.RedeemApplied,
			CreatedAt:     m.CreatedAt,
		})
	}
	return receipts, nil
}

type revenueBucketRow struct {
	Bucket    time.Time
	Revenue   float64
	Orders    int64
	Customers int64
}

// GetRevenueBuckets сворачивает выручку по бакетам на стороне БД:
// date_trunc по локальному времени (сдвиг на минуты таймзоны) и обратно.
func (r *DefaultReceiptRepository) GetRevenueBuckets(ctx context.Context, merchantID string, from, to time.Time, grouping domain.Grouping, tz domain.Timezone) ([]domain.RevenueBucket, error) {
	var rows []revenueBucketRow

	err := r.DB.WithContext(ctx).Raw(`
		SELECT date_trunc(?, r.created_at + (? * interval '1 minute')) - (? * interval '1 minute') AS bucket,
		       COALESCE(SUM(r.total), 0) AS revenue,
		       COUNT(*) AS orders,
		       COUNT(DISTINCT r.customer_id) AS customers
		FROM receipt_models r
		WHERE r.merchant_id = ?
		  AND r.created_at >= ?
		  AND r.created_at <= ?
		  AND r.canceled_at IS NULL
		  AND r.total > 0
		  AND NOT EXISTS (
		      SELECT 1 FROM transaction_models refund
		      WHERE refund.merchant_id = r.merchant_id
		        AND refund.order_id = r.order_id
		        AND refund.type = 'REFUND'
		        AND refund.canceled_at IS NULL
		  )
		GROUP BY 1
		ORDER BY 1`,
		string(grouping), tz.UTCOffsetMinutes, tz.UTCOffsetMinutes,
		merchantID, from, to).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load revenue buckets: %w", err)
	}

	buckets := make([]domain.RevenueBucket, 0, len(rows))
	for _, row := range rows {
		buckets = append(buckets, domain.RevenueBucket{
			Bucket:    row.Bucket,
			Revenue:   row.Revenue,
			Orders:    row.Orders,
			Customers: row.Customers,
		})
	}
	return buckets, nil
}
