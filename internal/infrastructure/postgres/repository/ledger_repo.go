package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bonuslab/loyalty-analytics-service/internal/domain"
	"github.com/bonuslab/loyalty-analytics-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultLedgerRepository struct {
	DB *gorm.DB
}

func NewDefaultLedgerRepository(db *gorm.DB) *DefaultLedgerRepository {
	return &DefaultLedgerRepository{DB: db}
}

func (r *DefaultLedgerRepository) SumAmountByType(ctx context.Context, merchantID string, txType domain.TxnType, from, to time.Time) (float64, error) {
	var sum float64
	err := r.DB.WithContext(ctx).Model(&models.TransactionModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("merchant_id = ?", merchantID).
		Where("type = ?", string(txType)).
		Where("canceled_at IS NULL").
		Where("created_at >= ? AND created_at <= ?", from, to).
		Scan(&sum).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum %s transactions: %w", txType, err)
	}
	return sum, nil
}

func (r *DefaultLedgerRepository) CountByTypes(ctx context.Context, merchantID string, types []domain.TxnType, from, to time.Time) (int64, error) {
	typeStrings := make([]string, 0, len(types))
	for _, t := range types {
		typeStrings = append(typeStrings, string(t))
	}

	var count int64
	err := r.DB.WithContext(ctx).Model(&models.TransactionModel{}).
		Where("merchant_id = ?", merchantID).
		Where("type IN (?)", typeStrings).
		Where("canceled_at IS NULL").
		Where("created_at >= ? AND created_at <= ?", from, to).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

func (r *DefaultLedgerRepository) CountDistinctCustomers(ctx context.Context, merchantID string, from, to time.Time) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.TransactionModel{}).
		Select("COUNT(DISTINCT customer_id)").
		Where("merchant_id = ?", merchantID).
		Where("canceled_at IS NULL").
		Where("created_at >= ? AND created_at <= ?", from, to).
		Scan(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count active customers: %w", err)
	}
	return count, nil
}
