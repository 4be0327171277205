package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bonuslab/loyalty-analytics-service/internal/domain"
	"github.com/bonuslab/loyalty-analytics-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultWalletRepository struct {
	DB *gorm.DB
}

func NewDefaultWalletRepository(db *gorm.DB) *DefaultWalletRepository {
	return &DefaultWalletRepository{DB: db}
}

func (r *DefaultWalletRepository) ListByMerchant(ctx context.Context, merchantID string) ([]domain.Wallet, error) {
	var walletModels []models.WalletModel
	err := r.DB.WithContext(ctx).
		Select("customer_id", "created_at").
		Where("merchant_id = ?", merchantID).
		Find(&walletModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}

	wallets := make([]domain.Wallet, 0, len(walletModels))
	for _, m := range walletModels {
		wallets = append(wallets, domain.Wallet{
			CustomerID: m.CustomerID,
			CreatedAt:  m.CreatedAt,
		})
	}
	return wallets, nil
}

func (r *DefaultWalletRepository) CountCreatedBetween(ctx context.Context, merchantID string, from, to time.Time) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.WalletModel{}).
		Where("merchant_id = ?", merchantID).
		Where("created_at >= ? AND created_at <= ?", from, to).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count wallets: %w", err)
	}
	return count, nil
}
