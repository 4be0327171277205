package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bonuslab/loyalty-analytics-service/internal/domain"
	"github.com/bonuslab/loyalty-analytics-service/internal/infrastructure/postgres/mappers"
	"github.com/bonuslab/loyalty-analytics-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultGiftLotRepository struct {
	DB *gorm.DB
}

func NewDefaultGiftLotRepository(db *gorm.DB) *DefaultGiftLotRepository {
	return &DefaultGiftLotRepository{DB: db}
}

func (r *DefaultGiftLotRepository) ListGreetings(ctx context.Context, merchantID string, from, to time.Time) ([]domain.BirthdayGreeting, error) {
	var greetingModels []models.BirthdayGreetingModel
	err := r.DB.WithContext(ctx).
		Where("merchant_id = ?", merchantID).
		Where("send_date >= ? AND send_date <= ?", from, to).
		Order("send_date ASC").
		Find(&greetingModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list greetings: %w", err)
	}

	greetings := make([]domain.BirthdayGreeting, 0, len(greetingModels))
	for _, m := range greetingModels {
		greetings = append(greetings, *mappers.ToDomainGreeting(&m))
	}
	return greetings, nil
}

// ListLots возвращает подарочные лоты клиентов в окне анализа,
// в порядке выдачи.
func (r *DefaultGiftLotRepository) ListLots(ctx context.Context, merchantID string, customerIDs []string, from, to time.Time) ([]domain.GiftLot, error) {
	if len(customerIDs) == 0 {
		return nil, nil
	}

	var greetingModels []models.BirthdayGreetingModel
	err := r.DB.WithContext(ctx).
		Where("merchant_id = ?", merchantID).
		Where("customer_id IN (?)", customerIDs).
		Where("gift_points > 0").
		Where("send_date >= ? AND send_date <= ?", from, to).
		Order("send_date ASC").
		Find(&greetingModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list gift lots: %w", err)
	}

	lots := make([]domain.GiftLot, 0, len(greetingModels))
	for _, m := range greetingModels {
		lots = append(lots, *mappers.ToDomainGiftLot(&m))
	}
	return lots, nil
}
