package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/bonuslab/loyalty-analytics-service/internal/domain"
	"github.com/bonuslab/loyalty-analytics-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultMerchantRepository struct {
	DB *gorm.DB
}

func NewDefaultMerchantRepository(db *gorm.DB) *DefaultMerchantRepository {
	return &DefaultMerchantRepository{DB: db}
}

func (r *DefaultMerchantRepository) ListMerchantIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.DB.WithContext(ctx).Model(&models.MerchantModel{}).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list merchants: %w", err)
	}
	return ids, nil
}

// GetRfmSettings читает rulesJson мерчанта и разбирает его в типизированные
// настройки. Отсутствие строки или кривой JSON — не ошибка, а дефолты.
func (r *DefaultMerchantRepository) GetRfmSettings(ctx context.Context, merchantID string) (domain.RfmSettings, error) {
	var settingsModel models.MerchantSettingsModel
	err := r.DB.WithContext(ctx).
		First(&settingsModel, "merchant_id = ?", merchantID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.DefaultRfmSettings(), nil
		}
		return domain.RfmSettings{}, fmt.Errorf("failed to load merchant settings: %w", err)
	}

	return domain.ParseRfmSettings([]byte(settingsModel.RulesJSON)), nil
}

func (r *DefaultMerchantRepository) GetTimezone(ctx context.Context, merchantID string) (domain.Timezone, error) {
	var merchantModel models.MerchantModel
	err := r.DB.WithContext(ctx).
		First(&merchantModel, "id = ?", merchantID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Timezone{}, domain.ErrMerchantNotFound
		}
		return domain.Timezone{}, fmt.Errorf("failed to load merchant: %w", err)
	}

	return domain.Timezone{UTCOffsetMinutes: merchantModel.UTCOffsetMinutes}, nil
}

func (r *DefaultMerchantRepository) UpsertDailyKpi(ctx context.Context, kpi *domain.MerchantKpiDaily) error {
	model := &models.MerchantKpiDailyModel{
		MerchantID:       kpi.MerchantID,
		Date:             kpi.Date,
		Revenue:          kpi.Revenue,
		TransactionCount: kpi.TransactionCount,
		AverageCheck:     kpi.AverageCheck,
		NewCustomers:     kpi.NewCustomers,
		ActiveCustomers:  kpi.ActiveCustomers,
		PointsIssued:     kpi.PointsIssued,
		PointsRedeemed:   kpi.PointsRedeemed,
	}

	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "merchant_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"revenue", "transaction_count", "average_check",
			"new_customers", "active_customers", "points_issued", "points_redeemed",
		}),
	}).Create(model).Error
}
