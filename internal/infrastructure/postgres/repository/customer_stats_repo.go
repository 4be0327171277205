package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/bonuslab/loyalty-analytics-service/internal/domain"
	"github.com/bonuslab/loyalty-analytics-service/internal/infrastructure/postgres/mappers"
	"github.com/bonuslab/loyalty-analytics-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultCustomerStatsRepository struct {
	DB *gorm.DB
}

func NewDefaultCustomerStatsRepository(db *gorm.DB) *DefaultCustomerStatsRepository {
	return &DefaultCustomerStatsRepository{DB: db}
}

// Upsert пишет строку статистики атомарно: insert или update по конфликту
// (merchant_id, customer_id). first_seen_at не растет — берется LEAST от
// существующего и нового значения.
func (r *DefaultCustomerStatsRepository) Upsert(ctx context.Context, stats *domain.CustomerStats) error {
	model := mappers.ToGORMCustomerStats(stats)

	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "merchant_id"}, {Name: "customer_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"visits":        model.Visits,
			"total_spent":   model.TotalSpent,
			"avg_check":     model.AvgCheck,
			"first_seen_at": gorm.Expr("LEAST(customer_stats_models.first_seen_at, EXCLUDED.first_seen_at)"),
			"last_seen_at":  model.LastSeenAt,
			"last_order_at": model.LastOrderAt,
			"rfm_r":         model.RfmR,
			"rfm_f":         model.RfmF,
			"rfm_m":         model.RfmM,
			"rfm_score":     model.RfmScore,
			"rfm_class":     model.RfmClass,
		}),
	}).Create(model).Error
}

func (r *DefaultCustomerStatsRepository) Get(ctx context.Context, merchantID, customerID string) (*domain.CustomerStats, error) {
	var model models.CustomerStatsModel
	err := r.DB.WithContext(ctx).
		First(&model, "merchant_id = ? AND customer_id = ?", merchantID, customerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStatsNotFound
		}
		return nil, fmt.Errorf("failed to load customer stats: %w", err)
	}
	return mappers.ToDomainCustomerStats(&model), nil
}
