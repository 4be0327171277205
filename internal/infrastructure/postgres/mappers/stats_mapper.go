package mappers

import (
	"github.com/bonuslab/loyalty-analytics-service/internal/domain"
	"github.com/bonuslab/loyalty-analytics-service/internal/infrastructure/postgres/models"
)

func ToGORMCustomerStats(stats *domain.CustomerStats) *models.CustomerStatsModel {
	return &models.CustomerStatsModel{
		MerchantID:  stats.MerchantID,
		CustomerID:  stats.CustomerID,
		Visits:      stats.Visits,
		TotalSpent:  stats.TotalSpent,
		AvgCheck:    stats.AvgCheck,
		FirstSeenAt: stats.FirstSeenAt,
		LastSeenAt:  stats.LastSeenAt,
		LastOrderAt: stats.LastOrderAt,
		RfmR:        stats.RfmR,
		RfmF:        stats.RfmF,
		RfmM:        stats.RfmM,
		RfmScore:    stats.RfmScore,
		RfmClass:    stats.RfmClass,
	}
}

func ToDomainCustomerStats(model *models.CustomerStatsModel) *domain.CustomerStats {
	return &domain.CustomerStats{
		MerchantID:  model.MerchantID,
		CustomerID:  model.CustomerID,
		Visits:      model.Visits,
		TotalSpent:  model.TotalSpent,
		AvgCheck:    model.AvgCheck,
		FirstSeenAt: model.FirstSeenAt,
		LastSeenAt:  model.LastSeenAt,
		LastOrderAt: model.LastOrderAt,
		RfmR:        model.RfmR,
		RfmF:        model.RfmF,
		RfmM:        model.RfmM,
		RfmScore:    model.RfmScore,
		RfmClass:    model.RfmClass,
	}
}

func ToDomainGiftLot(model *models.BirthdayGreetingModel) *domain.GiftLot {
	return &domain.GiftLot{
		CustomerID: model.CustomerID,
		Points:     model.GiftPoints,
		ExpiresAt:  model.GiftExpiresAt,
		IssuedAt:   model.SendDate,
	}
}

func ToDomainGreeting(model *models.BirthdayGreetingModel) *domain.BirthdayGreeting {
	return &domain.BirthdayGreeting{
		CustomerID: model.CustomerID,
		SentAt:     model.SendDate,
	}
}
