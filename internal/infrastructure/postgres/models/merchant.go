package models

import "time"

type MerchantModel struct {
	ID               string `gorm:"primaryKey;type:uuid"`
	Name             string
	UTCOffsetMinutes int
	CreatedAt        time.Time
}

type MerchantSettingsModel struct {
	MerchantID string `gorm:"primaryKey;type:uuid"`
	RulesJSON  string `gorm:"type:jsonb"`
	UpdatedAt  time.Time
}

type MerchantKpiDailyModel struct {
	MerchantID       string    `gorm:"primaryKey;type:uuid"`
	Date             time.Time `gorm:"primaryKey"`
	Revenue          float64
	TransactionCount int64
	AverageCheck     float64
	NewCustomers     int64
	ActiveCustomers  int64
	PointsIssued     float64
	PointsRedeemed   float64
	UpdatedAt        time.Time
}
