package models

import "time"

type CustomerStatsModel struct {
	MerchantID  string `gorm:"primaryKey;type:uuid"`
	CustomerID  string `gorm:"primaryKey;type:uuid"`
	Visits      int
	TotalSpent  float64
	AvgCheck    float64
	FirstSeenAt time.Time
	LastSeenAt  time.Time
	LastOrderAt *time.Time
	RfmR        int
	RfmF        int
	RfmM        int
	RfmScore    int    `gorm:"index:idx_rfm_score"`
	RfmClass    string `gorm:"index:idx_rfm_class"`
	UpdatedAt   time.Time
}
