package models

import "time"

// BirthdayGreetingModel — поздравление с днем рождения; строка с
// gift_points > 0 одновременно является подарочным лотом.
type BirthdayGreetingModel struct {
	ID            string    `gorm:"primaryKey;type:uuid"`
	MerchantID    string    `gorm:"type:uuid;index:idx_greeting_merchant_sent"`
	CustomerID    string    `gorm:"type:uuid;index"`
	SendDate      time.Time `gorm:"index:idx_greeting_merchant_sent"`
	GiftPoints    float64
	GiftExpiresAt *time.Time
	CreatedAt     time.Time
}
