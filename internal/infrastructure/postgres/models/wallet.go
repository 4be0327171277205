package models

import "time"

type WalletModel struct {
	ID         string `gorm:"primaryKey;type:uuid"`
	MerchantID string `gorm:"type:uuid;index:idx_wallet_merchant"`
	CustomerID string `gorm:"type:uuid;index"`
	Balance    float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
