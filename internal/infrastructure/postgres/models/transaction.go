package models

import "time"

// TransactionModel — запись леджера баллов (EARN/REDEEM/REFUND/...).
type TransactionModel struct {
	ID         string `gorm:"primaryKey;type:uuid"`
	MerchantID string `gorm:"type:uuid;index:idx_txn_merchant_type"`
	CustomerID string `gorm:"type:uuid;index"`
	OrderID    string `gorm:"index"`
	Type       string `gorm:"index:idx_txn_merchant_type"`
	Amount     float64
	CreatedAt  time.Time `gorm:"index"`
	CanceledAt *time.Time
}
