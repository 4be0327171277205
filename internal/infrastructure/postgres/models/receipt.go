package models

import "time"

type ReceiptModel struct {
	ID            string `gorm:"primaryKey;type:uuid"`
	MerchantID    string `gorm:"type:uuid;index:idx_receipt_merchant_created"`
	CustomerID    string `gorm:"type:uuid;index"`
	OrderID       string `gorm:"index"`
	Total         float64
	RedeemApplied float64
	CreatedAt     time.Time `gorm:"index:idx_receipt_merchant_created"`
	CanceledAt    *time.Time
}
