package domain

import "time"

// CustomerStats — агрегированная статистика клиента в рамках одного мерчанта.
// Одна строка на пару (merchant, customer), обновляется только через upsert.
type CustomerStats struct {
	MerchantID  string
	CustomerID  string
	Visits      int
	TotalSpent  float64
	AvgCheck    float64
	FirstSeenAt time.Time
	LastSeenAt  time.Time
	LastOrderAt *time.Time
	RfmR        int
	RfmF        int
	RfmM        int
	RfmScore    int
	RfmClass    string
}

type RfmMode string

const (
	RfmModeAuto   RfmMode = "auto"
	RfmModeManual RfmMode = "manual"
)

// RfmAxisSettings — настройки одной оси RFM (frequency или monetary).
type RfmAxisSettings struct {
	Mode         RfmMode
	Threshold    float64
	HasThreshold bool
}

// RfmSettings — снапшот настроек RFM мерчанта на момент запуска пересчета.
// Читается один раз перед батчем, дальше не перечитывается.
type RfmSettings struct {
	RecencyMode RfmMode
	RecencyDays int
	Frequency   RfmAxisSettings
	Monetary    RfmAxisSettings
}

type Wallet struct {
	CustomerID string
	CreatedAt  time.Time
}

// ReceiptAggregate — свертка чеков клиента: отмененные чеки, чеки с
// нулевой суммой и чеки с активным REFUND исключены на уровне запроса.
type ReceiptAggregate struct {
	CustomerID      string
	Visits          int
	TotalSpent      float64
	FirstPurchaseAt *time.Time
	LastPurchaseAt  *time.Time
}
