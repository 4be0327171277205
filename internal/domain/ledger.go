package domain

import "time"

// TxnType — тип записи в леджере баллов.
type TxnType string

const (
	TxnEarn     TxnType = "EARN"
	TxnRedeem   TxnType = "REDEEM"
	TxnRefund   TxnType = "REFUND"
	TxnCampaign TxnType = "CAMPAIGN"
	TxnAdjust   TxnType = "ADJUST"
	TxnReferral TxnType = "REFERRAL"
)

// MerchantKpiDaily — дневная свертка KPI мерчанта, пишется upsert-ом.
type MerchantKpiDaily struct {
	MerchantID       string
	Date             time.Time
	Revenue          float64
	TransactionCount int64
	AverageCheck     float64
	NewCustomers     int64
	ActiveCustomers  int64
	PointsIssued     float64
	PointsRedeemed   float64
}

// RevenueBucket — строка сырой выборки выручки, уже свернутая БД по бакету.
type RevenueBucket struct {
	Bucket    time.Time
	Revenue   float64
	Orders    int64
	Customers int64
}
