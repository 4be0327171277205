package domain

import "time"

// GiftLot — партия подарочных баллов, выданная клиенту одним начислением
// (например, поздравлением с днем рождения). Лот неизменяем после выдачи:
// остаток считается в памяти во время матчинга и не персистится.
type GiftLot struct {
	CustomerID string
	Points     float64
	ExpiresAt  *time.Time
	IssuedAt   time.Time
}

// BirthdayGreeting — факт отправки поздравления. Поздравление с giftPoints > 0
// одновременно является источником лота.
type BirthdayGreeting struct {
	CustomerID string
	SentAt     time.Time
}

// RedeemReceipt — чек, в котором клиент списал баллы.
type RedeemReceipt struct {
	ID            string
	CustomerID    string
	Total         float64
	RedeemApplied float64
	CreatedAt     time.Time
}
