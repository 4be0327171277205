package mechanics

import (
	"sort"

	"github.com/bonuslab/loyalty-analytics-service/internal/domain"
)

// ReceiptAttribution — результат матчинга одного чека: сколько списанных
// баллов профинансировано подарочными лотами и чистая выручка чека.
type ReceiptAttribution struct {
	Receipt    domain.RedeemReceipt
	GiftSpend  float64
	NetRevenue float64
}

// MatchLots распределяет списания чеков клиента по его подарочным лотам.
// Лоты обходятся в порядке выдачи, чеки — в хронологическом порядке
// (createdAt, id). Лот пропускается, если истек строго раньше даты чека
// или его остаток исчерпан. Остатки живут только в памяти этого прохода.
func MatchLots(lots []domain.GiftLot, receipts []domain.RedeemReceipt) []ReceiptAttribution {
	sortedLots := make([]domain.GiftLot, len(lots))
	copy(sortedLots, lots)
	sort.SliceStable(sortedLots, func(i, j int) bool {
		return sortedLots[i].IssuedAt.Before(sortedLots[j].IssuedAt)
	})

	sortedReceipts := make([]domain.RedeemReceipt, len(receipts))
	copy(sortedReceipts, receipts)
	sort.SliceStable(sortedReceipts, func(i, j int) bool {
		if !sortedReceipts[i].CreatedAt.Equal(sortedReceipts[j].CreatedAt) {
			return sortedReceipts[i].CreatedAt.Before(sortedReceipts[j].CreatedAt)
		}
		return sortedReceipts[i].ID < sortedReceipts[j].ID
	})

	remaining := make([]float64, len(sortedLots))
	for i, lot := range sortedLots {
		if lot.Points > 0 {
			remaining[i] = lot.Points
		}
	}

	attributions := make([]ReceiptAttribution, 0, len(sortedReceipts))
	for _, receipt := range sortedReceipts {
		toSpend := receipt.RedeemApplied
		giftSpend := 0.0

		for i, lot := range sortedLots {
			if toSpend <= 0 {
				break
			}
			if remaining[i] <= 0 {
				continue
			}
			if lot.ExpiresAt != nil && lot.ExpiresAt.Before(receipt.CreatedAt) {
				continue
			}
			consumed := remaining[i]
			if toSpend < consumed {
				consumed = toSpend
			}
			remaining[i] -= consumed
			toSpend -= consumed
			giftSpend += consumed
		}

		net := receipt.Total - giftSpend
		if net < 0 {
			net = 0
		}
		attributions = append(attributions, ReceiptAttribution{
			Receipt:    receipt,
			GiftSpend:  giftSpend,
			NetRevenue: net,
		})
	}

	return attributions
}
