package stats

import (
	"fmt"
	"math"
	"time"
)

const dayMs = 24 * 60 * 60 * 1000

// RecencyDays — сырое значение recency: полных дней с последней покупки.
// Без последней покупки клиент получает horizon+1 — гарантированно худший
// бакет и максимум любой выборки.
func RecencyDays(lastOrderAt *time.Time, horizon int, now time.Time) float64 {
	if lastOrderAt == nil {
		return float64(horizon + 1)
	}
	diff := now.UnixMilli() - lastOrderAt.UnixMilli()
	if diff <= 0 {
		return 0
	}
	return math.Floor(float64(diff) / dayMs)
}

// ScoreRecencyBounded — скоринг recency в ручном режиме: горизонт делится
// на пять равных корзин, свежие покупки получают 5, за горизонтом — 1.
func ScoreRecencyBounded(daysSince float64, horizon int) int {
	if !isFinite(daysSince) {
		return 1
	}
	limit := float64(horizon)
	if limit < 1 {
		limit = 1
	}
	bounded := math.Max(0, math.Min(daysSince, limit))
	bucket := math.Min(4, math.Floor(bounded/limit*5))
	return 5 - int(bucket)
}

// ScoreRecencyQuantile — скоринг recency по квинтилям батча: меньше дней —
// выше балл. При вырожденных границах действует трехзначная схема 5/3/1
// (для нулевой границы все ненулевые значения уходят в 1, ноль — в 5).
func ScoreRecencyQuantile(daysSince float64, q *Quantiles) int {
	if !isFinite(daysSince) || q == nil {
		return 1
	}
	if q.IsFlat() {
		if daysSince < q.Q20 {
			return 5
		}
		if daysSince > q.Q20 {
			return 1
		}
		if q.Q20 == 0 {
			return 5
		}
		return 3
	}
	switch {
	case daysSince <= q.Q20:
		return 5
	case daysSince <= q.Q40:
		return 4
	case daysSince <= q.Q60:
		return 3
	case daysSince <= q.Q80:
		return 2
	default:
		return 1
	}
}

// ScoreDescending — скоринг frequency/monetary: больше значение — выше балл.
// Порог включает полосы 100%/80%/55%/26% от threshold; без порога действуют
// квинтили, при вырожденных границах — трехзначная схема 1/3/5.
func ScoreDescending(value float64, threshold int, q *Quantiles) int {
	if !isFinite(value) {
		return 1
	}
	if threshold > 0 {
		t := float64(threshold)
		switch {
		case value >= t:
			return 5
		case value >= t*0.8:
			return 4
		case value >= t*0.55:
			return 3
		case value >= t*0.26:
			return 2
		default:
			return 1
		}
	}
	if q == nil {
		return 1
	}
	if q.IsFlat() {
		if q.Q20 == 0 {
			if value > 0 {
				return 5
			}
			return 1
		}
		if value > q.Q20 {
			return 5
		}
		if value < q.Q20 {
			return 1
		}
		return 3
	}
	switch {
	case value <= q.Q20:
		return 1
	case value <= q.Q40:
		return 2
	case value <= q.Q60:
		return 3
	case value <= q.Q80:
		return 4
	default:
		return 5
	}
}

// NormalizeThreshold округляет ручной порог мерчанта до целого, не ниже
// minimum. Нефинитные значения считаются незаданными.
func NormalizeThreshold(value float64, minimum int) int {
	if !isFinite(value) {
		return 0
	}
	rounded := int(math.Round(value))
	if rounded < minimum {
		rounded = minimum
	}
	return rounded
}

// Composite сводит оси в итоговый балл и класс: score = 100R+10F+M,
// class = "R-F-M". Обе производные всегда согласованы.
func Composite(r, f, m int) (int, string) {
	return r*100 + f*10 + m, fmt.Sprintf("%d-%d-%d", r, f, m)
}
