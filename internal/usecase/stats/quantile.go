package stats

import (
	"math"
	"sort"
)

// Quantiles — квинтильные границы выборки (20/40/60/80 перцентили).
// nil означает пустую выборку: скоринг обязан откатиться к дефолту.
type Quantiles struct {
	Q20 float64
	Q40 float64
	Q60 float64
	Q80 float64
}

// ComputeQuantiles возвращает точные порядковые статистики без усреднения
// связок: значение берется по индексу floor((n-1)*p) отсортированной выборки.
func ComputeQuantiles(values []float64) *Quantiles {
	if len(values) == 0 {
		return nil
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	pick := func(p float64) float64 {
		idx := int(math.Floor(float64(len(sorted)-1) * p))
		if idx < 0 {
			idx = 0
		}
		if idx > len(sorted)-1 {
			idx = len(sorted) - 1
		}
		return sorted[idx]
	}

	return &Quantiles{
		Q20: pick(0.2),
		Q40: pick(0.4),
		Q60: pick(0.6),
		Q80: pick(0.8),
	}
}

// IsFlat — вырожденное распределение: все границы совпали.
func (q *Quantiles) IsFlat() bool {
	return q.Q20 == q.Q40 && q.Q40 == q.Q60 && q.Q60 == q.Q80
}

// SuggestUpperQuantile подсказывает порог для ручного режима (UI-дефолт):
// округленный q80 выборки, не ниже minimum. Для пустой выборки ok == false.
func SuggestUpperQuantile(values []float64, minimum float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}

	q := ComputeQuantiles(values)
	candidate := q.Q80
	if !isFinite(candidate) {
		return 0, false
	}

	rounded := math.Round(candidate)
	if rounded < minimum {
		rounded = minimum
	}
	return rounded, true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
