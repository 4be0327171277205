package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScoreRecencyBounded(t *testing.T) {
	horizon := 365

	assert.Equal(t, 5, ScoreRecencyBounded(0, horizon))
	assert.Equal(t, 1, ScoreRecencyBounded(365, horizon))
	assert.Equal(t, 1, ScoreRecencyBounded(1000, horizon))

	// монотонно не возрастает
	prev := 5
	for days := 0; days <= 400; days++ {
		score := ScoreRecencyBounded(float64(days), horizon)
		assert.LessOrEqual(t, score, prev, "days=%d", days)
		assert.GreaterOrEqual(t, score, 1)
		prev = score
	}
}

func TestScoreRecencyQuantile(t *testing.T) {
	q := &Quantiles{Q20: 3, Q40: 10, Q60: 30, Q80: 90}

	assert.Equal(t, 5, ScoreRecencyQuantile(0, q))
	assert.Equal(t, 5, ScoreRecencyQuantile(3, q))
	assert.Equal(t, 4, ScoreRecencyQuantile(10, q))
	assert.Equal(t, 3, ScoreRecencyQuantile(30, q))
	assert.Equal(t, 2, ScoreRecencyQuantile(90, q))
	assert.Equal(t, 1, ScoreRecencyQuantile(91, q))

	assert.Equal(t, 1, ScoreRecencyQuantile(5, nil))
}

func TestScoreRecencyQuantile_FlatDistribution(t *testing.T) {
	flat := ComputeQuantiles([]float64{7, 7, 7})
	assert.Equal(t, 5, ScoreRecencyQuantile(3, flat))
	assert.Equal(t, 3, ScoreRecencyQuantile(7, flat))
	assert.Equal(t, 1, ScoreRecencyQuantile(10, flat))

	// все покупали сегодня: ноль дней — это свежо, а не средне
	zero := ComputeQuantiles([]float64{0, 0, 0})
	assert.Equal(t, 5, ScoreRecencyQuantile(0, zero))
	assert.Equal(t, 1, ScoreRecencyQuantile(1, zero))
}

func TestScoreDescending_FixedThresholdBands(t *testing.T) {
	assert.Equal(t, 5, ScoreDescending(120, 100, nil))
	assert.Equal(t, 5, ScoreDescending(100, 100, nil))
	assert.Equal(t, 4, ScoreDescending(80, 100, nil))
	assert.Equal(t, 3, ScoreDescending(55, 100, nil))
	assert.Equal(t, 2, ScoreDescending(26, 100, nil))
	assert.Equal(t, 1, ScoreDescending(10, 100, nil))
}

func TestScoreDescending_Quantiles(t *testing.T) {
	q := &Quantiles{Q20: 1, Q40: 2, Q60: 5, Q80: 12}

	assert.Equal(t, 1, ScoreDescending(0, 0, q))
	assert.Equal(t, 1, ScoreDescending(1, 0, q))
	assert.Equal(t, 2, ScoreDescending(2, 0, q))
	assert.Equal(t, 3, ScoreDescending(5, 0, q))
	assert.Equal(t, 4, ScoreDescending(12, 0, q))
	assert.Equal(t, 5, ScoreDescending(13, 0, q))

	// без порога и без квинтилей скорить нечем
	assert.Equal(t, 1, ScoreDescending(100, 0, nil))
}

func TestScoreDescending_FlatDistribution(t *testing.T) {
	zero := ComputeQuantiles([]float64{0, 0, 0})
	assert.Equal(t, 1, ScoreDescending(0, 0, zero))
	assert.Equal(t, 5, ScoreDescending(10, 0, zero))
	assert.Equal(t, 1, ScoreDescending(-1, 0, zero))

	flat := ComputeQuantiles([]float64{5, 5, 5})
	assert.Equal(t, 3, ScoreDescending(5, 0, flat))
	assert.Equal(t, 5, ScoreDescending(7, 0, flat))
	assert.Equal(t, 1, ScoreDescending(3, 0, flat))
}

func TestRecencyDays(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	lastOrder := now.Add(-36 * time.Hour)
	assert.Equal(t, 1.0, RecencyDays(&lastOrder, 365, now))

	future := now.Add(time.Hour)
	assert.Equal(t, 0.0, RecencyDays(&future, 365, now))

	// без последней покупки клиент всегда в худшей корзине
	assert.Equal(t, 366.0, RecencyDays(nil, 365, now))
}

func TestNormalizeThreshold(t *testing.T) {
	assert.Equal(t, 10, NormalizeThreshold(10.4, 1))
	assert.Equal(t, 11, NormalizeThreshold(10.5, 1))
	assert.Equal(t, 1, NormalizeThreshold(0.2, 1))
	assert.Equal(t, 0, NormalizeThreshold(-3, 0))
}

func TestComposite(t *testing.T) {
	score, class := Composite(5, 4, 3)
	assert.Equal(t, 543, score)
	assert.Equal(t, "5-4-3", class)

	score, class = Composite(1, 1, 1)
	assert.Equal(t, 111, score)
	assert.Equal(t, "1-1-1", class)
}
