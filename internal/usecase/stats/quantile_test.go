package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeQuantiles_EmptySample(t *testing.T) {
	assert.Nil(t, ComputeQuantiles(nil))
	assert.Nil(t, ComputeQuantiles([]float64{}))
}

func TestComputeQuantiles_ExactOrderStatistics(t *testing.T) {
	// связки не усредняются: берется точная порядковая статистика
	q := ComputeQuantiles([]float64{1, 2, 3, 100})
	require.NotNil(t, q)
	assert.Equal(t, 1.0, q.Q20)
	assert.Equal(t, 2.0, q.Q40)
	assert.Equal(t, 2.0, q.Q60)
	assert.Equal(t, 3.0, q.Q80)
}

func TestComputeQuantiles_NonDecreasing(t *testing.T) {
	samples := [][]float64{
		{5},
		{3, 1},
		{10, 0, 5, 2, 8, 1},
		{7, 7, 7, 7},
		{100, 1, 2, 3, 4, 5, 6, 7, 8, 9},
	}
	for _, sample := range samples {
		q := ComputeQuantiles(sample)
		require.NotNil(t, q)
		assert.LessOrEqual(t, q.Q20, q.Q40)
		assert.LessOrEqual(t, q.Q40, q.Q60)
		assert.LessOrEqual(t, q.Q60, q.Q80)
	}
}

func TestComputeQuantiles_DoesNotMutateInput(t *testing.T) {
	sample := []float64{3, 1, 2}
	ComputeQuantiles(sample)
	assert.Equal(t, []float64{3, 1, 2}, sample)
}

func TestSuggestUpperQuantile(t *testing.T) {
	v, ok := SuggestUpperQuantile([]float64{1, 2, 3, 100}, 0)
	require.True(t, ok)
	assert.Equal(t, 3.0, v)

	v, ok = SuggestUpperQuantile([]float64{1, 2, 3, 100}, 10)
	require.True(t, ok)
	assert.Equal(t, 10.0, v)

	_, ok = SuggestUpperQuantile(nil, 5)
	assert.False(t, ok)
}

func TestSuggestUpperQuantile_Rounding(t *testing.T) {
	v, ok := SuggestUpperQuantile([]float64{1.4, 1.4, 1.4, 1.4, 2.6}, 0)
	require.True(t, ok)
	assert.Equal(t, 1.0, v)
}
