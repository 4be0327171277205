package timeseries

import (
	"testing"
	"time"

	"github.com/bonuslab/loyalty-analytics-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	utc    = domain.Timezone{UTCOffsetMinutes: 0}
	moscow = domain.Timezone{UTCOffsetMinutes: 180}
	newYrk = domain.Timezone{UTCOffsetMinutes: -300}
)

func TestTruncate_Day(t *testing.T) {
	// 23:30 UTC в Москве уже следующий день
	moment := time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, "2025-03-10", Label(Truncate(moment, domain.GroupingDay, utc), utc))
	assert.Equal(t, "2025-03-11", Label(Truncate(moment, domain.GroupingDay, moscow), moscow))
	assert.Equal(t, "2025-03-10", Label(Truncate(moment, domain.GroupingDay, newYrk), newYrk))
}

func TestTruncate_WeekSnapsToMonday(t *testing.T) {
	// 2025-03-12 — среда, понедельник недели — 2025-03-10
	wednesday := time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-10", Label(Truncate(wednesday, domain.GroupingWeek, utc), utc))

	// воскресенье откатывается к понедельнику той же недели, не следующей
	sunday := time.Date(2025, 3, 16, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-10", Label(Truncate(sunday, domain.GroupingWeek, utc), utc))

	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-10", Label(Truncate(monday, domain.GroupingWeek, utc), utc))
}

func TestTruncate_Month(t *testing.T) {
	moment := time.Date(2025, 3, 31, 22, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-01", Label(Truncate(moment, domain.GroupingMonth, utc), utc))
	// в Москве 31-е 22:00 UTC — это уже 1 апреля
	assert.Equal(t, "2025-04-01", Label(Truncate(moment, domain.GroupingMonth, moscow), moscow))
}

func TestTruncate_Idempotent(t *testing.T) {
	moment := time.Date(2025, 7, 19, 13, 45, 11, 0, time.UTC)
	for _, grouping := range []domain.Grouping{domain.GroupingDay, domain.GroupingWeek, domain.GroupingMonth} {
		for _, tz := range []domain.Timezone{utc, moscow, newYrk} {
			once := Truncate(moment, grouping, tz)
			assert.Equal(t, once, Truncate(once, grouping, tz), "grouping=%s offset=%d", grouping, tz.UTCOffsetMinutes)
		}
	}
}

func TestAdvance_StaysOnBucketBoundary(t *testing.T) {
	moment := time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)
	for _, grouping := range []domain.Grouping{domain.GroupingDay, domain.GroupingWeek, domain.GroupingMonth} {
		for _, tz := range []domain.Timezone{utc, moscow, newYrk} {
			cursor := Truncate(moment, grouping, tz)
			for i := 0; i < 15; i++ {
				next := Advance(cursor, grouping, tz)
				assert.True(t, next.After(cursor))
				assert.Equal(t, next, Truncate(next, grouping, tz), "grouping=%s offset=%d step=%d", grouping, tz.UTCOffsetMinutes, i)
				cursor = next
			}
		}
	}
}

func TestAdvance_MonthAcrossYearBoundary(t *testing.T) {
	december := Truncate(time.Date(2024, 12, 10, 0, 0, 0, 0, time.UTC), domain.GroupingMonth, utc)
	january := Advance(december, domain.GroupingMonth, utc)
	assert.Equal(t, "2025-01-01", Label(january, utc))
}

func TestRange_DenseDays(t *testing.T) {
	from := time.Date(2025, 2, 26, 10, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)

	buckets := Range(from, to, domain.GroupingDay, utc)
	require.Len(t, buckets, 5)

	want := []string{"2025-02-26", "2025-02-27", "2025-02-28", "2025-03-01", "2025-03-02"}
	for i, b := range buckets {
		assert.Equal(t, want[i], b.Label)
	}
}

func TestRange_NoDuplicatesNoGaps(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 23, 0, 0, 0, time.UTC)

	for _, grouping := range []domain.Grouping{domain.GroupingDay, domain.GroupingWeek, domain.GroupingMonth} {
		for _, tz := range []domain.Timezone{utc, moscow, newYrk} {
			buckets := Range(from, to, grouping, tz)
			require.NotEmpty(t, buckets)

			seen := make(map[string]bool, len(buckets))
			for i, b := range buckets {
				assert.False(t, seen[b.Label], "duplicate label %s", b.Label)
				seen[b.Label] = true
				if i > 0 {
					assert.Equal(t, b.Start, Advance(buckets[i-1].Start, grouping, tz))
				}
			}
		}
	}
}

func TestRange_SingleBucket(t *testing.T) {
	moment := time.Date(2025, 5, 5, 12, 0, 0, 0, time.UTC)
	buckets := Range(moment, moment, domain.GroupingWeek, moscow)
	require.Len(t, buckets, 1)
	assert.Equal(t, "2025-05-05", buckets[0].Label)
}
