// Package timeseries нарезает временные ряды дашбордов на плотные бакеты
// день/неделя/месяц с учетом фиксированного смещения таймзоны мерчанта.
package timeseries

import (
	"time"

	"github.com/bonuslab/loyalty-analytics-service/internal/domain"
)

// Bucket — один бакет ряда: начало в UTC и локальная календарная метка.
type Bucket struct {
	Start time.Time
	Label string
}

func toLocal(t time.Time, tz domain.Timezone) time.Time {
	return t.UTC().Add(time.Duration(tz.UTCOffsetMinutes) * time.Minute)
}

func fromLocal(local time.Time, tz domain.Timezone) time.Time {
	return local.Add(-time.Duration(tz.UTCOffsetMinutes) * time.Minute)
}

// Truncate обрезает момент времени до начала его бакета: момент сдвигается
// в локальное время, обнуляется время суток, для недели берется понедельник
// локальной недели, для месяца — первое число, затем сдвиг возвращается.
func Truncate(t time.Time, grouping domain.Grouping, tz domain.Timezone) time.Time {
	local := toLocal(t, tz)
	year, month, day := local.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

	switch grouping {
	case domain.GroupingWeek:
		// ISO: воскресенье откатывается на 6 дней назад, остальные — к понедельнику
		weekday := int(start.Weekday())
		if weekday == 0 {
			start = start.AddDate(0, 0, -6)
		} else {
			start = start.AddDate(0, 0, 1-weekday)
		}
	case domain.GroupingMonth:
		start = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	}

	return fromLocal(start, tz)
}

// Advance шагает ровно на одну единицу вперед в локальном времени:
// день+1, неделя+7, месяц+1 со сбросом на первое число.
func Advance(bucketStart time.Time, grouping domain.Grouping, tz domain.Timezone) time.Time {
	local := toLocal(bucketStart, tz)

	var next time.Time
	switch grouping {
	case domain.GroupingWeek:
		next = local.AddDate(0, 0, 7)
	case domain.GroupingMonth:
		next = time.Date(local.Year(), local.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	default:
		next = local.AddDate(0, 0, 1)
	}

	return fromLocal(next, tz)
}

// Label — локальная календарная дата начала бакета в формате YYYY-MM-DD.
func Label(bucketStart time.Time, tz domain.Timezone) string {
	return toLocal(bucketStart, tz).Format("2006-01-02")
}

// Range строит плотную последовательность бакетов от truncate(from) до
// truncate(to) включительно: без пропусков, даже если по бакету нет данных.
func Range(from, to time.Time, grouping domain.Grouping, tz domain.Timezone) []Bucket {
	start := Truncate(from, grouping, tz)
	end := Truncate(to, grouping, tz)

	var buckets []Bucket
	for cursor := start; !cursor.After(end); cursor = Advance(cursor, grouping, tz) {
		buckets = append(buckets, Bucket{Start: cursor, Label: Label(cursor, tz)})
	}
	return buckets
}
