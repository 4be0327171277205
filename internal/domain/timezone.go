package domain

// Grouping — шаг группировки временных рядов дашборда.
type Grouping string

const (
	GroupingDay   Grouping = "day"
	GroupingWeek  Grouping = "week"
	GroupingMonth Grouping = "month"
)

// Timezone — фиксированное смещение от UTC в минутах, без DST.
// Используется только как аддитивный сдвиг при нарезке бакетов.
type Timezone struct {
	UTCOffsetMinutes int
}
