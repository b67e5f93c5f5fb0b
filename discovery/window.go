package discovery

import "time"

// DayBounds returns the UTC calendar-day boundaries containing t:
// [start-of-day, start-of-next-day).
func DayBounds(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// DayRange formats the UTC day boundaries of t as Z-suffixed RFC3339
// instants, the format the search API expects for publishedAfter/Before.
func DayRange(t time.Time) (string, string) {
	start, end := DayBounds(t)
	return start.Format(time.RFC3339), end.Format(time.RFC3339)
}
