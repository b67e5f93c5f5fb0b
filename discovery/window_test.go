package discovery

import (
	"testing"
	"time"
)

func TestDayRange(t *testing.T) {
	at := time.Date(2026, 8, 30, 15, 42, 7, 0, time.UTC)

	after, before := DayRange(at)

	if after != "2026-08-30T00:00:00Z" {
		t.Fatalf("unexpected window start: %s", after)
	}
	if before != "2026-08-31T00:00:00Z" {
		t.Fatalf("unexpected window end: %s", before)
	}
}

func TestDayRangeNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	at := time.Date(2026, 8, 31, 2, 0, 0, 0, loc) // 2026-08-30T18:00:00Z

	after, before := DayRange(at)

	if after != "2026-08-30T00:00:00Z" || before != "2026-08-31T00:00:00Z" {
		t.Fatalf("expected the UTC calendar day, got %s .. %s", after, before)
	}
}

func TestDayBoundsHalfOpen(t *testing.T) {
	start, end := DayBounds(time.Date(2026, 2, 28, 23, 59, 59, 0, time.UTC))

	if !end.Equal(start.AddDate(0, 0, 1)) {
		t.Fatalf("expected end to be start of next day, got %v", end)
	}
	if end.Month() != time.March {
		t.Fatalf("expected rollover into March, got %v", end)
	}
}
