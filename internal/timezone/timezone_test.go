package timezone

import (
	"testing"
	"time"
)

func TestLocationFallsBackToDefault(t *testing.T) {
	if Location("").String() != DefaultTimezone {
		t.Fatal("empty timezone should fall back")
	}
	if Location("Not/AZone").String() != DefaultTimezone {
		t.Fatal("invalid timezone should fall back")
	}
	if Location("America/New_York").String() != "America/New_York" {
		t.Fatal("valid timezone should be kept")
	}
}

func TestDayBoundsAreLocal(t *testing.T) {
	loc := Location("America/Sao_Paulo")

	// 01:30 UTC ainda é o dia anterior em São Paulo (UTC-3)
	utc := time.Date(2026, 3, 2, 1, 30, 0, 0, time.UTC)
	start, end := DayBounds(utc, loc)

	if start.Day() != 1 || start.Hour() != 0 {
		t.Fatalf("expected local midnight of march 1st, got %s", start)
	}
	if !end.Equal(start.AddDate(0, 0, 1)) {
		t.Fatalf("expected half-open one day range, got %s", end)
	}
	if DayKey(utc, loc) != "2026-03-01" {
		t.Fatalf("expected local day key, got %s", DayKey(utc, loc))
	}
}

func TestSameLocalDay(t *testing.T) {
	loc := Location("America/Sao_Paulo")

	a := time.Date(2026, 3, 2, 1, 30, 0, 0, time.UTC)  // 2026-03-01 22:30 local
	b := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)  // 2026-03-01 09:00 local
	c := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)  // 2026-03-02 09:00 local

	if !SameLocalDay(a, b, loc) {
		t.Fatal("expected same local day")
	}
	if SameLocalDay(a, c, loc) {
		t.Fatal("expected different local days")
	}
}
