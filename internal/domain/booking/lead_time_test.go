package booking

import (
	"testing"
	"time"
)

func TestEffectiveLeadMinutes(t *testing.T) {
	// piso de 2h vale mesmo com configuração menor
	if got := EffectiveLeadMinutes(60); got != 120 {
		t.Fatalf("expected 120, got %d", got)
	}
	if got := EffectiveLeadMinutes(0); got != 120 {
		t.Fatalf("expected 120, got %d", got)
	}
	if got := EffectiveLeadMinutes(180); got != 180 {
		t.Fatalf("expected 180, got %d", got)
	}
}

func TestMinStartMinFor(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, loc)

	t.Run("future day has no lead filter", func(t *testing.T) {
		tomorrow := now.AddDate(0, 0, 1)
		if got := MinStartMinFor(tomorrow, now, loc, 60); got != 0 {
			t.Fatalf("expected 0, got %d", got)
		}
	})

	t.Run("today uses floor", func(t *testing.T) {
		// 09:00 + 120min = 11:00
		if got := MinStartMinFor(now, now, loc, 60); got != 11*60 {
			t.Fatalf("expected 660, got %d", got)
		}
	})

	t.Run("odd seconds round up", func(t *testing.T) {
		noisy := time.Date(2026, 3, 2, 9, 0, 30, 0, loc)
		if got := MinStartMinFor(noisy, noisy, loc, 120); got != 11*60+1 {
			t.Fatalf("expected 661, got %d", got)
		}
	})

	t.Run("threshold past midnight blocks whole day", func(t *testing.T) {
		late := time.Date(2026, 3, 2, 23, 0, 0, 0, loc)
		if got := MinStartMinFor(late, late, loc, 120); got != 24*60 {
			t.Fatalf("expected 1440, got %d", got)
		}
	})
}

func TestMeetsLeadTime(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, loc)

	t.Run("past start never passes", func(t *testing.T) {
		if MeetsLeadTime(now.Add(-time.Hour), now, loc, 0) {
			t.Fatal("past start accepted")
		}
	})

	t.Run("today inside lead window fails", func(t *testing.T) {
		if MeetsLeadTime(now.Add(90*time.Minute), now, loc, 60) {
			t.Fatal("start inside the 120min floor accepted")
		}
	})

	t.Run("today at threshold passes", func(t *testing.T) {
		if !MeetsLeadTime(now.Add(120*time.Minute), now, loc, 60) {
			t.Fatal("start at threshold rejected")
		}
	})

	t.Run("future day passes without lead", func(t *testing.T) {
		if !MeetsLeadTime(now.AddDate(0, 0, 2), now, loc, 600) {
			t.Fatal("future day rejected")
		}
	})
}
