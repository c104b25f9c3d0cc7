package booking

import (
	"testing"
	"time"
)

func mondayWindow() DayWindow {
	return DayWindow{
		StartMin: 9 * 60, EndMin: 18 * 60,
		HasLunch: true, LunchStartMin: 12 * 60, LunchEndMin: 13 * 60,
	}
}

func starts(slots []TimeSlot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Start
	}
	return out
}

func assertStarts(t *testing.T, slots []TimeSlot, expected ...string) {
	t.Helper()
	got := starts(slots)
	if len(got) != len(expected) {
		t.Fatalf("expected %d slots %v, got %d: %v", len(expected), expected, len(got), got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("slot %d: expected %s, got %s (all: %v)", i, expected[i], got[i], got)
		}
	}
}

func TestBuildSlots_LunchJump(t *testing.T) {
	// 09:00–18:00, almoço 12:00–13:00, serviço 45min, buffer 0.
	slots := BuildSlots(SlotParams{
		Window:      mondayWindow(),
		DurationMin: 45,
	})

	// 12:00 cai no almoço → pula direto para 13:00 e reancora o passo.
	assertStarts(t, slots,
		"09:00", "09:45", "10:30", "11:15",
		"13:00", "13:45", "14:30", "15:15", "16:00", "16:45",
	)

	last := slots[len(slots)-1]
	if last.Start != "16:45" || last.End != "17:30" {
		t.Fatalf("expected last slot 16:45–17:30, got %s–%s", last.Start, last.End)
	}
}

func TestBuildSlots_SkipsBookedSlot(t *testing.T) {
	// Agendamento confirmado ocupando 10:30–11:15.
	slots := BuildSlots(SlotParams{
		Window:      mondayWindow(),
		DurationMin: 45,
		Busy:        []Interval{{StartMin: 10*60 + 30, EndMin: 11*60 + 15}},
	})

	got := starts(slots)
	for _, s := range got {
		if s == "10:30" {
			t.Fatal("10:30 should have been skipped")
		}
	}
	if got[0] != "09:00" || got[1] != "09:45" || got[2] != "11:15" {
		t.Fatalf("unexpected leading slots: %v", got)
	}
}

func TestBuildSlots_EqualStartIsAlwaysConflict(t *testing.T) {
	// Mesmo com duração zero o início igual conflita.
	slots := BuildSlots(SlotParams{
		Window:      DayWindow{StartMin: 9 * 60, EndMin: 10 * 60},
		DurationMin: 30,
		Busy:        []Interval{{StartMin: 9 * 60, EndMin: 9 * 60}},
	})

	assertStarts(t, slots, "09:30")
}

func TestBuildSlots_BufferStepsBetweenSlots(t *testing.T) {
	slots := BuildSlots(SlotParams{
		Window:      DayWindow{StartMin: 9 * 60, EndMin: 11 * 60},
		DurationMin: 30,
		BufferMin:   15,
	})

	assertStarts(t, slots, "09:00", "09:45", "10:30")
}

func TestBuildSlots_LeadTimeFiltersToday(t *testing.T) {
	slots := BuildSlots(SlotParams{
		Window:      mondayWindow(),
		DurationMin: 45,
		MinStartMin: 11 * 60, // now+lead = 11:00
	})

	got := starts(slots)
	if got[0] != "11:15" {
		t.Fatalf("expected first slot 11:15, got %v", got)
	}
}

func TestBuildSlots_LunchCoveringRestOfDayStops(t *testing.T) {
	slots := BuildSlots(SlotParams{
		Window: DayWindow{
			StartMin: 9 * 60, EndMin: 13 * 60,
			HasLunch: true, LunchStartMin: 12 * 60, LunchEndMin: 13 * 60,
		},
		DurationMin: 60,
	})

	assertStarts(t, slots, "09:00", "10:00", "11:00")
}

func TestBuildSlots_ZeroDuration(t *testing.T) {
	if got := BuildSlots(SlotParams{Window: mondayWindow()}); got != nil {
		t.Fatalf("expected nil for zero duration, got %v", got)
	}
}

func TestIntervalOverlaps(t *testing.T) {
	cases := []struct {
		name     string
		a, b     Interval
		expected bool
	}{
		{"disjoint", Interval{540, 585}, Interval{600, 645}, false},
		{"touching ends", Interval{540, 600}, Interval{600, 660}, false},
		{"partial", Interval{540, 600}, Interval{570, 630}, true},
		{"contained", Interval{540, 660}, Interval{570, 600}, true},
		{"equal start zero length", Interval{540, 585}, Interval{540, 540}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.expected {
				t.Fatalf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestBusyFromAppointments(t *testing.T) {
	loc := time.UTC
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, loc)

	aps := []AppointmentSlot{
		{ID: 1, StartTime: day.Add(9 * time.Hour), DurationMin: 45, Status: "confirmed"},
		{ID: 2, StartTime: day.Add(10 * time.Hour), DurationMin: 30, Status: "canceled"},
		{ID: 3, StartTime: day.Add(11 * time.Hour), DurationMin: 30, Status: "pending"},
		{ID: 4, StartTime: day.Add(14 * time.Hour), DurationMin: 60, Status: "completed"},
	}

	busy := BusyFromAppointments(aps, loc, 3)

	// canceled e completed não ocupam; id 3 excluído (reagendamento).
	if len(busy) != 1 {
		t.Fatalf("expected 1 busy interval, got %d: %v", len(busy), busy)
	}
	if busy[0].StartMin != 9*60 || busy[0].EndMin != 9*60+45 {
		t.Fatalf("unexpected interval: %+v", busy[0])
	}
}
