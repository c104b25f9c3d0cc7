package booking

import (
	"testing"

	"github.com/Williamhssilva/agendapro/internal/schedule"
)

func openDay(start, end string) schedule.DaySchedule {
	return schedule.DaySchedule{Open: true, Start: start, End: end}
}

func TestResolveDayWindow(t *testing.T) {
	t.Run("establishment closed vetoes open professional", func(t *testing.T) {
		estab := schedule.WeeklyHours{schedule.Monday: schedule.DaySchedule{Open: false}}
		prof := schedule.WeeklyHours{schedule.Monday: openDay("09:00", "18:00")}

		if _, ok := ResolveDayWindow(estab, prof, schedule.Monday); ok {
			t.Fatal("expected closed day")
		}
	})

	t.Run("absent professional entry inherits establishment hours", func(t *testing.T) {
		estab := schedule.WeeklyHours{schedule.Monday: openDay("09:00", "18:00")}

		win, ok := ResolveDayWindow(estab, nil, schedule.Monday)
		if !ok {
			t.Fatal("expected open day")
		}
		if win.StartMin != 9*60 || win.EndMin != 18*60 {
			t.Fatalf("unexpected window: %+v", win)
		}
	})

	t.Run("professional alone contributes when establishment absent", func(t *testing.T) {
		prof := schedule.WeeklyHours{schedule.Tuesday: openDay("10:00", "16:00")}

		win, ok := ResolveDayWindow(nil, prof, schedule.Tuesday)
		if !ok {
			t.Fatal("expected open day")
		}
		if win.StartMin != 10*60 || win.EndMin != 16*60 {
			t.Fatalf("unexpected window: %+v", win)
		}
	})

	t.Run("both contribute yields intersection", func(t *testing.T) {
		estab := schedule.WeeklyHours{schedule.Monday: openDay("08:00", "17:00")}
		prof := schedule.WeeklyHours{schedule.Monday: openDay("10:00", "19:00")}

		win, ok := ResolveDayWindow(estab, prof, schedule.Monday)
		if !ok {
			t.Fatal("expected open day")
		}
		if win.StartMin != 10*60 || win.EndMin != 17*60 {
			t.Fatalf("expected 10:00–17:00, got %+v", win)
		}
	})

	t.Run("degenerate intersection closes the day", func(t *testing.T) {
		estab := schedule.WeeklyHours{schedule.Monday: openDay("08:00", "12:00")}
		prof := schedule.WeeklyHours{schedule.Monday: openDay("14:00", "18:00")}

		if _, ok := ResolveDayWindow(estab, prof, schedule.Monday); ok {
			t.Fatal("expected closed day for empty intersection")
		}
	})

	t.Run("neither contributes means closed", func(t *testing.T) {
		if _, ok := ResolveDayWindow(nil, nil, schedule.Sunday); ok {
			t.Fatal("expected closed day")
		}
	})

	t.Run("professional lunch wins over establishment lunch", func(t *testing.T) {
		estab := schedule.WeeklyHours{schedule.Monday: schedule.DaySchedule{
			Open: true, Start: "09:00", End: "18:00",
			LunchStart: "11:00", LunchEnd: "12:00",
		}}
		prof := schedule.WeeklyHours{schedule.Monday: schedule.DaySchedule{
			Open: true, Start: "09:00", End: "18:00",
			LunchStart: "12:00", LunchEnd: "13:00",
		}}

		win, ok := ResolveDayWindow(estab, prof, schedule.Monday)
		if !ok {
			t.Fatal("expected open day")
		}
		if !win.HasLunch || win.LunchStartMin != 12*60 || win.LunchEndMin != 13*60 {
			t.Fatalf("expected professional lunch 12:00–13:00, got %+v", win)
		}
	})

	t.Run("establishment lunch inherited when professional has none", func(t *testing.T) {
		estab := schedule.WeeklyHours{schedule.Monday: schedule.DaySchedule{
			Open: true, Start: "09:00", End: "18:00",
			LunchStart: "12:00", LunchEnd: "13:00",
		}}

		win, ok := ResolveDayWindow(estab, nil, schedule.Monday)
		if !ok {
			t.Fatal("expected open day")
		}
		if !win.HasLunch || win.LunchStartMin != 12*60 {
			t.Fatalf("expected inherited lunch, got %+v", win)
		}
	})
}

func TestDayWindowContains(t *testing.T) {
	win := DayWindow{
		StartMin: 9 * 60, EndMin: 18 * 60,
		HasLunch: true, LunchStartMin: 12 * 60, LunchEndMin: 13 * 60,
	}

	cases := []struct {
		name     string
		start    int
		end      int
		expected bool
	}{
		{"inside morning", 9 * 60, 9*60 + 45, true},
		{"before opening", 8 * 60, 9 * 60, false},
		{"past closing", 17*60 + 30, 18*60 + 15, false},
		{"touching lunch tail", 11*60 + 30, 12*60 + 15, false},
		{"inside lunch", 12 * 60, 12*60 + 45, false},
		{"right after lunch", 13 * 60, 13*60 + 45, true},
		{"ends exactly at lunch start", 11*60 + 15, 12 * 60, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := win.Contains(tc.start, tc.end); got != tc.expected {
				t.Fatalf("Contains(%d, %d) = %v, expected %v", tc.start, tc.end, got, tc.expected)
			}
		})
	}
}
