package booking

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	domain "github.com/Williamhssilva/agendapro/internal/domain/booking"
	"github.com/Williamhssilva/agendapro/internal/timezone"
)

// storingCache guarda o último SetSlots e devolve em GetSlots.
type storingCache struct {
	slots []domain.TimeSlot
	has   bool
	sets  int
}

func (c *storingCache) GetSlots(context.Context, uint, uint, uint, string) ([]domain.TimeSlot, bool) {
	return c.slots, c.has
}

func (c *storingCache) SetSlots(_ context.Context, _, _, _ uint, _ string, slots []domain.TimeSlot) {
	c.slots = slots
	c.has = true
	c.sets++
}

func (c *storingCache) InvalidateDay(context.Context, uint, string) {
	c.slots = nil
	c.has = false
}

func availabilityDate(t *testing.T) time.Time {
	t.Helper()
	loc := timezone.Location("America/Sao_Paulo")
	d, err := time.ParseInLocation("2006-01-02", futureDate, loc)
	if err != nil {
		t.Fatalf("bad fixture date: %v", err)
	}
	return d
}

func TestGetAvailability(t *testing.T) {
	ctx := context.Background()

	t.Run("full open day with lunch break", func(t *testing.T) {
		repo := seedRepo(t)
		uc := NewGetAvailability(repo, nil, zap.NewNop())

		slots, err := uc.Execute(ctx, domain.AvailabilityInput{
			EstablishmentID: 1,
			ProfessionalID:  1,
			ServiceID:       1,
			Date:            availabilityDate(t),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{
			"09:00", "09:45", "10:30", "11:15",
			"13:00", "13:45", "14:30", "15:15", "16:00", "16:45",
		}
		if len(slots) != len(want) {
			t.Fatalf("expected %d slots, got %d: %v", len(want), len(slots), slots)
		}
		for i, w := range want {
			if slots[i].Start != w {
				t.Fatalf("slot %d: expected %s, got %s", i, w, slots[i].Start)
			}
		}
		last := slots[len(slots)-1]
		if last.End != "17:30" {
			t.Fatalf("last slot should end at 17:30, got %s", last.End)
		}
	})

	t.Run("booked slot disappears", func(t *testing.T) {
		repo := seedRepo(t)
		create := NewCreate(repo, nil, nil, zap.NewNop())
		if _, err := create.Execute(ctx, createInput(futureDate, "10:30")); err != nil {
			t.Fatalf("seed create failed: %v", err)
		}

		uc := NewGetAvailability(repo, nil, zap.NewNop())
		slots, err := uc.Execute(ctx, domain.AvailabilityInput{
			EstablishmentID: 1,
			ProfessionalID:  1,
			ServiceID:       1,
			Date:            availabilityDate(t),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, s := range slots {
			if s.Start == "10:30" {
				t.Fatal("booked slot still offered")
			}
		}
		if len(slots) != 9 {
			t.Fatalf("expected 9 slots, got %d", len(slots))
		}
	})

	t.Run("unknown professional yields empty list", func(t *testing.T) {
		repo := seedRepo(t)
		uc := NewGetAvailability(repo, nil, zap.NewNop())

		slots, err := uc.Execute(ctx, domain.AvailabilityInput{
			EstablishmentID: 1,
			ProfessionalID:  42,
			ServiceID:       1,
			Date:            availabilityDate(t),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(slots) != 0 {
			t.Fatalf("expected empty list, got %v", slots)
		}
	})

	t.Run("inactive service yields empty list", func(t *testing.T) {
		repo := seedRepo(t)
		repo.services[1].Active = false
		uc := NewGetAvailability(repo, nil, zap.NewNop())

		slots, err := uc.Execute(ctx, domain.AvailabilityInput{
			EstablishmentID: 1,
			ProfessionalID:  1,
			ServiceID:       1,
			Date:            availabilityDate(t),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(slots) != 0 {
			t.Fatalf("expected empty list, got %v", slots)
		}
	})

	t.Run("future day is served from cache on hit", func(t *testing.T) {
		repo := seedRepo(t)
		cache := &storingCache{}
		uc := NewGetAvailability(repo, cache, zap.NewNop())

		in := domain.AvailabilityInput{
			EstablishmentID: 1,
			ProfessionalID:  1,
			ServiceID:       1,
			Date:            availabilityDate(t),
		}

		first, err := uc.Execute(ctx, in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cache.sets != 1 {
			t.Fatalf("expected one cache write, got %d", cache.sets)
		}

		// banco muda por fora; o hit de cache não percebe
		create := NewCreate(repo, nil, nil, zap.NewNop())
		if _, err := create.Execute(ctx, createInput(futureDate, "10:30")); err != nil {
			t.Fatalf("seed create failed: %v", err)
		}

		second, err := uc.Execute(ctx, in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(second) != len(first) {
			t.Fatalf("expected cached result, got %d slots", len(second))
		}
	})

	t.Run("today bypasses the cache", func(t *testing.T) {
		repo := seedRepo(t)
		cache := &storingCache{}
		uc := NewGetAvailability(repo, cache, zap.NewNop())

		now := timezone.NowIn("America/Sao_Paulo")
		if _, err := uc.Execute(ctx, domain.AvailabilityInput{
			EstablishmentID: 1,
			ProfessionalID:  1,
			ServiceID:       1,
			Date:            now,
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cache.sets != 0 {
			t.Fatal("today must not be cached")
		}
	})
}
