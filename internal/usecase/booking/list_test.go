package booking

import (
	"context"
	"testing"

	"go.uber.org/zap"

	domain "github.com/Williamhssilva/agendapro/internal/domain/booking"
	"github.com/Williamhssilva/agendapro/internal/models"
)

func TestListByDate(t *testing.T) {
	ctx := context.Background()
	repo := seedRepo(t)
	repo.professionals[2] = &models.Professional{
		ID:              2,
		EstablishmentID: 1,
		Name:            "Rafa",
		Active:          true,
	}

	create := NewCreate(repo, nil, nil, zap.NewNop())
	mk := func(hm string, profID uint) {
		t.Helper()
		in := createInput(futureDate, hm)
		in.ProfessionalID = profID
		in.ClientPhone = "119999" + hm
		if _, err := create.Execute(ctx, in); err != nil {
			t.Fatalf("seed create failed: %v", err)
		}
	}
	mk("09:00", 1)
	mk("10:00", 1)
	mk("09:00", 2)

	// outro dia, não deve aparecer
	other := createInput("2030-05-21", "09:00")
	if _, err := create.Execute(ctx, other); err != nil {
		t.Fatalf("seed create failed: %v", err)
	}

	uc := NewListByDate(repo)

	t.Run("whole establishment", func(t *testing.T) {
		items, err := uc.Execute(ctx, ListByDateInput{
			EstablishmentID: 1,
			Date:            futureDate,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(items) != 3 {
			t.Fatalf("expected 3 items, got %d", len(items))
		}
	})

	t.Run("filtered by professional", func(t *testing.T) {
		items, err := uc.Execute(ctx, ListByDateInput{
			EstablishmentID: 1,
			ProfessionalID:  2,
			Date:            futureDate,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(items) != 1 {
			t.Fatalf("expected 1 item, got %d", len(items))
		}
		if items[0].ProfessionalID != 2 {
			t.Fatalf("wrong professional: %d", items[0].ProfessionalID)
		}
	})

	t.Run("bad date format", func(t *testing.T) {
		_, err := uc.Execute(ctx, ListByDateInput{
			EstablishmentID: 1,
			Date:            "20/05/2030",
		})
		if !domain.IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestListByMonth(t *testing.T) {
	ctx := context.Background()
	repo := seedRepo(t)
	create := NewCreate(repo, nil, nil, zap.NewNop())

	for _, date := range []string{"2030-05-02", "2030-05-20", "2030-06-01"} {
		in := createInput(date, "09:00")
		if _, err := create.Execute(ctx, in); err != nil {
			t.Fatalf("seed create failed: %v", err)
		}
	}

	uc := NewListByMonth(repo)

	t.Run("only the requested month", func(t *testing.T) {
		items, err := uc.Execute(ctx, ListByMonthInput{
			EstablishmentID: 1,
			Year:            2030,
			Month:           5,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(items))
		}
	})

	t.Run("month out of range", func(t *testing.T) {
		_, err := uc.Execute(ctx, ListByMonthInput{
			EstablishmentID: 1,
			Year:            2030,
			Month:           13,
		})
		if !domain.IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}
