package booking

import (
	"context"
	"time"

	domain "github.com/Williamhssilva/agendapro/internal/domain/booking"
	"github.com/Williamhssilva/agendapro/internal/dto"
	"github.com/Williamhssilva/agendapro/internal/timezone"
)

// ===============================
// Agendas administrativas
// ===============================

type ListByDateInput struct {
	EstablishmentID uint
	ProfessionalID  uint // zero lista todos
	Date            string
}

type ListByDate struct {
	repo domain.Repository
}

func NewListByDate(repo domain.Repository) *ListByDate {
	return &ListByDate{repo: repo}
}

// Execute lista a agenda do dia (qualquer status) no dia-calendário
// local do estabelecimento.
func (uc *ListByDate) Execute(ctx context.Context, in ListByDateInput) ([]dto.AppointmentListItem, error) {
	estab, err := uc.repo.GetEstablishmentByID(ctx, in.EstablishmentID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(estab.Timezone)
	day, err := time.ParseInLocation("2006-01-02", in.Date, loc)
	if err != nil {
		return nil, domain.ErrValidation("date", "formato inválido, use YYYY-MM-DD")
	}

	start, end := timezone.DayBounds(day, loc)
	aps, err := uc.repo.ListForPeriod(ctx, estab.ID, in.ProfessionalID, start, end)
	if err != nil {
		return nil, err
	}

	return dto.ToAppointmentList(aps), nil
}

type ListByMonthInput struct {
	EstablishmentID uint
	ProfessionalID  uint // zero lista todos
	Year            int
	Month           int
}

type ListByMonth struct {
	repo domain.Repository
}

func NewListByMonth(repo domain.Repository) *ListByMonth {
	return &ListByMonth{repo: repo}
}

func (uc *ListByMonth) Execute(ctx context.Context, in ListByMonthInput) ([]dto.AppointmentListItem, error) {
	if in.Month < 1 || in.Month > 12 {
		return nil, domain.ErrValidation("month", "mês fora de 1..12")
	}
	if in.Year < 2000 || in.Year > 2100 {
		return nil, domain.ErrValidation("year", "ano fora do intervalo")
	}

	estab, err := uc.repo.GetEstablishmentByID(ctx, in.EstablishmentID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(estab.Timezone)
	start := time.Date(in.Year, time.Month(in.Month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	aps, err := uc.repo.ListForPeriod(ctx, estab.ID, in.ProfessionalID, start, end)
	if err != nil {
		return nil, err
	}

	return dto.ToAppointmentList(aps), nil
}
