package booking

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/Williamhssilva/agendapro/internal/domain/booking"
	"github.com/Williamhssilva/agendapro/internal/schedule"
	"github.com/Williamhssilva/agendapro/internal/timezone"
)

// SlotCache é o cache opcional de disponibilidade (redis). Nil desliga.
type SlotCache interface {
	GetSlots(ctx context.Context, establishmentID, professionalID, serviceID uint, day string) ([]domain.TimeSlot, bool)
	SetSlots(ctx context.Context, establishmentID, professionalID, serviceID uint, day string, slots []domain.TimeSlot)
	InvalidateDay(ctx context.Context, professionalID uint, day string)
}

type GetAvailability struct {
	repo  domain.Repository
	cache SlotCache
	log   *zap.Logger
}

func NewGetAvailability(repo domain.Repository, cache SlotCache, log *zap.Logger) *GetAvailability {
	return &GetAvailability{repo: repo, cache: cache, log: log}
}

// Execute lista os horários livres do dia em ordem crescente.
//
// Profissional/serviço inexistente ou inativo vira lista vazia, não
// erro: por este retorno o chamador não distingue "fechado hoje" de
// "profissional não existe" (limitação documentada do contrato).
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	estab, err := uc.repo.GetEstablishmentByID(ctx, in.EstablishmentID)
	if err != nil {
		if domain.IsNotFound(err) {
			return []domain.TimeSlot{}, nil
		}
		return nil, err
	}

	loc := timezone.Location(estab.Timezone)
	day := timezone.DayKey(in.Date, loc)
	now := timezone.NowIn(estab.Timezone)
	isToday := timezone.SameLocalDay(in.Date, now, loc)

	// Hoje muda de minuto em minuto pela antecedência; só dias futuros
	// valem cache.
	useCache := uc.cache != nil && !isToday

	if useCache {
		if slots, ok := uc.cache.GetSlots(ctx, estab.ID, in.ProfessionalID, in.ServiceID, day); ok {
			return slots, nil
		}
	}

	prof, err := uc.repo.GetProfessional(ctx, estab.ID, in.ProfessionalID)
	if err != nil {
		if domain.IsNotFound(err) {
			return []domain.TimeSlot{}, nil
		}
		return nil, err
	}
	if !prof.Active {
		return []domain.TimeSlot{}, nil
	}

	svc, err := uc.repo.GetService(ctx, estab.ID, in.ServiceID)
	if err != nil {
		if domain.IsNotFound(err) {
			return []domain.TimeSlot{}, nil
		}
		return nil, err
	}
	if !svc.Active || svc.DurationMin <= 0 {
		return []domain.TimeSlot{}, nil
	}

	weekday := schedule.FromTime(in.Date.In(loc).Weekday())
	win, open := domain.ResolveDayWindow(estab.WeeklyHours, prof.WeeklyHours, weekday)
	if !open {
		return []domain.TimeSlot{}, nil
	}

	dayStart, dayEnd := timezone.DayBounds(in.Date, loc)
	appointments, err := uc.repo.ListOccupying(ctx, prof.ID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	projected := make([]domain.AppointmentSlot, 0, len(appointments))
	for _, ap := range appointments {
		projected = append(projected, domain.AppointmentSlot{
			ID:          ap.ID,
			StartTime:   ap.StartTime,
			DurationMin: ap.DurationMin,
			Status:      ap.Status,
		})
	}

	slots := domain.BuildSlots(domain.SlotParams{
		Window:      win,
		DurationMin: svc.DurationMin,
		BufferMin:   estab.SlotBufferMinutes,
		Busy:        domain.BusyFromAppointments(projected, loc, 0),
		MinStartMin: domain.MinStartMinFor(in.Date, now, loc, estab.MinLeadMinutes),
	})

	if useCache {
		uc.cache.SetSlots(ctx, estab.ID, prof.ID, svc.ID, day, slots)
	}

	return slots, nil
}
