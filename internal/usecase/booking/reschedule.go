package booking

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Williamhssilva/agendapro/internal/audit"
	domain "github.com/Williamhssilva/agendapro/internal/domain/booking"
	"github.com/Williamhssilva/agendapro/internal/models"
	"github.com/Williamhssilva/agendapro/internal/timezone"
)

type RescheduleInput struct {
	EstablishmentID uint
	AppointmentID   uint

	// Zero mantém o profissional atual.
	NewProfessionalID uint

	NewDate string // "2006-01-02"
	NewTime string // "15:04"

	UserID *uint
}

type Reschedule struct {
	repo  domain.Repository
	cache SlotCache
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewReschedule(repo domain.Repository, cache SlotCache, auditor *audit.Dispatcher, log *zap.Logger) *Reschedule {
	return &Reschedule{repo: repo, cache: cache, audit: auditor, log: log}
}

// Execute move um agendamento para outro horário (e opcionalmente outro
// profissional), mantendo a duração capturada na criação. A checagem de
// conflito roda dentro do lock do dia de destino; expediente não é
// revalidado aqui, o staff pode encaixar fora da grade de propósito.
func (uc *Reschedule) Execute(ctx context.Context, in RescheduleInput) (*models.Appointment, error) {
	if in.AppointmentID == 0 {
		return nil, domain.ErrValidation("appointmentId", "obrigatório")
	}
	if in.NewDate == "" || in.NewTime == "" {
		return nil, domain.ErrValidation("date/time", "obrigatórios")
	}

	estab, err := uc.repo.GetEstablishmentByID(ctx, in.EstablishmentID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, estab.ID, in.AppointmentID)
	if err != nil {
		return nil, err
	}
	if !domain.Status(ap.Status).Occupies() {
		return nil, domain.ErrValidation("status",
			fmt.Sprintf("agendamento %s não pode ser remarcado", ap.Status))
	}

	loc := timezone.Location(estab.Timezone)
	newStart, err := time.ParseInLocation("2006-01-02 15:04", in.NewDate+" "+in.NewTime, loc)
	if err != nil {
		return nil, domain.ErrValidation("date/time", "formato inválido, use YYYY-MM-DD e HH:MM")
	}

	// O destino é sempre validado, mesmo sem troca de profissional:
	// profissional desativado depois da criação não recebe remarcação.
	targetProfID := ap.ProfessionalID
	if in.NewProfessionalID != 0 {
		targetProfID = in.NewProfessionalID
	}
	prof, err := uc.repo.GetProfessional(ctx, estab.ID, targetProfID)
	if err != nil {
		return nil, err
	}
	if !prof.Active {
		return nil, domain.ErrValidation("professionalId", "profissional inativo")
	}

	now := timezone.NowIn(estab.Timezone)
	if !domain.MeetsLeadTime(newStart, now, loc, estab.MinLeadMinutes) {
		return nil, domain.ErrValidation("time",
			fmt.Sprintf("horário exige antecedência mínima de %d minutos",
				domain.EffectiveLeadMinutes(estab.MinLeadMinutes)))
	}

	oldProfID := ap.ProfessionalID
	oldDayKey := timezone.DayKey(ap.StartTime, loc)

	var updated *models.Appointment

	for attempt := 1; attempt <= maxCreateAttempts; attempt++ {
		updated, err = uc.tryReschedule(ctx, ap, targetProfID, newStart, loc)
		if err == nil {
			break
		}
		if !domain.IsTransient(err) {
			return nil, err
		}

		uc.log.Warn("reschedule retry",
			zap.Uint("appointment_id", ap.ID),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)

		if attempt == maxCreateAttempts {
			return nil, domain.ConcurrencyError{Attempts: maxCreateAttempts}
		}
		time.Sleep(retryBackoff * time.Duration(attempt))
	}

	if uc.cache != nil {
		uc.cache.InvalidateDay(ctx, oldProfID, oldDayKey)
		uc.cache.InvalidateDay(ctx, targetProfID, timezone.DayKey(newStart, loc))
	}

	uc.audit.Dispatch(audit.Event{
		EstablishmentID: estab.ID,
		UserID:          in.UserID,
		Action:          "appointment.reschedule",
		Entity:          "appointment",
		EntityID:        &ap.ID,
		Metadata: map[string]any{
			"old_professional_id": oldProfID,
			"new_professional_id": targetProfID,
			"new_start_time":      newStart,
		},
	})

	return updated, nil
}

func (uc *Reschedule) tryReschedule(
	ctx context.Context,
	ap *models.Appointment,
	targetProfID uint,
	newStart time.Time,
	loc *time.Location,
) (*models.Appointment, error) {

	dayKey := timezone.DayKey(newStart, loc)
	dayStart, dayEnd := timezone.DayBounds(newStart, loc)

	var updated *models.Appointment

	err := uc.repo.WithDayLock(ctx, targetProfID, dayKey, func(tx domain.Repository) error {
		occupying, err := tx.ListOccupying(ctx, targetProfID, dayStart, dayEnd)
		if err != nil {
			return err
		}

		projected := make([]domain.AppointmentSlot, 0, len(occupying))
		for _, other := range occupying {
			projected = append(projected, domain.AppointmentSlot{
				ID:          other.ID,
				StartTime:   other.StartTime,
				DurationMin: other.DurationMin,
				Status:      other.Status,
			})
		}

		startMin := domain.MinuteOfDay(newStart, loc)
		candidate := domain.Interval{StartMin: startMin, EndMin: startMin + ap.DurationMin}
		for _, busy := range domain.BusyFromAppointments(projected, loc, ap.ID) {
			if candidate.Overlaps(busy) {
				return domain.ConflictError{ProfessionalID: targetProfID, Start: newStart}
			}
		}

		ap.ProfessionalID = targetProfID
		ap.StartTime = newStart
		ap.EndTime = newStart.Add(time.Duration(ap.DurationMin) * time.Minute)

		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			return err
		}
		updated = ap
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
