package booking

import (
	"context"

	"go.uber.org/zap"

	"github.com/Williamhssilva/agendapro/internal/audit"
	domain "github.com/Williamhssilva/agendapro/internal/domain/booking"
	"github.com/Williamhssilva/agendapro/internal/models"
	"github.com/Williamhssilva/agendapro/internal/timezone"
)

type SetStatusInput struct {
	EstablishmentID uint
	AppointmentID   uint
	Status          string
	UserID          *uint
}

type SetStatus struct {
	repo  domain.Repository
	cache SlotCache
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewSetStatus(repo domain.Repository, cache SlotCache, auditor *audit.Dispatcher, log *zap.Logger) *SetStatus {
	return &SetStatus{repo: repo, cache: cache, audit: auditor, log: log}
}

// Execute aplica uma transição de status. Cancelar e concluir liberam o
// slot, então o dia entra na invalidação de cache; confirmar não muda a
// ocupação mas invalida mesmo assim, é barato e mantém o código uniforme.
func (uc *SetStatus) Execute(ctx context.Context, in SetStatusInput) (*models.Appointment, error) {
	if in.AppointmentID == 0 {
		return nil, domain.ErrValidation("appointmentId", "obrigatório")
	}
	if !domain.IsStatus(in.Status) {
		return nil, domain.ErrValidation("status", "status desconhecido: "+in.Status)
	}

	estab, err := uc.repo.GetEstablishmentByID(ctx, in.EstablishmentID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, estab.ID, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(estab.Timezone)
	previous := ap.Status
	if err := domain.Transition(ap, domain.Status(in.Status), now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		loc := timezone.Location(estab.Timezone)
		uc.cache.InvalidateDay(ctx, ap.ProfessionalID, timezone.DayKey(ap.StartTime, loc))
	}

	uc.audit.Dispatch(audit.Event{
		EstablishmentID: estab.ID,
		UserID:          in.UserID,
		Action:          "appointment.status",
		Entity:          "appointment",
		EntityID:        &ap.ID,
		Metadata: map[string]any{
			"from": previous,
			"to":   ap.Status,
		},
	})

	uc.log.Info("appointment status changed",
		zap.Uint("appointment_id", ap.ID),
		zap.String("from", previous),
		zap.String("to", ap.Status),
	)

	return ap, nil
}
