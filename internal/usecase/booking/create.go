package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Williamhssilva/agendapro/internal/audit"
	domain "github.com/Williamhssilva/agendapro/internal/domain/booking"
	"github.com/Williamhssilva/agendapro/internal/models"
	"github.com/Williamhssilva/agendapro/internal/schedule"
	"github.com/Williamhssilva/agendapro/internal/timezone"
)

const (
	maxCreateAttempts = 3
	retryBackoff      = 100 * time.Millisecond
)

type CreateInput struct {
	EstablishmentID uint
	ProfessionalID  uint
	ServiceID       uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	Date  string // "2006-01-02"
	Time  string // "15:04"
	Notes string

	// Usuário autenticado (staff) cria direto como confirmed; o fluxo
	// público cria como pending. UserID só para auditoria.
	IsStaff bool
	UserID  *uint
}

type Create struct {
	repo  domain.Repository
	cache SlotCache
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewCreate(repo domain.Repository, cache SlotCache, auditor *audit.Dispatcher, log *zap.Logger) *Create {
	return &Create{repo: repo, cache: cache, audit: auditor, log: log}
}

// Execute cria um agendamento. Toda a revalidação de disponibilidade
// acontece dentro do lock do dia do profissional, então dois pedidos
// simultâneos pelo mesmo horário terminam com exatamente um criado.
func (uc *Create) Execute(ctx context.Context, in CreateInput) (*models.Appointment, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	estab, err := uc.repo.GetEstablishmentByID(ctx, in.EstablishmentID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(estab.Timezone)
	start, err := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.Time, loc)
	if err != nil {
		return nil, domain.ErrValidation("date/time", "formato inválido, use YYYY-MM-DD e HH:MM")
	}

	prof, err := uc.repo.GetProfessional(ctx, estab.ID, in.ProfessionalID)
	if err != nil {
		return nil, err
	}
	if !prof.Active {
		return nil, domain.ErrValidation("professionalId", "profissional inativo")
	}

	svc, err := uc.repo.GetService(ctx, estab.ID, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if !svc.Active {
		return nil, domain.ErrValidation("serviceId", "serviço inativo")
	}
	if svc.DurationMin <= 0 {
		return nil, domain.ErrValidation("serviceId", "serviço sem duração")
	}

	now := timezone.NowIn(estab.Timezone)
	if !domain.MeetsLeadTime(start, now, loc, estab.MinLeadMinutes) {
		return nil, domain.ErrValidation("time",
			fmt.Sprintf("horário exige antecedência mínima de %d minutos",
				domain.EffectiveLeadMinutes(estab.MinLeadMinutes)))
	}

	weekday := schedule.FromTime(start.Weekday())
	win, open := domain.ResolveDayWindow(estab.WeeklyHours, prof.WeeklyHours, weekday)
	if !open {
		return nil, domain.ErrValidation("time", "fora do horário de funcionamento")
	}

	startMin := domain.MinuteOfDay(start, loc)
	endMin := startMin + svc.DurationMin
	if !win.Contains(startMin, endMin) {
		return nil, domain.ErrValidation("time", "fora do horário de funcionamento")
	}

	var created *models.Appointment

	for attempt := 1; attempt <= maxCreateAttempts; attempt++ {
		created, err = uc.tryCreate(ctx, estab, prof, svc, in, start, loc)
		if err == nil {
			break
		}
		if !domain.IsTransient(err) {
			return nil, err
		}

		uc.log.Warn("create appointment retry",
			zap.Uint("professional_id", prof.ID),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)

		if attempt == maxCreateAttempts {
			return nil, domain.ConcurrencyError{Attempts: maxCreateAttempts}
		}
		time.Sleep(retryBackoff * time.Duration(attempt))
	}

	if uc.cache != nil {
		uc.cache.InvalidateDay(ctx, prof.ID, timezone.DayKey(start, loc))
	}

	uc.audit.Dispatch(audit.Event{
		EstablishmentID: estab.ID,
		UserID:          in.UserID,
		Action:          "appointment.create",
		Entity:          "appointment",
		EntityID:        &created.ID,
		Metadata: map[string]any{
			"professional_id": prof.ID,
			"service_id":      svc.ID,
			"start_time":      created.StartTime,
			"status":          created.Status,
		},
	})

	return created, nil
}

// tryCreate executa uma tentativa completa da seção crítica.
func (uc *Create) tryCreate(
	ctx context.Context,
	estab *models.Establishment,
	prof *models.Professional,
	svc *models.Service,
	in CreateInput,
	start time.Time,
	loc *time.Location,
) (*models.Appointment, error) {

	dayKey := timezone.DayKey(start, loc)
	dayStart, dayEnd := timezone.DayBounds(start, loc)

	var created *models.Appointment

	err := uc.repo.WithDayLock(ctx, prof.ID, dayKey, func(tx domain.Repository) error {
		occupying, err := tx.ListOccupying(ctx, prof.ID, dayStart, dayEnd)
		if err != nil {
			return err
		}

		startMin := domain.MinuteOfDay(start, loc)
		candidate := domain.Interval{StartMin: startMin, EndMin: startMin + svc.DurationMin}
		for _, ap := range occupying {
			busy := domain.Interval{
				StartMin: domain.MinuteOfDay(ap.StartTime, loc),
			}
			busy.EndMin = busy.StartMin + ap.DurationMin
			if candidate.Overlaps(busy) {
				return domain.ConflictError{ProfessionalID: prof.ID, Start: start}
			}
		}

		client, err := tx.GetOrCreateClient(ctx, estab.ID, in.ClientName, in.ClientPhone, in.ClientEmail)
		if err != nil {
			return err
		}

		ap := &models.Appointment{
			EstablishmentID: estab.ID,
			ProfessionalID:  prof.ID,
			ServiceID:       svc.ID,
			ClientID:        client.ID,
			StartTime:       start,
			EndTime:         start.Add(time.Duration(svc.DurationMin) * time.Minute),
			DurationMin:     svc.DurationMin,
			Status:          string(domain.InitialStatus(in.IsStaff)),
			Notes:           in.Notes,
		}

		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return err
		}
		created = ap
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (in CreateInput) validate() error {
	if in.ProfessionalID == 0 {
		return domain.ErrValidation("professionalId", "obrigatório")
	}
	if in.ServiceID == 0 {
		return domain.ErrValidation("serviceId", "obrigatório")
	}
	if strings.TrimSpace(in.ClientName) == "" {
		return domain.ErrValidation("clientName", "obrigatório")
	}
	if strings.TrimSpace(in.ClientPhone) == "" {
		return domain.ErrValidation("clientPhone", "obrigatório")
	}
	if in.Date == "" || in.Time == "" {
		return domain.ErrValidation("date/time", "obrigatórios")
	}
	return nil
}
