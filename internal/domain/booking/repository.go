package booking

import (
	"context"
	"time"

	"github.com/Williamhssilva/agendapro/internal/models"
)

// Repository é o contrato de storage do núcleo de agendamento.
//
// WithDayLock entrega um Repository transacional segurando um lock
// exclusivo nomeado por (profissional, dia-calendário local); o lock
// vive até o fim da transação e é liberado em commit ou rollback.
// Qualquer implementação serve desde que serialize a seção crítica
// check-then-write daquele profissional-dia.
type Repository interface {
	// -------- Establishment --------
	GetEstablishmentByID(ctx context.Context, id uint) (*models.Establishment, error)
	GetEstablishmentBySlug(ctx context.Context, slug string) (*models.Establishment, error)

	// -------- Configuração (somente leitura para o núcleo) --------
	GetProfessional(ctx context.Context, establishmentID, professionalID uint) (*models.Professional, error)
	GetService(ctx context.Context, establishmentID, serviceID uint) (*models.Service, error)

	// -------- Client --------
	GetOrCreateClient(ctx context.Context, establishmentID uint, name, phone, email string) (*models.Client, error)

	// -------- Appointment --------
	GetAppointment(ctx context.Context, establishmentID, appointmentID uint) (*models.Appointment, error)
	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error

	// ListOccupying retorna os agendamentos pending/confirmed do
	// profissional com início dentro de [dayStart, dayEnd), ordenados.
	ListOccupying(ctx context.Context, professionalID uint, dayStart, dayEnd time.Time) ([]models.Appointment, error)

	// ListForPeriod retorna agendamentos com relações para as agendas
	// administrativas (qualquer status).
	ListForPeriod(ctx context.Context, establishmentID uint, professionalID uint, start, end time.Time) ([]models.Appointment, error)

	// -------- Seção crítica --------
	WithDayLock(ctx context.Context, professionalID uint, dayKey string, fn func(tx Repository) error) error
}
