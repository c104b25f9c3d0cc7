package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/Williamhssilva/agendapro/internal/domain/booking"
	"github.com/Williamhssilva/agendapro/internal/models"
)

// ===============================
// Repositório gorm/postgres
// ===============================

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

var _ domain.Repository = (*BookingRepository)(nil)

// transientError marca falhas de serialização/deadlock como re-tentáveis
// para o usecase, sem vazar código de driver para fora da infra.
type transientError struct {
	err error
}

func (e transientError) Error() string   { return e.err.Error() }
func (e transientError) Unwrap() error   { return e.err }
func (e transientError) Transient() bool { return true }

// classify traduz erros do postgres: 40001 (serialization_failure) e
// 40P01 (deadlock_detected) viram transientError.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01":
			return transientError{err: err}
		}
	}
	return err
}

func notFound(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound(entity)
	}
	return err
}

// -------- Establishment --------

func (r *BookingRepository) GetEstablishmentByID(ctx context.Context, id uint) (*models.Establishment, error) {
	var e models.Establishment
	if err := r.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, notFound(err, "estabelecimento")
	}
	return &e, nil
}

func (r *BookingRepository) GetEstablishmentBySlug(ctx context.Context, slug string) (*models.Establishment, error) {
	var e models.Establishment
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&e).Error; err != nil {
		return nil, notFound(err, "estabelecimento")
	}
	return &e, nil
}

// -------- Configuração --------

func (r *BookingRepository) GetProfessional(ctx context.Context, establishmentID, professionalID uint) (*models.Professional, error) {
	var p models.Professional
	err := r.db.WithContext(ctx).
		Where("id = ? AND establishment_id = ?", professionalID, establishmentID).
		First(&p).Error
	if err != nil {
		return nil, notFound(err, "profissional")
	}
	return &p, nil
}

func (r *BookingRepository) GetService(ctx context.Context, establishmentID, serviceID uint) (*models.Service, error) {
	var s models.Service
	err := r.db.WithContext(ctx).
		Where("id = ? AND establishment_id = ?", serviceID, establishmentID).
		First(&s).Error
	if err != nil {
		return nil, notFound(err, "serviço")
	}
	return &s, nil
}

// -------- Client --------

func (r *BookingRepository) GetOrCreateClient(ctx context.Context, establishmentID uint, name, phone, email string) (*models.Client, error) {
	var c models.Client
	err := r.db.WithContext(ctx).
		Where("establishment_id = ? AND phone = ?", establishmentID, phone).
		First(&c).Error
	if err == nil {
		return &c, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, classify(err)
	}

	c = models.Client{
		EstablishmentID: establishmentID,
		Name:            name,
		Phone:           phone,
		Email:           email,
	}
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, classify(err)
	}
	return &c, nil
}

// -------- Appointment --------

func (r *BookingRepository) GetAppointment(ctx context.Context, establishmentID, appointmentID uint) (*models.Appointment, error) {
	var ap models.Appointment
	err := r.db.WithContext(ctx).
		Where("id = ? AND establishment_id = ?", appointmentID, establishmentID).
		First(&ap).Error
	if err != nil {
		return nil, notFound(err, "agendamento")
	}
	return &ap, nil
}

func (r *BookingRepository) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	return classify(r.db.WithContext(ctx).Create(ap).Error)
}

func (r *BookingRepository) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	return classify(r.db.WithContext(ctx).Save(ap).Error)
}

func (r *BookingRepository) ListOccupying(ctx context.Context, professionalID uint, dayStart, dayEnd time.Time) ([]models.Appointment, error) {
	var aps []models.Appointment
	err := r.db.WithContext(ctx).
		Where("professional_id = ?", professionalID).
		Where("status IN ?", []string{"pending", "confirmed"}).
		Where("start_time >= ? AND start_time < ?", dayStart, dayEnd).
		Order("start_time ASC").
		Find(&aps).Error
	if err != nil {
		return nil, classify(err)
	}
	return aps, nil
}

func (r *BookingRepository) ListForPeriod(ctx context.Context, establishmentID, professionalID uint, start, end time.Time) ([]models.Appointment, error) {
	q := r.db.WithContext(ctx).
		Preload("Professional").
		Preload("Service").
		Preload("Client").
		Where("establishment_id = ?", establishmentID).
		Where("start_time >= ? AND start_time < ?", start, end)

	if professionalID != 0 {
		q = q.Where("professional_id = ?", professionalID)
	}

	var aps []models.Appointment
	if err := q.Order("start_time ASC").Find(&aps).Error; err != nil {
		return nil, classify(err)
	}
	return aps, nil
}

// -------- Seção crítica --------

// WithDayLock abre uma transação serializable e segura um advisory lock
// transacional nomeado por (profissional, dia local). O lock cai junto
// com o commit/rollback, nunca fica órfão, e serializa o
// check-then-write daquele profissional-dia entre instâncias da API.
func (r *BookingRepository) WithDayLock(ctx context.Context, professionalID uint, dayKey string, fn func(tx domain.Repository) error) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lock := tx.Exec(
			"SELECT pg_advisory_xact_lock(hashtext(?), hashtext(?))",
			strconv.FormatUint(uint64(professionalID), 10),
			dayKey,
		)
		if lock.Error != nil {
			return lock.Error
		}
		return fn(&BookingRepository{db: tx})
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})

	return classify(err)
}
