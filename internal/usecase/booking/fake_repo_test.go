package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	domain "github.com/Williamhssilva/agendapro/internal/domain/booking"
	"github.com/Williamhssilva/agendapro/internal/models"
)

// fakeRepo é um Repository em memória. WithDayLock serializa por chave
// (profissional, dia) com um mutex, o suficiente para exercitar a
// seção crítica check-then-write sem banco.
type fakeRepo struct {
	mu sync.Mutex

	establishments map[uint]*models.Establishment
	professionals  map[uint]*models.Professional
	services       map[uint]*models.Service
	clients        []*models.Client
	appointments   map[uint]*models.Appointment

	nextClientID      uint
	nextAppointmentID uint

	dayLocks sync.Map // "profID:dayKey" -> *sync.Mutex

	// transientLeft faz as próximas N escritas falharem com um erro
	// re-tentável, simulando serialization failure.
	transientLeft int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		establishments:    map[uint]*models.Establishment{},
		professionals:     map[uint]*models.Professional{},
		services:          map[uint]*models.Service{},
		appointments:      map[uint]*models.Appointment{},
		nextClientID:      1,
		nextAppointmentID: 1,
	}
}

type fakeTransientErr struct{}

func (fakeTransientErr) Error() string   { return "serialization failure" }
func (fakeTransientErr) Transient() bool { return true }

var _ domain.TransientError = fakeTransientErr{}
var _ domain.Repository = (*fakeRepo)(nil)

func (r *fakeRepo) GetEstablishmentByID(_ context.Context, id uint) (*models.Establishment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.establishments[id]
	if !ok {
		return nil, domain.ErrNotFound("estabelecimento")
	}
	cp := *e
	return &cp, nil
}

func (r *fakeRepo) GetEstablishmentBySlug(_ context.Context, slug string) (*models.Establishment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.establishments {
		if e.Slug == slug {
			cp := *e
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound("estabelecimento")
}

func (r *fakeRepo) GetProfessional(_ context.Context, establishmentID, professionalID uint) (*models.Professional, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.professionals[professionalID]
	if !ok || p.EstablishmentID != establishmentID {
		return nil, domain.ErrNotFound("profissional")
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepo) GetService(_ context.Context, establishmentID, serviceID uint) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.services[serviceID]
	if !ok || s.EstablishmentID != establishmentID {
		return nil, domain.ErrNotFound("serviço")
	}
	cp := *s
	return &cp, nil
}

func (r *fakeRepo) GetOrCreateClient(_ context.Context, establishmentID uint, name, phone, email string) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clients {
		if c.EstablishmentID == establishmentID && c.Phone == phone {
			cp := *c
			return &cp, nil
		}
	}
	c := &models.Client{
		ID:              r.nextClientID,
		EstablishmentID: establishmentID,
		Name:            name,
		Phone:           phone,
		Email:           email,
	}
	r.nextClientID++
	r.clients = append(r.clients, c)
	cp := *c
	return &cp, nil
}

func (r *fakeRepo) GetAppointment(_ context.Context, establishmentID, appointmentID uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.appointments[appointmentID]
	if !ok || ap.EstablishmentID != establishmentID {
		return nil, domain.ErrNotFound("agendamento")
	}
	cp := *ap
	return &cp, nil
}

func (r *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.transientLeft > 0 {
		r.transientLeft--
		return fakeTransientErr{}
	}
	ap.ID = r.nextAppointmentID
	r.nextAppointmentID++
	cp := *ap
	r.appointments[ap.ID] = &cp
	return nil
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.transientLeft > 0 {
		r.transientLeft--
		return fakeTransientErr{}
	}
	if _, ok := r.appointments[ap.ID]; !ok {
		return domain.ErrNotFound("agendamento")
	}
	cp := *ap
	r.appointments[ap.ID] = &cp
	return nil
}

func (r *fakeRepo) ListOccupying(_ context.Context, professionalID uint, dayStart, dayEnd time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.ProfessionalID != professionalID {
			continue
		}
		if !domain.Status(ap.Status).Occupies() {
			continue
		}
		if ap.StartTime.Before(dayStart) || !ap.StartTime.Before(dayEnd) {
			continue
		}
		out = append(out, *ap)
	}
	return out, nil
}

func (r *fakeRepo) ListForPeriod(_ context.Context, establishmentID, professionalID uint, start, end time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.EstablishmentID != establishmentID {
			continue
		}
		if professionalID != 0 && ap.ProfessionalID != professionalID {
			continue
		}
		if ap.StartTime.Before(start) || !ap.StartTime.Before(end) {
			continue
		}
		out = append(out, *ap)
	}
	return out, nil
}

func (r *fakeRepo) WithDayLock(_ context.Context, professionalID uint, dayKey string, fn func(tx domain.Repository) error) error {
	key := fmt.Sprintf("%d:%s", professionalID, dayKey)
	muAny, _ := r.dayLocks.LoadOrStore(key, &sync.Mutex{})
	mu := muAny.(*sync.Mutex)
	mu.Lock()
	defer mu.Unlock()
	return fn(r)
}
