package appointment

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/workshop-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/workshop-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/workshop-scheduler/internal/httperr"
	"github.com/BruksfildServices01/workshop-scheduler/internal/models"
)

// memoryRepo mirrors the partial unique index of the SQL schema.
type memoryRepo struct {
	mu sync.Mutex

	workshops    map[uuid.UUID]models.Workshop
	services     []models.Service
	mechanics    []models.Mechanic
	appointments map[uuid.UUID]models.Appointment
	reviews      map[uuid.UUID]models.Review

	failAppointments bool
	skipPrecheck     bool
	listCalls        int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		workshops:    map[uuid.UUID]models.Workshop{},
		appointments: map[uuid.UUID]models.Appointment{},
		reviews:      map[uuid.UUID]models.Review{},
	}
}

var errDown = errors.New("connection refused")

func (r *memoryRepo) GetWorkshop(_ context.Context, id uuid.UUID) (*models.Workshop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.workshops[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &w, nil
}

func (r *memoryRepo) GetWorkshopByOwner(_ context.Context, ownerID uuid.UUID) (*models.Workshop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.workshops {
		if w.OwnerID == ownerID {
			return &w, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memoryRepo) ListServices(_ context.Context, workshopID uuid.UUID) ([]models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Service{}
	for _, s := range r.services {
		if s.WorkshopID == workshopID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memoryRepo) ListActiveMechanics(_ context.Context, workshopID uuid.UUID) ([]models.Mechanic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Mechanic{}
	for _, m := range r.mechanics {
		if m.WorkshopID == workshopID && m.Active {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memoryRepo) ListAppointments(_ context.Context, f domain.AppointmentFilter) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	if r.failAppointments {
		return nil, httperr.Store("list appointments", errDown)
	}
	out := []models.Appointment{}
	if r.skipPrecheck && f.From.Equal(f.To) {
		return out, nil
	}
	for _, ap := range r.appointments {
		if ap.WorkshopID != f.WorkshopID {
			continue
		}
		if ap.StartTime.Before(f.From) || ap.StartTime.After(f.To) {
			continue
		}
		if f.ExcludeCancelled && ap.Status == string(domain.StatusCancelled) {
			continue
		}
		if f.WithRelations {
			r.attach(&ap)
		}
		out = append(out, ap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *memoryRepo) attach(ap *models.Appointment) {
	for _, s := range r.services {
		if s.ID == ap.ServiceID {
			s := s
			ap.Service = &s
		}
	}
	for _, m := range r.mechanics {
		if m.ID == ap.MechanicID {
			m := m
			ap.Mechanic = &m
		}
	}
}

func (r *memoryRepo) GetAppointment(_ context.Context, id uuid.UUID) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.appointments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &ap, nil
}

func (r *memoryRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAppointments {
		return httperr.Store("create appointment", errDown)
	}
	for _, other := range r.appointments {
		if other.Status != string(domain.StatusCancelled) &&
			other.WorkshopID == ap.WorkshopID &&
			other.MechanicID == ap.MechanicID &&
			other.StartTime.Equal(ap.StartTime) {
			return domain.ErrSlotAlreadyBooked
		}
	}
	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	ap.CreatedAt = time.Now()
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *memoryRepo) UpdateAppointmentStatus(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appointments[ap.ID]; !ok {
		return domain.ErrNotFound
	}
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *memoryRepo) DeleteAppointment(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appointments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.appointments, id)
	return nil
}

func (r *memoryRepo) GetReviewByAppointment(_ context.Context, appointmentID uuid.UUID) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rv := range r.reviews {
		if rv.AppointmentID == appointmentID {
			return &rv, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memoryRepo) CreateReview(_ context.Context, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rv := range r.reviews {
		if rv.AppointmentID == review.AppointmentID {
			return domain.ErrAlreadyReviewed
		}
	}
	review.ID = uuid.New()
	r.reviews[review.ID] = *review
	return nil
}

func (r *memoryRepo) ListMechanics(_ context.Context, workshopID uuid.UUID) ([]models.Mechanic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Mechanic{}
	for _, m := range r.mechanics {
		if m.WorkshopID == workshopID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memoryRepo) GetMechanic(_ context.Context, id uuid.UUID) (*models.Mechanic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.mechanics {
		if m.ID == id {
			return &m, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memoryRepo) CreateMechanic(_ context.Context, m *models.Mechanic) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.mechanics = append(r.mechanics, *m)
	return nil
}

func (r *memoryRepo) UpdateMechanic(_ context.Context, m *models.Mechanic) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.mechanics {
		if existing.ID == m.ID && existing.WorkshopID == m.WorkshopID {
			r.mechanics[i] = *m
			return nil
		}
	}
	return domain.ErrNotFound
}

var _ domain.Repository = (*memoryRepo)(nil)

// ------------------------------------------------------
// Collaborator fakes
// ------------------------------------------------------

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type recordingAuditor struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *recordingAuditor) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

func (a *recordingAuditor) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.events))
	for _, ev := range a.events {
		out = append(out, ev.Action)
	}
	return out
}

// memoryCache keeps the generation semantics of the Redis cache.
type memoryCache struct {
	mu          sync.Mutex
	gens        map[string]int64
	entries     map[string]domain.Occupancy
	invalidated []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{gens: map[string]int64{}, entries: map[string]domain.Occupancy{}}
}

func (c *memoryCache) day(id uuid.UUID, date string) string { return id.String() + "|" + date }

func (c *memoryCache) entry(day string, gen int64) string {
	return day + "|" + strconv.FormatInt(gen, 10)
}

func (c *memoryCache) Get(_ context.Context, id uuid.UUID, date string) (domain.Occupancy, int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	day := c.day(id, date)
	gen := c.gens[day]
	occ, ok := c.entries[c.entry(day, gen)]
	return occ, gen, ok, nil
}

func (c *memoryCache) Set(_ context.Context, id uuid.UUID, date string, gen int64, occ domain.Occupancy) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[c.entry(c.day(id, date), gen)] = occ
	return nil
}

func (c *memoryCache) Invalidate(_ context.Context, id uuid.UUID, date string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[c.day(id, date)]++
	c.invalidated = append(c.invalidated, date)
	return nil
}
