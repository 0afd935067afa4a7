package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	postgrest "github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"

	"github.com/BruksfildServices01/workshop-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/workshop-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/workshop-scheduler/internal/httperr"
	"github.com/BruksfildServices01/workshop-scheduler/internal/models"
)

const (
	uniqueViolation = "23505"

	appointmentSelect = "*,service:services(" + serviceColumns + "),mechanic:mechanics(" + mechanicColumns + ")"
)

var asc = &postgrest.OrderOpts{Ascending: true}

// Store is the hosted-backend collaborator, talking to PostgREST through the
// supabase client. Context cancellation is checked before each request.
type Store struct {
	client        *supa.Client
	defaultOffset int
}

func New(url, key string, defaultOffset int) (*Store, error) {
	client, err := supa.NewClient(url, key, nil)
	if err != nil {
		return nil, httperr.Store("supabase client", err)
	}
	return &Store{client: client, defaultOffset: defaultOffset}, nil
}

// --------------------------------------------------
// Workshop
// --------------------------------------------------

func (s *Store) GetWorkshop(ctx context.Context, id uuid.UUID) (*models.Workshop, error) {
	return s.workshopBy(ctx, "get workshop", "id", id)
}

func (s *Store) GetWorkshopByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Workshop, error) {
	return s.workshopBy(ctx, "get workshop by owner", "owner_id", ownerID)
}

func (s *Store) workshopBy(ctx context.Context, op, column string, value uuid.UUID) (*models.Workshop, error) {
	if err := ctx.Err(); err != nil {
		return nil, httperr.Store(op, err)
	}

	var rows []workshopRow
	data, _, err := s.client.From("workshops").
		Select("*", "", false).
		Eq(column, value.String()).
		Order("created_at", asc).
		Limit(1, "").
		Execute()
	if err := decode(op, data, err, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}

	w := rows[0].model(s.defaultOffset)
	return &w, nil
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (s *Store) ListServices(ctx context.Context, workshopID uuid.UUID) ([]models.Service, error) {
	const op = "list services"
	if err := ctx.Err(); err != nil {
		return nil, httperr.Store(op, err)
	}

	var rows []serviceRow
	data, _, err := s.client.From("services").
		Select(serviceColumns, "", false).
		Eq("workshop_id", workshopID.String()).
		Order("created_at", asc).
		Execute()
	if err := decode(op, data, err, &rows); err != nil {
		return nil, err
	}

	services := make([]models.Service, 0, len(rows))
	for _, r := range rows {
		services = append(services, r.model())
	}
	return services, nil
}

func (s *Store) ListActiveMechanics(ctx context.Context, workshopID uuid.UUID) ([]models.Mechanic, error) {
	return s.mechanics(ctx, "list active mechanics", workshopID, true)
}

// --------------------------------------------------
// Mechanic roster
// --------------------------------------------------

func (s *Store) ListMechanics(ctx context.Context, workshopID uuid.UUID) ([]models.Mechanic, error) {
	return s.mechanics(ctx, "list mechanics", workshopID, false)
}

func (s *Store) mechanics(ctx context.Context, op string, workshopID uuid.UUID, activeOnly bool) ([]models.Mechanic, error) {
	if err := ctx.Err(); err != nil {
		return nil, httperr.Store(op, err)
	}

	q := s.client.From("mechanics").
		Select(mechanicColumns, "", false).
		Eq("workshop_id", workshopID.String())
	if activeOnly {
		q = q.Eq("is_active", "true")
	}

	var rows []mechanicRow
	data, _, err := q.Order("created_at", asc).Execute()
	if err := decode(op, data, err, &rows); err != nil {
		return nil, err
	}

	out := make([]models.Mechanic, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.model())
	}
	return out, nil
}

func (s *Store) GetMechanic(ctx context.Context, id uuid.UUID) (*models.Mechanic, error) {
	const op = "get mechanic"
	if err := ctx.Err(); err != nil {
		return nil, httperr.Store(op, err)
	}

	var rows []mechanicRow
	data, _, err := s.client.From("mechanics").
		Select(mechanicColumns, "", false).
		Eq("id", id.String()).
		Execute()
	if err := decode(op, data, err, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}

	m := rows[0].model()
	return &m, nil
}

func (s *Store) CreateMechanic(ctx context.Context, m *models.Mechanic) error {
	const op = "create mechanic"
	if err := ctx.Err(); err != nil {
		return httperr.Store(op, err)
	}

	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	_, _, err := s.client.From("mechanics").
		Insert(map[string]any{
			"id":          m.ID,
			"workshop_id": m.WorkshopID,
			"name":        m.Name,
			"is_active":   m.Active,
		}, false, "", "minimal", "").
		Execute()
	if err != nil {
		return classify(op, err, nil)
	}

	now := time.Now().UTC()
	m.CreatedAt, m.UpdatedAt = now, now
	return nil
}

func (s *Store) UpdateMechanic(ctx context.Context, m *models.Mechanic) error {
	const op = "update mechanic"
	if err := ctx.Err(); err != nil {
		return httperr.Store(op, err)
	}

	var rows []mechanicRow
	data, _, err := s.client.From("mechanics").
		Update(map[string]any{
			"name":      m.Name,
			"is_active": m.Active,
		}, "representation", "").
		Eq("id", m.ID.String()).
		Eq("workshop_id", m.WorkshopID.String()).
		Execute()
	if err := decode(op, data, err, &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (s *Store) ListAppointments(ctx context.Context, f domain.AppointmentFilter) ([]models.Appointment, error) {
	const op = "list appointments"
	if err := ctx.Err(); err != nil {
		return nil, httperr.Store(op, err)
	}

	columns := "*"
	if f.WithRelations {
		columns = appointmentSelect
	}

	// The builder keeps one filter per column, so the range is a logic tree.
	q := s.client.From("appointments").
		Select(columns, "", false).
		Eq("workshop_id", f.WorkshopID.String()).
		Or(fmt.Sprintf(`and(start_time.gte."%s",start_time.lte."%s")`, filterStamp(f.From), filterStamp(f.To)), "")
	if f.ExcludeCancelled {
		q = q.Neq("status", string(domain.StatusCancelled))
	}

	var rows []appointmentRow
	data, _, err := q.Order("start_time", asc).Execute()
	if err := decode(op, data, err, &rows); err != nil {
		return nil, err
	}

	out := make([]models.Appointment, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.model())
	}
	return out, nil
}

func (s *Store) GetAppointment(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	const op = "get appointment"
	if err := ctx.Err(); err != nil {
		return nil, httperr.Store(op, err)
	}

	var rows []appointmentRow
	data, _, err := s.client.From("appointments").
		Select("*", "", false).
		Eq("id", id.String()).
		Execute()
	if err := decode(op, data, err, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}

	ap := rows[0].model()
	return &ap, nil
}

// CreateAppointment relies on the same partial unique index as the SQL
// store; PostgREST reports its violation with the Postgres code.
func (s *Store) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	const op = "create appointment"
	if err := ctx.Err(); err != nil {
		return httperr.Store(op, err)
	}

	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}

	_, _, err := s.client.From("appointments").
		Insert(appointmentInsert(ap), false, "", "minimal", "").
		Execute()
	if err != nil {
		return classify(op, err, domain.ErrSlotAlreadyBooked)
	}

	now := time.Now().UTC()
	ap.CreatedAt, ap.UpdatedAt = now, now
	return nil
}

func (s *Store) UpdateAppointmentStatus(ctx context.Context, ap *models.Appointment) error {
	const op = "update appointment"
	if err := ctx.Err(); err != nil {
		return httperr.Store(op, err)
	}

	var rows []appointmentRow
	data, _, err := s.client.From("appointments").
		Update(map[string]any{
			"status":         ap.Status,
			"internal_notes": ap.InternalNotes,
			"cancelled_at":   stampPtr(ap.CancelledAt),
			"completed_at":   stampPtr(ap.CompletedAt),
			"updated_at":     stamp(time.Now()),
		}, "representation", "").
		Eq("id", ap.ID.String()).
		Execute()
	if err != nil {
		return classify(op, err, domain.ErrSlotAlreadyBooked)
	}
	if err := decode(op, data, nil, &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	const op = "delete appointment"
	if err := ctx.Err(); err != nil {
		return httperr.Store(op, err)
	}

	var rows []appointmentRow
	data, _, err := s.client.From("appointments").
		Delete("representation", "").
		Eq("id", id.String()).
		Execute()
	if err := decode(op, data, err, &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Review
// --------------------------------------------------

func (s *Store) GetReviewByAppointment(ctx context.Context, appointmentID uuid.UUID) (*models.Review, error) {
	const op = "get review"
	if err := ctx.Err(); err != nil {
		return nil, httperr.Store(op, err)
	}

	var rows []models.Review
	data, _, err := s.client.From("reviews").
		Select("*", "", false).
		Eq("appointment_id", appointmentID.String()).
		Execute()
	if err := decode(op, data, err, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}
	return &rows[0], nil
}

func (s *Store) CreateReview(ctx context.Context, review *models.Review) error {
	const op = "create review"
	if err := ctx.Err(); err != nil {
		return httperr.Store(op, err)
	}

	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}

	_, _, err := s.client.From("reviews").
		Insert(map[string]any{
			"id":             review.ID,
			"appointment_id": review.AppointmentID,
			"workshop_id":    review.WorkshopID,
			"client_id":      review.ClientID,
			"rating":         review.Rating,
			"comment":        review.Comment,
		}, false, "", "minimal", "").
		Execute()
	if err != nil {
		return classify(op, err, domain.ErrAlreadyReviewed)
	}
	review.CreatedAt = time.Now().UTC()
	return nil
}

// --------------------------------------------------
// Audit
// --------------------------------------------------

func (s *Store) CreateAuditLog(ctx context.Context, entry *models.AuditLog) error {
	const op = "create audit log"
	if err := ctx.Err(); err != nil {
		return httperr.Store(op, err)
	}

	_, _, err := s.client.From("audit_logs").
		Insert(map[string]any{
			"workshop_id": entry.WorkshopID,
			"actor_id":    entry.ActorID,
			"action":      entry.Action,
			"entity":      entry.Entity,
			"entity_id":   entry.EntityID,
			"metadata":    entry.Metadata,
		}, false, "", "minimal", "").
		Execute()
	if err != nil {
		return classify(op, err, nil)
	}
	return nil
}

func (s *Store) ListAuditLogs(ctx context.Context, f audit.Filter) ([]models.AuditLog, int64, error) {
	const op = "list audit logs"
	if err := ctx.Err(); err != nil {
		return nil, 0, httperr.Store(op, err)
	}

	if f.Limit <= 0 {
		f.Limit = 50
	}

	q := s.client.From("audit_logs").
		Select("*", "exact", false).
		Eq("workshop_id", f.WorkshopID.String())
	if f.Action != "" {
		q = q.Eq("action", f.Action)
	}
	if f.Entity != "" {
		q = q.Eq("entity", f.Entity)
	}

	logs := []models.AuditLog{}
	data, total, err := q.
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Range(f.Offset, f.Offset+f.Limit-1, "").
		Execute()
	if err := decode(op, data, err, &logs); err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// --------------------------------------------------
// Errors
// --------------------------------------------------

func decode(op string, data []byte, err error, out any) error {
	if err != nil {
		return classify(op, err, nil)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return httperr.Store(op, err)
	}
	return nil
}

// classify maps a PostgREST failure; the client only exposes the error text,
// which carries the Postgres code.
func classify(op string, err error, conflict error) error {
	msg := err.Error()
	if conflict != nil && (strings.Contains(msg, uniqueViolation) || strings.Contains(msg, "duplicate key value")) {
		return conflict
	}
	return httperr.Store(op, err)
}

var (
	_ domain.Repository = (*Store)(nil)
	_ audit.Store       = (*Store)(nil)
)
