package supabase

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/workshop-scheduler/internal/models"
)

// one decodes an embedded many-to-one join. PostgREST returns it as an
// object, an array of zero or one objects, or null depending on how the
// relationship was detected; all three end up as Value (nil when absent).
type one[T any] struct {
	Value *T
}

func (o *one[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	o.Value = nil

	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		return nil

	case b[0] == '[':
		var list []T
		if err := json.Unmarshal(b, &list); err != nil {
			return err
		}
		if len(list) > 0 {
			o.Value = &list[0]
		}
		return nil

	default:
		var v T
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		o.Value = &v
		return nil
	}
}

type appointmentRow struct {
	ID         uuid.UUID  `json:"id"`
	WorkshopID uuid.UUID  `json:"workshop_id"`
	ServiceID  uuid.UUID  `json:"service_id"`
	MechanicID uuid.UUID  `json:"mechanic_id"`
	ClientID   *uuid.UUID `json:"client_id"`

	ClientName   string `json:"client_name"`
	VehicleModel string `json:"vehicle_model"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status        string     `json:"status"`
	Source        string     `json:"source"`
	InternalNotes *string    `json:"internal_notes"`
	CancelledAt   *time.Time `json:"cancelled_at"`
	CompletedAt   *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Service  one[serviceRow]  `json:"service"`
	Mechanic one[mechanicRow] `json:"mechanic"`
}

func (r appointmentRow) model() models.Appointment {
	ap := models.Appointment{
		ID:           r.ID,
		WorkshopID:   r.WorkshopID,
		ServiceID:    r.ServiceID,
		MechanicID:   r.MechanicID,
		ClientID:     r.ClientID,
		ClientName:   r.ClientName,
		VehicleModel: r.VehicleModel,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		Status:       r.Status,
		Source:       r.Source,
		CancelledAt:  r.CancelledAt,
		CompletedAt:  r.CompletedAt,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if r.Service.Value != nil {
		svc := r.Service.Value.model()
		ap.Service = &svc
	}
	if r.Mechanic.Value != nil {
		m := r.Mechanic.Value.model()
		ap.Mechanic = &m
	}
	if r.InternalNotes != nil {
		ap.InternalNotes = *r.InternalNotes
	}
	return ap
}

// The hosted schema names a few columns differently from the SQL models;
// the rows below map them at the boundary.

const (
	mechanicColumns = "id,workshop_id,name,is_active,created_at"
	serviceColumns  = "id,workshop_id,name,duration_minutes,price_pe_soles,created_at"
)

type mechanicRow struct {
	ID         uuid.UUID `json:"id"`
	WorkshopID uuid.UUID `json:"workshop_id"`
	Name       string    `json:"name"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

func (r mechanicRow) model() models.Mechanic {
	return models.Mechanic{
		ID:         r.ID,
		WorkshopID: r.WorkshopID,
		Name:       r.Name,
		Active:     r.IsActive,
		CreatedAt:  r.CreatedAt,
	}
}

type serviceRow struct {
	ID              uuid.UUID `json:"id"`
	WorkshopID      uuid.UUID `json:"workshop_id"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"duration_minutes"`
	PricePESoles    float64   `json:"price_pe_soles"`
	CreatedAt       time.Time `json:"created_at"`
}

func (r serviceRow) model() models.Service {
	return models.Service{
		ID:              r.ID,
		WorkshopID:      r.WorkshopID,
		Name:            r.Name,
		DurationMinutes: r.DurationMinutes,
		Price:           r.PricePESoles,
		CreatedAt:       r.CreatedAt,
	}
}

// workshopRow tolerates a missing offset column and Postgres time values
// ("08:00:00").
type workshopRow struct {
	models.Workshop
	OffsetMinutes *int `json:"offset_minutes"`
}

func (r workshopRow) model(defaultOffset int) models.Workshop {
	w := r.Workshop
	w.OpeningTime = clockOf(w.OpeningTime)
	w.ClosingTime = clockOf(w.ClosingTime)
	w.OffsetMinutes = defaultOffset
	if r.OffsetMinutes != nil {
		w.OffsetMinutes = *r.OffsetMinutes
	}
	return w
}

// clockOf cuts an "HH:mm:ss" column value down to "HH:mm".
func clockOf(v string) string {
	if len(v) == len("15:04:05") && v[5] == ':' {
		return v[:5]
	}
	return v
}

func stamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// filterStamp keeps the microseconds range bounds carry.
func filterStamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.999999Z07:00")
}

func stampPtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return stamp(*t)
}

func appointmentInsert(ap *models.Appointment) map[string]any {
	return map[string]any{
		"id":             ap.ID,
		"workshop_id":    ap.WorkshopID,
		"service_id":     ap.ServiceID,
		"mechanic_id":    ap.MechanicID,
		"client_id":      ap.ClientID,
		"client_name":    ap.ClientName,
		"vehicle_model":  ap.VehicleModel,
		"start_time":     stamp(ap.StartTime),
		"end_time":       stamp(ap.EndTime),
		"status":         ap.Status,
		"source":         ap.Source,
		"internal_notes": ap.InternalNotes,
	}
}
