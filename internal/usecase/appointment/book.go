package appointment

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/workshop-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/workshop-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/workshop-scheduler/internal/models"
	"github.com/BruksfildServices01/workshop-scheduler/internal/timezone"
)

// ======================================================
// SHARED BOOKING FLOW
// ======================================================

type bookingRequest struct {
	WorkshopID uuid.UUID
	ActorID    *uuid.UUID
	Source     domain.Source

	ServiceRef string
	Date       string
	Time       string

	ClientID     *uuid.UUID
	ClientName   string
	VehicleModel string
	Notes        string

	// Web bookings must start in the future and on the grid.
	Strict bool
}

type booker struct {
	d Deps
}

func (b booker) book(ctx context.Context, req bookingRequest) (*models.Appointment, error) {
	source := string(req.Source)

	// --------------------------------------------------
	// 1) Shape
	// --------------------------------------------------
	if err := timezone.ValidateDate(req.Date); err != nil {
		return nil, b.reject(req, err)
	}
	if _, err := timezone.ParseClock(req.Time); err != nil {
		return nil, b.reject(req, err)
	}

	// --------------------------------------------------
	// 2) Workshop + instants at its offset
	// --------------------------------------------------
	shop, err := b.d.Repo.GetWorkshop(ctx, req.WorkshopID)
	if err != nil {
		return nil, b.reject(req, err)
	}

	window := windowFor(shop, b.d.DefaultOffsetMinutes)

	start, err := window.Combine(req.Date, req.Time)
	if err != nil {
		return nil, b.reject(req, err)
	}

	if req.Strict {
		if start.Before(b.d.Clock.Now()) {
			return nil, b.reject(req, domain.ErrSlotInPast)
		}
		grid, err := domain.NewGrid(shop.OpeningTime, shop.ClosingTime, b.d.SlotIncrement)
		if err != nil {
			return nil, b.reject(req, err)
		}
		if !grid.Contains(req.Time) {
			return nil, b.reject(req, domain.ErrOutsideHours)
		}
	}

	// --------------------------------------------------
	// 3) Service (fallback chain)
	// --------------------------------------------------
	services, err := b.d.Repo.ListServices(ctx, req.WorkshopID)
	if err != nil {
		return nil, b.reject(req, err)
	}

	resolved, err := domain.ResolveService(req.ServiceRef, services)
	if err != nil {
		return nil, b.reject(req, err)
	}
	if resolved.Strategy != domain.StrategyExactMatch {
		b.d.Log.Warn("workshop=%s service %q resolved by %s to %s",
			req.WorkshopID, req.ServiceRef, resolved.Strategy, resolved.Service.ID)
	}

	// --------------------------------------------------
	// 4) Fast-path conflict check + mechanic
	// --------------------------------------------------
	mechanics, err := b.d.Repo.ListActiveMechanics(ctx, req.WorkshopID)
	if err != nil {
		return nil, b.reject(req, err)
	}

	existing, err := b.d.Repo.ListAppointments(ctx, domain.AppointmentFilter{
		WorkshopID:       req.WorkshopID,
		From:             start,
		To:               start,
		ExcludeCancelled: true,
	})
	if err != nil {
		return nil, b.reject(req, err)
	}

	taken := make(map[uuid.UUID]bool, len(existing))
	for _, ap := range existing {
		if domain.Status(ap.Status).Occupies() && ap.StartTime.Equal(start) {
			taken[ap.MechanicID] = true
		}
	}

	mechanic, err := domain.AssignMechanic(mechanics, taken)
	if err != nil {
		return nil, b.reject(req, err)
	}

	// --------------------------------------------------
	// 5) Insert (the store's unique index is authoritative)
	// --------------------------------------------------
	notes := strings.TrimSpace(req.Notes)
	if resolved.Note != "" {
		notes = domain.AppendNote(notes, resolved.Note)
	}

	ap := &models.Appointment{
		WorkshopID:    req.WorkshopID,
		ServiceID:     resolved.Service.ID,
		MechanicID:    mechanic.ID,
		ClientID:      req.ClientID,
		ClientName:    strings.TrimSpace(req.ClientName),
		VehicleModel:  strings.TrimSpace(req.VehicleModel),
		StartTime:     start,
		EndTime:       start.Add(resolved.Service.Duration()),
		Status:        string(domain.InitialStatus()),
		Source:        source,
		InternalNotes: notes,
	}

	if err := b.d.Repo.CreateAppointment(ctx, ap); err != nil {
		return nil, b.reject(req, err)
	}

	service := resolved.Service
	ap.Service = &service
	ap.Mechanic = &mechanic

	// --------------------------------------------------
	// 6) Side effects
	// --------------------------------------------------
	invalidate(ctx, b.d, req.WorkshopID, req.Date)

	b.d.Metrics.BookingCreated(source)
	b.d.Log.Info("appointment %s booked workshop=%s start=%s mechanic=%s source=%s",
		ap.ID, req.WorkshopID, start.Format("2006-01-02T15:04:05Z07:00"), mechanic.ID, source)

	b.d.Audit.Dispatch(audit.Event{
		WorkshopID: req.WorkshopID,
		ActorID:    req.ActorID,
		Action:     "appointment_created",
		Entity:     "appointment",
		EntityID:   &ap.ID,
		Metadata: map[string]any{
			"source":   source,
			"date":     req.Date,
			"time":     req.Time,
			"strategy": resolved.Strategy,
		},
	})

	return ap, nil
}

func (b booker) reject(req bookingRequest, err error) error {
	source := string(req.Source)
	b.d.Metrics.BookingRejected(source, reason(err))

	if errors.Is(err, domain.ErrSlotAlreadyBooked) {
		b.d.Log.Warn("slot conflict workshop=%s date=%s time=%s source=%s", req.WorkshopID, req.Date, req.Time, source)
		b.d.Audit.Dispatch(audit.Event{
			WorkshopID: req.WorkshopID,
			ActorID:    req.ActorID,
			Action:     "appointment_conflict",
			Entity:     "appointment",
			Metadata: map[string]any{
				"date": req.Date,
				"time": req.Time,
			},
		})
		return err
	}

	if errors.Is(err, domain.ErrStoreUnavailable) {
		b.d.Log.Error("booking workshop=%s source=%s: %v", req.WorkshopID, source, err)
	}
	return err
}
