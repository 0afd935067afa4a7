package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/workshop-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/workshop-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/workshop-scheduler/internal/models"
)

type CancelAppointment struct {
	d Deps
}

func NewCancelAppointment(d Deps) *CancelAppointment {
	return &CancelAppointment{d: d.withDefaults()}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	workshopID uuid.UUID,
	actorID *uuid.UUID,
	appointmentID uuid.UUID,
	reason string,
) (*models.Appointment, error) {

	ap, shop, err := loadOwned(ctx, uc.d, workshopID, appointmentID)
	if err != nil {
		logFailure(uc.d, "cancel", appointmentID, err)
		return nil, err
	}

	window := windowFor(shop, uc.d.DefaultOffsetMinutes)
	now := window.In(uc.d.Clock.Now())
	if err := domain.Cancel(ap, now, reason); err != nil {
		logFailure(uc.d, "cancel", appointmentID, err)
		return nil, err
	}

	if err := uc.d.Repo.UpdateAppointmentStatus(ctx, ap); err != nil {
		logFailure(uc.d, "cancel", appointmentID, err)
		return nil, err
	}

	invalidate(ctx, uc.d, workshopID, window.DateOf(ap.StartTime))

	uc.d.Metrics.Transition(ap.Status)
	uc.d.Audit.Dispatch(audit.Event{
		WorkshopID: workshopID,
		ActorID:    actorID,
		Action:     "appointment_cancelled",
		Entity:     "appointment",
		EntityID:   &ap.ID,
		Metadata:   map[string]any{"reason": reason},
	})

	return ap, nil
}
