package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/workshop-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/workshop-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/workshop-scheduler/internal/models"
)

type CompleteAppointment struct {
	d Deps
}

func NewCompleteAppointment(d Deps) *CompleteAppointment {
	return &CompleteAppointment{d: d.withDefaults()}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	workshopID uuid.UUID,
	actorID *uuid.UUID,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	ap, shop, err := loadOwned(ctx, uc.d, workshopID, appointmentID)
	if err != nil {
		logFailure(uc.d, "complete", appointmentID, err)
		return nil, err
	}

	now := windowFor(shop, uc.d.DefaultOffsetMinutes).In(uc.d.Clock.Now())
	if err := domain.Complete(ap, now); err != nil {
		logFailure(uc.d, "complete", appointmentID, err)
		return nil, err
	}

	if err := uc.d.Repo.UpdateAppointmentStatus(ctx, ap); err != nil {
		logFailure(uc.d, "complete", appointmentID, err)
		return nil, err
	}

	uc.d.Metrics.Transition(ap.Status)
	uc.d.Audit.Dispatch(audit.Event{
		WorkshopID: workshopID,
		ActorID:    actorID,
		Action:     "appointment_completed",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	return ap, nil
}
