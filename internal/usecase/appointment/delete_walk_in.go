package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/workshop-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/workshop-scheduler/internal/domain/appointment"
)

// DeleteWalkIn hard-deletes a confirmed walk-in, freeing its slot. Web
// reservations keep their history and must be cancelled instead.
type DeleteWalkIn struct {
	d Deps
}

func NewDeleteWalkIn(d Deps) *DeleteWalkIn {
	return &DeleteWalkIn{d: d.withDefaults()}
}

func (uc *DeleteWalkIn) Execute(
	ctx context.Context,
	workshopID uuid.UUID,
	actorID *uuid.UUID,
	appointmentID uuid.UUID,
) error {

	ap, shop, err := loadOwned(ctx, uc.d, workshopID, appointmentID)
	if err != nil {
		logFailure(uc.d, "delete walk-in", appointmentID, err)
		return err
	}

	if domain.Source(ap.Source) != domain.SourceWalkIn {
		logFailure(uc.d, "delete walk-in", appointmentID, domain.ErrInvalidTransition)
		return domain.ErrInvalidTransition
	}
	if err := domain.CanDelete(domain.Status(ap.Status)); err != nil {
		logFailure(uc.d, "delete walk-in", appointmentID, err)
		return err
	}

	if err := uc.d.Repo.DeleteAppointment(ctx, ap.ID); err != nil {
		logFailure(uc.d, "delete walk-in", appointmentID, err)
		return err
	}

	window := windowFor(shop, uc.d.DefaultOffsetMinutes)
	invalidate(ctx, uc.d, workshopID, window.DateOf(ap.StartTime))

	uc.d.Metrics.Transition("deleted")
	uc.d.Audit.Dispatch(audit.Event{
		WorkshopID: workshopID,
		ActorID:    actorID,
		Action:     "appointment_deleted",
		Entity:     "appointment",
		EntityID:   &ap.ID,
		Metadata:   map[string]any{"source": ap.Source, "start": ap.StartTime},
	})
	return nil
}
