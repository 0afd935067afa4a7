package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/workshop-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/workshop-scheduler/internal/domain/appointment"
)

// DeleteReservation lets a client withdraw their own confirmed reservation.
type DeleteReservation struct {
	d Deps
}

func NewDeleteReservation(d Deps) *DeleteReservation {
	return &DeleteReservation{d: d.withDefaults()}
}

func (uc *DeleteReservation) Execute(
	ctx context.Context,
	clientID uuid.UUID,
	appointmentID uuid.UUID,
) error {

	ap, err := uc.d.Repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		logFailure(uc.d, "delete reservation", appointmentID, err)
		return err
	}

	if err := domain.EnsureClient(ap, clientID); err != nil {
		logFailure(uc.d, "delete reservation", appointmentID, err)
		return err
	}
	if err := domain.CanDelete(domain.Status(ap.Status)); err != nil {
		logFailure(uc.d, "delete reservation", appointmentID, err)
		return err
	}

	shop, err := uc.d.Repo.GetWorkshop(ctx, ap.WorkshopID)
	if err != nil {
		logFailure(uc.d, "delete reservation", appointmentID, err)
		return err
	}

	if err := uc.d.Repo.DeleteAppointment(ctx, ap.ID); err != nil {
		logFailure(uc.d, "delete reservation", appointmentID, err)
		return err
	}

	window := windowFor(shop, uc.d.DefaultOffsetMinutes)
	invalidate(ctx, uc.d, ap.WorkshopID, window.DateOf(ap.StartTime))

	uc.d.Metrics.Transition("deleted")
	uc.d.Audit.Dispatch(audit.Event{
		WorkshopID: ap.WorkshopID,
		ActorID:    &clientID,
		Action:     "reservation_withdrawn",
		Entity:     "appointment",
		EntityID:   &ap.ID,
		Metadata:   map[string]any{"start": ap.StartTime},
	})
	return nil
}
