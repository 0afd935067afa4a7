package appointment

import (
	"context"
	"errors"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/workshop-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/workshop-scheduler/internal/models"
)

// loadOwned fetches an appointment and checks the acting workshop owns it.
func loadOwned(
	ctx context.Context,
	d Deps,
	workshopID uuid.UUID,
	appointmentID uuid.UUID,
) (*models.Appointment, *models.Workshop, error) {

	ap, err := d.Repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, nil, err
	}
	if err := domain.EnsureWorkshop(ap, workshopID); err != nil {
		d.Log.Warn("workshop %s acted on appointment %s of workshop %s", workshopID, appointmentID, ap.WorkshopID)
		return nil, nil, err
	}

	shop, err := d.Repo.GetWorkshop(ctx, workshopID)
	if err != nil {
		return nil, nil, err
	}
	return ap, shop, nil
}

func logFailure(d Deps, op string, id uuid.UUID, err error) {
	if errors.Is(err, domain.ErrStoreUnavailable) {
		d.Log.Error("%s appointment=%s: %v", op, id, err)
		return
	}
	d.Log.Warn("%s appointment=%s rejected: %v", op, id, err)
}
