package appointment

import (
	"context"
	"strings"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/workshop-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/workshop-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateWebReservationInput struct {
	WorkshopID uuid.UUID
	ClientID   uuid.UUID

	ServiceID    string
	Date         string
	Time         string
	VehicleModel string
	Notes        string
}

// ======================================================
// USE CASE
// ======================================================

type CreateWebReservation struct {
	booker booker
}

func NewCreateWebReservation(d Deps) *CreateWebReservation {
	return &CreateWebReservation{booker: booker{d: d.withDefaults()}}
}

func (uc *CreateWebReservation) Execute(
	ctx context.Context,
	in CreateWebReservationInput,
) (*models.Appointment, error) {

	if in.ClientID == uuid.Nil {
		return nil, domain.ErrNotAuthorized
	}
	if in.WorkshopID == uuid.Nil || strings.TrimSpace(in.VehicleModel) == "" {
		return nil, domain.ErrInvalidRequest
	}

	client := in.ClientID
	return uc.booker.book(ctx, bookingRequest{
		WorkshopID:   in.WorkshopID,
		ActorID:      &client,
		Source:       domain.SourceWeb,
		ServiceRef:   in.ServiceID,
		Date:         in.Date,
		Time:         in.Time,
		ClientID:     &client,
		VehicleModel: in.VehicleModel,
		Notes:        in.Notes,
		Strict:       true,
	})
}
