package appointment

import (
	"context"
	"strings"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/workshop-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/workshop-scheduler/internal/models"
)

type CreateWalkInInput struct {
	WorkshopID uuid.UUID
	ActorID    uuid.UUID

	// Service id, or free text matched against service names.
	Service      string
	ClientName   string
	VehicleModel string
	Date         string
	Time         string
	Notes        string
}

type CreateWalkIn struct {
	booker booker
}

func NewCreateWalkIn(d Deps) *CreateWalkIn {
	return &CreateWalkIn{booker: booker{d: d.withDefaults()}}
}

func (uc *CreateWalkIn) Execute(
	ctx context.Context,
	in CreateWalkInInput,
) (*models.Appointment, error) {

	if in.WorkshopID == uuid.Nil || strings.TrimSpace(in.ClientName) == "" {
		return nil, domain.ErrInvalidRequest
	}

	var actor *uuid.UUID
	if in.ActorID != uuid.Nil {
		actor = &in.ActorID
	}

	return uc.booker.book(ctx, bookingRequest{
		WorkshopID:   in.WorkshopID,
		ActorID:      actor,
		Source:       domain.SourceWalkIn,
		ServiceRef:   in.Service,
		Date:         in.Date,
		Time:         in.Time,
		ClientName:   in.ClientName,
		VehicleModel: in.VehicleModel,
		Notes:        in.Notes,
	})
}
