package appointment

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/workshop-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/workshop-scheduler/internal/dto"
	"github.com/BruksfildServices01/workshop-scheduler/internal/timezone"
)

// ListAppointmentsByDate is the admin day agenda, cancelled rows included.
type ListAppointmentsByDate struct {
	d Deps
}

func NewListAppointmentsByDate(d Deps) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{d: d.withDefaults()}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	workshopID uuid.UUID,
	date string,
) ([]dto.AppointmentListDTO, error) {

	if err := timezone.ValidateDate(date); err != nil {
		return nil, err
	}

	shop, err := uc.d.Repo.GetWorkshop(ctx, workshopID)
	if err != nil {
		return nil, err
	}

	window := windowFor(shop, uc.d.DefaultOffsetMinutes)

	start, err := window.StartOfDay(date)
	if err != nil {
		return nil, err
	}
	end, err := window.EndOfDay(date)
	if err != nil {
		return nil, err
	}

	appointments, err := uc.d.Repo.ListAppointments(ctx, domain.AppointmentFilter{
		WorkshopID:    workshopID,
		From:          start,
		To:            timezone.LastInstant(end),
		WithRelations: true,
	})
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.NewAppointmentList(window, ap))
	}

	return out, nil
}
