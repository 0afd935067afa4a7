package appointment

import (
	"context"
	"sort"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/workshop-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/workshop-scheduler/internal/dto"
	"github.com/BruksfildServices01/workshop-scheduler/internal/timezone"
)

type ListAppointmentsByMonth struct {
	d Deps
}

func NewListAppointmentsByMonth(d Deps) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{d: d.withDefaults()}
}

// Execute returns one entry per local day of the month that has appointments.
func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	workshopID uuid.UUID,
	year int,
	month int,
) ([]dto.MonthDayDTO, error) {

	shop, err := uc.d.Repo.GetWorkshop(ctx, workshopID)
	if err != nil {
		return nil, err
	}

	window := windowFor(shop, uc.d.DefaultOffsetMinutes)

	start, end, err := window.MonthRange(year, month)
	if err != nil {
		return nil, err
	}

	appointments, err := uc.d.Repo.ListAppointments(ctx, domain.AppointmentFilter{
		WorkshopID: workshopID,
		From:       start,
		To:         timezone.LastBefore(end),
	})
	if err != nil {
		return nil, err
	}

	days := map[string]*dto.MonthDayDTO{}
	for _, ap := range appointments {
		date := window.DateOf(ap.StartTime)
		day, ok := days[date]
		if !ok {
			day = &dto.MonthDayDTO{Date: date}
			days[date] = day
		}
		day.Total++
		switch domain.Status(ap.Status) {
		case domain.StatusConfirmed:
			day.Confirmed++
		case domain.StatusCompleted:
			day.Completed++
		case domain.StatusCancelled:
			day.Cancelled++
		}
	}

	out := make([]dto.MonthDayDTO, 0, len(days))
	for _, day := range days {
		out = append(out, *day)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })

	return out, nil
}
