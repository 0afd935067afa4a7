package appointment

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/workshop-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/workshop-scheduler/internal/timezone"
)

type GetAvailability struct {
	d Deps
}

func NewGetAvailability(d Deps) *GetAvailability {
	return &GetAvailability{d: d.withDefaults()}
}

// Execute classifies the workshop's grid for one local date. Any store
// failure is returned as is; it is never turned into an all-free day.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	workshopID uuid.UUID,
	date string,
) (*domain.Availability, error) {

	if err := timezone.ValidateDate(date); err != nil {
		return nil, err
	}

	shop, err := uc.d.Repo.GetWorkshop(ctx, workshopID)
	if err != nil {
		uc.d.Metrics.AvailabilityServed("error")
		return nil, err
	}

	window := windowFor(shop, uc.d.DefaultOffsetMinutes)

	grid, err := domain.NewGrid(shop.OpeningTime, shop.ClosingTime, uc.d.SlotIncrement)
	if err != nil {
		uc.d.Log.Error("workshop %s has invalid operating hours %q-%q: %v",
			workshopID, shop.OpeningTime, shop.ClosingTime, err)
		uc.d.Metrics.AvailabilityServed("error")
		return nil, err
	}

	mechanics, err := uc.d.Repo.ListActiveMechanics(ctx, workshopID)
	if err != nil {
		uc.d.Log.Error("availability workshop=%s date=%s: mechanics: %v", workshopID, date, err)
		uc.d.Metrics.AvailabilityServed("error")
		return nil, err
	}

	capacity := 0
	for _, m := range mechanics {
		if m.Active {
			capacity++
		}
	}

	occ, err := uc.occupancy(ctx, window, workshopID, date)
	if err != nil {
		uc.d.Log.Error("availability workshop=%s date=%s: appointments: %v", workshopID, date, err)
		uc.d.Metrics.AvailabilityServed("error")
		return nil, err
	}

	out, err := domain.Resolve(domain.ResolveInput{
		Window:    window,
		Grid:      grid,
		Date:      date,
		Capacity:  capacity,
		Occupancy: occ,
		Now:       uc.d.Clock.Now(),
	})
	if err != nil {
		return nil, err
	}
	out.WorkshopID = workshopID.String()

	uc.d.Metrics.AvailabilityServed("ok")
	return &out, nil
}

func (uc *GetAvailability) occupancy(
	ctx context.Context,
	window timezone.Window,
	workshopID uuid.UUID,
	date string,
) (domain.Occupancy, error) {

	// The generation is read before the store so a booking committed after
	// the fetch retires whatever this call caches.
	cached, gen, hit, cacheErr := uc.d.Cache.Get(ctx, workshopID, date)
	if cacheErr != nil {
		uc.d.Log.Warn("availability cache get workshop=%s date=%s: %v", workshopID, date, cacheErr)
	}
	uc.d.Metrics.CacheLookup(hit)
	if hit {
		return cached, nil
	}

	start, err := window.StartOfDay(date)
	if err != nil {
		return nil, err
	}
	end, err := window.EndOfDay(date)
	if err != nil {
		return nil, err
	}

	appointments, err := uc.d.Repo.ListAppointments(ctx, domain.AppointmentFilter{
		WorkshopID:       workshopID,
		From:             start,
		To:               timezone.LastInstant(end),
		ExcludeCancelled: true,
	})
	if err != nil {
		return nil, err
	}

	occ := domain.CountByStart(window, appointments)

	if cacheErr != nil {
		return occ, nil
	}
	if err := uc.d.Cache.Set(ctx, workshopID, date, gen, occ); err != nil {
		uc.d.Log.Warn("availability cache set workshop=%s date=%s: %v", workshopID, date, err)
	}
	return occ, nil
}
