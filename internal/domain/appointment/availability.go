package appointment

import (
	"time"

	"github.com/BruksfildServices01/workshop-scheduler/internal/models"
	"github.com/BruksfildServices01/workshop-scheduler/internal/timezone"
)

// Availability classifies every grid slot of a local day into exactly one of
// the three lists.
type Availability struct {
	WorkshopID string   `json:"workshopId"`
	Date       string   `json:"date"`
	Capacity   int      `json:"capacity"`
	FreeSlots  []string `json:"freeSlots"`
	BusySlots  []string `json:"busySlots"`
	PastSlots  []string `json:"pastSlots"`
}

// Occupancy counts slot-holding appointments per local "HH:mm" start.
type Occupancy map[string]int

func CountByStart(w timezone.Window, appointments []models.Appointment) Occupancy {
	out := Occupancy{}
	for _, ap := range appointments {
		if !Status(ap.Status).Occupies() {
			continue
		}
		out[w.ToLocalTime(ap.StartTime)]++
	}
	return out
}

// IsBusy: a slot is busy once its occupancy reaches capacity. Capacity zero
// (no active mechanics) makes every slot busy.
func IsBusy(count, capacity int) bool {
	return count >= capacity
}

type ResolveInput struct {
	Window    timezone.Window
	Grid      Grid
	Date      string
	Capacity  int
	Occupancy Occupancy
	Now       time.Time
}

// Resolve never looks at the store: callers must only reach it with a
// successfully fetched occupancy.
func Resolve(in ResolveInput) (Availability, error) {
	if _, err := in.Window.StartOfDay(in.Date); err != nil {
		return Availability{}, err
	}

	out := Availability{
		Date:      in.Date,
		Capacity:  in.Capacity,
		FreeSlots: []string{},
		BusySlots: []string{},
		PastSlots: []string{},
	}

	today := in.Window.DateOf(in.Now)

	for slot := range in.Grid.Slots() {
		if IsBusy(in.Occupancy[slot], in.Capacity) {
			out.BusySlots = append(out.BusySlots, slot)
			continue
		}

		if in.Date == today {
			at, err := in.Window.Combine(in.Date, slot)
			if err != nil {
				return Availability{}, err
			}
			if at.Before(in.Now) {
				out.PastSlots = append(out.PastSlots, slot)
				continue
			}
		}

		out.FreeSlots = append(out.FreeSlots, slot)
	}

	return out, nil
}
