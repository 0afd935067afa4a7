package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/workshop-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/workshop-scheduler/internal/models"
)

func TestGetAvailability_EmptyDayIsAllFree(t *testing.T) {
	f := newFixture(t)
	uc := NewGetAvailability(f.deps)

	got, err := uc.Execute(context.Background(), f.workshop.ID, "2024-05-20")
	require.NoError(t, err)

	assert.Len(t, got.FreeSlots, 20)
	assert.Equal(t, "08:00", got.FreeSlots[0])
	assert.Equal(t, "17:30", got.FreeSlots[19])
	assert.Empty(t, got.BusySlots)
	assert.Equal(t, 1, got.Capacity)
}

func TestGetAvailability_BookedSlotBecomesBusy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := NewCreateWebReservation(f.deps).Execute(ctx, f.webInput("2024-05-20", "10:00"))
	require.NoError(t, err)

	got, err := NewGetAvailability(f.deps).Execute(ctx, f.workshop.ID, "2024-05-20")
	require.NoError(t, err)

	assert.Equal(t, []string{"10:00"}, got.BusySlots)
	assert.NotContains(t, got.FreeSlots, "10:00")

	other, err := NewGetAvailability(f.deps).Execute(ctx, f.workshop.ID, "2024-05-21")
	require.NoError(t, err)
	assert.Empty(t, other.BusySlots)
}

func TestGetAvailability_IsIdempotentAndCached(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := NewGetAvailability(f.deps)

	first, err := uc.Execute(ctx, f.workshop.ID, "2024-05-20")
	require.NoError(t, err)
	second, err := uc.Execute(ctx, f.workshop.ID, "2024-05-20")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, f.repo.listCalls)
}

func TestGetAvailability_BookingInvalidatesCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := NewGetAvailability(f.deps)

	_, err := uc.Execute(ctx, f.workshop.ID, "2024-05-20")
	require.NoError(t, err)

	_, err = NewCreateWebReservation(f.deps).Execute(ctx, f.webInput("2024-05-20", "09:00"))
	require.NoError(t, err)
	assert.Contains(t, f.cache.invalidated, "2024-05-20")

	got, err := uc.Execute(ctx, f.workshop.ID, "2024-05-20")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00"}, got.BusySlots)
}

func TestGetAvailability_StoreFailureIsNotAllFree(t *testing.T) {
	f := newFixture(t)
	f.repo.failAppointments = true

	got, err := NewGetAvailability(f.deps).Execute(context.Background(), f.workshop.ID, "2024-05-20")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Empty(t, f.cache.entries)
}

func TestGetAvailability_CapacityFollowsActiveMechanics(t *testing.T) {
	f := newFixture(t)
	f.addMechanic("Luis")
	ctx := context.Background()

	_, err := NewCreateWebReservation(f.deps).Execute(ctx, f.webInput("2024-05-20", "10:00"))
	require.NoError(t, err)

	got, err := NewGetAvailability(f.deps).Execute(ctx, f.workshop.ID, "2024-05-20")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Capacity)
	assert.Contains(t, got.FreeSlots, "10:00")

	f.repo.mechanics = nil
	f.cache.entries = map[string]domain.Occupancy{}
	got, err = NewGetAvailability(f.deps).Execute(ctx, f.workshop.ID, "2024-05-20")
	require.NoError(t, err)
	assert.Empty(t, got.FreeSlots)
	assert.Len(t, got.BusySlots, 20)
}

func TestGetAvailability_ValidationBeforeStore(t *testing.T) {
	f := newFixture(t)
	_, err := NewGetAvailability(f.deps).Execute(context.Background(), f.workshop.ID, "20-05-2024")
	assert.ErrorIs(t, err, domain.ErrInvalidDateFormat)
	assert.Zero(t, f.repo.listCalls)

	_, err = NewGetAvailability(f.deps).Execute(context.Background(), uuid.New(), "2024-05-20")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetAvailability_PastSlotsToday(t *testing.T) {
	f := newFixture(t)

	got, err := NewGetAvailability(f.deps).Execute(context.Background(), f.workshop.ID, "2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, "12:00", got.FreeSlots[0])
	assert.Len(t, got.PastSlots, 8)
}

// bookingDuringFetch commits a booking after the availability read has taken
// its snapshot and before that read reaches the cache.
type bookingDuringFetch struct {
	*memoryRepo
	book func()
	done bool
}

func (r *bookingDuringFetch) ListAppointments(ctx context.Context, f domain.AppointmentFilter) ([]models.Appointment, error) {
	out, err := r.memoryRepo.ListAppointments(ctx, f)
	if err == nil && !r.done {
		r.done = true
		r.book()
	}
	return out, err
}

func TestGetAvailability_BookingDuringFetchIsNotCachedAway(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	racing := &bookingDuringFetch{memoryRepo: f.repo}
	racing.book = func() {
		_, err := NewCreateWebReservation(f.deps).Execute(ctx, f.webInput("2024-05-20", "10:00"))
		require.NoError(t, err)
	}

	readDeps := f.deps
	readDeps.Repo = racing
	uc := NewGetAvailability(readDeps)

	first, err := uc.Execute(ctx, f.workshop.ID, "2024-05-20")
	require.NoError(t, err)
	require.True(t, racing.done)
	assert.Contains(t, first.FreeSlots, "10:00")

	second, err := uc.Execute(ctx, f.workshop.ID, "2024-05-20")
	require.NoError(t, err)
	assert.Contains(t, second.BusySlots, "10:00")
	assert.NotContains(t, second.FreeSlots, "10:00")

	third, err := uc.Execute(ctx, f.workshop.ID, "2024-05-20")
	require.NoError(t, err)
	assert.Equal(t, second, third)
}

func TestGetAvailability_CountsOnlyTheLocalDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	shop := f.repo.workshops[f.workshop.ID]
	shop.OpeningTime, shop.ClosingTime = "00:00", "23:30"
	f.repo.workshops[shop.ID] = shop

	place := func(utc string) {
		start, err := time.Parse(time.RFC3339, utc)
		require.NoError(t, err)
		ap := models.Appointment{
			WorkshopID: shop.ID,
			ServiceID:  f.oil.ID,
			MechanicID: f.mechanic.ID,
			StartTime:  start,
			EndTime:    start.Add(time.Hour),
			Status:     string(domain.StatusConfirmed),
			Source:     string(domain.SourceWalkIn),
		}
		require.NoError(t, f.repo.CreateAppointment(ctx, &ap))
	}

	// 23:00 on the 19th in Lima, already the 20th in UTC.
	place("2024-05-20T04:00:00Z")
	// 20:00 on the 20th in Lima, already the 21st in UTC.
	place("2024-05-21T01:00:00Z")

	uc := NewGetAvailability(f.deps)

	day, err := uc.Execute(ctx, shop.ID, "2024-05-20")
	require.NoError(t, err)
	assert.Equal(t, []string{"20:00"}, day.BusySlots)
	assert.Contains(t, day.FreeSlots, "23:00")

	prev, err := uc.Execute(ctx, shop.ID, "2024-05-19")
	require.NoError(t, err)
	assert.Equal(t, []string{"23:00"}, prev.BusySlots)

	next, err := uc.Execute(ctx, shop.ID, "2024-05-21")
	require.NoError(t, err)
	assert.Empty(t, next.BusySlots)

	agenda, err := NewListAppointmentsByDate(f.deps).Execute(ctx, shop.ID, "2024-05-20")
	require.NoError(t, err)
	require.Len(t, agenda, 1)
	assert.Equal(t, "20:00", agenda[0].LocalStart)
}

func TestGetAvailability_DeactivatedMechanicShrinksCapacityWithWarmCache(t *testing.T) {
	f := newFixture(t)
	luis := f.addMechanic("Luis")
	f.workshop.SimultaneousCapacity = 2
	f.repo.workshops[f.workshop.ID] = f.workshop
	ctx := context.Background()

	_, err := NewCreateWebReservation(f.deps).Execute(ctx, f.webInput("2024-05-20", "10:00"))
	require.NoError(t, err)

	uc := NewGetAvailability(f.deps)
	got, err := uc.Execute(ctx, f.workshop.ID, "2024-05-20")
	require.NoError(t, err)
	assert.Contains(t, got.FreeSlots, "10:00")

	_, err = NewSetMechanicActive(f.deps).Execute(ctx, f.workshop.ID, nil, luis.ID, false)
	require.NoError(t, err)

	calls := f.repo.listCalls
	got, err = uc.Execute(ctx, f.workshop.ID, "2024-05-20")
	require.NoError(t, err)
	assert.Equal(t, calls, f.repo.listCalls)
	assert.Equal(t, 1, got.Capacity)
	assert.Contains(t, got.BusySlots, "10:00")
}
