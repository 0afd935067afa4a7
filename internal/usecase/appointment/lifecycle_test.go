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

func book(t *testing.T, f *fixture, clock string) *models.Appointment {
	t.Helper()
	ap, err := NewCreateWebReservation(f.deps).Execute(context.Background(), f.webInput("2024-05-20", clock))
	require.NoError(t, err)
	return ap
}

func walkIn(t *testing.T, f *fixture, clock string) *models.Appointment {
	t.Helper()
	ap, err := NewCreateWalkIn(f.deps).Execute(context.Background(), CreateWalkInInput{
		WorkshopID: f.workshop.ID, ClientName: "Eva", Service: f.oil.ID.String(), Date: "2024-05-20", Time: clock,
	})
	require.NoError(t, err)
	return ap
}

func TestCancelAppointment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := NewCancelAppointment(f.deps)
	ap := book(t, f, "10:00")

	got, err := uc.Execute(ctx, f.workshop.ID, &f.workshop.OwnerID, ap.ID, "cliente reprogramó")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), got.Status)
	assert.NotNil(t, got.CancelledAt)
	assert.Contains(t, f.repo.appointments[ap.ID].InternalNotes, "cliente reprogramó")
	assert.Contains(t, f.cache.invalidated, "2024-05-20")

	_, err = uc.Execute(ctx, f.workshop.ID, nil, ap.ID, "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCompleteAppointment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ap := book(t, f, "10:00")

	got, err := NewCompleteAppointment(f.deps).Execute(ctx, f.workshop.ID, nil, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), got.Status)
	assert.NotNil(t, got.CompletedAt)

	_, err = NewCancelAppointment(f.deps).Execute(ctx, f.workshop.ID, nil, ap.ID, "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = NewCompleteAppointment(f.deps).Execute(ctx, f.workshop.ID, nil, ap.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestLifecycle_ForeignWorkshopIsNotAuthorized(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ap := book(t, f, "10:00")
	other := uuid.New()

	_, err := NewCompleteAppointment(f.deps).Execute(ctx, other, nil, ap.ID)
	assert.ErrorIs(t, err, domain.ErrNotAuthorized)
	_, err = NewCancelAppointment(f.deps).Execute(ctx, other, nil, ap.ID, "")
	assert.ErrorIs(t, err, domain.ErrNotAuthorized)
	assert.ErrorIs(t, NewDeleteWalkIn(f.deps).Execute(ctx, other, nil, ap.ID), domain.ErrNotAuthorized)

	_, err = NewCompleteAppointment(f.deps).Execute(ctx, f.workshop.ID, nil, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteWalkIn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := NewDeleteWalkIn(f.deps)

	web := book(t, f, "10:00")
	assert.ErrorIs(t, uc.Execute(ctx, f.workshop.ID, nil, web.ID), domain.ErrInvalidTransition)

	w := walkIn(t, f, "11:00")
	require.NoError(t, uc.Execute(ctx, f.workshop.ID, nil, w.ID))
	assert.NotContains(t, f.repo.appointments, w.ID)
	assert.Contains(t, f.auditor.actions(), "appointment_deleted")

	// the freed slot is bookable again
	walkIn(t, f, "11:00")
}

func TestDeleteReservation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := NewDeleteReservation(f.deps)
	ap := book(t, f, "10:00")

	assert.ErrorIs(t, uc.Execute(ctx, uuid.New(), ap.ID), domain.ErrNotAuthorized)
	require.NoError(t, uc.Execute(ctx, f.client, ap.ID))
	assert.Empty(t, f.repo.appointments)
	assert.ErrorIs(t, uc.Execute(ctx, f.client, ap.ID), domain.ErrNotFound)

	done := book(t, f, "12:00")
	_, err := NewCompleteAppointment(f.deps).Execute(ctx, f.workshop.ID, nil, done.ID)
	require.NoError(t, err)
	assert.ErrorIs(t, uc.Execute(ctx, f.client, done.ID), domain.ErrInvalidTransition)
}

func TestSubmitReview(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := NewSubmitReview(f.deps)
	ap := book(t, f, "10:00")

	in := SubmitReviewInput{AppointmentID: ap.ID, ClientID: f.client, Rating: 5, Comment: " Excelente "}

	_, err := uc.Execute(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = NewCompleteAppointment(f.deps).Execute(ctx, f.workshop.ID, nil, ap.ID)
	require.NoError(t, err)

	review, err := uc.Execute(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "Excelente", review.Comment)
	assert.Equal(t, f.workshop.ID, review.WorkshopID)

	_, err = uc.Execute(ctx, in)
	assert.ErrorIs(t, err, domain.ErrAlreadyReviewed)

	in.ClientID = uuid.New()
	_, err = uc.Execute(ctx, in)
	assert.ErrorIs(t, err, domain.ErrNotAuthorized)
}

func TestListAppointments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ap := book(t, f, "10:00")
	walkIn(t, f, "08:00")
	_, err := NewCancelAppointment(f.deps).Execute(ctx, f.workshop.ID, nil, ap.ID, "")
	require.NoError(t, err)

	day, err := NewListAppointmentsByDate(f.deps).Execute(ctx, f.workshop.ID, "2024-05-20")
	require.NoError(t, err)
	require.Len(t, day, 2)
	assert.Equal(t, "08:00", day[0].LocalStart)
	assert.Equal(t, "09:00", day[0].LocalEnd)
	assert.Equal(t, "Cambio de aceite", day[0].ServiceName)
	assert.Equal(t, "Ana", day[0].MechanicName)
	assert.Equal(t, string(domain.StatusCancelled), day[1].Status)

	month, err := NewListAppointmentsByMonth(f.deps).Execute(ctx, f.workshop.ID, 2024, 5)
	require.NoError(t, err)
	require.Len(t, month, 1)
	assert.Equal(t, "2024-05-20", month[0].Date)
	assert.Equal(t, 2, month[0].Total)
	assert.Equal(t, 1, month[0].Cancelled)

	_, err = NewListAppointmentsByMonth(f.deps).Execute(ctx, f.workshop.ID, 2024, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidDateFormat)
}

func TestWorkshopSummaryAndCatalog(t *testing.T) {
	f := newFixture(t)
	f.addMechanic("Luis")
	ctx := context.Background()

	sum, err := NewGetWorkshopSummary(f.deps).Execute(ctx, f.workshop.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.ActiveMechanics)
	assert.Equal(t, 1, sum.SimultaneousCapacity)
	assert.Equal(t, -300, sum.OffsetMinutes)

	services, err := NewListServices(f.deps).Execute(ctx, f.workshop.ID)
	require.NoError(t, err)
	assert.Len(t, services, 1)

	_, err = NewListServices(f.deps).Execute(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListAppointments_BoundsKeepSubSecondStamps(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, nextMonth, err := f.window.MonthRange(2024, 5)
	require.NoError(t, err)

	place := func(start time.Time) {
		ap := models.Appointment{
			WorkshopID: f.workshop.ID,
			ServiceID:  f.oil.ID,
			MechanicID: f.mechanic.ID,
			StartTime:  start,
			EndTime:    start.Add(time.Hour),
			Status:     string(domain.StatusConfirmed),
			Source:     string(domain.SourceWalkIn),
		}
		require.NoError(t, f.repo.CreateAppointment(ctx, &ap))
	}
	place(nextMonth.Add(-500 * time.Millisecond))
	place(nextMonth)

	may, err := NewListAppointmentsByMonth(f.deps).Execute(ctx, f.workshop.ID, 2024, 5)
	require.NoError(t, err)
	require.Len(t, may, 1)
	assert.Equal(t, "2024-05-31", may[0].Date)
	assert.Equal(t, 1, may[0].Total)

	june, err := NewListAppointmentsByMonth(f.deps).Execute(ctx, f.workshop.ID, 2024, 6)
	require.NoError(t, err)
	require.Len(t, june, 1)
	assert.Equal(t, "2024-06-01", june[0].Date)

	day, err := NewListAppointmentsByDate(f.deps).Execute(ctx, f.workshop.ID, "2024-05-31")
	require.NoError(t, err)
	assert.Len(t, day, 1)
}
