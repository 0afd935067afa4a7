package handlers

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/workshop-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/workshop-scheduler/internal/dto"
	"github.com/BruksfildServices01/workshop-scheduler/internal/models"
	ucAppointment "github.com/BruksfildServices01/workshop-scheduler/internal/usecase/appointment"
)

// Each interface is satisfied by the use case of the same name in
// usecase/appointment.

type serviceLister interface {
	Execute(ctx context.Context, workshopID uuid.UUID) ([]models.Service, error)
}

type availabilityGetter interface {
	Execute(ctx context.Context, workshopID uuid.UUID, date string) (*domain.Availability, error)
}

type webReservationCreator interface {
	Execute(ctx context.Context, in ucAppointment.CreateWebReservationInput) (*models.Appointment, error)
}

type walkInCreator interface {
	Execute(ctx context.Context, in ucAppointment.CreateWalkInInput) (*models.Appointment, error)
}

type reservationDeleter interface {
	Execute(ctx context.Context, clientID uuid.UUID, appointmentID uuid.UUID) error
}

type reviewSubmitter interface {
	Execute(ctx context.Context, in ucAppointment.SubmitReviewInput) (*models.Review, error)
}

type appointmentCompleter interface {
	Execute(ctx context.Context, workshopID uuid.UUID, actorID *uuid.UUID, appointmentID uuid.UUID) (*models.Appointment, error)
}

type appointmentCanceller interface {
	Execute(ctx context.Context, workshopID uuid.UUID, actorID *uuid.UUID, appointmentID uuid.UUID, reason string) (*models.Appointment, error)
}

type walkInDeleter interface {
	Execute(ctx context.Context, workshopID uuid.UUID, actorID *uuid.UUID, appointmentID uuid.UUID) error
}

type dayLister interface {
	Execute(ctx context.Context, workshopID uuid.UUID, date string) ([]dto.AppointmentListDTO, error)
}

type monthLister interface {
	Execute(ctx context.Context, workshopID uuid.UUID, year int, month int) ([]dto.MonthDayDTO, error)
}

type summaryGetter interface {
	Execute(ctx context.Context, workshopID uuid.UUID) (*dto.WorkshopSummaryDTO, error)
}

type rosterLister interface {
	Execute(ctx context.Context, workshopID uuid.UUID) (*dto.MechanicRosterDTO, error)
}

type mechanicCreator interface {
	Execute(ctx context.Context, workshopID uuid.UUID, actorID *uuid.UUID, name string) (*models.Mechanic, error)
}

type mechanicRenamer interface {
	Execute(ctx context.Context, workshopID uuid.UUID, actorID *uuid.UUID, mechanicID uuid.UUID, name string) (*models.Mechanic, error)
}

type mechanicActivator interface {
	Execute(ctx context.Context, workshopID uuid.UUID, actorID *uuid.UUID, mechanicID uuid.UUID, active bool) (*models.Mechanic, error)
}

var (
	_ serviceLister         = (*ucAppointment.ListServices)(nil)
	_ availabilityGetter    = (*ucAppointment.GetAvailability)(nil)
	_ webReservationCreator = (*ucAppointment.CreateWebReservation)(nil)
	_ walkInCreator         = (*ucAppointment.CreateWalkIn)(nil)
	_ reservationDeleter    = (*ucAppointment.DeleteReservation)(nil)
	_ reviewSubmitter       = (*ucAppointment.SubmitReview)(nil)
	_ appointmentCompleter  = (*ucAppointment.CompleteAppointment)(nil)
	_ appointmentCanceller  = (*ucAppointment.CancelAppointment)(nil)
	_ walkInDeleter         = (*ucAppointment.DeleteWalkIn)(nil)
	_ dayLister             = (*ucAppointment.ListAppointmentsByDate)(nil)
	_ monthLister           = (*ucAppointment.ListAppointmentsByMonth)(nil)
	_ summaryGetter         = (*ucAppointment.GetWorkshopSummary)(nil)
	_ rosterLister          = (*ucAppointment.ListMechanics)(nil)
	_ mechanicCreator       = (*ucAppointment.CreateMechanic)(nil)
	_ mechanicRenamer       = (*ucAppointment.RenameMechanic)(nil)
	_ mechanicActivator     = (*ucAppointment.SetMechanicActive)(nil)
)
