package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/workshop-scheduler/internal/models"
)

// AppointmentFilter always carries a workshop id; From and To are inclusive.
type AppointmentFilter struct {
	WorkshopID       uuid.UUID
	From             time.Time
	To               time.Time
	ExcludeCancelled bool
	WithRelations    bool
}

// Repository is the storage collaborator. Implementations return ErrNotFound
// for missing rows and a StoreError for driver failures. A uniqueness
// violation surfaces as ErrSlotAlreadyBooked on CreateAppointment and as
// ErrAlreadyReviewed on CreateReview.
type Repository interface {
	// -------- Workshop --------
	GetWorkshop(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Workshop, error)

	GetWorkshopByOwner(
		ctx context.Context,
		ownerID uuid.UUID,
	) (*models.Workshop, error)

	// -------- Catalog --------
	ListServices(
		ctx context.Context,
		workshopID uuid.UUID,
	) ([]models.Service, error)

	ListActiveMechanics(
		ctx context.Context,
		workshopID uuid.UUID,
	) ([]models.Mechanic, error)

	// -------- Mechanic roster --------
	ListMechanics(
		ctx context.Context,
		workshopID uuid.UUID,
	) ([]models.Mechanic, error)

	GetMechanic(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Mechanic, error)

	CreateMechanic(
		ctx context.Context,
		m *models.Mechanic,
	) error

	UpdateMechanic(
		ctx context.Context,
		m *models.Mechanic,
	) error

	// -------- Appointment --------
	ListAppointments(
		ctx context.Context,
		filter AppointmentFilter,
	) ([]models.Appointment, error)

	GetAppointment(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointmentStatus(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uuid.UUID,
	) error

	// -------- Review --------
	GetReviewByAppointment(
		ctx context.Context,
		appointmentID uuid.UUID,
	) (*models.Review, error)

	CreateReview(
		ctx context.Context,
		review *models.Review,
	) error
}
