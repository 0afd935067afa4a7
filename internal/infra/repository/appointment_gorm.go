package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/workshop-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/workshop-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/workshop-scheduler/internal/httperr"
	"github.com/BruksfildServices01/workshop-scheduler/internal/models"
)

const uniqueViolation = "23505"

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Workshop
// --------------------------------------------------

func (r *AppointmentGormRepository) GetWorkshop(
	ctx context.Context,
	id uuid.UUID,
) (*models.Workshop, error) {

	var shop models.Workshop
	if err := r.db.WithContext(ctx).First(&shop, "id = ?", id).Error; err != nil {
		return nil, translate("get workshop", err, nil)
	}
	return &shop, nil
}

func (r *AppointmentGormRepository) GetWorkshopByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) (*models.Workshop, error) {

	var shop models.Workshop
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		First(&shop).Error; err != nil {
		return nil, translate("get workshop by owner", err, nil)
	}
	return &shop, nil
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *AppointmentGormRepository) ListServices(
	ctx context.Context,
	workshopID uuid.UUID,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("workshop_id = ?", workshopID).
		Order("created_at ASC").
		Find(&services).Error; err != nil {
		return nil, translate("list services", err, nil)
	}
	return services, nil
}

func (r *AppointmentGormRepository) ListActiveMechanics(
	ctx context.Context,
	workshopID uuid.UUID,
) ([]models.Mechanic, error) {

	var mechanics []models.Mechanic
	if err := r.db.WithContext(ctx).
		Where("workshop_id = ? AND active = ?", workshopID, true).
		Order("created_at ASC").
		Find(&mechanics).Error; err != nil {
		return nil, translate("list active mechanics", err, nil)
	}
	return mechanics, nil
}

// --------------------------------------------------
// Mechanic roster
// --------------------------------------------------

func (r *AppointmentGormRepository) ListMechanics(
	ctx context.Context,
	workshopID uuid.UUID,
) ([]models.Mechanic, error) {

	var mechanics []models.Mechanic
	if err := r.db.WithContext(ctx).
		Where("workshop_id = ?", workshopID).
		Order("created_at ASC").
		Find(&mechanics).Error; err != nil {
		return nil, translate("list mechanics", err, nil)
	}
	return mechanics, nil
}

func (r *AppointmentGormRepository) GetMechanic(
	ctx context.Context,
	id uuid.UUID,
) (*models.Mechanic, error) {

	var m models.Mechanic
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate("get mechanic", err, nil)
	}
	return &m, nil
}

func (r *AppointmentGormRepository) CreateMechanic(
	ctx context.Context,
	m *models.Mechanic,
) error {

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translate("create mechanic", err, nil)
	}
	return nil
}

// UpdateMechanic writes name and active flag, scoped to the mechanic's
// workshop.
func (r *AppointmentGormRepository) UpdateMechanic(
	ctx context.Context,
	m *models.Mechanic,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Mechanic{}).
		Where("id = ? AND workshop_id = ?", m.ID, m.WorkshopID).
		Updates(map[string]any{
			"name":   m.Name,
			"active": m.Active,
		})
	if res.Error != nil {
		return translate("update mechanic", res.Error, nil)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.AppointmentFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Where(
			"workshop_id = ? AND start_time >= ? AND start_time <= ?",
			f.WorkshopID, f.From, f.To,
		)

	if f.ExcludeCancelled {
		q = q.Where("status <> ?", string(domain.StatusCancelled))
	}
	if f.WithRelations {
		q = q.Preload("Service").Preload("Mechanic")
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Order("created_at ASC").Find(&apps).Error; err != nil {
		return nil, translate("list appointments", err, nil)
	}
	return apps, nil
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, "id = ?", id).Error; err != nil {
		return nil, translate("get appointment", err, nil)
	}
	return &ap, nil
}

// CreateAppointment relies on the partial unique index
// (workshop_id, mechanic_id, start_time) WHERE status <> 'cancelled'.
func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	if err := r.db.WithContext(ctx).Omit("Service", "Mechanic").Create(ap).Error; err != nil {
		return translate("create appointment", err, domain.ErrSlotAlreadyBooked)
	}
	return nil
}

func (r *AppointmentGormRepository) UpdateAppointmentStatus(
	ctx context.Context,
	ap *models.Appointment,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", ap.ID).
		Updates(map[string]any{
			"status":         ap.Status,
			"internal_notes": ap.InternalNotes,
			"cancelled_at":   ap.CancelledAt,
			"completed_at":   ap.CompletedAt,
		})
	if res.Error != nil {
		return translate("update appointment", res.Error, domain.ErrSlotAlreadyBooked)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id uuid.UUID,
) error {

	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, "id = ?", id)
	if res.Error != nil {
		return translate("delete appointment", res.Error, nil)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Review
// --------------------------------------------------

func (r *AppointmentGormRepository) GetReviewByAppointment(
	ctx context.Context,
	appointmentID uuid.UUID,
) (*models.Review, error) {

	var review models.Review
	if err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		First(&review).Error; err != nil {
		return nil, translate("get review", err, nil)
	}
	return &review, nil
}

func (r *AppointmentGormRepository) CreateReview(
	ctx context.Context,
	review *models.Review,
) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return translate("create review", err, domain.ErrAlreadyReviewed)
	}
	return nil
}

// --------------------------------------------------
// Audit
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAuditLog(
	ctx context.Context,
	entry *models.AuditLog,
) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return translate("create audit log", err, nil)
	}
	return nil
}

func (r *AppointmentGormRepository) ListAuditLogs(
	ctx context.Context,
	f audit.Filter,
) ([]models.AuditLog, int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("workshop_id = ?", f.WorkshopID)

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate("count audit logs", err, nil)
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&logs).Error; err != nil {
		return nil, 0, translate("list audit logs", err, nil)
	}

	return logs, total, nil
}

// --------------------------------------------------
// Errors
// --------------------------------------------------

// translate maps driver errors to domain errors. conflict is returned for a
// unique violation when the caller has one to report.
func translate(op string, err error, conflict error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	if conflict != nil && isUniqueViolation(err) {
		return conflict
	}
	return httperr.Store(op, err)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// Compile-time checks
var (
	_ domain.Repository = (*AppointmentGormRepository)(nil)
	_ audit.Store       = (*AppointmentGormRepository)(nil)
)
