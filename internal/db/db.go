package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/workshop-scheduler/internal/config"
	"github.com/BruksfildServices01/workshop-scheduler/internal/models"
)

// activeSlotIndex makes the store the authority on double booking: at most one
// non-cancelled appointment per workshop, mechanic and start instant.
const activeSlotIndex = `
	CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_active_slot
	ON appointments (workshop_id, mechanic_id, start_time)
	WHERE status <> 'cancelled'
`

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	return db, nil
}

func Migrate(db *gorm.DB, defaultOffsetMinutes int) error {
	if err := db.AutoMigrate(
		&models.Workshop{},
		&models.Mechanic{},
		&models.Service{},
		&models.Appointment{},
		&models.Review{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	if err := db.Exec(activeSlotIndex).Error; err != nil {
		return fmt.Errorf("failed to create slot index: %w", err)
	}

	if err := db.Exec(`
		UPDATE workshops
		SET offset_minutes = ?
		WHERE offset_minutes IS NULL OR offset_minutes < -720 OR offset_minutes > 840
	`, defaultOffsetMinutes).Error; err != nil {
		return fmt.Errorf("failed to backfill offsets: %w", err)
	}

	return nil
}
