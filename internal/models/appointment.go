package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	WorkshopID uuid.UUID `gorm:"type:uuid;not null;index:idx_appointments_workshop_start,priority:1" json:"workshop_id"`

	ServiceID uuid.UUID `gorm:"type:uuid;not null" json:"service_id"`
	Service   *Service  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service,omitempty"`

	MechanicID uuid.UUID `gorm:"type:uuid;not null" json:"mechanic_id"`
	Mechanic   *Mechanic `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"mechanic,omitempty"`

	// Nil for walk-ins.
	ClientID     *uuid.UUID `gorm:"type:uuid;index" json:"client_id"`
	ClientName   string     `gorm:"size:100" json:"client_name"`
	VehicleModel string     `gorm:"size:100" json:"vehicle_model"`

	StartTime time.Time `gorm:"not null;index:idx_appointments_workshop_start,priority:2" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	Status string `gorm:"size:20;not null;default:'confirmed'" json:"status"`
	Source string `gorm:"size:10;not null;default:'web'" json:"source"`

	InternalNotes string     `gorm:"type:text" json:"internal_notes"`
	CancelledAt   *time.Time `json:"cancelled_at"`
	CompletedAt   *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(*gorm.DB) error {
	assignID(&a.ID)
	return nil
}

func (a *Appointment) IsWalkIn() bool {
	return a.ClientID == nil
}
