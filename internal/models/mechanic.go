package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Mechanic struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	WorkshopID uuid.UUID `gorm:"type:uuid;index;not null" json:"workshop_id"`

	Name   string `gorm:"size:100;not null" json:"name"`
	Active bool   `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *Mechanic) BeforeCreate(*gorm.DB) error {
	assignID(&m.ID)
	return nil
}
