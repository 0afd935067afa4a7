package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Workshop struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID uuid.UUID `gorm:"type:uuid;index;not null" json:"owner_id"`

	Name    string `gorm:"size:100;not null" json:"name"`
	Address string `gorm:"size:255" json:"address"`
	Phone   string `gorm:"size:20" json:"phone"`

	OpeningTime string `gorm:"size:5;not null;default:'08:00'" json:"opening_time"`
	ClosingTime string `gorm:"size:5;not null;default:'18:00'" json:"closing_time"`

	// Plan ceiling. Only gates mechanic creation.
	SimultaneousCapacity int `gorm:"not null;default:1" json:"simultaneous_capacity"`
	OffsetMinutes        int `gorm:"not null;default:-300" json:"offset_minutes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (w *Workshop) BeforeCreate(*gorm.DB) error {
	assignID(&w.ID)
	return nil
}

func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
