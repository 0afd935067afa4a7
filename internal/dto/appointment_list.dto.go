package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/workshop-scheduler/internal/models"
	"github.com/BruksfildServices01/workshop-scheduler/internal/timezone"
)

type AppointmentListDTO struct {
	ID         uuid.UUID `json:"id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	LocalStart string    `json:"local_start"`
	LocalEnd   string    `json:"local_end"`

	Status string `json:"status"`
	Source string `json:"source"`

	ClientName   string `json:"client_name"`
	VehicleModel string `json:"vehicle_model"`
	ServiceName  string `json:"service_name"`
	MechanicName string `json:"mechanic_name"`
	Notes        string `json:"internal_notes"`
}

func NewAppointmentList(w timezone.Window, ap models.Appointment) AppointmentListDTO {
	out := AppointmentListDTO{
		ID:           ap.ID,
		StartTime:    ap.StartTime,
		EndTime:      ap.EndTime,
		LocalStart:   w.ToLocalTime(ap.StartTime),
		LocalEnd:     w.ToLocalTime(ap.EndTime),
		Status:       ap.Status,
		Source:       ap.Source,
		ClientName:   ap.ClientName,
		VehicleModel: ap.VehicleModel,
		Notes:        ap.InternalNotes,
	}
	if ap.Service != nil {
		out.ServiceName = ap.Service.Name
	}
	if ap.Mechanic != nil {
		out.MechanicName = ap.Mechanic.Name
	}
	return out
}

// MonthDayDTO summarizes one local day of the month view.
type MonthDayDTO struct {
	Date      string `json:"date"`
	Total     int    `json:"total"`
	Confirmed int    `json:"confirmed"`
	Completed int    `json:"completed"`
	Cancelled int    `json:"cancelled"`
}

type WorkshopSummaryDTO struct {
	ID                   uuid.UUID `json:"id"`
	Name                 string    `json:"name"`
	OpeningTime          string    `json:"opening_time"`
	ClosingTime          string    `json:"closing_time"`
	OffsetMinutes        int       `json:"offset_minutes"`
	SimultaneousCapacity int       `json:"simultaneous_capacity"`
	ActiveMechanics      int       `json:"active_mechanics"`
	Services             int       `json:"services"`
}

type MechanicRosterDTO struct {
	Mechanics       []models.Mechanic `json:"mechanics"`
	Capacity        int               `json:"capacity"`
	ActiveMechanics int               `json:"active_mechanics"`
}
