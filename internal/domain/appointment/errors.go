package appointment

import (
	"github.com/BruksfildServices01/workshop-scheduler/internal/httperr"
	"github.com/BruksfildServices01/workshop-scheduler/internal/timezone"
)

// ===============================
// Error taxonomy
// ===============================

var (
	ErrInvalidDateFormat = timezone.ErrInvalidDate
	ErrInvalidTimeFormat = timezone.ErrInvalidTime
	ErrInvalidRequest    = httperr.ErrBusiness("invalid_request")

	ErrNoServicesConfigured = httperr.ErrBusiness("no_services_configured")
	ErrNoActiveMechanic     = httperr.ErrBusiness("no_active_mechanic")
	ErrCapacityExceeded     = httperr.ErrBusiness("capacity_exceeded")

	ErrSlotAlreadyBooked = httperr.ErrBusiness("slot_already_booked")
	ErrSlotInPast        = httperr.ErrBusiness("slot_in_past")
	ErrOutsideHours      = httperr.ErrBusiness("outside_operating_hours")
	ErrInvalidTransition = httperr.ErrBusiness("invalid_transition")
	ErrNotAuthorized     = httperr.ErrBusiness("not_authorized")
	ErrNotFound          = httperr.ErrBusiness("not_found")
	ErrAlreadyReviewed   = httperr.ErrBusiness("already_reviewed")

	ErrStoreUnavailable = httperr.ErrStoreUnavailable
)
