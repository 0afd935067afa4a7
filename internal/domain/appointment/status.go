package appointment

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type Source string

const (
	SourceWeb    Source = "web"
	SourceWalkIn Source = "walk_in"
)

// ===============================
// Validations
// ===============================

// CanCancel: only confirmed appointments can be cancelled.
func CanCancel(current Status) error {
	if current != StatusConfirmed {
		return ErrInvalidTransition
	}
	return nil
}

// CanComplete: only confirmed appointments can be completed.
func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return ErrInvalidTransition
	}
	return nil
}

// CanDelete: hard deletion frees the slot, so it is only allowed while confirmed.
func CanDelete(current Status) error {
	if current != StatusConfirmed {
		return ErrInvalidTransition
	}
	return nil
}

func InitialStatus() Status {
	return StatusConfirmed
}

// Occupies reports whether an appointment in this status holds its slot.
func (s Status) Occupies() bool {
	return s != StatusCancelled
}
