package appointment

import (
	"github.com/google/uuid"

	"github.com/BruksfildServices01/workshop-scheduler/internal/models"
)

const (
	MinRating = 1
	MaxRating = 5
)

// CanReview: only the owning client, only once the work is completed.
func CanReview(ap *models.Appointment, clientID uuid.UUID, rating int) error {
	if rating < MinRating || rating > MaxRating {
		return ErrInvalidRequest
	}
	if err := EnsureClient(ap, clientID); err != nil {
		return err
	}
	if Status(ap.Status) != StatusCompleted {
		return ErrInvalidTransition
	}
	return nil
}
