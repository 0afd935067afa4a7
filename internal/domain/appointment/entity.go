package appointment

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/workshop-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time, reason string) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	if reason = strings.TrimSpace(reason); reason != "" {
		ap.InternalNotes = AppendNote(ap.InternalNotes, reason)
	}
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// ===============================
// Ownership
// ===============================

func EnsureWorkshop(ap *models.Appointment, workshopID uuid.UUID) error {
	if ap.WorkshopID != workshopID {
		return ErrNotAuthorized
	}
	return nil
}

func EnsureClient(ap *models.Appointment, clientID uuid.UUID) error {
	if ap.ClientID == nil || *ap.ClientID != clientID {
		return ErrNotAuthorized
	}
	return nil
}

func AppendNote(notes, note string) string {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return note
	}
	return notes + "\n" + note
}
