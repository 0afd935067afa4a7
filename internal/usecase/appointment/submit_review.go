package appointment

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/workshop-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/workshop-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/workshop-scheduler/internal/models"
)

type SubmitReviewInput struct {
	AppointmentID uuid.UUID
	ClientID      uuid.UUID
	Rating        int
	Comment       string
}

type SubmitReview struct {
	d Deps
}

func NewSubmitReview(d Deps) *SubmitReview {
	return &SubmitReview{d: d.withDefaults()}
}

func (uc *SubmitReview) Execute(
	ctx context.Context,
	in SubmitReviewInput,
) (*models.Review, error) {

	ap, err := uc.d.Repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.CanReview(ap, in.ClientID, in.Rating); err != nil {
		return nil, err
	}

	existing, err := uc.d.Repo.GetReviewByAppointment(ctx, ap.ID)
	switch {
	case err == nil && existing != nil:
		return nil, domain.ErrAlreadyReviewed
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	review := &models.Review{
		AppointmentID: ap.ID,
		WorkshopID:    ap.WorkshopID,
		ClientID:      in.ClientID,
		Rating:        in.Rating,
		Comment:       strings.TrimSpace(in.Comment),
	}

	if err := uc.d.Repo.CreateReview(ctx, review); err != nil {
		return nil, err
	}

	uc.d.Audit.Dispatch(audit.Event{
		WorkshopID: ap.WorkshopID,
		ActorID:    &in.ClientID,
		Action:     "review_submitted",
		Entity:     "review",
		EntityID:   &review.ID,
		Metadata:   map[string]any{"rating": in.Rating},
	})

	return review, nil
}
