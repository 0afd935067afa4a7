package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/workshop-scheduler/internal/httperr"
	"github.com/BruksfildServices01/workshop-scheduler/internal/models"
	"github.com/BruksfildServices01/workshop-scheduler/internal/timezone"
)

// windowFor returns the workshop's fixed-offset window. An out-of-range
// stored offset falls back to the configured default.
func windowFor(shop *models.Workshop, defaultOffset int) timezone.Window {
	if shop != nil && timezone.IsValidOffset(shop.OffsetMinutes) {
		return timezone.Fixed(shop.OffsetMinutes)
	}
	return timezone.Fixed(defaultOffset)
}

func invalidate(ctx context.Context, d Deps, workshopID uuid.UUID, date string) {
	if err := d.Cache.Invalidate(ctx, workshopID, date); err != nil {
		d.Log.Warn("availability cache invalidate workshop=%s date=%s: %v", workshopID, date, err)
	}
}

// reason is the metric label for a failed operation.
func reason(err error) string {
	if code, ok := httperr.Code(err); ok {
		return code
	}
	if httperr.IsStore(err) {
		return "store_unavailable"
	}
	return "internal"
}
