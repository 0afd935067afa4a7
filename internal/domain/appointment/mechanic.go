package appointment

import (
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/workshop-scheduler/internal/models"
)

// PlanCeiling is the workshop's simultaneous capacity, never below one.
func PlanCeiling(shop *models.Workshop) int {
	if shop == nil || shop.SimultaneousCapacity < 1 {
		return 1
	}
	return shop.SimultaneousCapacity
}

// CanAddActiveMechanic gates creating or reactivating a mechanic: the active
// roster may not grow past the plan ceiling.
func CanAddActiveMechanic(roster []models.Mechanic, shop *models.Workshop) error {
	active := 0
	for _, m := range roster {
		if m.Active {
			active++
		}
	}
	if active >= PlanCeiling(shop) {
		return ErrCapacityExceeded
	}
	return nil
}

func MechanicName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return "", ErrInvalidRequest
	}
	return name, nil
}

func EnsureMechanicWorkshop(m *models.Mechanic, workshopID uuid.UUID) error {
	if m.WorkshopID != workshopID {
		return ErrNotAuthorized
	}
	return nil
}
