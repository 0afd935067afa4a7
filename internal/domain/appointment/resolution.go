package appointment

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/workshop-scheduler/internal/models"
)

// ===============================
// Service resolution chain
// ===============================

type Strategy string

const (
	StrategyExactMatch   Strategy = "exact_match"
	StrategyNameMatch    Strategy = "name_match"
	StrategyAnyAvailable Strategy = "any_available"
	StrategyNone         Strategy = "none"
)

type ServiceResolution struct {
	Service  models.Service
	Strategy Strategy
	// Empty for an exact match.
	Note string
}

type serviceStrategy struct {
	strategy Strategy
	match    func(requested string, services []models.Service) (models.Service, bool)
	note     func(requested string, found models.Service) string
}

// serviceChain is evaluated in order; services are expected in creation order.
var serviceChain = []serviceStrategy{
	{
		strategy: StrategyExactMatch,
		match:    matchByID,
	},
	{
		strategy: StrategyNameMatch,
		match:    matchByName,
		note: func(requested string, found models.Service) string {
			return fmt.Sprintf("Servicio original '%s' no encontrado. Asignado por coincidencia de nombre: %s.", requested, found.Name)
		},
	},
	{
		strategy: StrategyAnyAvailable,
		match:    matchFirst,
		note: func(requested string, found models.Service) string {
			return fmt.Sprintf("Servicio original '%s' no encontrado. Asignado servicio por defecto: %s.", requested, found.Name)
		},
	},
}

// ResolveService picks the workshop service for a possibly stale id or a
// free-text name. It fails with ErrNoServicesConfigured only when the workshop
// has no services at all.
func ResolveService(requested string, services []models.Service) (ServiceResolution, error) {
	requested = strings.TrimSpace(requested)

	for _, step := range serviceChain {
		found, ok := step.match(requested, services)
		if !ok {
			continue
		}
		res := ServiceResolution{Service: found, Strategy: step.strategy}
		if step.note != nil {
			res.Note = step.note(requested, found)
		}
		return res, nil
	}

	return ServiceResolution{Strategy: StrategyNone}, ErrNoServicesConfigured
}

func matchByID(requested string, services []models.Service) (models.Service, bool) {
	id, err := uuid.Parse(requested)
	if err != nil {
		return models.Service{}, false
	}
	for _, s := range services {
		if s.ID == id {
			return s, true
		}
	}
	return models.Service{}, false
}

func matchByName(requested string, services []models.Service) (models.Service, bool) {
	needle := strings.ToLower(requested)
	if needle == "" {
		return models.Service{}, false
	}
	for _, s := range services {
		if strings.Contains(strings.ToLower(s.Name), needle) {
			return s, true
		}
	}
	return models.Service{}, false
}

func matchFirst(_ string, services []models.Service) (models.Service, bool) {
	if len(services) == 0 {
		return models.Service{}, false
	}
	return services[0], true
}

// ===============================
// Mechanic assignment
// ===============================

// AssignMechanic returns the first active mechanic (creation order) not in
// taken. No active mechanic is a configuration error; all of them taken is a
// booking conflict.
func AssignMechanic(mechanics []models.Mechanic, taken map[uuid.UUID]bool) (models.Mechanic, error) {
	active := 0
	for _, m := range mechanics {
		if !m.Active {
			continue
		}
		active++
		if !taken[m.ID] {
			return m, nil
		}
	}
	if active == 0 {
		return models.Mechanic{}, ErrNoActiveMechanic
	}
	return models.Mechanic{}, ErrSlotAlreadyBooked
}
