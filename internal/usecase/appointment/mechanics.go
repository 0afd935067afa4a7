package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/workshop-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/workshop-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/workshop-scheduler/internal/dto"
	"github.com/BruksfildServices01/workshop-scheduler/internal/models"
)

// Availability reads the active roster on every call and only caches
// occupancy, so roster changes take effect without touching the cache.

// ======================================================
// LIST
// ======================================================

type ListMechanics struct {
	d Deps
}

func NewListMechanics(d Deps) *ListMechanics {
	return &ListMechanics{d: d.withDefaults()}
}

func (uc *ListMechanics) Execute(ctx context.Context, workshopID uuid.UUID) (*dto.MechanicRosterDTO, error) {
	shop, err := uc.d.Repo.GetWorkshop(ctx, workshopID)
	if err != nil {
		return nil, err
	}
	roster, err := uc.d.Repo.ListMechanics(ctx, workshopID)
	if err != nil {
		return nil, err
	}

	active := 0
	for _, m := range roster {
		if m.Active {
			active++
		}
	}
	if roster == nil {
		roster = []models.Mechanic{}
	}

	return &dto.MechanicRosterDTO{
		Mechanics:       roster,
		Capacity:        domain.PlanCeiling(shop),
		ActiveMechanics: active,
	}, nil
}

// ======================================================
// CREATE
// ======================================================

type CreateMechanic struct {
	d Deps
}

func NewCreateMechanic(d Deps) *CreateMechanic {
	return &CreateMechanic{d: d.withDefaults()}
}

// Execute adds an active mechanic unless the plan ceiling is already met.
func (uc *CreateMechanic) Execute(
	ctx context.Context,
	workshopID uuid.UUID,
	actorID *uuid.UUID,
	name string,
) (*models.Mechanic, error) {

	name, err := domain.MechanicName(name)
	if err != nil {
		return nil, err
	}

	shop, err := uc.d.Repo.GetWorkshop(ctx, workshopID)
	if err != nil {
		return nil, err
	}
	roster, err := uc.d.Repo.ListMechanics(ctx, workshopID)
	if err != nil {
		return nil, err
	}
	if err := domain.CanAddActiveMechanic(roster, shop); err != nil {
		uc.d.Log.Warn("create mechanic workshop=%s rejected: %v", workshopID, err)
		return nil, err
	}

	m := &models.Mechanic{
		WorkshopID: workshopID,
		Name:       name,
		Active:     true,
	}
	if err := uc.d.Repo.CreateMechanic(ctx, m); err != nil {
		uc.d.Log.Error("create mechanic workshop=%s: %v", workshopID, err)
		return nil, err
	}

	uc.d.Audit.Dispatch(audit.Event{
		WorkshopID: workshopID,
		ActorID:    actorID,
		Action:     "mechanic_created",
		Entity:     "mechanic",
		EntityID:   &m.ID,
		Metadata:   map[string]any{"name": m.Name},
	})

	return m, nil
}

// ======================================================
// UPDATE
// ======================================================

type RenameMechanic struct {
	d Deps
}

func NewRenameMechanic(d Deps) *RenameMechanic {
	return &RenameMechanic{d: d.withDefaults()}
}

func (uc *RenameMechanic) Execute(
	ctx context.Context,
	workshopID uuid.UUID,
	actorID *uuid.UUID,
	mechanicID uuid.UUID,
	name string,
) (*models.Mechanic, error) {

	name, err := domain.MechanicName(name)
	if err != nil {
		return nil, err
	}

	m, err := loadMechanic(ctx, uc.d, workshopID, mechanicID)
	if err != nil {
		return nil, err
	}

	m.Name = name
	if err := uc.d.Repo.UpdateMechanic(ctx, m); err != nil {
		return nil, err
	}

	uc.d.Audit.Dispatch(audit.Event{
		WorkshopID: workshopID,
		ActorID:    actorID,
		Action:     "mechanic_renamed",
		Entity:     "mechanic",
		EntityID:   &m.ID,
		Metadata:   map[string]any{"name": m.Name},
	})

	return m, nil
}

type SetMechanicActive struct {
	d Deps
}

func NewSetMechanicActive(d Deps) *SetMechanicActive {
	return &SetMechanicActive{d: d.withDefaults()}
}

// Execute toggles a mechanic in or out of the capacity count. Reactivating
// goes through the same plan ceiling as creation.
func (uc *SetMechanicActive) Execute(
	ctx context.Context,
	workshopID uuid.UUID,
	actorID *uuid.UUID,
	mechanicID uuid.UUID,
	active bool,
) (*models.Mechanic, error) {

	m, err := loadMechanic(ctx, uc.d, workshopID, mechanicID)
	if err != nil {
		return nil, err
	}
	if m.Active == active {
		return m, nil
	}

	if active {
		shop, err := uc.d.Repo.GetWorkshop(ctx, workshopID)
		if err != nil {
			return nil, err
		}
		roster, err := uc.d.Repo.ListMechanics(ctx, workshopID)
		if err != nil {
			return nil, err
		}
		if err := domain.CanAddActiveMechanic(roster, shop); err != nil {
			uc.d.Log.Warn("activate mechanic=%s rejected: %v", mechanicID, err)
			return nil, err
		}
	}

	m.Active = active
	if err := uc.d.Repo.UpdateMechanic(ctx, m); err != nil {
		return nil, err
	}

	action := "mechanic_deactivated"
	if active {
		action = "mechanic_activated"
	}
	uc.d.Audit.Dispatch(audit.Event{
		WorkshopID: workshopID,
		ActorID:    actorID,
		Action:     action,
		Entity:     "mechanic",
		EntityID:   &m.ID,
	})

	return m, nil
}

func loadMechanic(ctx context.Context, d Deps, workshopID, mechanicID uuid.UUID) (*models.Mechanic, error) {
	m, err := d.Repo.GetMechanic(ctx, mechanicID)
	if err != nil {
		return nil, err
	}
	if err := domain.EnsureMechanicWorkshop(m, workshopID); err != nil {
		d.Log.Warn("workshop %s acted on mechanic %s of workshop %s", workshopID, mechanicID, m.WorkshopID)
		return nil, err
	}
	return m, nil
}
