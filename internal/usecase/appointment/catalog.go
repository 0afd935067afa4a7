package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/workshop-scheduler/internal/dto"
	"github.com/BruksfildServices01/workshop-scheduler/internal/models"
)

// ListServices is the public service catalog of a workshop.
type ListServices struct {
	d Deps
}

func NewListServices(d Deps) *ListServices {
	return &ListServices{d: d.withDefaults()}
}

func (uc *ListServices) Execute(ctx context.Context, workshopID uuid.UUID) ([]models.Service, error) {
	if _, err := uc.d.Repo.GetWorkshop(ctx, workshopID); err != nil {
		return nil, err
	}
	return uc.d.Repo.ListServices(ctx, workshopID)
}

type GetWorkshopSummary struct {
	d Deps
}

func NewGetWorkshopSummary(d Deps) *GetWorkshopSummary {
	return &GetWorkshopSummary{d: d.withDefaults()}
}

func (uc *GetWorkshopSummary) Execute(ctx context.Context, workshopID uuid.UUID) (*dto.WorkshopSummaryDTO, error) {
	shop, err := uc.d.Repo.GetWorkshop(ctx, workshopID)
	if err != nil {
		return nil, err
	}
	mechanics, err := uc.d.Repo.ListActiveMechanics(ctx, workshopID)
	if err != nil {
		return nil, err
	}
	services, err := uc.d.Repo.ListServices(ctx, workshopID)
	if err != nil {
		return nil, err
	}

	return &dto.WorkshopSummaryDTO{
		ID:                   shop.ID,
		Name:                 shop.Name,
		OpeningTime:          shop.OpeningTime,
		ClosingTime:          shop.ClosingTime,
		OffsetMinutes:        windowFor(shop, uc.d.DefaultOffsetMinutes).OffsetMinutes(),
		SimultaneousCapacity: shop.SimultaneousCapacity,
		ActiveMechanics:      len(mechanics),
		Services:             len(services),
	}, nil
}
