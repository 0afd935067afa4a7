package appointment

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/workshop-scheduler/internal/models"
	"github.com/BruksfildServices01/workshop-scheduler/internal/timezone"
)

type fixture struct {
	repo     *memoryRepo
	cache    *memoryCache
	auditor  *recordingAuditor
	deps     Deps
	window   timezone.Window
	workshop models.Workshop
	oil      models.Service
	mechanic models.Mechanic
	client   uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	window := timezone.Fixed(-300)
	now, err := window.Combine("2024-05-01", "12:00")
	if err != nil {
		t.Fatal(err)
	}

	repo := newMemoryRepo()
	workshop := models.Workshop{
		ID:                   uuid.New(),
		OwnerID:              uuid.New(),
		Name:                 "Taller Central",
		OpeningTime:          "08:00",
		ClosingTime:          "18:00",
		SimultaneousCapacity: 1,
		OffsetMinutes:        -300,
	}
	repo.workshops[workshop.ID] = workshop

	oil := models.Service{ID: uuid.New(), WorkshopID: workshop.ID, Name: "Cambio de aceite", DurationMinutes: 60}
	repo.services = append(repo.services, oil)

	mechanic := models.Mechanic{ID: uuid.New(), WorkshopID: workshop.ID, Name: "Ana", Active: true}
	repo.mechanics = append(repo.mechanics, mechanic)

	cache := newMemoryCache()
	auditor := &recordingAuditor{}

	return &fixture{
		repo:    repo,
		cache:   cache,
		auditor: auditor,
		deps: Deps{
			Repo:                 repo,
			Audit:                auditor,
			Cache:                cache,
			Clock:                fixedClock{now: now},
			DefaultOffsetMinutes: -300,
			SlotIncrement:        30 * time.Minute,
		},
		window:   window,
		workshop: workshop,
		oil:      oil,
		mechanic: mechanic,
		client:   uuid.New(),
	}
}

func (f *fixture) addMechanic(name string) models.Mechanic {
	m := models.Mechanic{ID: uuid.New(), WorkshopID: f.workshop.ID, Name: name, Active: true}
	f.repo.mechanics = append(f.repo.mechanics, m)
	return m
}

func (f *fixture) webInput(date, clock string) CreateWebReservationInput {
	return CreateWebReservationInput{
		WorkshopID:   f.workshop.ID,
		ClientID:     f.client,
		ServiceID:    f.oil.ID.String(),
		Date:         date,
		Time:         clock,
		VehicleModel: "Toyota Yaris 2019",
	}
}
