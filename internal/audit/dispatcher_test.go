package audit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/workshop-scheduler/internal/logger"
	"github.com/BruksfildServices01/workshop-scheduler/internal/models"
)

type memoryStore struct {
	mu      sync.Mutex
	entries []models.AuditLog
	fail    bool
}

func (s *memoryStore) CreateAuditLog(_ context.Context, entry *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("boom")
	}
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *memoryStore) ListAuditLogs(context.Context, Filter) ([]models.AuditLog, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries, int64(len(s.entries)), nil
}

func TestDispatcher_PersistsEvents(t *testing.T) {
	store := &memoryStore{}
	d := NewDispatcher(New(store), logger.Nop())

	workshop := uuid.New()
	entity := uuid.New()
	d.Dispatch(Event{
		WorkshopID: workshop,
		Action:     "appointment_created",
		Entity:     "appointment",
		EntityID:   &entity,
		Metadata:   map[string]any{"slot": "10:00"},
	})
	d.Close()

	require.Len(t, store.entries, 1)
	got := store.entries[0]
	assert.Equal(t, workshop, got.WorkshopID)
	assert.Equal(t, "appointment_created", got.Action)
	assert.Equal(t, &entity, got.EntityID)
	assert.JSONEq(t, `{"slot":"10:00"}`, got.Metadata)
}

func TestDispatcher_StoreFailureDoesNotStopWorker(t *testing.T) {
	store := &memoryStore{fail: true}
	d := NewDispatcher(New(store), logger.Nop())

	d.Dispatch(Event{Action: "a"})
	d.Dispatch(Event{Action: "b"})
	d.Close()

	assert.Empty(t, store.entries)
	assert.NotPanics(t, d.Close)
}
