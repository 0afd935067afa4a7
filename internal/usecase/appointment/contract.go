package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/workshop-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/workshop-scheduler/internal/domain/appointment"
)

// TimeProvider returns the current instant.
type TimeProvider interface {
	Now() time.Time
}

type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Auditor interface {
	Dispatch(ev audit.Event)
}

// AvailabilityCache holds per-slot occupancy for one workshop day. Get hands
// out the day's generation, even on a miss, and Set only stores under it, so
// an Invalidate that lands between the store read and Set wins. It is never
// asked to store a failed lookup.
type AvailabilityCache interface {
	Get(ctx context.Context, workshopID uuid.UUID, date string) (occ domain.Occupancy, gen int64, hit bool, err error)
	Set(ctx context.Context, workshopID uuid.UUID, date string, gen int64, occ domain.Occupancy) error
	Invalidate(ctx context.Context, workshopID uuid.UUID, date string) error
}

type Metrics interface {
	BookingCreated(source string)
	BookingRejected(source, reason string)
	Transition(to string)
	AvailabilityServed(outcome string)
	CacheLookup(hit bool)
}

// Deps bundles the collaborators shared by every use case.
type Deps struct {
	Repo    domain.Repository
	Audit   Auditor
	Cache   AvailabilityCache
	Clock   TimeProvider
	Log     Logger
	Metrics Metrics

	DefaultOffsetMinutes int
	SlotIncrement        time.Duration
}

func (d Deps) withDefaults() Deps {
	if d.Audit == nil {
		d.Audit = noopAuditor{}
	}
	if d.Cache == nil {
		d.Cache = noopCache{}
	}
	if d.Clock == nil {
		d.Clock = RealTimeProvider{}
	}
	if d.Log == nil {
		d.Log = noopLogger{}
	}
	if d.Metrics == nil {
		d.Metrics = noopMetrics{}
	}
	if d.SlotIncrement <= 0 {
		d.SlotIncrement = domain.DefaultSlotIncrement
	}
	return d
}

type noopAuditor struct{}

func (noopAuditor) Dispatch(audit.Event) {}

type noopCache struct{}

func (noopCache) Get(context.Context, uuid.UUID, string) (domain.Occupancy, int64, bool, error) {
	return nil, 0, false, nil
}
func (noopCache) Set(context.Context, uuid.UUID, string, int64, domain.Occupancy) error { return nil }
func (noopCache) Invalidate(context.Context, uuid.UUID, string) error                  { return nil }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type noopMetrics struct{}

func (noopMetrics) BookingCreated(string)          {}
func (noopMetrics) BookingRejected(string, string) {}
func (noopMetrics) Transition(string)              {}
func (noopMetrics) AvailabilityServed(string)      {}
func (noopMetrics) CacheLookup(bool)               {}
