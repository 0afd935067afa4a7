package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Event struct {
	WorkshopID uuid.UUID
	ActorID    *uuid.UUID
	Action     string
	Entity     string
	EntityID   *uuid.UUID
	Metadata   any
}

type logFunc interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Dispatcher struct {
	logger *Logger
	log    logFunc
	queue  chan Event
	done   chan struct{}
	once   sync.Once
}

const (
	queueSize    = 100
	writeTimeout = 5 * time.Second
)

func NewDispatcher(logger *Logger, log logFunc) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		log:    log,
		queue:  make(chan Event, queueSize),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		if err := d.logger.Log(ctx, ev); err != nil {
			d.log.Error("audit: %s on %s: %v", ev.Action, ev.WorkshopID, err)
		}
		cancel()
	}
}

// Dispatch never blocks the request path: a full queue drops the event.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping %s", ev.Action)
	}
}

// Close drains queued events and stops the worker.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.queue)
	})
	<-d.done
}
