package audit

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
)

const (
	ActionAppointmentCreated  = "appointment_created"
	ActionAppointmentConflict = "appointment_conflict"
	ActionAppointmentStatus   = "appointment_status_changed"
	ActionAppointmentDeleted  = "appointment_deleted"
	ActionStatsUpdateFailed   = "stats_update_failed"
	ActionStatsDrift          = "stats_drift"
	ActionStatsRecomputed     = "stats_recomputed"
	ActionOpeningHours        = "opening_hours_replaced"

	EntityAppointment = "appointment"
	EntitySalonStats  = "salon_stats"
	EntitySalon       = "salon"
)

const defaultQueueSize = 100

type Event struct {
	SalonID  uuid.UUID
	Actor    string
	Action   string
	Entity   string
	EntityID *uuid.UUID
	Metadata any
}

type sink interface {
	Log(ctx context.Context, ev Event) error
}

// Dispatcher writes audit events off the request path. When the queue is
// full the event is dropped; auditing never fails a request.
type Dispatcher struct {
	sink  sink
	log   *logger.Logger
	queue chan Event

	once sync.Once
	done chan struct{}
}

func NewDispatcher(l *Logger, log *logger.Logger) *Dispatcher {
	return newDispatcher(l, log, defaultQueueSize)
}

func newDispatcher(s sink, log *logger.Logger, size int) *Dispatcher {
	if log == nil {
		log = logger.Nop()
	}
	d := &Dispatcher{
		sink:  s,
		log:   log,
		queue: make(chan Event, size),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.sink.Log(context.Background(), ev); err != nil {
			d.log.Error("audit write failed", "action", ev.Action, "error", err)
		}
	}
}

// Dispatch is safe on a nil Dispatcher.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", "action", ev.Action)
	}
}

// Close drains the queue and stops the worker.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.once.Do(func() { close(d.queue) })
	<-d.done
}
