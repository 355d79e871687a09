// Package notify fans demand lifecycle events out to the audit trail and the
// email notifier, off the request path.
package notify

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/demanddesk/api/internal/api/metrics"
	"github.com/demanddesk/api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Dispatcher routes lifecycle events to a fixed set of workers using
// consistent hashing on the demand id, guaranteeing per-demand event ordering.
type Dispatcher struct {
	workers []chan ports.DemandEvent
	audit   ports.AuditRepository
	mailer  *Mailer
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers. mailer
// may be nil when email notifications are disabled.
func NewDispatcher(numWorkers int, audit ports.AuditRepository, mailer *Mailer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.DemandEvent, numWorkers),
		audit:   audit,
		mailer:  mailer,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.DemandEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an event to the worker responsible for its demand id.
// Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(event ports.DemandEvent) {
	d.workers[d.shardIndex(event.DemandID)] <- event
}

// shardIndex maps a demand id deterministically to a worker index.
func (d *Dispatcher) shardIndex(demandID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(demandID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.DemandEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			d.process(ctx, id, event)
		}
	}
}

// process writes the audit entry and, for status changes, notifies the owner.
// Sink failures are logged and counted; they never reach API callers.
func (d *Dispatcher) process(ctx context.Context, workerID int, event ports.DemandEvent) {
	result := "ok"

	if err := d.audit.InsertEvent(ctx, &event); err != nil {
		result = "error"
		d.log.Error().Err(err).
			Str("demand_id", event.DemandID).
			Str("kind", event.Kind).
			Int("worker_id", workerID).
			Msg("failed to insert audit event")
	}

	if d.mailer != nil && event.Kind == "status_changed" && event.OwnerEmail != "" {
		if err := d.mailer.SendStatusChanged(event); err != nil {
			result = "error"
			d.log.Warn().Err(err).
				Str("demand_id", event.DemandID).
				Str("to", event.OwnerEmail).
				Msg("failed to send status notification")
		}
	}

	metrics.NotifyEventsTotal.WithLabelValues(event.Kind, result).Inc()
}
