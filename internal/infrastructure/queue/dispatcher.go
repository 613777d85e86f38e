package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/werkbank/workshop-system/internal/core/domain"
	"github.com/werkbank/workshop-system/internal/core/ports"
	"github.com/werkbank/workshop-system/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	drainTimeout   = 5 * time.Second
)

// Dispatcher persists activities on a fixed set of workers. Activities of the
// same work order always land on the same worker, so their order is kept.
type Dispatcher struct {
	workers []chan domain.Activity
	service ports.ActivityService
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.ActivityService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.Activity, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Activity, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers drain what is already queued
// and stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has stopped.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Record hands a to the worker responsible for its work order. It never
// blocks: when that worker's queue is full the activity is dropped.
func (d *Dispatcher) Record(a domain.Activity) {
	idx := d.shardIndex(a.Key())
	select {
	case d.workers[idx] <- a:
		metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.ActivityDroppedTotal.Inc()
		d.log.Warn().
			Str("workorder_id", a.WorkorderID).
			Str("action", a.Action).
			Int("worker_id", idx).
			Msg("activity queue full, dropping entry")
	}
}

// shardIndex maps a key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Activity) {
	defer d.wg.Done()
	label := strconv.Itoa(id)

	for {
		select {
		case <-ctx.Done():
			d.drain(id, ch)
			return
		case a := <-ch:
			metrics.ActivityQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.process(ctx, id, a)
		}
	}
}

// drain flushes the entries still queued at shutdown with a bounded context.
func (d *Dispatcher) drain(id int, ch <-chan domain.Activity) {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	for {
		select {
		case a := <-ch:
			d.process(ctx, id, a)
		default:
			return
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, id int, a domain.Activity) {
	if err := d.service.Process(ctx, a); err != nil {
		d.log.Error().Err(err).
			Str("workorder_id", a.WorkorderID).
			Str("entity_type", a.EntityType).
			Str("entity_id", a.EntityID).
			Int("worker_id", id).
			Msg("activity processing failed")
	}
}
