package queue

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/devcamper/bootcamp-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	refreshTimeout = 10 * time.Second
)

// Dispatcher recomputes bootcamp averages off the request path. Bootcamp IDs
// are sharded over a fixed set of workers by hash, so refreshes for one
// bootcamp run in order and never concurrently.
type Dispatcher struct {
	workers []chan string
	repo    ports.BootcampRepository
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.BootcampRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan string, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines.
func (d *Dispatcher) Start() {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(i, ch)
	}
}

// Stop closes the queues and waits for queued refreshes to finish. Enqueue
// must not be called afterwards.
func (d *Dispatcher) Stop() {
	for _, ch := range d.workers {
		close(ch)
	}
	d.wg.Wait()
}

// Enqueue schedules a refresh for bootcampID. It blocks while the worker's
// buffer is full, until ctx is done.
func (d *Dispatcher) Enqueue(ctx context.Context, bootcampID string) error {
	select {
	case d.workers[d.shardIndex(bootcampID)] <- bootcampID:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Repository returns repo with RefreshAverages routed through the queue.
func (d *Dispatcher) Repository() ports.BootcampRepository {
	return queuedAverages{BootcampRepository: d.repo, d: d}
}

// shardIndex maps a bootcamp ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(bootcampID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(bootcampID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(id int, ch <-chan string) {
	defer d.wg.Done()
	for bootcampID := range ch {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		if err := d.repo.RefreshAverages(ctx, bootcampID); err != nil {
			d.log.Error().Err(err).
				Str("bootcamp_id", bootcampID).
				Int("worker_id", id).
				Msg("averages refresh failed")
		}
		cancel()
	}
}

type queuedAverages struct {
	ports.BootcampRepository
	d *Dispatcher
}

func (q queuedAverages) RefreshAverages(ctx context.Context, id string) error {
	return q.d.Enqueue(ctx, id)
}
