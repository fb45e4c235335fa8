// Package queue writes audit entries off the request path.
package queue

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/orgmaturity/assessment-api/internal/api/metrics"
	"github.com/orgmaturity/assessment-api/internal/core/domain"
	"github.com/orgmaturity/assessment-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	writeTimeout   = 5 * time.Second
)

// Dispatcher implements ports.AuditRecorder with a pool of workers draining a
// buffered channel into an AuditRepository. Record blocks while the buffer is
// full, so entries are never dropped for lack of space.
type Dispatcher struct {
	entries chan domain.AuditEntry
	repo    ports.AuditRepository
	workers int
	log     zerolog.Logger
	now     func() time.Time

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers writers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	return &Dispatcher{
		entries: make(chan domain.AuditEntry, channelBuffer),
		repo:    repo,
		workers: numWorkers,
		log:     log,
		now:     time.Now,
	}
}

// Start launches the worker goroutines. They exit once Close has been called
// and the buffer is empty.
func (d *Dispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.runWorker(i)
	}
}

// Record stamps the entry and hands it to a worker. After Close, or when ctx
// ends while waiting for buffer space, the entry is written inline.
func (d *Dispatcher) Record(ctx context.Context, entry domain.AuditEntry) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = d.now().UTC()
	}
	metrics.AuditEventsTotal.WithLabelValues(entry.EventType).Inc()

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.write(-1, entry)
		return
	}

	select {
	case d.entries <- entry:
		metrics.AuditQueueDepth.Inc()
	case <-ctx.Done():
		d.write(-1, entry)
	}
}

// Close stops accepting queued entries and waits for the workers to drain the
// buffer, or for ctx to end.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.entries)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) runWorker(id int) {
	defer d.wg.Done()
	for entry := range d.entries {
		metrics.AuditQueueDepth.Dec()
		d.write(id, entry)
	}
}

func (d *Dispatcher) write(worker int, entry domain.AuditEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := d.repo.Insert(ctx, &entry); err != nil {
		metrics.AuditWriteErrorsTotal.Inc()
		d.log.Error().Err(err).
			Str("event_type", entry.EventType).
			Str("actor", entry.Actor).
			Int("worker_id", worker).
			Msg("audit write failed")
	}
}
