package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/labsuite/user-access-api/internal/api/metrics"
	"github.com/labsuite/user-access-api/internal/core/domain"
	"github.com/labsuite/user-access-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	appendTimeout  = 10 * time.Second
)

type auditJob struct {
	actorID string
	entry   domain.ActionEntry
}

// AuditDispatcher appends privileged-action entries to super-admin action
// logs asynchronously. Jobs are routed to a fixed set of workers by hashing
// the actor ID, so entries for one actor are always appended in order.
type AuditDispatcher struct {
	workers []chan auditJob
	users   ports.UserRepository
	log     zerolog.Logger
}

// NewAuditDispatcher creates a dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewAuditDispatcher(numWorkers int, users ports.UserRepository, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &AuditDispatcher{
		workers: make([]chan auditJob, numWorkers),
		users:   users,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan auditJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *AuditDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues an entry for the worker responsible for the actor.
// Non-blocking up to channelBuffer capacity.
func (d *AuditDispatcher) Record(actorID string, entry domain.ActionEntry) {
	i := d.shardIndex(actorID)
	d.workers[i] <- auditJob{actorID: actorID, entry: entry}
	metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// shardIndex maps an actor ID deterministically to a worker index.
func (d *AuditDispatcher) shardIndex(actorID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(actorID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *AuditDispatcher) runWorker(ctx context.Context, id int, ch <-chan auditJob) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			metrics.AuditQueueDepth.WithLabelValues(label).Set(float64(len(ch)))

			appendCtx, cancel := context.WithTimeout(context.Background(), appendTimeout)
			err := d.users.AppendAction(appendCtx, job.actorID, job.entry)
			cancel()
			if err != nil {
				d.log.Error().Err(err).
					Str("actor_id", job.actorID).
					Int("worker_id", id).
					Msg("audit append failed")
			}
		}
	}
}
