package jobs

import (
	"github.com/tudoumono/pypuzzle/internal/models"
	"github.com/tudoumono/pypuzzle/internal/telemetry"
	"github.com/tudoumono/pypuzzle/internal/worker"
)

// WorkerQueue implements JobQueue on top of a worker pool.
type WorkerQueue struct {
	pool *worker.Pool
	sink telemetry.Sink
}

// NewWorkerQueue creates a new WorkerQueue implementation.
func NewWorkerQueue(pool *worker.Pool, sink telemetry.Sink) JobQueue {
	return &WorkerQueue{pool: pool, sink: sink}
}

func (q *WorkerQueue) EnqueueAttemptEvent(event models.AttemptEvent) error {
	return q.pool.TrySubmit(&worker.SendAttemptEventJob{
		Sink:  q.sink,
		Event: event,
	})
}
