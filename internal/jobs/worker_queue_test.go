package jobs_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tudoumono/pypuzzle/internal/jobs"
	"github.com/tudoumono/pypuzzle/internal/models"
	"github.com/tudoumono/pypuzzle/internal/worker"
)

// recordingSink collects sent events and optionally fails.
type recordingSink struct {
	mu     sync.Mutex
	events []models.AttemptEvent
	err    error
}

func (s *recordingSink) Send(ctx context.Context, event models.AttemptEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return s.err
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestWorkerQueue_DeliversEvent(t *testing.T) {
	sink := &recordingSink{}
	pool := worker.NewPool(1, 4)
	pool.Start(context.Background())
	defer pool.Stop()

	queue := jobs.NewWorkerQueue(pool, sink)
	require.NoError(t, queue.EnqueueAttemptEvent(models.AttemptEvent{ProblemID: "var-1"}))

	waitFor(t, func() bool { return sink.count() == 1 })
}

func TestWorkerQueue_SinkFailureIsSwallowed(t *testing.T) {
	sink := &recordingSink{err: assert.AnError}
	pool := worker.NewPool(1, 4)
	pool.Start(context.Background())
	defer pool.Stop()

	queue := jobs.NewWorkerQueue(pool, sink)
	require.NoError(t, queue.EnqueueAttemptEvent(models.AttemptEvent{ProblemID: "var-1"}))
	require.NoError(t, queue.EnqueueAttemptEvent(models.AttemptEvent{ProblemID: "var-2"}))

	// Both events reach the sink; the first failure never poisons the pool.
	waitFor(t, func() bool { return sink.count() == 2 })
}

func TestWorkerQueue_FullQueueDropsWithoutBlocking(t *testing.T) {
	sink := &recordingSink{}
	pool := worker.NewPool(1, 1)
	// Pool never started: nothing drains the queue.

	queue := jobs.NewWorkerQueue(pool, sink)
	require.NoError(t, queue.EnqueueAttemptEvent(models.AttemptEvent{ProblemID: "a"}))

	err := queue.EnqueueAttemptEvent(models.AttemptEvent{ProblemID: "b"})
	assert.Error(t, err, "a full queue drops the event instead of blocking")
	assert.Equal(t, 1, pool.QueueSize())
}
