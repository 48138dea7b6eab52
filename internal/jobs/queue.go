package jobs

import "github.com/tudoumono/pypuzzle/internal/models"

// JobQueue provides an abstraction for enqueueing background work.
type JobQueue interface {
	// EnqueueAttemptEvent schedules best-effort delivery of an attempt event.
	// It never blocks; a full queue drops the event and returns an error the
	// caller is expected to log and swallow.
	EnqueueAttemptEvent(event models.AttemptEvent) error
}
