package worker

import (
	"context"

	"github.com/tudoumono/pypuzzle/internal/models"
	"github.com/tudoumono/pypuzzle/internal/telemetry"
)

// SendAttemptEventJob forwards one attempt event to the analytics sink.
type SendAttemptEventJob struct {
	Sink  telemetry.Sink
	Event models.AttemptEvent
}

func (j *SendAttemptEventJob) Name() string {
	return "send_attempt_event"
}

func (j *SendAttemptEventJob) Run(ctx context.Context) error {
	return j.Sink.Send(ctx, j.Event)
}
