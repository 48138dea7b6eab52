package repository

import (
	"context"

	"github.com/tudoumono/pypuzzle/internal/models"
)

// ProgressRepository persists progress snapshots keyed by an opaque
// learner-scoped slot.
type ProgressRepository interface {
	// Load returns the stored snapshot, or (nil, nil) when the slot is empty.
	Load(ctx context.Context, slot string) (*models.UserProgress, error)
	Save(ctx context.Context, slot string, progress models.UserProgress) error
	Reset(ctx context.Context, slot string) error
}

// LearnerRepository hands out the stable opaque learner identity used for
// telemetry attribution.
type LearnerRepository interface {
	GetOrCreate(ctx context.Context, slot string) (string, error)
}

// AttemptLogRepository stores the local attempt history.
type AttemptLogRepository interface {
	Insert(ctx context.Context, entry models.AttemptLogEntry) (int64, error)
	List(ctx context.Context, filter models.AttemptLogFilter) ([]models.AttemptLogEntry, error)
	Count(ctx context.Context, filter models.AttemptLogFilter) (int, error)
}
