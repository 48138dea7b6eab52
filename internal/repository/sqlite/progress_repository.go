package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/tudoumono/pypuzzle/internal/logger"
	"github.com/tudoumono/pypuzzle/internal/models"
	"github.com/tudoumono/pypuzzle/internal/repository"
)

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new ProgressRepository implementation.
// Snapshots are stored whole as JSON: the ledger replaces its state
// atomically, so the row is always a complete aggregate.
func NewProgressRepository(db *sql.DB) repository.ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) Load(ctx context.Context, slot string) (*models.UserProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("loading progress: slot=%s", slot)

	var data string
	err := r.db.QueryRowContext(ctx, `
SELECT data FROM progress_snapshots WHERE slot = ?
`, slot).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no stored progress for slot=%s", slot)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to load progress: %v", err)
		return nil, err
	}

	var progress models.UserProgress
	if err := json.Unmarshal([]byte(data), &progress); err != nil {
		log.Error("failed to decode stored progress: %v", err)
		return nil, err
	}
	log.Debug("progress loaded: total_points=%d, total_solved=%d", progress.TotalPoints, progress.TotalSolved)
	return &progress, nil
}

func (r *progressRepository) Save(ctx context.Context, slot string, progress models.UserProgress) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("saving progress: slot=%s, total_points=%d", slot, progress.TotalPoints)

	data, err := json.Marshal(progress)
	if err != nil {
		log.Error("failed to encode progress: %v", err)
		return err
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO progress_snapshots (slot, version, data, updated_at)
VALUES (?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(slot) DO UPDATE SET version = excluded.version, data = excluded.data, updated_at = CURRENT_TIMESTAMP
`, slot, progress.Version, string(data))
	if err != nil {
		log.Error("failed to save progress: %v", err)
	}
	return err
}

func (r *progressRepository) Reset(ctx context.Context, slot string) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("resetting progress: slot=%s", slot)

	_, err := r.db.ExecContext(ctx, `DELETE FROM progress_snapshots WHERE slot = ?`, slot)
	if err != nil {
		log.Error("failed to reset progress: %v", err)
	}
	return err
}
