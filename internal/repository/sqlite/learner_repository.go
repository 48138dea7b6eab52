package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tudoumono/pypuzzle/internal/logger"
	"github.com/tudoumono/pypuzzle/internal/repository"
)

type learnerRepository struct {
	db *sql.DB
}

// NewLearnerRepository creates a new LearnerRepository implementation.
func NewLearnerRepository(db *sql.DB) repository.LearnerRepository {
	return &learnerRepository{db: db}
}

// GetOrCreate returns the stable anonymous learner id for a slot, minting
// one on first use.
func (r *learnerRepository) GetOrCreate(ctx context.Context, slot string) (string, error) {
	log := logger.FromContext(ctx).WithPrefix("learner_repo")

	var learnerID string
	err := r.db.QueryRowContext(ctx, `
SELECT learner_id FROM learners WHERE slot = ?
`, slot).Scan(&learnerID)
	if err == nil {
		return learnerID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		log.Error("failed to load learner id: %v", err)
		return "", err
	}

	learnerID = fmt.Sprintf("anon-%s", uuid.NewString())
	if _, err := r.db.ExecContext(ctx, `
INSERT INTO learners (slot, learner_id) VALUES (?, ?)
`, slot, learnerID); err != nil {
		log.Error("failed to store learner id: %v", err)
		return "", err
	}
	log.Info("created learner id for slot=%s", slot)
	return learnerID, nil
}
