package services

import (
	"context"

	"github.com/tudoumono/pypuzzle/internal/apperr"
	"github.com/tudoumono/pypuzzle/internal/content"
	"github.com/tudoumono/pypuzzle/internal/logger"
	"github.com/tudoumono/pypuzzle/internal/models"
	"github.com/tudoumono/pypuzzle/internal/progress"
	"github.com/tudoumono/pypuzzle/internal/puzzle"
	"github.com/tudoumono/pypuzzle/internal/repository"
)

// ProgressSummary is the learner-facing progress report.
type ProgressSummary struct {
	models.UserProgress
	MaxLevel         int     `json:"max_level"`
	PointsToNext     int     `json:"points_to_next_level"`
	LevelProgress    float64 `json:"level_progress"`
	AttemptedCount   int     `json:"attempted_count"`
	GaveUpCount      int     `json:"gave_up_count"`
	HintUsedProblems int     `json:"hint_used_problems"`
}

// AttemptHistory is a page of the local attempt log.
type AttemptHistory struct {
	Entries    []models.AttemptLogEntry `json:"entries"`
	TotalCount int                      `json:"total_count"`
}

// ProgressService exposes the progress ledger and attempt history.
type ProgressService interface {
	GetProgress(ctx context.Context) (*ProgressSummary, error)
	ExportProgress(ctx context.Context) (models.UserProgress, error)
	ResetProgress(ctx context.Context) error
	GetNextUnsolved(ctx context.Context, categoryID string) (string, error)
	RefreshCategoryTotals(ctx context.Context) error
	GetAttemptHistory(ctx context.Context, filter models.AttemptLogFilter) (*AttemptHistory, error)
}

type progressService struct {
	provider   content.Provider
	ledger     *progress.Ledger
	attemptLog repository.AttemptLogRepository
}

// NewProgressService creates a new ProgressService.
func NewProgressService(provider content.Provider, ledger *progress.Ledger, attemptLog repository.AttemptLogRepository) ProgressService {
	return &progressService{
		provider:   provider,
		ledger:     ledger,
		attemptLog: attemptLog,
	}
}

func (s *progressService) GetProgress(ctx context.Context) (*ProgressSummary, error) {
	snapshot := s.ledger.Snapshot()

	summary := &ProgressSummary{
		UserProgress:  snapshot,
		MaxLevel:      puzzle.MaxLevel(),
		PointsToNext:  puzzle.PointsToNextLevel(snapshot.TotalPoints),
		LevelProgress: puzzle.LevelProgress(snapshot.TotalPoints),
	}
	for _, attempt := range snapshot.ProblemAttempts {
		if attempt.Status == models.StatusAttempted {
			summary.AttemptedCount++
		}
		if attempt.GaveUp {
			summary.GaveUpCount++
		}
		if attempt.UsedHint {
			summary.HintUsedProblems++
		}
	}
	return summary, nil
}

func (s *progressService) ExportProgress(ctx context.Context) (models.UserProgress, error) {
	return s.ledger.Snapshot(), nil
}

func (s *progressService) ResetProgress(ctx context.Context) error {
	logger.FromContext(ctx).Info("resetting all progress")
	s.ledger.ResetProgress(ctx)
	return nil
}

func (s *progressService) GetNextUnsolved(ctx context.Context, categoryID string) (string, error) {
	log := logger.FromContext(ctx)

	if !s.ledger.IsCategoryUnlocked(categoryID) {
		return "", apperr.NewLocked(categoryID)
	}

	puzzles, err := s.provider.Puzzles(ctx)
	if err != nil {
		log.Error("failed to load puzzles: %v", err)
		return "", apperr.NewInternal(err)
	}
	return s.ledger.NextUnsolvedProblem(categoryID, puzzles), nil
}

// RefreshCategoryTotals recomputes per-category puzzle counts and point
// ceilings from current content. Called at startup and after content
// refreshes so unlock thresholds track the real catalog size.
func (s *progressService) RefreshCategoryTotals(ctx context.Context) error {
	log := logger.FromContext(ctx)

	puzzles, err := s.provider.Puzzles(ctx)
	if err != nil {
		log.Error("failed to load puzzles for category totals: %v", err)
		return apperr.NewInternal(err)
	}

	counts := make(map[string]int)
	maxPoints := make(map[string]int)
	for _, p := range puzzles {
		counts[p.CategoryID]++
		maxPoints[p.CategoryID] += p.Points
	}
	for categoryID, count := range counts {
		s.ledger.UpdateCategoryTotals(ctx, categoryID, count, maxPoints[categoryID])
	}

	log.Debug("category totals refreshed for %d categories", len(counts))
	return nil
}

func (s *progressService) GetAttemptHistory(ctx context.Context, filter models.AttemptLogFilter) (*AttemptHistory, error) {
	log := logger.FromContext(ctx)

	entries, err := s.attemptLog.List(ctx, filter)
	if err != nil {
		log.Error("failed to list attempt history: %v", err)
		return nil, apperr.NewInternal(err)
	}
	total, err := s.attemptLog.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count attempt history: %v", err)
		return nil, apperr.NewInternal(err)
	}
	return &AttemptHistory{Entries: entries, TotalCount: total}, nil
}
