package services

import (
	"context"

	"github.com/tudoumono/pypuzzle/internal/apperr"
	"github.com/tudoumono/pypuzzle/internal/content"
	"github.com/tudoumono/pypuzzle/internal/logger"
	"github.com/tudoumono/pypuzzle/internal/models"
	"github.com/tudoumono/pypuzzle/internal/picker"
	"github.com/tudoumono/pypuzzle/internal/progress"
)

// PracticeService assembles review sessions biased toward weak puzzles.
type PracticeService interface {
	GetPracticeSet(ctx context.Context, count int) ([]PuzzleSummary, error)
}

type practiceService struct {
	provider content.Provider
	ledger   *progress.Ledger
	picker   *picker.Picker
}

// NewPracticeService creates a new PracticeService.
func NewPracticeService(provider content.Provider, ledger *progress.Ledger, pk *picker.Picker) PracticeService {
	return &practiceService{provider: provider, ledger: ledger, picker: pk}
}

func (s *practiceService) GetPracticeSet(ctx context.Context, count int) ([]PuzzleSummary, error) {
	log := logger.FromContext(ctx)

	if count <= 0 {
		return nil, apperr.NewValidation("count", "must be positive")
	}

	puzzles, err := s.provider.Puzzles(ctx)
	if err != nil {
		log.Error("failed to load puzzles for practice set: %v", err)
		return nil, apperr.NewInternal(err)
	}

	// Only unlocked categories are eligible for practice.
	eligible := make([]models.Puzzle, 0, len(puzzles))
	for _, p := range puzzles {
		if s.ledger.IsCategoryUnlocked(p.CategoryID) {
			eligible = append(eligible, p)
		}
	}

	snapshot := s.ledger.Snapshot()
	picked := s.picker.PickWeakPuzzles(eligible, snapshot, count)

	summaries := make([]PuzzleSummary, 0, len(picked))
	for _, p := range picked {
		summary := PuzzleSummary{
			ID:         p.ID,
			CategoryID: p.CategoryID,
			Difficulty: p.Difficulty,
			Order:      p.Order,
			Title:      p.Title,
			Points:     p.Points,
			Status:     models.StatusNotStarted,
		}
		if attempt, ok := snapshot.ProblemAttempts[p.ID]; ok {
			summary.Status = attempt.Status
			summary.BestScore = attempt.BestScore
		}
		summaries = append(summaries, summary)
	}

	log.Debug("practice set assembled: %d of %d requested", len(summaries), count)
	return summaries, nil
}
