package services

import (
	"context"

	"github.com/tudoumono/pypuzzle/internal/apperr"
	"github.com/tudoumono/pypuzzle/internal/content"
	"github.com/tudoumono/pypuzzle/internal/jobs"
	"github.com/tudoumono/pypuzzle/internal/logger"
	"github.com/tudoumono/pypuzzle/internal/models"
	"github.com/tudoumono/pypuzzle/internal/progress"
	"github.com/tudoumono/pypuzzle/internal/puzzle"
	"github.com/tudoumono/pypuzzle/internal/repository"
	"github.com/tudoumono/pypuzzle/internal/telemetry"
)

// CategoryView is a category with the learner's unlock and completion state.
type CategoryView struct {
	models.Category
	IsUnlocked     bool `json:"is_unlocked"`
	CompletedCount int  `json:"completed_count"`
	TotalCount     int  `json:"total_count"`
}

// PuzzleSummary is the list representation of a puzzle. The solution is
// never included.
type PuzzleSummary struct {
	ID         string               `json:"id"`
	CategoryID string               `json:"category_id"`
	Difficulty models.Difficulty    `json:"difficulty"`
	Order      int                  `json:"order"`
	Title      string               `json:"title"`
	Points     int                  `json:"points"`
	Status     models.AttemptStatus `json:"status"`
	BestScore  int                  `json:"best_score"`
}

// PuzzleView is the playable representation of one puzzle: the fragment pool
// is pre-shuffled and the solution order is withheld.
type PuzzleView struct {
	ID             string                `json:"id"`
	CategoryID     string                `json:"category_id"`
	Difficulty     models.Difficulty     `json:"difficulty"`
	Title          string                `json:"title"`
	Description    string                `json:"description"`
	ExpectedOutput string                `json:"expected_output,omitempty"`
	LayoutMode     models.LayoutMode     `json:"layout_mode"`
	Pool           []models.CodeFragment `json:"pool"`
	SolutionLength int                   `json:"solution_length"`
	Hints          []string              `json:"hints"`
	Points         int                   `json:"points"`
	Tags           []string              `json:"tags"`
}

// SubmitRequest is one answer submission.
type SubmitRequest struct {
	ProblemID    string   `json:"problem_id"`
	FragmentIDs  []string `json:"fragment_ids"`
	UsedHint     bool     `json:"used_hint"`
	TimeSpentSec float64  `json:"time_spent_sec"`
	// AttemptNo lets a client replay an offline attempt; when <= 0 the
	// server derives it from the ledger.
	AttemptNo int `json:"attempt_no"`
}

// SubmitResponse combines the grading result with the progress it produced.
type SubmitResponse struct {
	models.SubmissionResult
	AttemptNo      int  `json:"attempt_no"`
	NewlyCompleted bool `json:"newly_completed"`
	TotalPoints    int  `json:"total_points"`
	TotalSolved    int  `json:"total_solved"`
	Level          int  `json:"level"`
}

// GiveUpResponse reveals the solution after the learner gives up.
type GiveUpResponse struct {
	ProblemID   string                `json:"problem_id"`
	Solution    []models.CodeFragment `json:"solution"`
	Explanation string                `json:"explanation,omitempty"`
}

// PuzzleService handles puzzle browsing, grading, and give-ups.
type PuzzleService interface {
	GetCategories(ctx context.Context) ([]CategoryView, error)
	GetPuzzlesByCategory(ctx context.Context, categoryID string) ([]PuzzleSummary, error)
	GetPuzzle(ctx context.Context, id string) (*PuzzleView, error)
	SubmitAnswer(ctx context.Context, req SubmitRequest) (*SubmitResponse, error)
	GiveUp(ctx context.Context, problemID string) (*GiveUpResponse, error)
}

type puzzleService struct {
	provider   content.Provider
	ledger     *progress.Ledger
	shuffler   *puzzle.Shuffler
	attemptLog repository.AttemptLogRepository
	queue      jobs.JobQueue
	learnerID  string
}

// NewPuzzleService creates a new PuzzleService.
func NewPuzzleService(provider content.Provider, ledger *progress.Ledger, shuffler *puzzle.Shuffler, attemptLog repository.AttemptLogRepository, queue jobs.JobQueue, learnerID string) PuzzleService {
	return &puzzleService{
		provider:   provider,
		ledger:     ledger,
		shuffler:   shuffler,
		attemptLog: attemptLog,
		queue:      queue,
		learnerID:  learnerID,
	}
}

func (s *puzzleService) GetCategories(ctx context.Context) ([]CategoryView, error) {
	log := logger.FromContext(ctx)

	cats, err := s.provider.Categories(ctx)
	if err != nil {
		log.Error("failed to load categories: %v", err)
		return nil, apperr.NewInternal(err)
	}

	snapshot := s.ledger.Snapshot()
	views := make([]CategoryView, 0, len(cats))
	for _, c := range cats {
		view := CategoryView{Category: c}
		if cp, ok := snapshot.CategoryProgress[c.ID]; ok {
			view.IsUnlocked = cp.IsUnlocked
			view.CompletedCount = cp.CompletedCount
			view.TotalCount = cp.TotalCount
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *puzzleService) GetPuzzlesByCategory(ctx context.Context, categoryID string) ([]PuzzleSummary, error) {
	log := logger.FromContext(ctx)

	if !s.ledger.IsCategoryUnlocked(categoryID) {
		log.Warn("attempt to list locked category: %s", categoryID)
		return nil, apperr.NewLocked(categoryID)
	}

	puzzles, err := s.provider.PuzzlesByCategory(ctx, categoryID)
	if err != nil {
		log.Error("failed to load puzzles for category %s: %v", categoryID, err)
		return nil, apperr.NewInternal(err)
	}

	snapshot := s.ledger.Snapshot()
	summaries := make([]PuzzleSummary, 0, len(puzzles))
	for _, p := range puzzles {
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
	return summaries, nil
}

func (s *puzzleService) GetPuzzle(ctx context.Context, id string) (*PuzzleView, error) {
	log := logger.FromContext(ctx)

	p, err := s.provider.PuzzleByID(ctx, id)
	if err != nil {
		log.Error("failed to load puzzle %s: %v", id, err)
		return nil, apperr.NewInternal(err)
	}
	if p == nil {
		return nil, apperr.NewNotFound("puzzle", id)
	}
	if !s.ledger.IsCategoryUnlocked(p.CategoryID) {
		log.Warn("attempt to open puzzle in locked category: %s", p.CategoryID)
		return nil, apperr.NewLocked(p.CategoryID)
	}

	return &PuzzleView{
		ID:             p.ID,
		CategoryID:     p.CategoryID,
		Difficulty:     p.Difficulty,
		Title:          p.Title,
		Description:    p.Description,
		ExpectedOutput: p.ExpectedOutput,
		LayoutMode:     p.LayoutMode,
		Pool:           s.shuffler.ShufflePool(p.Solution, p.Distractors),
		SolutionLength: len(p.Solution),
		Hints:          p.Hints,
		Points:         p.Points,
		Tags:           p.Tags,
	}, nil
}

func (s *puzzleService) SubmitAnswer(ctx context.Context, req SubmitRequest) (*SubmitResponse, error) {
	log := logger.FromContext(ctx).WithField("problem_id", req.ProblemID)

	if req.ProblemID == "" {
		return nil, apperr.NewValidation("problem_id", "cannot be empty")
	}

	p, err := s.provider.PuzzleByID(ctx, req.ProblemID)
	if err != nil {
		log.Error("failed to load puzzle: %v", err)
		return nil, apperr.NewInternal(err)
	}
	if p == nil {
		log.Warn("submission for unknown puzzle")
		result := puzzle.NoPuzzleResult()
		return &SubmitResponse{SubmissionResult: result}, nil
	}
	if !s.ledger.IsCategoryUnlocked(p.CategoryID) {
		log.Warn("submission for locked category: %s", p.CategoryID)
		return nil, apperr.NewLocked(p.CategoryID)
	}

	submitted := resolveFragments(req.FragmentIDs, p)

	attemptNo := req.AttemptNo
	if attemptNo <= 0 {
		attemptNo = 1
		if attempt, ok := s.ledger.Snapshot().ProblemAttempts[p.ID]; ok {
			attemptNo = attempt.Attempts + 1
		}
	}

	result := puzzle.CheckAnswer(submitted, p.Solution, p.Points, attemptNo, req.UsedHint)

	incorrectPattern := ""
	if !result.IsCorrect {
		incorrectPattern = progress.BuildIncorrectPattern(req.FragmentIDs)
	}

	outcome := s.ledger.RecordAttempt(ctx, *p, result.IsCorrect, result.PointsEarned, req.UsedHint, req.TimeSpentSec, incorrectPattern)

	log = log.WithFields(map[string]any{
		"correct":    result.IsCorrect,
		"points":     result.PointsEarned,
		"attempt_no": outcome.AttemptNo,
	})
	log.Info("answer graded")

	// History and telemetry are best-effort; grading never fails on them.
	if _, err := s.attemptLog.Insert(ctx, models.AttemptLogEntry{
		ProblemID:        p.ID,
		CategoryID:       p.CategoryID,
		IsCorrect:        result.IsCorrect,
		Points:           result.PointsEarned,
		UsedHint:         req.UsedHint,
		TimeSpentSec:     req.TimeSpentSec,
		AttemptNo:        outcome.AttemptNo,
		IncorrectPattern: incorrectPattern,
	}); err != nil {
		log.Warn("failed to store attempt history: %v", err)
	}

	if err := s.queue.EnqueueAttemptEvent(models.AttemptEvent{
		LearnerID:        s.learnerID,
		ProblemID:        p.ID,
		CategoryID:       p.CategoryID,
		IsCorrect:        result.IsCorrect,
		Points:           result.PointsEarned,
		UsedHint:         req.UsedHint,
		TimeSpentSec:     telemetry.RoundSeconds(req.TimeSpentSec),
		AttemptNo:        outcome.AttemptNo,
		IncorrectPattern: incorrectPattern,
	}); err != nil {
		log.Warn("failed to enqueue attempt event: %v", err)
	}

	return &SubmitResponse{
		SubmissionResult: result,
		AttemptNo:        outcome.AttemptNo,
		NewlyCompleted:   outcome.NewlyCompleted,
		TotalPoints:      outcome.TotalPoints,
		TotalSolved:      outcome.TotalSolved,
		Level:            outcome.Level,
	}, nil
}

func (s *puzzleService) GiveUp(ctx context.Context, problemID string) (*GiveUpResponse, error) {
	log := logger.FromContext(ctx).WithField("problem_id", problemID)

	p, err := s.provider.PuzzleByID(ctx, problemID)
	if err != nil {
		log.Error("failed to load puzzle: %v", err)
		return nil, apperr.NewInternal(err)
	}
	if p == nil {
		return nil, apperr.NewNotFound("puzzle", problemID)
	}

	if s.ledger.MarkGaveUp(ctx, problemID) {
		log.Info("learner gave up")
	} else {
		log.Debug("give-up without a prior attempt, nothing recorded")
	}

	return &GiveUpResponse{
		ProblemID:   p.ID,
		Solution:    p.Solution,
		Explanation: p.Explanation,
	}, nil
}

// resolveFragments maps submitted fragment ids back to the puzzle's pool.
// Ids the puzzle does not know keep their id only and grade as foreign
// fragments.
func resolveFragments(ids []string, p *models.Puzzle) []models.CodeFragment {
	byID := make(map[string]models.CodeFragment, len(p.Solution)+len(p.Distractors))
	for _, f := range p.Solution {
		byID[f.ID] = f
	}
	for _, f := range p.Distractors {
		byID[f.ID] = f
	}

	out := make([]models.CodeFragment, 0, len(ids))
	for _, id := range ids {
		if f, ok := byID[id]; ok {
			out = append(out, f)
		} else {
			out = append(out, models.CodeFragment{ID: id})
		}
	}
	return out
}
