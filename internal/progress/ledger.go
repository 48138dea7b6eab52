package progress

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tudoumono/pypuzzle/internal/logger"
	"github.com/tudoumono/pypuzzle/internal/models"
	"github.com/tudoumono/pypuzzle/internal/puzzle"
	"github.com/tudoumono/pypuzzle/internal/repository"
)

const dateLayout = "2006-01-02"

// maxSessionProblems bounds the recent-problems list in analytics.
const maxSessionProblems = 20

// Clock returns the current learner-local time. Injectable for streak tests.
type Clock func() time.Time

// Ledger is the durable progress aggregate for one learner. Every mutation
// computes a complete replacement state and commits it atomically: a reader
// never observes totals and category rollups from different attempts.
type Ledger struct {
	mu            sync.RWMutex
	state         models.UserProgress
	categoryOrder []string
	repo          repository.ProgressRepository
	slot          string
	clock         Clock
	log           *logger.Logger
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the ledger's time source.
func WithClock(clock Clock) Option {
	return func(l *Ledger) { l.clock = clock }
}

// WithStore attaches durable persistence. Every mutation is saved to the
// given slot; save failures are logged and swallowed so the in-memory state
// stays authoritative for the session.
func WithStore(repo repository.ProgressRepository, slot string) Option {
	return func(l *Ledger) {
		l.repo = repo
		l.slot = slot
	}
}

// NewLedger creates a ledger with zero-state defaults. The category display
// order is fixed at construction; the first category starts unlocked.
func NewLedger(categories []models.Category, opts ...Option) *Ledger {
	sorted := make([]models.Category, len(categories))
	copy(sorted, categories)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	order := make([]string, len(sorted))
	for i, c := range sorted {
		order[i] = c.ID
	}

	l := &Ledger{
		categoryOrder: order,
		clock:         time.Now,
		log:           logger.Default().WithPrefix("ledger"),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.state = initialState(order, l.clock())
	return l
}

func initialState(order []string, now time.Time) models.UserProgress {
	categories := make(map[string]models.CategoryProgress, len(order))
	for i, id := range order {
		categories[id] = models.CategoryProgress{
			CategoryID: id,
			IsUnlocked: i == 0,
		}
	}
	return models.UserProgress{
		Version:          1,
		Level:            1,
		ProblemAttempts:  make(map[string]models.ProblemAttempt),
		CategoryProgress: categories,
		TotalSolved:      0,
		UpdatedAt:        now,
		Analytics: models.Analytics{
			CategoryAccuracy:    make(map[string]float64),
			DifficultyAccuracy:  make(map[models.Difficulty]float64),
			WeakTags:            []string{},
			LastSessionProblems: []string{},
		},
	}
}

// Restore replaces the in-memory state with a previously persisted snapshot,
// normalizing nil maps and filling in categories added to the content since
// the snapshot was written.
func (l *Ledger) Restore(snapshot models.UserProgress) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if snapshot.ProblemAttempts == nil {
		snapshot.ProblemAttempts = make(map[string]models.ProblemAttempt)
	}
	if snapshot.CategoryProgress == nil {
		snapshot.CategoryProgress = make(map[string]models.CategoryProgress)
	}
	if snapshot.Analytics.CategoryAccuracy == nil {
		snapshot.Analytics.CategoryAccuracy = make(map[string]float64)
	}
	if snapshot.Analytics.DifficultyAccuracy == nil {
		snapshot.Analytics.DifficultyAccuracy = make(map[models.Difficulty]float64)
	}
	if snapshot.Analytics.WeakTags == nil {
		snapshot.Analytics.WeakTags = []string{}
	}
	if snapshot.Analytics.LastSessionProblems == nil {
		snapshot.Analytics.LastSessionProblems = []string{}
	}
	for i, id := range l.categoryOrder {
		if _, ok := snapshot.CategoryProgress[id]; !ok {
			snapshot.CategoryProgress[id] = models.CategoryProgress{
				CategoryID: id,
				IsUnlocked: i == 0,
			}
		}
	}
	if snapshot.Version == 0 {
		snapshot.Version = 1
	}
	if snapshot.Level == 0 {
		snapshot.Level = puzzle.CalculateLevel(snapshot.TotalPoints)
	}
	l.state = snapshot
}

// AttemptOutcome summarizes the state transition produced by one attempt.
type AttemptOutcome struct {
	Attempt        models.ProblemAttempt
	AttemptNo      int
	NewlyCompleted bool
	TotalPoints    int
	TotalSolved    int
	Level          int
}

// RecordAttempt applies one submission outcome to the ledger. All derived
// state (totals, level, category rollups, unlocks, streak, analytics) is
// recomputed from a single consistent read and committed as one replacement.
func (l *Ledger) RecordAttempt(ctx context.Context, p models.Puzzle, isCorrect bool, points int, usedHint bool, timeSpentSec float64, incorrectPattern string) AttemptOutcome {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	today := now.Format(dateLayout)
	next := cloneProgress(l.state)

	existing, exists := next.ProblemAttempts[p.ID]
	attemptNo := 1
	if exists {
		attemptNo = existing.Attempts + 1
	}

	var attempt models.ProblemAttempt
	if exists {
		attempt = existing
		attempt.Attempts = attemptNo
		attempt.UsedHint = existing.UsedHint || usedHint
		if points > attempt.BestScore {
			attempt.BestScore = points
		}
		if isCorrect && attempt.Status != models.StatusCompleted {
			attempt.Status = models.StatusCompleted
			completedAt := now
			attempt.CompletedAt = &completedAt
		}
		if incorrectPattern != "" {
			attempt.IncorrectPatterns = append(attempt.IncorrectPatterns, incorrectPattern)
		}
		attempt.AvgTimePerAttempt = (existing.AvgTimePerAttempt*float64(existing.Attempts) + timeSpentSec) / float64(attemptNo)
		if usedHint {
			attempt.HintViewCount++
		}
	} else {
		attempt = models.ProblemAttempt{
			ProblemID:         p.ID,
			Status:            models.StatusAttempted,
			Attempts:          1,
			UsedHint:          usedHint,
			BestScore:         points,
			FirstAttemptAt:    now,
			IncorrectPatterns: []string{},
			AvgTimePerAttempt: timeSpentSec,
		}
		if isCorrect {
			attempt.Status = models.StatusCompleted
			completedAt := now
			attempt.CompletedAt = &completedAt
		}
		if incorrectPattern != "" {
			attempt.IncorrectPatterns = []string{incorrectPattern}
		}
		if usedHint {
			attempt.HintViewCount = 1
		}
	}
	next.ProblemAttempts[p.ID] = attempt

	wasCompleted := exists && existing.Status == models.StatusCompleted
	newlyCompleted := isCorrect && !wasCompleted

	// Only the first completion counts toward global and category totals.
	if newlyCompleted {
		next.TotalPoints += points
		next.TotalSolved++
		if cp, ok := next.CategoryProgress[p.CategoryID]; ok {
			cp.CompletedCount++
			cp.TotalPoints += points
			next.CategoryProgress[p.CategoryID] = cp
		}
	}
	next.Level = puzzle.CalculateLevel(next.TotalPoints)

	l.applyUnlocks(&next)
	l.applyStreak(&next, now, today)
	l.applyAnalytics(&next, p.ID, timeSpentSec)

	next.UpdatedAt = now
	l.state = next
	l.persist(ctx)

	return AttemptOutcome{
		Attempt:        attempt,
		AttemptNo:      attemptNo,
		NewlyCompleted: newlyCompleted,
		TotalPoints:    next.TotalPoints,
		TotalSolved:    next.TotalSolved,
		Level:          next.Level,
	}
}

// applyUnlocks re-evaluates the whole gating chain. A category unlocks once
// its predecessor has at least half of its puzzles completed. Unlocking is
// monotonic; nothing ever re-locks.
func (l *Ledger) applyUnlocks(state *models.UserProgress) {
	for i := 1; i < len(l.categoryOrder); i++ {
		prev, ok := state.CategoryProgress[l.categoryOrder[i-1]]
		if !ok || prev.TotalCount <= 0 {
			continue
		}
		required := (prev.TotalCount + 1) / 2 // ceil(totalCount * 0.5)
		if prev.CompletedCount < required {
			continue
		}
		if cur, ok := state.CategoryProgress[l.categoryOrder[i]]; ok && !cur.IsUnlocked {
			cur.IsUnlocked = true
			state.CategoryProgress[l.categoryOrder[i]] = cur
		}
	}
}

// applyStreak updates the daily streak, at most once per calendar day.
func (l *Ledger) applyStreak(state *models.UserProgress, now time.Time, today string) {
	if state.Streak.LastActivityDate == today {
		return
	}
	yesterday := now.AddDate(0, 0, -1).Format(dateLayout)
	if state.Streak.LastActivityDate == yesterday {
		state.Streak.CurrentStreak++
	} else {
		state.Streak.CurrentStreak = 1
	}
	if state.Streak.CurrentStreak > state.Streak.LongestStreak {
		state.Streak.LongestStreak = state.Streak.CurrentStreak
	}
	state.Streak.LastActivityDate = today
}

func (l *Ledger) applyAnalytics(state *models.UserProgress, problemID string, timeSpentSec float64) {
	totalAttempts := 0
	for _, a := range state.ProblemAttempts {
		totalAttempts += a.Attempts
	}
	if n := len(state.ProblemAttempts); n > 0 {
		state.Analytics.AvgAttemptsPerProblem = float64(totalAttempts) / float64(n)
	} else {
		state.Analytics.AvgAttemptsPerProblem = 0
	}

	// Study time accumulates on every attempt, correct or not.
	state.Analytics.TotalStudyTimeSeconds += timeSpentSec

	recent := make([]string, 0, maxSessionProblems)
	recent = append(recent, problemID)
	for _, id := range state.Analytics.LastSessionProblems {
		if id != problemID {
			recent = append(recent, id)
		}
		if len(recent) == maxSessionProblems {
			break
		}
	}
	state.Analytics.LastSessionProblems = recent
}

// MarkGaveUp flags an existing attempt record; a no-op when the learner has
// not attempted the puzzle yet. Score and status are untouched.
func (l *Ledger) MarkGaveUp(ctx context.Context, problemID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	existing, ok := l.state.ProblemAttempts[problemID]
	if !ok {
		return false
	}
	next := cloneProgress(l.state)
	existing.GaveUp = true
	next.ProblemAttempts[problemID] = existing
	l.state = next
	l.persist(ctx)
	return true
}

// UpdateCategoryTotals upserts content-derived totals for a category without
// touching completion counters. Called when content metadata refreshes.
func (l *Ledger) UpdateCategoryTotals(ctx context.Context, categoryID string, totalCount, maxPoints int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := cloneProgress(l.state)
	cp, ok := next.CategoryProgress[categoryID]
	if !ok {
		cp = models.CategoryProgress{
			CategoryID: categoryID,
			IsUnlocked: len(l.categoryOrder) > 0 && l.categoryOrder[0] == categoryID,
		}
	}
	cp.TotalCount = totalCount
	cp.MaxPoints = maxPoints
	next.CategoryProgress[categoryID] = cp
	l.applyUnlocks(&next)
	l.state = next
	l.persist(ctx)
}

// ResetProgress replaces the entire ledger with a freshly initialized zero
// state. Not recoverable.
func (l *Ledger) ResetProgress(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.state = initialState(l.categoryOrder, l.clock())
	if l.repo != nil {
		if err := l.repo.Reset(ctx, l.slot); err != nil {
			l.log.Warn("failed to reset stored progress: %v", err)
		}
	}
	l.persist(ctx)
}

// IsCategoryUnlocked reports whether a category is available to the learner.
func (l *Ledger) IsCategoryUnlocked(categoryID string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	cp, ok := l.state.CategoryProgress[categoryID]
	return ok && cp.IsUnlocked
}

// NextUnsolvedProblem returns the id of the first puzzle in the category's
// display order the learner has not completed, or "" when all are done.
func (l *Ledger) NextUnsolvedProblem(categoryID string, puzzles []models.Puzzle) string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	inCategory := make([]models.Puzzle, 0, len(puzzles))
	for _, p := range puzzles {
		if p.CategoryID == categoryID {
			inCategory = append(inCategory, p)
		}
	}
	sort.SliceStable(inCategory, func(i, j int) bool { return inCategory[i].Order < inCategory[j].Order })

	for _, p := range inCategory {
		attempt, ok := l.state.ProblemAttempts[p.ID]
		if !ok || attempt.Status != models.StatusCompleted {
			return p.ID
		}
	}
	return ""
}

// Snapshot returns a deep copy of the current state.
func (l *Ledger) Snapshot() models.UserProgress {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return cloneProgress(l.state)
}

// BuildIncorrectPattern serializes a wrong submission's fragment-id sequence
// for the attempt record's append-only pattern log.
func BuildIncorrectPattern(fragmentIDs []string) string {
	return strings.Join(fragmentIDs, ",")
}

// persist writes the current state through the repository. Failure is logged
// and swallowed: the in-memory ledger stays authoritative for the session.
func (l *Ledger) persist(ctx context.Context) {
	if l.repo == nil {
		return
	}
	if err := l.repo.Save(ctx, l.slot, l.state); err != nil {
		l.log.Warn("failed to persist progress: %v", err)
	}
}

func cloneProgress(p models.UserProgress) models.UserProgress {
	next := p

	next.ProblemAttempts = make(map[string]models.ProblemAttempt, len(p.ProblemAttempts))
	for id, a := range p.ProblemAttempts {
		if a.IncorrectPatterns != nil {
			patterns := make([]string, len(a.IncorrectPatterns))
			copy(patterns, a.IncorrectPatterns)
			a.IncorrectPatterns = patterns
		}
		if a.CompletedAt != nil {
			completedAt := *a.CompletedAt
			a.CompletedAt = &completedAt
		}
		next.ProblemAttempts[id] = a
	}

	next.CategoryProgress = make(map[string]models.CategoryProgress, len(p.CategoryProgress))
	for id, cp := range p.CategoryProgress {
		next.CategoryProgress[id] = cp
	}

	next.Analytics.CategoryAccuracy = make(map[string]float64, len(p.Analytics.CategoryAccuracy))
	for k, v := range p.Analytics.CategoryAccuracy {
		next.Analytics.CategoryAccuracy[k] = v
	}
	next.Analytics.DifficultyAccuracy = make(map[models.Difficulty]float64, len(p.Analytics.DifficultyAccuracy))
	for k, v := range p.Analytics.DifficultyAccuracy {
		next.Analytics.DifficultyAccuracy[k] = v
	}
	next.Analytics.WeakTags = append([]string{}, p.Analytics.WeakTags...)
	next.Analytics.LastSessionProblems = append([]string{}, p.Analytics.LastSessionProblems...)

	return next
}
