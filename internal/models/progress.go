package models

import "time"

// AttemptStatus tracks how far a learner has gotten on one puzzle.
// Completed is terminal: it never reverts to attempted.
type AttemptStatus string

const (
	StatusNotStarted AttemptStatus = "not_started"
	StatusAttempted  AttemptStatus = "attempted"
	StatusCompleted  AttemptStatus = "completed"
)

// ProblemAttempt is the per-puzzle record inside the progress ledger.
type ProblemAttempt struct {
	ProblemID         string        `json:"problem_id"`
	Status            AttemptStatus `json:"status"`
	Attempts          int           `json:"attempts"`
	UsedHint          bool          `json:"used_hint"`
	BestScore         int           `json:"best_score"`
	FirstAttemptAt    time.Time     `json:"first_attempt_at"`
	CompletedAt       *time.Time    `json:"completed_at,omitempty"`
	IncorrectPatterns []string      `json:"incorrect_patterns"`
	AvgTimePerAttempt float64       `json:"avg_time_per_attempt"`
	HintViewCount     int           `json:"hint_view_count"`
	GaveUp            bool          `json:"gave_up"`
}

// CategoryProgress is the per-category rollup. TotalCount and MaxPoints come
// from content metadata; CompletedCount and TotalPoints only grow on a
// learner's first completion of a puzzle in the category.
type CategoryProgress struct {
	CategoryID     string `json:"category_id"`
	CompletedCount int    `json:"completed_count"`
	TotalCount     int    `json:"total_count"`
	TotalPoints    int    `json:"total_points"`
	MaxPoints      int    `json:"max_points"`
	IsUnlocked     bool   `json:"is_unlocked"`
}

// StreakState tracks consecutive calendar days with at least one attempt.
// LastActivityDate is a learner-local calendar date ("2006-01-02").
type StreakState struct {
	CurrentStreak    int    `json:"current_streak"`
	LongestStreak    int    `json:"longest_streak"`
	LastActivityDate string `json:"last_activity_date"`
}

// Analytics holds derived study signals.
type Analytics struct {
	CategoryAccuracy      map[string]float64     `json:"category_accuracy"`
	DifficultyAccuracy    map[Difficulty]float64 `json:"difficulty_accuracy"`
	WeakTags              []string               `json:"weak_tags"`
	AvgAttemptsPerProblem float64                `json:"avg_attempts_per_problem"`
	TotalStudyTimeSeconds float64                `json:"total_study_time_seconds"`
	LastSessionProblems   []string               `json:"last_session_problems"`
}

// UserProgress is the root progress aggregate: one instance per learner,
// mutated by every attempt, fully replaced on reset.
type UserProgress struct {
	Version          int                         `json:"version"`
	TotalPoints      int                         `json:"total_points"`
	Level            int                         `json:"level"`
	ProblemAttempts  map[string]ProblemAttempt   `json:"problem_attempts"`
	CategoryProgress map[string]CategoryProgress `json:"category_progress"`
	Streak           StreakState                 `json:"streak"`
	TotalSolved      int                         `json:"total_solved"`
	UpdatedAt        time.Time                   `json:"updated_at"`
	Analytics        Analytics                   `json:"analytics"`
}
