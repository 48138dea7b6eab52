package models

import "time"

// AttemptEvent is the payload reported to the external analytics sink.
// Field names follow the sink's wire contract.
type AttemptEvent struct {
	LearnerID        string `json:"userId"`
	ProblemID        string `json:"problemId"`
	CategoryID       string `json:"categoryId"`
	IsCorrect        bool   `json:"isCorrect"`
	Points           int    `json:"points"`
	UsedHint         bool   `json:"usedHint"`
	TimeSpentSec     int    `json:"timeSpentSec"`
	AttemptNo        int    `json:"attemptNo"`
	IncorrectPattern string `json:"incorrectPattern,omitempty"`
}

// AttemptLogEntry is one row of the local attempt history.
type AttemptLogEntry struct {
	ID               int64     `json:"id"`
	ProblemID        string    `json:"problem_id"`
	CategoryID       string    `json:"category_id"`
	IsCorrect        bool      `json:"is_correct"`
	Points           int       `json:"points"`
	UsedHint         bool      `json:"used_hint"`
	TimeSpentSec     float64   `json:"time_spent_sec"`
	AttemptNo        int       `json:"attempt_no"`
	IncorrectPattern string    `json:"incorrect_pattern,omitempty"`
	LoggedAt         time.Time `json:"logged_at"`
}

// AttemptLogFilter narrows attempt history queries.
type AttemptLogFilter struct {
	ProblemID  string
	CategoryID string
	Correct    *bool
	Limit      int
	Offset     int
}
