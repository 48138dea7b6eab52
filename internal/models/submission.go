package models

// SubmissionResult is the outcome of checking one submitted fragment
// ordering. Produced fresh per attempt; only its effects are persisted.
type SubmissionResult struct {
	IsCorrect          bool   `json:"is_correct"`
	PointsEarned       int    `json:"points_earned"`
	IncorrectPositions []int  `json:"incorrect_positions"`
	Message            string `json:"message"`
}
