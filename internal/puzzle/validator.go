package puzzle

import (
	"fmt"

	"github.com/tudoumono/pypuzzle/internal/models"
)

// Learner-facing messages. Validation failures are ordinary results, never
// errors.
const (
	MsgDistractors = "Your answer contains fragments that don't belong. Remove the extra ones!"
	MsgTooFew      = "Not all fragments are placed. Use every fragment of the solution."
	MsgNoPuzzle    = "No puzzle is loaded."
)

// CheckAnswer compares a submitted fragment ordering against the canonical
// solution and scores it. attemptNumber is 1-based and counts this
// submission.
func CheckAnswer(submitted, solution []models.CodeFragment, maxPoints, attemptNumber int, usedHint bool) models.SubmissionResult {
	solutionIDs := make(map[string]struct{}, len(solution))
	for _, f := range solution {
		solutionIDs[f.ID] = struct{}{}
	}

	// Distractors must never appear in a correct submission.
	for _, f := range submitted {
		if _, ok := solutionIDs[f.ID]; !ok {
			return models.SubmissionResult{
				IsCorrect:          false,
				PointsEarned:       0,
				IncorrectPositions: []int{},
				Message:            MsgDistractors,
			}
		}
	}

	if len(submitted) < len(solution) {
		return models.SubmissionResult{
			IsCorrect:          false,
			PointsEarned:       0,
			IncorrectPositions: []int{},
			Message:            MsgTooFew,
		}
	}

	incorrect := []int{}
	for i := range solution {
		if i >= len(submitted) || submitted[i].ID != solution[i].ID {
			incorrect = append(incorrect, i)
		}
	}

	isCorrect := len(incorrect) == 0
	points := 0
	if isCorrect {
		points = CalculatePoints(maxPoints, attemptNumber, usedHint)
	}

	var message string
	if isCorrect {
		message = fmt.Sprintf("Correct! +%d points", points)
	} else {
		message = fmt.Sprintf("Almost! %d fragment(s) are in the wrong position.", len(incorrect))
	}

	return models.SubmissionResult{
		IsCorrect:          isCorrect,
		PointsEarned:       points,
		IncorrectPositions: incorrect,
		Message:            message,
	}
}

// NoPuzzleResult is the degenerate result returned when a submission arrives
// with no loaded puzzle.
func NoPuzzleResult() models.SubmissionResult {
	return models.SubmissionResult{
		IsCorrect:          false,
		PointsEarned:       0,
		IncorrectPositions: []int{},
		Message:            MsgNoPuzzle,
	}
}
