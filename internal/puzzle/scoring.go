package puzzle

import "math"

// levelThresholds maps cumulative points to levels 1..10. Level is the
// highest tier whose threshold is at or below the total.
var levelThresholds = []int{0, 50, 120, 220, 350, 520, 730, 1000, 1350, 1800}

const (
	attemptPenaltyStep   = 0.25
	minAttemptMultiplier = 0.25
	hintPenaltyFactor    = 0.5
)

// CalculatePoints maps a correct submission to a point award. Full credit on
// attempt 1, minus 25 percentage points per extra attempt, floored at 25%;
// halved again if a hint was visible.
func CalculatePoints(maxPoints, attemptNumber int, usedHint bool) int {
	multiplier := 1 - float64(attemptNumber-1)*attemptPenaltyStep
	if multiplier < minAttemptMultiplier {
		multiplier = minAttemptMultiplier
	}
	penalty := 1.0
	if usedHint {
		penalty = hintPenaltyFactor
	}
	return int(math.Round(float64(maxPoints) * multiplier * penalty))
}

// CalculateLevel returns the 1-based level for a point total.
func CalculateLevel(totalPoints int) int {
	for i := len(levelThresholds) - 1; i >= 0; i-- {
		if totalPoints >= levelThresholds[i] {
			return i + 1
		}
	}
	return 1
}

// MaxLevel is the top of the level ladder.
func MaxLevel() int {
	return len(levelThresholds)
}

// PointsToNextLevel returns how many points are missing until the next
// level, or 0 at the top of the ladder.
func PointsToNextLevel(totalPoints int) int {
	level := CalculateLevel(totalPoints)
	if level >= len(levelThresholds) {
		return 0
	}
	return levelThresholds[level] - totalPoints
}

// LevelProgress returns the fraction [0,1] of the way from the current level
// threshold to the next one.
func LevelProgress(totalPoints int) float64 {
	level := CalculateLevel(totalPoints)
	if level >= len(levelThresholds) {
		return 1
	}
	current := levelThresholds[level-1]
	next := levelThresholds[level]
	return float64(totalPoints-current) / float64(next-current)
}
