package picker

import (
	"math/rand"
	"time"

	"github.com/tudoumono/pypuzzle/internal/models"
)

// Base weights by attempt state. Mastered puzzles (completed on the first
// try) weigh zero and are excluded from weighted rounds.
const (
	weightUnattempted = 3
	weightGaveUp      = 4
	weightInProgress  = 3
	weightStruggled   = 2
	weightCompleted   = 1

	hintBonus    = 1
	weakTagBonus = 2
)

// Picker selects practice sets biased toward puzzles the learner struggles
// with.
type Picker struct {
	rng *rand.Rand
}

// New creates a Picker seeded from the current time.
func New() *Picker {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource creates a Picker with an explicit randomness source.
func NewWithSource(src rand.Source) *Picker {
	return &Picker{rng: rand.New(src)}
}

type weightedPuzzle struct {
	puzzle models.Puzzle
	weight int
}

// PickWeakPuzzles returns up to count puzzles drawn by weighted sampling
// without replacement. When every weight is zero (all mastered, or empty
// history with no puzzles), it falls back to a uniform shuffle.
func (p *Picker) PickWeakPuzzles(all []models.Puzzle, progress models.UserProgress, count int) []models.Puzzle {
	if len(all) == 0 || count <= 0 {
		return nil
	}

	weighted := make([]weightedPuzzle, 0, len(all))
	total := 0
	for _, pz := range all {
		w := Weight(pz, progress)
		weighted = append(weighted, weightedPuzzle{puzzle: pz, weight: w})
		total += w
	}

	if total == 0 {
		shuffled := make([]models.Puzzle, len(all))
		copy(shuffled, all)
		p.rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		if count > len(shuffled) {
			count = len(shuffled)
		}
		return shuffled[:count]
	}

	remaining := make([]weightedPuzzle, 0, len(weighted))
	for _, w := range weighted {
		if w.weight > 0 {
			remaining = append(remaining, w)
		}
	}

	selected := make([]models.Puzzle, 0, count)
	for len(selected) < count && len(remaining) > 0 {
		currentTotal := 0
		for _, w := range remaining {
			currentTotal += w.weight
		}
		r := p.rng.Float64() * float64(currentTotal)
		for i := range remaining {
			r -= float64(remaining[i].weight)
			if r <= 0 {
				selected = append(selected, remaining[i].puzzle)
				remaining = append(remaining[:i], remaining[i+1:]...)
				break
			}
		}
	}
	return selected
}

// Weight computes one puzzle's selection weight from the learner's history:
// base weight by attempt state, +1 if a hint was ever used, +2 if the puzzle
// shares a tag with the ledger's weak tags.
func Weight(pz models.Puzzle, progress models.UserProgress) int {
	attempt, attempted := progress.ProblemAttempts[pz.ID]

	weight := 0
	switch {
	case !attempted:
		weight = weightUnattempted
	case attempt.GaveUp:
		weight = weightGaveUp
	case attempt.Status == models.StatusAttempted:
		weight = weightInProgress
	case attempt.Status == models.StatusCompleted:
		switch {
		case attempt.Attempts >= 3:
			weight = weightStruggled
		case attempt.Attempts <= 1:
			weight = 0
		default:
			weight = weightCompleted
		}
	}

	if attempted && attempt.UsedHint {
		weight += hintBonus
	}
	if len(progress.Analytics.WeakTags) > 0 && hasAnyTag(pz.Tags, progress.Analytics.WeakTags) {
		weight += weakTagBonus
	}
	return weight
}

func hasAnyTag(tags, weakTags []string) bool {
	for _, t := range tags {
		for _, w := range weakTags {
			if t == w {
				return true
			}
		}
	}
	return false
}
