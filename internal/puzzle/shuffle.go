package puzzle

import (
	"math/rand"
	"time"

	"github.com/tudoumono/pypuzzle/internal/models"
)

// maxShuffleAttempts bounds the re-shuffle loop. After the cap the last
// permutation is accepted, so degenerate inputs (single fragment, no
// distractors) can never loop forever.
const maxShuffleAttempts = 10

// Shuffler produces randomized fragment pools for puzzle instances.
type Shuffler struct {
	rng *rand.Rand
}

// NewShuffler creates a Shuffler seeded from the current time.
func NewShuffler() *Shuffler {
	return NewShufflerWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewShufflerWithSource creates a Shuffler with an explicit randomness
// source. Tests inject a deterministic source here.
func NewShufflerWithSource(src rand.Source) *Shuffler {
	return &Shuffler{rng: rand.New(src)}
}

// ShufflePool returns all solution fragments and distractors in a random
// order. Permutations whose first len(solution) positions already equal the
// solution order are rejected and re-shuffled, up to maxShuffleAttempts.
func (s *Shuffler) ShufflePool(solution, distractors []models.CodeFragment) []models.CodeFragment {
	pool := make([]models.CodeFragment, 0, len(solution)+len(distractors))
	pool = append(pool, solution...)
	pool = append(pool, distractors...)
	if len(pool) <= 1 {
		return pool
	}

	shuffled := make([]models.CodeFragment, len(pool))
	for attempt := 0; attempt < maxShuffleAttempts; attempt++ {
		copy(shuffled, pool)
		s.rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		if !hasSolvedPrefix(shuffled, solution) {
			break
		}
	}
	return shuffled
}

// hasSolvedPrefix reports whether the first len(solution) positions of pool
// already spell out the solution.
func hasSolvedPrefix(pool, solution []models.CodeFragment) bool {
	if len(pool) < len(solution) {
		return false
	}
	for i := range solution {
		if pool[i].ID != solution[i].ID {
			return false
		}
	}
	return true
}
