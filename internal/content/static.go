package content

import (
	"context"
	"encoding/json"
	"os"

	"github.com/tudoumono/pypuzzle/internal/models"
)

// StaticProvider serves a fixed content set loaded from a JSON file. Used
// for offline development and tests.
type StaticProvider struct {
	puzzles []models.Puzzle
	cats    []models.Category
}

type staticContent struct {
	Categories []models.Category `json:"categories"`
	Puzzles    []models.Puzzle   `json:"puzzles"`
}

// NewStaticProvider wraps in-memory content.
func NewStaticProvider(categories []models.Category, puzzles []models.Puzzle) *StaticProvider {
	if len(categories) == 0 {
		categories = DefaultCategories()
	}
	return &StaticProvider{puzzles: puzzles, cats: categories}
}

// LoadStaticProvider reads content from a JSON file with "categories" and
// "puzzles" collections.
func LoadStaticProvider(path string) (*StaticProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c staticContent
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return NewStaticProvider(c.Categories, c.Puzzles), nil
}

func (p *StaticProvider) Categories(ctx context.Context) ([]models.Category, error) {
	return p.cats, nil
}

func (p *StaticProvider) Puzzles(ctx context.Context) ([]models.Puzzle, error) {
	return p.puzzles, nil
}

func (p *StaticProvider) PuzzlesByCategory(ctx context.Context, categoryID string) ([]models.Puzzle, error) {
	return filterByCategory(p.puzzles, categoryID), nil
}

func (p *StaticProvider) PuzzleByID(ctx context.Context, id string) (*models.Puzzle, error) {
	return findByID(p.puzzles, id), nil
}
