package content

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tudoumono/pypuzzle/internal/logger"
	"github.com/tudoumono/pypuzzle/internal/models"
)

// Provider supplies puzzle and category collections. Implementations are
// read-only from the caller's point of view.
type Provider interface {
	Categories(ctx context.Context) ([]models.Category, error)
	Puzzles(ctx context.Context) ([]models.Puzzle, error)
	PuzzlesByCategory(ctx context.Context, categoryID string) ([]models.Puzzle, error)
	PuzzleByID(ctx context.Context, id string) (*models.Puzzle, error)
}

// SheetsProvider serves content from a spreadsheet through a TTL cache.
// When a refresh fails and a cached copy exists, the stale copy is served.
type SheetsProvider struct {
	client          *SheetsClient
	problemsRange   string
	categoriesRange string
	ttl             time.Duration
	log             *logger.Logger

	mu        sync.Mutex
	puzzles   []models.Puzzle
	cats      []models.Category
	fetchedAt time.Time
}

// NewSheetsProvider creates a provider reading the given ranges.
func NewSheetsProvider(client *SheetsClient, problemsRange, categoriesRange string, ttl time.Duration) *SheetsProvider {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &SheetsProvider{
		client:          client,
		problemsRange:   problemsRange,
		categoriesRange: categoriesRange,
		ttl:             ttl,
		log:             logger.Default().WithPrefix("content"),
	}
}

func (p *SheetsProvider) refresh(ctx context.Context) ([]models.Puzzle, []models.Category, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.puzzles != nil && time.Since(p.fetchedAt) < p.ttl {
		return p.puzzles, p.cats, nil
	}

	rows, err := p.client.FetchValues(ctx, p.problemsRange)
	if err != nil {
		if p.puzzles != nil {
			p.log.Warn("content refresh failed, serving cached copy: %v", err)
			return p.puzzles, p.cats, nil
		}
		return nil, nil, err
	}
	puzzles := ParsePuzzleRows(rows)

	cats := DefaultCategories()
	catRows, err := p.client.FetchValues(ctx, p.categoriesRange)
	if err != nil {
		p.log.Warn("failed to fetch categories, using defaults: %v", err)
	} else if parsed := ParseCategoryRows(catRows); len(parsed) > 0 {
		cats = parsed
	}

	p.puzzles = puzzles
	p.cats = cats
	p.fetchedAt = time.Now()
	p.log.Info("content refreshed: %d puzzles, %d categories", len(puzzles), len(cats))
	return p.puzzles, p.cats, nil
}

func (p *SheetsProvider) Categories(ctx context.Context) ([]models.Category, error) {
	_, cats, err := p.refresh(ctx)
	return cats, err
}

func (p *SheetsProvider) Puzzles(ctx context.Context) ([]models.Puzzle, error) {
	puzzles, _, err := p.refresh(ctx)
	return puzzles, err
}

func (p *SheetsProvider) PuzzlesByCategory(ctx context.Context, categoryID string) ([]models.Puzzle, error) {
	puzzles, err := p.Puzzles(ctx)
	if err != nil {
		return nil, err
	}
	return filterByCategory(puzzles, categoryID), nil
}

func (p *SheetsProvider) PuzzleByID(ctx context.Context, id string) (*models.Puzzle, error) {
	puzzles, err := p.Puzzles(ctx)
	if err != nil {
		return nil, err
	}
	return findByID(puzzles, id), nil
}

func filterByCategory(puzzles []models.Puzzle, categoryID string) []models.Puzzle {
	var out []models.Puzzle
	for _, p := range puzzles {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

func findByID(puzzles []models.Puzzle, id string) *models.Puzzle {
	for i := range puzzles {
		if puzzles[i].ID == id {
			return &puzzles[i]
		}
	}
	return nil
}
