package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tudoumono/pypuzzle/internal/models"
)

// MockProvider is a mock implementation of content.Provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Categories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockProvider) Puzzles(ctx context.Context) ([]models.Puzzle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Puzzle), args.Error(1)
}

func (m *MockProvider) PuzzlesByCategory(ctx context.Context, categoryID string) ([]models.Puzzle, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Puzzle), args.Error(1)
}

func (m *MockProvider) PuzzleByID(ctx context.Context, id string) (*models.Puzzle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Puzzle), args.Error(1)
}
