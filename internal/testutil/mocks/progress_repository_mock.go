package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tudoumono/pypuzzle/internal/models"
)

// MockProgressRepository is a mock implementation of repository.ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Load(ctx context.Context, slot string) (*models.UserProgress, error) {
	args := m.Called(ctx, slot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProgress), args.Error(1)
}

func (m *MockProgressRepository) Save(ctx context.Context, slot string, progress models.UserProgress) error {
	args := m.Called(ctx, slot, progress)
	return args.Error(0)
}

func (m *MockProgressRepository) Reset(ctx context.Context, slot string) error {
	args := m.Called(ctx, slot)
	return args.Error(0)
}
