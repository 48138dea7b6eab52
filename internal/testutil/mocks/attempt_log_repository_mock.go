package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tudoumono/pypuzzle/internal/models"
)

// MockAttemptLogRepository is a mock implementation of repository.AttemptLogRepository
type MockAttemptLogRepository struct {
	mock.Mock
}

func (m *MockAttemptLogRepository) Insert(ctx context.Context, entry models.AttemptLogEntry) (int64, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAttemptLogRepository) List(ctx context.Context, filter models.AttemptLogFilter) ([]models.AttemptLogEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AttemptLogEntry), args.Error(1)
}

func (m *MockAttemptLogRepository) Count(ctx context.Context, filter models.AttemptLogFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}
