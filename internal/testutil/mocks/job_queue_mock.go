package mocks

import (
	"github.com/stretchr/testify/mock"
	"github.com/tudoumono/pypuzzle/internal/models"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueAttemptEvent(event models.AttemptEvent) error {
	args := m.Called(event)
	return args.Error(0)
}
