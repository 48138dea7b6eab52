package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tudoumono/pypuzzle/internal/models"
)

// MockSink is a mock implementation of telemetry.Sink
type MockSink struct {
	mock.Mock
}

func (m *MockSink) Send(ctx context.Context, event models.AttemptEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
