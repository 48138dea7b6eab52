package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tudoumono/pypuzzle/internal/apperr"
	"github.com/tudoumono/pypuzzle/internal/models"
	"github.com/tudoumono/pypuzzle/internal/progress"
	"github.com/tudoumono/pypuzzle/internal/services"
	"github.com/tudoumono/pypuzzle/internal/testutil/mocks"
)

func TestGetProgress_DerivedFields(t *testing.T) {
	provider := new(mocks.MockProvider)
	attemptLog := new(mocks.MockAttemptLogRepository)
	ledger := progress.NewLedger(serviceCategories)
	svc := services.NewProgressService(provider, ledger, attemptLog)

	ctx := context.Background()
	p := servicePuzzle()
	ledger.RecordAttempt(ctx, *p, true, 10, false, 20, "")

	summary, err := svc.GetProgress(ctx)

	require.NoError(t, err)
	assert.Equal(t, 10, summary.TotalPoints)
	assert.Equal(t, 10, summary.MaxLevel)
	assert.Equal(t, 40, summary.PointsToNext, "50 points to level 2, 10 earned")
	assert.InDelta(t, 0.2, summary.LevelProgress, 1e-9)
}

func TestGetNextUnsolved_LockedCategory(t *testing.T) {
	provider := new(mocks.MockProvider)
	ledger := progress.NewLedger(serviceCategories)
	svc := services.NewProgressService(provider, ledger, new(mocks.MockAttemptLogRepository))

	_, err := svc.GetNextUnsolved(context.Background(), "loops")

	var appErr *apperr.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.CodeLocked, appErr.Code)
}

func TestGetNextUnsolved_ReturnsFirstOpenPuzzle(t *testing.T) {
	provider := new(mocks.MockProvider)
	ledger := progress.NewLedger(serviceCategories)
	svc := services.NewProgressService(provider, ledger, new(mocks.MockAttemptLogRepository))

	provider.On("Puzzles", mock.Anything).Return([]models.Puzzle{
		{ID: "var-2", CategoryID: "variables", Order: 2},
		{ID: "var-1", CategoryID: "variables", Order: 1},
	}, nil)

	next, err := svc.GetNextUnsolved(context.Background(), "variables")

	require.NoError(t, err)
	assert.Equal(t, "var-1", next)
}

func TestRefreshCategoryTotals(t *testing.T) {
	provider := new(mocks.MockProvider)
	ledger := progress.NewLedger(serviceCategories)
	svc := services.NewProgressService(provider, ledger, new(mocks.MockAttemptLogRepository))

	provider.On("Puzzles", mock.Anything).Return([]models.Puzzle{
		{ID: "var-1", CategoryID: "variables", Points: 10},
		{ID: "var-2", CategoryID: "variables", Points: 15},
		{ID: "loop-1", CategoryID: "loops", Points: 20},
	}, nil)

	require.NoError(t, svc.RefreshCategoryTotals(context.Background()))

	snap := ledger.Snapshot()
	assert.Equal(t, 2, snap.CategoryProgress["variables"].TotalCount)
	assert.Equal(t, 25, snap.CategoryProgress["variables"].MaxPoints)
	assert.Equal(t, 1, snap.CategoryProgress["loops"].TotalCount)
}

func TestResetProgress_ClearsLedger(t *testing.T) {
	provider := new(mocks.MockProvider)
	ledger := progress.NewLedger(serviceCategories)
	svc := services.NewProgressService(provider, ledger, new(mocks.MockAttemptLogRepository))

	ctx := context.Background()
	ledger.RecordAttempt(ctx, *servicePuzzle(), true, 10, false, 10, "")
	require.NoError(t, svc.ResetProgress(ctx))

	snap := ledger.Snapshot()
	assert.Equal(t, 0, snap.TotalPoints)
	assert.Empty(t, snap.ProblemAttempts)
}

func TestGetAttemptHistory(t *testing.T) {
	provider := new(mocks.MockProvider)
	attemptLog := new(mocks.MockAttemptLogRepository)
	ledger := progress.NewLedger(serviceCategories)
	svc := services.NewProgressService(provider, ledger, attemptLog)

	filter := models.AttemptLogFilter{CategoryID: "variables"}
	attemptLog.On("List", mock.Anything, filter).Return([]models.AttemptLogEntry{{ID: 1, ProblemID: "var-1"}}, nil)
	attemptLog.On("Count", mock.Anything, filter).Return(7, nil)

	history, err := svc.GetAttemptHistory(context.Background(), filter)

	require.NoError(t, err)
	require.Len(t, history.Entries, 1)
	assert.Equal(t, 7, history.TotalCount)
}
