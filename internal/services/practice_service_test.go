package services_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tudoumono/pypuzzle/internal/models"
	"github.com/tudoumono/pypuzzle/internal/picker"
	"github.com/tudoumono/pypuzzle/internal/progress"
	"github.com/tudoumono/pypuzzle/internal/services"
	"github.com/tudoumono/pypuzzle/internal/testutil/mocks"
)

func TestGetPracticeSet_OnlyUnlockedCategories(t *testing.T) {
	provider := new(mocks.MockProvider)
	ledger := progress.NewLedger(serviceCategories)
	svc := services.NewPracticeService(provider, ledger, picker.NewWithSource(rand.NewSource(5)))

	provider.On("Puzzles", mock.Anything).Return([]models.Puzzle{
		{ID: "var-1", CategoryID: "variables"},
		{ID: "var-2", CategoryID: "variables"},
		{ID: "loop-1", CategoryID: "loops"},
	}, nil)

	set, err := svc.GetPracticeSet(context.Background(), 3)

	require.NoError(t, err)
	require.Len(t, set, 2, "locked categories are excluded")
	for _, s := range set {
		assert.Equal(t, "variables", s.CategoryID)
	}
}

func TestGetPracticeSet_InvalidCount(t *testing.T) {
	provider := new(mocks.MockProvider)
	ledger := progress.NewLedger(serviceCategories)
	svc := services.NewPracticeService(provider, ledger, picker.NewWithSource(rand.NewSource(5)))

	_, err := svc.GetPracticeSet(context.Background(), 0)
	assert.Error(t, err)
}

func TestGetPracticeSet_CarriesAttemptState(t *testing.T) {
	provider := new(mocks.MockProvider)
	ledger := progress.NewLedger(serviceCategories)
	svc := services.NewPracticeService(provider, ledger, picker.NewWithSource(rand.NewSource(5)))

	ctx := context.Background()
	p := servicePuzzle()
	ledger.RecordAttempt(ctx, *p, false, 0, false, 10, "f2")

	provider.On("Puzzles", mock.Anything).Return([]models.Puzzle{*p}, nil)

	set, err := svc.GetPracticeSet(ctx, 1)

	require.NoError(t, err)
	require.Len(t, set, 1)
	assert.Equal(t, models.StatusAttempted, set[0].Status)
}
