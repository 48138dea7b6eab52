package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tudoumono/pypuzzle/internal/models"
	"github.com/tudoumono/pypuzzle/internal/repository/sqlite"
	"github.com/tudoumono/pypuzzle/internal/testutil"
)

func sampleProgress() models.UserProgress {
	completedAt := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	return models.UserProgress{
		Version:     1,
		TotalPoints: 18,
		Level:       1,
		TotalSolved: 2,
		ProblemAttempts: map[string]models.ProblemAttempt{
			"var-1": {
				ProblemID:   "var-1",
				Status:      models.StatusCompleted,
				Attempts:    2,
				BestScore:   8,
				CompletedAt: &completedAt,
			},
		},
		CategoryProgress: map[string]models.CategoryProgress{
			"variables": {CategoryID: "variables", CompletedCount: 2, TotalCount: 5, IsUnlocked: true},
		},
		Streak: models.StreakState{CurrentStreak: 3, LongestStreak: 5, LastActivityDate: "2026-03-14"},
	}
}

func TestProgressRepository_SaveAndLoad(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := sqlite.NewProgressRepository(database.DB)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "default", sampleProgress()))

	loaded, err := repo.Load(ctx, "default")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 18, loaded.TotalPoints)
	assert.Equal(t, 2, loaded.TotalSolved)
	require.Contains(t, loaded.ProblemAttempts, "var-1")
	assert.Equal(t, models.StatusCompleted, loaded.ProblemAttempts["var-1"].Status)
	assert.Equal(t, "2026-03-14", loaded.Streak.LastActivityDate)
}

func TestProgressRepository_LoadEmptySlot(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := sqlite.NewProgressRepository(database.DB)

	loaded, err := repo.Load(context.Background(), "nothing-here")
	require.NoError(t, err)
	assert.Nil(t, loaded, "empty slot returns nil without error")
}

func TestProgressRepository_SaveOverwrites(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := sqlite.NewProgressRepository(database.DB)
	ctx := context.Background()

	first := sampleProgress()
	require.NoError(t, repo.Save(ctx, "default", first))

	second := sampleProgress()
	second.TotalPoints = 40
	require.NoError(t, repo.Save(ctx, "default", second))

	loaded, err := repo.Load(ctx, "default")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 40, loaded.TotalPoints)
}

func TestProgressRepository_SlotsAreIndependent(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := sqlite.NewProgressRepository(database.DB)
	ctx := context.Background()

	a := sampleProgress()
	b := sampleProgress()
	b.TotalPoints = 99

	require.NoError(t, repo.Save(ctx, "a", a))
	require.NoError(t, repo.Save(ctx, "b", b))

	loadedA, err := repo.Load(ctx, "a")
	require.NoError(t, err)
	loadedB, err := repo.Load(ctx, "b")
	require.NoError(t, err)

	assert.Equal(t, 18, loadedA.TotalPoints)
	assert.Equal(t, 99, loadedB.TotalPoints)
}

func TestProgressRepository_Reset(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := sqlite.NewProgressRepository(database.DB)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "default", sampleProgress()))
	require.NoError(t, repo.Reset(ctx, "default"))

	loaded, err := repo.Load(ctx, "default")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}
