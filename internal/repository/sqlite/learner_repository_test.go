package sqlite_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tudoumono/pypuzzle/internal/repository/sqlite"
	"github.com/tudoumono/pypuzzle/internal/testutil"
)

func TestLearnerRepository_GetOrCreate(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := sqlite.NewLearnerRepository(database.DB)
	ctx := context.Background()

	id, err := repo.GetOrCreate(ctx, "default")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "anon-"), "learner id carries the anonymous prefix")

	again, err := repo.GetOrCreate(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, id, again, "identity is stable per slot")

	other, err := repo.GetOrCreate(ctx, "second")
	require.NoError(t, err)
	assert.NotEqual(t, id, other, "each slot gets its own identity")
}
