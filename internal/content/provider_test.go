package content_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tudoumono/pypuzzle/internal/content"
	"github.com/tudoumono/pypuzzle/internal/models"
)

func sheetsServer(t *testing.T, fail *atomic.Bool, fetches *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail != nil && fail.Load() {
			http.Error(w, "backend down", http.StatusInternalServerError)
			return
		}
		if fetches != nil {
			fetches.Add(1)
		}

		var values [][]string
		if strings.Contains(r.URL.Path, "problems") {
			values = [][]string{
				{"id", "categoryId"},
				{"var-1", "variables", "beginner", "1", "Assign", "", "token", `[{"id":"f1","content":"x"}]`, "", "", "10"},
				{"loop-1", "loops", "easy", "1", "Count", "", "token", `[{"id":"f1","content":"for"}]`, "", "", "15"},
			}
		} else {
			values = [][]string{
				{"id", "title"},
				{"variables", "Variables", "", "", "", "1"},
				{"loops", "Loops", "", "", "", "2"},
			}
		}
		json.NewEncoder(w).Encode(map[string]any{"values": values})
	}))
}

func newTestProvider(srv *httptest.Server, ttl time.Duration) *content.SheetsProvider {
	client := content.NewSheetsClient("sheet-id", "key", content.WithBaseURL(srv.URL))
	return content.NewSheetsProvider(client, "problems!A:P", "categories!A:F", ttl)
}

func TestSheetsProvider_LoadsContent(t *testing.T) {
	srv := sheetsServer(t, nil, nil)
	defer srv.Close()
	p := newTestProvider(srv, time.Minute)

	puzzles, err := p.Puzzles(context.Background())
	require.NoError(t, err)
	assert.Len(t, puzzles, 2)

	cats, err := p.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "variables", cats[0].ID)
}

func TestSheetsProvider_CachesWithinTTL(t *testing.T) {
	var fetches atomic.Int32
	srv := sheetsServer(t, nil, &fetches)
	defer srv.Close()
	p := newTestProvider(srv, time.Minute)

	ctx := context.Background()
	_, err := p.Puzzles(ctx)
	require.NoError(t, err)
	_, err = p.Puzzles(ctx)
	require.NoError(t, err)
	_, err = p.Categories(ctx)
	require.NoError(t, err)

	assert.Equal(t, int32(2), fetches.Load(), "one problems fetch and one categories fetch")
}

func TestSheetsProvider_ServesStaleOnFailure(t *testing.T) {
	var fail atomic.Bool
	srv := sheetsServer(t, &fail, nil)
	defer srv.Close()
	p := newTestProvider(srv, time.Nanosecond)

	ctx := context.Background()
	puzzles, err := p.Puzzles(ctx)
	require.NoError(t, err)
	require.Len(t, puzzles, 2)

	fail.Store(true)
	time.Sleep(time.Millisecond)

	stale, err := p.Puzzles(ctx)
	require.NoError(t, err, "refresh failure serves the cached copy")
	assert.Len(t, stale, 2)
}

func TestSheetsProvider_FailureWithoutCacheIsAnError(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	srv := sheetsServer(t, &fail, nil)
	defer srv.Close()
	p := newTestProvider(srv, time.Minute)

	_, err := p.Puzzles(context.Background())
	assert.Error(t, err)
}

func TestSheetsProvider_ByCategoryAndID(t *testing.T) {
	srv := sheetsServer(t, nil, nil)
	defer srv.Close()
	p := newTestProvider(srv, time.Minute)

	ctx := context.Background()
	loops, err := p.PuzzlesByCategory(ctx, "loops")
	require.NoError(t, err)
	require.Len(t, loops, 1)
	assert.Equal(t, "loop-1", loops[0].ID)

	found, err := p.PuzzleByID(ctx, "var-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "variables", found.CategoryID)

	missing, err := p.PuzzleByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStaticProvider_DefaultsWhenEmpty(t *testing.T) {
	p := content.NewStaticProvider(nil, []models.Puzzle{{ID: "p1", CategoryID: "variables"}})

	cats, err := p.Categories(context.Background())
	require.NoError(t, err)
	assert.Len(t, cats, 5, "built-in category set")

	found, err := p.PuzzleByID(context.Background(), "p1")
	require.NoError(t, err)
	require.NotNil(t, found)
}
