package telemetry_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tudoumono/pypuzzle/internal/models"
	"github.com/tudoumono/pypuzzle/internal/telemetry"
)

func testEvent() models.AttemptEvent {
	return models.AttemptEvent{
		LearnerID:    "anon-123",
		ProblemID:    "var-1",
		CategoryID:   "variables",
		IsCorrect:    true,
		Points:       10,
		TimeSpentSec: 30,
		AttemptNo:    1,
	}
}

func TestHTTPSink_SendsWireFormat(t *testing.T) {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}))
	defer srv.Close()

	sink := telemetry.NewHTTPSink(srv.URL)
	err := sink.Send(context.Background(), testEvent())

	require.NoError(t, err)
	assert.Equal(t, "anon-123", received["userId"])
	assert.Equal(t, "var-1", received["problemId"])
	assert.Equal(t, "variables", received["categoryId"])
	assert.Equal(t, true, received["isCorrect"])
	assert.Equal(t, float64(10), received["points"])
	assert.Equal(t, float64(1), received["attemptNo"])
}

func TestHTTPSink_ErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "missing userId"})
	}))
	defer srv.Close()

	sink := telemetry.NewHTTPSink(srv.URL)
	err := sink.Send(context.Background(), testEvent())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing userId")
}

func TestHTTPSink_ServerUnreachable(t *testing.T) {
	sink := telemetry.NewHTTPSink("http://127.0.0.1:1")
	err := sink.Send(context.Background(), testEvent())
	assert.Error(t, err)
}

func TestSanitize_ClampsFields(t *testing.T) {
	event := telemetry.Sanitize(models.AttemptEvent{
		Points:       -5,
		TimeSpentSec: -10,
		AttemptNo:    0,
	})

	assert.Equal(t, 0, event.Points)
	assert.Equal(t, 0, event.TimeSpentSec)
	assert.Equal(t, 1, event.AttemptNo)
}

func TestRoundSeconds(t *testing.T) {
	assert.Equal(t, 0, telemetry.RoundSeconds(-3))
	assert.Equal(t, 0, telemetry.RoundSeconds(0.4))
	assert.Equal(t, 1, telemetry.RoundSeconds(0.5))
	assert.Equal(t, 30, telemetry.RoundSeconds(30.2))
}

func TestNopSink(t *testing.T) {
	assert.NoError(t, telemetry.NopSink{}.Send(context.Background(), testEvent()))
}
