package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/tudoumono/pypuzzle/internal/logger"
	"github.com/tudoumono/pypuzzle/internal/models"
)

// Sink accepts attempt events. Implementations must treat delivery as
// best-effort; callers never retry.
type Sink interface {
	Send(ctx context.Context, event models.AttemptEvent) error
}

// HTTPSink posts attempt events as JSON to an external analytics endpoint.
type HTTPSink struct {
	url        string
	httpClient *http.Client
	log        *logger.Logger
}

// NewHTTPSink creates a sink targeting the given URL.
func NewHTTPSink(url string) *HTTPSink {
	return &HTTPSink{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        logger.Default().WithPrefix("telemetry"),
	}
}

type sinkResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func (s *HTTPSink) Send(ctx context.Context, event models.AttemptEvent) error {
	log := logger.FromContext(ctx).WithPrefix("telemetry")

	body, err := json.Marshal(Sanitize(event))
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	log.Debug("attempt event response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		var parsed sinkResponse
		if json.Unmarshal(raw, &parsed) == nil && parsed.Error != "" {
			return fmt.Errorf("sink status %d: %s", resp.StatusCode, parsed.Error)
		}
		return fmt.Errorf("sink status %d: %s", resp.StatusCode, string(raw))
	}
	return nil
}

// Sanitize clamps event fields to the sink's contract: non-negative rounded
// points and study time, attempt number at least 1.
func Sanitize(event models.AttemptEvent) models.AttemptEvent {
	if event.Points < 0 {
		event.Points = 0
	}
	if event.TimeSpentSec < 0 {
		event.TimeSpentSec = 0
	}
	if event.AttemptNo < 1 {
		event.AttemptNo = 1
	}
	return event
}

// RoundSeconds converts a measured duration in seconds to the sink's
// integer representation.
func RoundSeconds(seconds float64) int {
	if seconds < 0 {
		return 0
	}
	return int(math.Round(seconds))
}

// NopSink discards events. Used when no telemetry endpoint is configured.
type NopSink struct{}

func (NopSink) Send(ctx context.Context, event models.AttemptEvent) error {
	logger.FromContext(ctx).Debug("telemetry disabled, dropping attempt event: problem_id=%s", event.ProblemID)
	return nil
}
