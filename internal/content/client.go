package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tudoumono/pypuzzle/internal/logger"
)

const defaultSheetsBaseURL = "https://sheets.googleapis.com/v4/spreadsheets"

// SheetsClient fetches cell ranges from the Google Sheets values API using
// an API key (the content spreadsheet is published read-only).
type SheetsClient struct {
	baseURL       string
	spreadsheetID string
	apiKey        string
	httpClient    *http.Client
	log           *logger.Logger
}

// ClientOption configures a SheetsClient.
type ClientOption func(*SheetsClient)

// WithBaseURL overrides the API endpoint. Tests point this at a local
// server.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *SheetsClient) { c.baseURL = baseURL }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *SheetsClient) { c.httpClient = httpClient }
}

// NewSheetsClient creates a client for one spreadsheet.
func NewSheetsClient(spreadsheetID, apiKey string, opts ...ClientOption) *SheetsClient {
	c := &SheetsClient{
		baseURL:       defaultSheetsBaseURL,
		spreadsheetID: spreadsheetID,
		apiKey:        apiKey,
		httpClient:    &http.Client{Timeout: 15 * time.Second},
		log:           logger.Default().WithPrefix("sheets"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type valuesResp struct {
	Range  string     `json:"range"`
	Values [][]string `json:"values"`
}

// FetchValues returns the rows of one A1-notation range.
func (c *SheetsClient) FetchValues(ctx context.Context, readRange string) ([][]string, error) {
	log := logger.FromContext(ctx).WithPrefix("sheets").WithField("range", readRange)

	endpoint := fmt.Sprintf("%s/%s/values/%s?key=%s",
		c.baseURL, url.PathEscape(c.spreadsheetID), url.PathEscape(readRange), url.QueryEscape(c.apiKey))

	log.Debug("fetching sheet values")
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("failed to fetch sheet values: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	log.Debug("values response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("values request failed: status=%d, body=%s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("sheet values status %d: %s", resp.StatusCode, string(body))
	}

	var out valuesResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Error("failed to decode values response: %v", err)
		return nil, err
	}

	log.Info("fetched %d rows from range %s", len(out.Values), readRange)
	return out.Values, nil
}
