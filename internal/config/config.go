package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                 string
	DBPath               string
	LogLevel             string
	ProgressSlot         string
	SpreadsheetID        string
	SheetsAPIKey         string
	ProblemsRange        string
	CategoriesRange      string
	ContentPath          string
	ContentCacheTTLSec   int
	TelemetryURL         string
	TelemetryWorkerCount int
	TelemetryQueueSize   int
	PracticeSetSize      int
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                 envOr("ADDR", ":8080"),
		DBPath:               envOr("DB_PATH", "file:pypuzzle.db"),
		LogLevel:             envOr("LOG_LEVEL", "INFO"),
		ProgressSlot:         envOr("PROGRESS_SLOT", "default"),
		SpreadsheetID:        envOr("SHEETS_SPREADSHEET_ID", ""),
		SheetsAPIKey:         envOr("SHEETS_API_KEY", ""),
		ProblemsRange:        envOr("SHEETS_PROBLEMS_RANGE", "problems!A:P"),
		CategoriesRange:      envOr("SHEETS_CATEGORIES_RANGE", "categories!A:F"),
		ContentPath:          envOr("CONTENT_PATH", "data/puzzles.json"),
		ContentCacheTTLSec:   envIntOr("CONTENT_CACHE_TTL_SEC", 300),
		TelemetryURL:         envOr("TELEMETRY_URL", ""),
		TelemetryWorkerCount: envIntOr("TELEMETRY_WORKER_COUNT", 1),
		TelemetryQueueSize:   envIntOr("TELEMETRY_QUEUE_SIZE", 64),
		PracticeSetSize:      envIntOr("PRACTICE_SET_SIZE", 5),
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.ProgressSlot == "" {
		return fmt.Errorf("PROGRESS_SLOT cannot be empty")
	}
	if c.TelemetryWorkerCount <= 0 {
		return fmt.Errorf("TELEMETRY_WORKER_COUNT must be positive")
	}
	if c.TelemetryQueueSize <= 0 {
		return fmt.Errorf("TELEMETRY_QUEUE_SIZE must be positive")
	}
	if c.PracticeSetSize <= 0 {
		return fmt.Errorf("PRACTICE_SET_SIZE must be positive")
	}
	if c.SpreadsheetID != "" && c.SheetsAPIKey == "" {
		return fmt.Errorf("SHEETS_API_KEY is required when SHEETS_SPREADSHEET_ID is set")
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
