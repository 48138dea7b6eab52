package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tudoumono/pypuzzle/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:                 ":8080",
		DBPath:               "test.db",
		LogLevel:             "INFO",
		ProgressSlot:         "default",
		TelemetryWorkerCount: 1,
		TelemetryQueueSize:   64,
		PracticeSetSize:      5,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_EmptyProgressSlot(t *testing.T) {
	cfg := validConfig()
	cfg.ProgressSlot = ""

	assert.Error(t, cfg.Validate())
}

func TestValidate_NonPositiveWorkers(t *testing.T) {
	cfg := validConfig()
	cfg.TelemetryWorkerCount = 0

	assert.Error(t, cfg.Validate())
}

func TestValidate_SpreadsheetWithoutKey(t *testing.T) {
	cfg := validConfig()
	cfg.SpreadsheetID = "sheet-123"
	cfg.SheetsAPIKey = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "SHEETS_API_KEY")
}

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "default", cfg.ProgressSlot)
	assert.Equal(t, 300, cfg.ContentCacheTTLSec)
	assert.Equal(t, 5, cfg.PracticeSetSize)
	assert.NoError(t, cfg.Validate())
}
