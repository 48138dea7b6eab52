package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tudoumono/pypuzzle/internal/api"
	"github.com/tudoumono/pypuzzle/internal/config"
	"github.com/tudoumono/pypuzzle/internal/content"
	"github.com/tudoumono/pypuzzle/internal/db"
	"github.com/tudoumono/pypuzzle/internal/jobs"
	"github.com/tudoumono/pypuzzle/internal/logger"
	"github.com/tudoumono/pypuzzle/internal/picker"
	"github.com/tudoumono/pypuzzle/internal/progress"
	"github.com/tudoumono/pypuzzle/internal/puzzle"
	"github.com/tudoumono/pypuzzle/internal/repository/sqlite"
	"github.com/tudoumono/pypuzzle/internal/services"
	"github.com/tudoumono/pypuzzle/internal/telemetry"
	"github.com/tudoumono/pypuzzle/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("PyPuzzle Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("progress_slot=%s", cfg.ProgressSlot)
	log.Debug("telemetry_worker_count=%d", cfg.TelemetryWorkerCount)
	log.Debug("telemetry_queue_size=%d", cfg.TelemetryQueueSize)
	log.Debug("practice_set_size=%d", cfg.PracticeSetSize)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	startCtx := context.Background()

	progressRepo := sqlite.NewProgressRepository(database.DB)
	learnerRepo := sqlite.NewLearnerRepository(database.DB)
	attemptLogRepo := sqlite.NewAttemptLogRepository(database.DB)

	learnerID, err := learnerRepo.GetOrCreate(startCtx, cfg.ProgressSlot)
	if err != nil {
		log.Error("failed to resolve learner identity: %v", err)
		os.Exit(1)
	}
	log.Info("learner identity: %s", learnerID)

	// Content source: spreadsheet when configured, bundled file otherwise.
	var provider content.Provider
	if cfg.SpreadsheetID != "" {
		client := content.NewSheetsClient(cfg.SpreadsheetID, cfg.SheetsAPIKey)
		provider = content.NewSheetsProvider(client, cfg.ProblemsRange, cfg.CategoriesRange,
			time.Duration(cfg.ContentCacheTTLSec)*time.Second)
		log.Info("content source: spreadsheet %s", cfg.SpreadsheetID)
	} else {
		static, err := content.LoadStaticProvider(cfg.ContentPath)
		if err != nil {
			log.Warn("failed to load content file %s: %v, starting with defaults", cfg.ContentPath, err)
			static = content.NewStaticProvider(nil, nil)
		}
		provider = static
		log.Info("content source: file %s", cfg.ContentPath)
	}

	categories, err := provider.Categories(startCtx)
	if err != nil {
		log.Warn("failed to load categories: %v, using defaults", err)
		categories = content.DefaultCategories()
	}

	ledger := progress.NewLedger(categories,
		progress.WithStore(progressRepo, cfg.ProgressSlot))
	if snapshot, err := progressRepo.Load(startCtx, cfg.ProgressSlot); err != nil {
		log.Warn("failed to load stored progress, starting fresh: %v", err)
	} else if snapshot != nil {
		ledger.Restore(*snapshot)
		log.Info("progress restored: level=%d, solved=%d", snapshot.Level, snapshot.TotalSolved)
	}

	// Telemetry sink and delivery pool
	var sink telemetry.Sink = telemetry.NopSink{}
	if cfg.TelemetryURL != "" {
		sink = telemetry.NewHTTPSink(cfg.TelemetryURL)
		log.Info("telemetry sink: %s", cfg.TelemetryURL)
	} else {
		log.Info("telemetry disabled")
	}
	telemetryPool := worker.NewPool(cfg.TelemetryWorkerCount, cfg.TelemetryQueueSize)
	queue := jobs.NewWorkerQueue(telemetryPool, sink)

	// Initialize services
	puzzleService := services.NewPuzzleService(provider, ledger, puzzle.NewShuffler(), attemptLogRepo, queue, learnerID)
	progressService := services.NewProgressService(provider, ledger, attemptLogRepo)
	practiceService := services.NewPracticeService(provider, ledger, picker.New())

	if err := progressService.RefreshCategoryTotals(startCtx); err != nil {
		log.Warn("failed to refresh category totals: %v", err)
	}

	srv := &api.Server{
		PuzzleService:   puzzleService,
		ProgressService: progressService,
		PracticeService: practiceService,
		PracticeSetSize: cfg.PracticeSetSize,
	}

	ctx, cancel := context.WithCancel(context.Background())
	telemetryPool.Start(ctx)

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping worker pools")
	cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping telemetry pool")
	telemetryPool.Stop()

	log.Info("===========================================")
	log.Info("PyPuzzle Server Stopped")
	log.Info("===========================================")
}
