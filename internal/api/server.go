package api

import "github.com/tudoumono/pypuzzle/internal/services"

// Server holds the HTTP handlers' dependencies.
type Server struct {
	PuzzleService   services.PuzzleService
	ProgressService services.ProgressService
	PracticeService services.PracticeService
	PracticeSetSize int
}
