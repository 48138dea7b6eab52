package api

import (
	"net/http"
	"strconv"

	"github.com/tudoumono/pypuzzle/internal/logger"
	"github.com/tudoumono/pypuzzle/internal/models"
)

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	summary, err := s.ProgressService.GetProgress(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, summary)
}

func (s *Server) handleExportProgress(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.ProgressService.ExportProgress(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="progress.json"`)
	respondJSON(w, r, http.StatusOK, snapshot)
}

func (s *Server) handleResetProgress(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Info("progress reset requested")

	if err := s.ProgressService.ResetProgress(r.Context()); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := models.AttemptLogFilter{
		ProblemID:  q.Get("problem_id"),
		CategoryID: q.Get("category_id"),
	}
	if v := q.Get("correct"); v != "" {
		correct := v == "true" || v == "1"
		filter.Correct = &correct
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(q.Get("offset")); err == nil && offset > 0 {
		filter.Offset = offset
	}

	history, err := s.ProgressService.GetAttemptHistory(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, history)
}
