package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tudoumono/pypuzzle/internal/apperr"
	"github.com/tudoumono/pypuzzle/internal/logger"
	"github.com/tudoumono/pypuzzle/internal/services"
)

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.PuzzleService.GetCategories(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"categories": categories})
}

func (s *Server) handleCategoryProblems(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryID")

	problems, err := s.PuzzleService.GetPuzzlesByCategory(r.Context(), categoryID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{
		"category_id": categoryID,
		"problems":    problems,
	})
}

func (s *Server) handleNextUnsolved(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryID")

	next, err := s.ProgressService.GetNextUnsolved(r.Context(), categoryID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{
		"category_id":     categoryID,
		"next_problem_id": next,
		"all_completed":   next == "",
	})
}

func (s *Server) handleProblem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	view, err := s.PuzzleService.GetPuzzle(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	id := chi.URLParam(r, "id")

	var req services.SubmitRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.ProblemID == "" {
		req.ProblemID = id
	}
	if req.ProblemID != id {
		handleError(w, r, apperr.NewBadRequest("problem id in body does not match URL"))
		return
	}

	log.Debug("grading submission: problem_id=%s, fragments=%d", req.ProblemID, len(req.FragmentIDs))

	resp, err := s.PuzzleService.SubmitAnswer(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleGiveUp(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resp, err := s.PuzzleService.GiveUp(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, resp)
}
