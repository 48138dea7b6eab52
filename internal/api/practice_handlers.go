package api

import (
	"net/http"
	"strconv"
)

func (s *Server) handlePractice(w http.ResponseWriter, r *http.Request) {
	count := s.PracticeSetSize
	if v, err := strconv.Atoi(r.URL.Query().Get("count")); err == nil && v > 0 {
		count = v
	}

	set, err := s.PracticeService.GetPracticeSet(r.Context(), count)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"problems": set})
}
