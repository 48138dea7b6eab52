package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", s.handleCategories)
		r.Get("/categories/{categoryID}/problems", s.handleCategoryProblems)
		r.Get("/categories/{categoryID}/next", s.handleNextUnsolved)
		r.Get("/problems/{id}", s.handleProblem)
		r.Post("/problems/{id}/submit", s.handleSubmit)
		r.Post("/problems/{id}/give-up", s.handleGiveUp)
		r.Get("/progress", s.handleProgress)
		r.Get("/progress/export", s.handleExportProgress)
		r.Post("/progress/reset", s.handleResetProgress)
		r.Get("/practice", s.handlePractice)
		r.Get("/history", s.handleHistory)
	})

	return r
}
