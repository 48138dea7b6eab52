package api

import (
	"encoding/json"
	"net/http"

	"github.com/tudoumono/pypuzzle/internal/apperr"
	"github.com/tudoumono/pypuzzle/internal/logger"
)

// maxBodyBytes bounds request bodies; submissions are small.
const maxBodyBytes = 1 << 20

func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

func decodeJSON(r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return apperr.NewBadRequest("invalid JSON body: " + err.Error())
	}
	return nil
}
