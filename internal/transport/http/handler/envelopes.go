package handler

import (
	"encoding/json"
	"net/http"

	"github.com/codearena/auth-api/internal/domain"
)

// writeResult sends the Result envelope: 200 for success, 400 for any
// failure. Error-code strings inside the envelope are the client contract;
// the status code intentionally stays uniform.
func writeResult[T any](w http.ResponseWriter, res domain.Result[T]) {
	status := http.StatusOK
	if res.IsFailure() {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, res)
}

// badBody is the envelope for an undecodable request body.
func badBody[T any](w http.ResponseWriter) {
	writeResult(w, domain.ValidationFailure[T](
		[]domain.Error{domain.ValidationError("invalid request body")},
		"Validation failed",
	))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
