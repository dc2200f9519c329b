package http

import (
	"encoding/json"
	"log"
	"net/http"

	"soldo/internal/shared/apperror"
)

type errorResponse struct {
	Error   string                `json:"error"`
	Details []apperror.FieldError `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Printf("Error encoding response: %v", err)
		}
	}
}

// writeError maps a taxonomy error to its HTTP status. Anything outside
// the taxonomy is logged and returned as an opaque 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if appErr, ok := apperror.From(err); ok {
		writeJSON(w, appErr.HTTPStatus(), errorResponse{
			Error:   appErr.Message,
			Details: appErr.Fields,
		})
		return
	}

	log.Printf("Internal error on %s %s: %v", r.Method, r.URL.Path, err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return false
	}
	return true
}
