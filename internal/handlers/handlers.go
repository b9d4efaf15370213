package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"playtomic/internal/services"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError translates the service error taxonomy to HTTP. Anything
// unrecognized is a 500 with a caller-supplied generic message so internals
// never leak to clients.
func respondServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrInvalidAmount):
		respondError(w, http.StatusBadRequest, "invalid_amount")
	case errors.Is(err, services.ErrInsufficientFunds):
		respondError(w, http.StatusBadRequest, "insufficient_funds")
	case errors.Is(err, services.ErrInvalidState):
		respondError(w, http.StatusBadRequest, "invalid_state")
	case errors.Is(err, services.ErrAlreadyJoined):
		respondError(w, http.StatusBadRequest, "already_joined")
	case errors.Is(err, services.ErrMatchFull):
		respondError(w, http.StatusBadRequest, "match_full")
	case errors.Is(err, services.ErrForbidden):
		respondError(w, http.StatusForbidden, "access_denied")
	case errors.Is(err, services.ErrNotFound):
		respondError(w, http.StatusNotFound, "not_found")
	default:
		respondError(w, http.StatusInternalServerError, fallback)
	}
}
