package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/api-sage/ledger-service/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// statusFromError maps domain sentinels onto HTTP statuses. Anything
// unrecognized is a 500.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientBalance),
		errors.Is(err, domain.ErrNonZeroBalance):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrAccountNotActive),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidTransfer),
		errors.Is(err, domain.ErrInvalidRange),
		errors.Is(err, domain.ErrStatusTransitionNotAllowed):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict
	case errors.Is(err, domain.ErrCardLimitReached):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// statusFromServiceError treats validation responses as 400 even though
// validation errors are plain errors rather than sentinels.
func statusFromServiceError(err error, message string) int {
	if message == "validation failed" {
		return http.StatusBadRequest
	}
	return statusFromError(err)
}
