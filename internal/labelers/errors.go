package labelers

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound          = errors.New("labeler not found")
	ErrDuplicateUsername = errors.New("username already registered")
	ErrInvalidRole       = errors.New("invalid role")
	ErrForbidden         = errors.New("labeler not permitted")
)

// MapHTTPStatus translates domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateUsername):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidRole):
		return http.StatusBadRequest
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
