package content

import (
	"errors"
	"net/http"

	"github.com/verdict-labs/verdict/internal/labelers"
)

var (
	ErrNotFound        = errors.New("content item not found")
	ErrDuplicateURL    = errors.New("url already queued")
	ErrInvalidURL      = errors.New("invalid url")
	ErrInvalidPriority = errors.New("priority out of range")
)

// MapHTTPStatus translates domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateURL):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidURL), errors.Is(err, ErrInvalidPriority):
		return http.StatusBadRequest
	case errors.Is(err, labelers.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, labelers.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
