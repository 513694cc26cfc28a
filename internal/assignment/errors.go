package assignment

import (
	"errors"
	"net/http"

	"github.com/verdict-labs/verdict/internal/labelers"
)

// ErrNoTask signals that no eligible work exists for the labeler right now.
// It is a normal outcome, not a failure.
var ErrNoTask = errors.New("no task available")

// MapHTTPStatus translates domain errors to HTTP status codes. ErrNoTask is
// expected to be handled before this point.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, labelers.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, labelers.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
