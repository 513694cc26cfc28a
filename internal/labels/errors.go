package labels

import (
	"errors"
	"net/http"

	"github.com/verdict-labs/verdict/internal/labelers"
)

var (
	ErrNotFound              = errors.New("label not found")
	ErrNotAssigned           = errors.New("content item not assigned to labeler")
	ErrAlreadyLabeled        = errors.New("labeler already labeled this content item")
	ErrInvalidClassification = errors.New("invalid classification")
	ErrInvalidConfidence     = errors.New("confidence score out of range")
)

// MapHTTPStatus translates domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNotAssigned), errors.Is(err, ErrAlreadyLabeled):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidClassification), errors.Is(err, ErrInvalidConfidence):
		return http.StatusBadRequest
	case errors.Is(err, labelers.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, labelers.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
