package analysis

import "fmt"

// Extraction failure reasons.
const (
	ReasonNetworkError        = "network_error"
	ReasonHTTPError           = "http_error"
	ReasonParseError          = "parse_error"
	ReasonInsufficientContent = "insufficient_content"
)

// ExtractionError describes why content could not be extracted from a URL.
type ExtractionError struct {
	Reason     string
	StatusCode int
	Detail     string
}

func (e *ExtractionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("extraction failed (%s, status %d): %s", e.Reason, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("extraction failed (%s): %s", e.Reason, e.Detail)
}
