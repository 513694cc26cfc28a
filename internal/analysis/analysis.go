// Package analysis fetches web content and produces an authorship verdict:
// AI-generated, human-created, or uncertain. Classification never fails
// outright: unreachable content degrades to URL-based heuristics, a failed
// model call degrades to a zero-confidence uncertain verdict, and every
// Result records how it was produced.
package analysis

import "time"

// Classification is the authorship verdict for a piece of content.
type Classification string

const (
	ClassificationAI        Classification = "ai_generated"
	ClassificationHuman     Classification = "human_created"
	ClassificationUncertain Classification = "uncertain"
)

// ValidClassification reports whether c is a recognized verdict.
func ValidClassification(c Classification) bool {
	switch c {
	case ClassificationAI, ClassificationHuman, ClassificationUncertain:
		return true
	}
	return false
}

// Source records how a Result was produced.
type Source string

const (
	// SourceModel marks a verdict parsed directly from structured model output.
	SourceModel Source = "model"
	// SourceSalvaged marks a verdict recovered from malformed model output.
	SourceSalvaged Source = "model_salvaged"
	// SourceHeuristic marks a verdict from URL heuristics, used when no model
	// is configured or the content itself was unavailable.
	SourceHeuristic Source = "heuristic"
	// SourceError marks the uncertain verdict produced when a model invocation
	// failed after content was successfully extracted.
	SourceError Source = "error"
)

// Extraction is the readable content pulled from a URL.
type Extraction struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Text        string `json:"text"`
	WordCount   int    `json:"word_count"`
	Truncated   bool   `json:"truncated"`
}

// Result is a complete authorship verdict for a URL.
type Result struct {
	URL             string         `json:"url"`
	Classification  Classification `json:"classification"`
	ConfidenceScore int            `json:"confidence_score"`
	AIIndicators    []string       `json:"ai_indicators"`
	HumanIndicators []string       `json:"human_indicators"`
	Reasoning       string         `json:"reasoning"`
	Source          Source         `json:"source"`
	AnalyzedAt      time.Time      `json:"analyzed_at"`
	Error           string         `json:"error,omitempty"`
}
