package analysis

import (
	"context"

	"github.com/verdict-labs/verdict/internal/config"
	"github.com/verdict-labs/verdict/internal/infrastructure"
)

// System defines the analysis operations used by other domains.
type System interface {
	// AnalyzeURL extracts content from url and classifies it. It always
	// returns a usable Result; failures degrade to heuristic verdicts.
	AnalyzeURL(ctx context.Context, url string) Result

	// AnalyzeContent behaves like AnalyzeURL but also returns the extraction
	// when one succeeded, so callers can reuse the fetched metadata.
	AnalyzeContent(ctx context.Context, url string) (Result, *Extraction)

	// Extract fetches and parses content from url without classifying it.
	Extract(ctx context.Context, url string) (*Extraction, error)
}

type analysisSystem struct {
	extractor  *Extractor
	classifier *Classifier
}

// New creates the analysis System. Model classification is enabled only
// when an API key is configured; otherwise verdicts come from heuristics.
func New(infra *infrastructure.Infrastructure, cfg config.AnalysisConfig) System {
	var invoker Invoker
	if cfg.APIKey != "" {
		invoker = NewOpenAIInvoker(cfg.APIKey, cfg.BaseURL, cfg.Model)
	} else {
		infra.Logger.Warn("no analysis api key configured, model classification disabled")
	}

	return &analysisSystem{
		extractor: NewExtractor(
			cfg.ExtractTimeoutDuration(),
			cfg.MinWordCount,
			cfg.MaxContentChars,
			infra.Logger,
		),
		classifier: NewClassifier(
			invoker,
			infra.Taxonomy,
			cfg.RequestTimeoutDuration(),
			infra.Logger,
		),
	}
}

func (s *analysisSystem) AnalyzeURL(ctx context.Context, url string) Result {
	result, _ := s.AnalyzeContent(ctx, url)
	return result
}

func (s *analysisSystem) AnalyzeContent(ctx context.Context, url string) (Result, *Extraction) {
	extraction, err := s.extractor.Extract(ctx, url)
	return s.classifier.Classify(ctx, url, extraction, err), extraction
}

func (s *analysisSystem) Extract(ctx context.Context, url string) (*Extraction, error) {
	return s.extractor.Extract(ctx, url)
}
