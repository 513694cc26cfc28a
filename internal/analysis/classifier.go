package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/verdict-labs/verdict/internal/taxonomy"
)

// Invoker requests a schema-constrained completion from a language model.
type Invoker interface {
	Complete(ctx context.Context, prompt string, schema map[string]any) (string, error)
}

type openaiInvoker struct {
	client openai.Client
	model  string
}

// NewOpenAIInvoker creates an Invoker backed by the OpenAI chat completions
// API. An empty baseURL uses the default endpoint.
func NewOpenAIInvoker(apiKey, baseURL, model string) Invoker {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &openaiInvoker{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

func (i *openaiInvoker) Complete(ctx context.Context, prompt string, schema map[string]any) (string, error) {
	resp, err := i.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(i.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
		MaxTokens:   openai.Int(1500),
		Temperature: openai.Float(0.1),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   "authorship_verdict",
					Schema: schema,
					Strict: openai.Bool(true),
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// Classifier produces an authorship verdict for extracted content. It is a
// total function over its inputs: unreachable content degrades to URL
// heuristics, malformed model output to salvage parsing, and a failed model
// call to an uncertain zero-confidence verdict. It never returns an error.
type Classifier struct {
	invoker Invoker
	tax     taxonomy.Taxonomy
	timeout time.Duration
	logger  *slog.Logger
}

// NewClassifier creates a Classifier. A nil invoker disables model
// classification; every verdict then comes from URL heuristics.
func NewClassifier(invoker Invoker, tax taxonomy.Taxonomy, timeout time.Duration, logger *slog.Logger) *Classifier {
	return &Classifier{
		invoker: invoker,
		tax:     tax,
		timeout: timeout,
		logger:  logger.With("system", "classifier"),
	}
}

// Classify returns a verdict for rawURL. When extraction succeeded, ex holds
// the content and extractErr is nil; otherwise extractErr explains the
// failure and heuristics take over.
func (c *Classifier) Classify(ctx context.Context, rawURL string, ex *Extraction, extractErr error) Result {
	if extractErr != nil {
		c.logger.Warn("extraction failed, using heuristics", "url", rawURL, "error", extractErr)
		return c.heuristicResult(rawURL, extractErr)
	}

	if c.invoker == nil {
		return c.heuristicResult(rawURL, nil)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	raw, err := c.invoker.Complete(ctx, buildPrompt(ex, c.tax), responseSchema())
	if err != nil {
		c.logger.Warn("model invocation failed", "url", rawURL, "error", err)
		return errorResult(rawURL, err)
	}

	verdict, salvaged, parseErr := parseVerdict(raw)
	source := SourceModel
	if salvaged {
		source = SourceSalvaged
	}
	if parseErr != nil {
		c.logger.Warn("model output unparseable, using keyword scan", "url", rawURL)
		verdict = keywordVerdict(raw)
		source = SourceSalvaged
	}

	classification := Classification(verdict.Classification)
	if !ValidClassification(classification) {
		classification = ClassificationUncertain
	}

	return Result{
		URL:             rawURL,
		Classification:  classification,
		ConfidenceScore: clampConfidence(verdict.ConfidenceScore),
		AIIndicators:    c.tax.FilterAI(verdict.AIIndicators),
		HumanIndicators: c.tax.FilterHuman(verdict.HumanIndicators),
		Reasoning:       verdict.Reasoning,
		Source:          source,
		AnalyzedAt:      time.Now().UTC(),
	}
}

// errorResult is the verdict for a model invocation failure. The content was
// readable, so guessing from the URL would overstate what is known; the
// verdict stays uncertain at zero confidence with the failure recorded.
func errorResult(rawURL string, cause error) Result {
	return Result{
		URL:             rawURL,
		Classification:  ClassificationUncertain,
		ConfidenceScore: 0,
		AIIndicators:    []string{},
		HumanIndicators: []string{},
		Reasoning:       fmt.Sprintf("analysis failed: %v", cause),
		Source:          SourceError,
		AnalyzedAt:      time.Now().UTC(),
		Error:           cause.Error(),
	}
}

func (c *Classifier) heuristicResult(rawURL string, cause error) Result {
	classification, confidence, indicators, reasoning := analyzeURLHeuristics(rawURL, cause, c.tax)

	var failure string
	if cause != nil {
		failure = cause.Error()
	}

	return Result{
		URL:             rawURL,
		Classification:  classification,
		ConfidenceScore: confidence,
		AIIndicators:    indicators,
		HumanIndicators: []string{},
		Reasoning:       reasoning,
		Source:          SourceHeuristic,
		AnalyzedAt:      time.Now().UTC(),
		Error:           failure,
	}
}
