package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const extractorUserAgent = "Mozilla/5.0 (compatible; verdict/1.0; +https://github.com/verdict-labs/verdict)"

// Stripped before text extraction; these elements carry chrome, not content.
var strippedSelectors = []string{"script", "style", "noscript", "nav", "header", "footer", "aside", "form"}

// Extractor fetches a URL and pulls out its readable text.
type Extractor struct {
	client   *http.Client
	minWords int
	maxChars int
	logger   *slog.Logger
}

// NewExtractor creates an Extractor. Content shorter than minWords words
// fails extraction; text longer than maxChars runes is truncated.
func NewExtractor(timeout time.Duration, minWords, maxChars int, logger *slog.Logger) *Extractor {
	return &Extractor{
		client:   &http.Client{Timeout: timeout},
		minWords: minWords,
		maxChars: maxChars,
		logger:   logger.With("system", "extractor"),
	}
}

// Extract fetches url and returns its readable content. Failures are
// reported as *ExtractionError so callers can distinguish network, HTTP,
// and content problems.
func (e *Extractor) Extract(ctx context.Context, url string) (*Extraction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &ExtractionError{Reason: ReasonNetworkError, Detail: err.Error()}
	}
	req.Header.Set("User-Agent", extractorUserAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, &ExtractionError{Reason: ReasonNetworkError, Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ExtractionError{
			Reason:     ReasonHTTPError,
			StatusCode: resp.StatusCode,
			Detail:     fmt.Sprintf("unexpected status fetching %s", url),
		}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &ExtractionError{Reason: ReasonParseError, Detail: err.Error()}
	}

	for _, sel := range strippedSelectors {
		doc.Find(sel).Remove()
	}

	extraction := &Extraction{
		URL:         url,
		Title:       extractTitle(doc),
		Description: extractDescription(doc),
	}

	text := collapseWhitespace(doc.Find("body").Text())
	extraction.WordCount = len(strings.Fields(text))

	if extraction.WordCount < e.minWords {
		return nil, &ExtractionError{
			Reason: ReasonInsufficientContent,
			Detail: fmt.Sprintf("%d words, need at least %d", extraction.WordCount, e.minWords),
		}
	}

	if runes := []rune(text); len(runes) > e.maxChars {
		text = string(runes[:e.maxChars])
		extraction.Truncated = true
	}
	extraction.Text = text

	e.logger.Debug("content extracted",
		"url", url,
		"words", extraction.WordCount,
		"truncated", extraction.Truncated,
	)

	return extraction, nil
}

func extractTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		return strings.TrimSpace(og)
	}
	return ""
}

func extractDescription(doc *goquery.Document) string {
	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		return strings.TrimSpace(desc)
	}
	if og, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok {
		return strings.TrimSpace(og)
	}
	return ""
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
