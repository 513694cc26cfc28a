package analysis

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/verdict-labs/verdict/internal/taxonomy"
)

var (
	formulaicSlugPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)top-\d+`),
		regexp.MustCompile(`(?i)\d+-(best|ways|tips|reasons|things)`),
		regexp.MustCompile(`(?i)ultimate-guide`),
		regexp.MustCompile(`(?i)complete-guide`),
		regexp.MustCompile(`(?i)everything-you-need`),
		regexp.MustCompile(`(?i)best-.+-\d{4}`),
	}

	suspiciousDomainPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(content|article|blog)-?(hub|factory|farm|mill)`),
		regexp.MustCompile(`(?i)^[a-z]+\d{3,}\.`),
		regexp.MustCompile(`\.(xyz|top|club|online|site)$`),
	}
)

// analyzeURLHeuristics scores a URL without its content. It is the fallback
// path when no model is configured or the content could not be fetched.
// Two or more AI signals yield an ai_generated verdict with low confidence
// (30-60); anything less is uncertain. Signals whose indicator id is absent
// from the taxonomy are not counted, so results never carry ids outside the
// configured vocabulary.
func analyzeURLHeuristics(rawURL string, extractErr error, tax taxonomy.Taxonomy) (Classification, int, []string, string) {
	var indicators []string
	var notes []string

	signal := func(id, note string) {
		if !tax.HasAIIndicator(id) {
			return
		}
		indicators = append(indicators, id)
		notes = append(notes, note)
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		parsed = &url.URL{Path: rawURL}
	}

	path := strings.ToLower(parsed.Path)
	if slugLooksFormulaic(path) {
		signal("formulaic_url_slug", "URL slug follows a formulaic SEO pattern")
	}

	host := strings.ToLower(parsed.Hostname())
	if domainLooksSuspicious(host) {
		signal("suspicious_domain", "domain matches a content-farm naming pattern")
	}

	var extractionErr *ExtractionError
	if errors.As(extractErr, &extractionErr) {
		switch extractionErr.Reason {
		case ReasonHTTPError, ReasonNetworkError:
			signal("unreachable_content", "content could not be fetched for review")
		}
	}

	reasoning := "URL-only heuristic assessment"
	if len(notes) > 0 {
		reasoning = fmt.Sprintf("URL-only heuristic assessment: %s", strings.Join(notes, "; "))
	}

	if len(indicators) >= 2 {
		confidence := 30 + 10*min(len(indicators), 3)
		return ClassificationAI, confidence, indicators, reasoning
	}

	return ClassificationUncertain, 50, indicators, reasoning
}

func slugLooksFormulaic(path string) bool {
	for _, p := range formulaicSlugPatterns {
		if p.MatchString(path) {
			return true
		}
	}

	// Very long hyphenated slugs are a strong SEO-generation signal.
	last := path
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		last = path[idx+1:]
	}
	return strings.Count(last, "-") >= 7
}

func domainLooksSuspicious(host string) bool {
	for _, p := range suspiciousDomainPatterns {
		if p.MatchString(host) {
			return true
		}
	}
	return false
}
