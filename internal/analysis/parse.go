package analysis

import (
	"strings"

	"github.com/verdict-labs/verdict/pkg/formatting"
)

type modelVerdict struct {
	Classification  string   `json:"classification"`
	ConfidenceScore int      `json:"confidence_score"`
	AIIndicators    []string `json:"ai_indicators"`
	HumanIndicators []string `json:"human_indicators"`
	Reasoning       string   `json:"reasoning"`
}

// parseVerdict recovers a structured verdict from model output. It tries
// strict JSON, then fenced JSON, then a brace-scan for an embedded object.
// The second return reports whether salvage was needed.
func parseVerdict(content string) (*modelVerdict, bool, error) {
	verdict, err := formatting.Parse[modelVerdict](content)
	if err == nil {
		return &verdict, false, nil
	}

	verdict, err = formatting.ParseEmbedded[modelVerdict](content)
	if err != nil {
		return nil, false, err
	}
	return &verdict, true, nil
}

// keywordVerdict is the last-resort reading of unparseable model output:
// scan for a classification keyword and assign it moderate confidence.
func keywordVerdict(content string) *modelVerdict {
	lower := strings.ToLower(content)

	switch {
	case strings.Contains(lower, string(ClassificationAI)) ||
		strings.Contains(lower, "ai-generated"):
		return &modelVerdict{
			Classification:  string(ClassificationAI),
			ConfidenceScore: 70,
			Reasoning:       "classification keyword recovered from unstructured model output",
		}
	case strings.Contains(lower, string(ClassificationHuman)) ||
		strings.Contains(lower, "human-created") ||
		strings.Contains(lower, "human-written"):
		return &modelVerdict{
			Classification:  string(ClassificationHuman),
			ConfidenceScore: 70,
			Reasoning:       "classification keyword recovered from unstructured model output",
		}
	default:
		return &modelVerdict{
			Classification:  string(ClassificationUncertain),
			ConfidenceScore: 50,
			Reasoning:       "model output could not be parsed",
		}
	}
}

func clampConfidence(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
