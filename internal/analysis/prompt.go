package analysis

import (
	"fmt"
	"strings"

	"github.com/verdict-labs/verdict/internal/taxonomy"
)

const systemPrompt = "You are an expert content analyst who determines whether web content was written by a human or generated by AI. Respond only with the requested JSON object."

// buildPrompt renders the classification request, embedding the indicator
// vocabulary so the model answers with known indicator ids.
func buildPrompt(ex *Extraction, tax taxonomy.Taxonomy) string {
	var b strings.Builder

	b.WriteString("Analyze the following web content and classify its authorship.\n\n")
	fmt.Fprintf(&b, "URL: %s\n", ex.URL)
	if ex.Title != "" {
		fmt.Fprintf(&b, "Title: %s\n", ex.Title)
	}
	if ex.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", ex.Description)
	}
	if ex.Truncated {
		b.WriteString("Note: the content below was truncated.\n")
	}
	fmt.Fprintf(&b, "\nContent:\n%s\n\n", ex.Text)

	b.WriteString("Classify as exactly one of: ai_generated, human_created, uncertain.\n")
	b.WriteString("Report confidence_score as an integer from 0 to 100.\n\n")

	b.WriteString("When citing evidence, use only these indicator ids.\n\nAI indicators:\n")
	for _, ind := range tax.AIIndicators {
		fmt.Fprintf(&b, "- %s: %s\n", ind.ID, ind.Label)
	}
	b.WriteString("\nHuman indicators:\n")
	for _, ind := range tax.HumanIndicators {
		fmt.Fprintf(&b, "- %s: %s\n", ind.ID, ind.Label)
	}

	b.WriteString("\nInclude a short reasoning summary for your verdict.")

	return b.String()
}

// responseSchema is the JSON schema constraining model output.
func responseSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"classification": map[string]any{
				"type": "string",
				"enum": []string{
					string(ClassificationAI),
					string(ClassificationHuman),
					string(ClassificationUncertain),
				},
			},
			"confidence_score": map[string]any{
				"type":    "integer",
				"minimum": 0,
				"maximum": 100,
			},
			"ai_indicators": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"human_indicators": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"reasoning": map[string]any{
				"type": "string",
			},
		},
		"required": []string{
			"classification",
			"confidence_score",
			"ai_indicators",
			"human_indicators",
			"reasoning",
		},
		"additionalProperties": false,
	}
}
