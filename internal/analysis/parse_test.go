package analysis

import "testing"

func TestParseVerdict(t *testing.T) {
	t.Run("strict", func(t *testing.T) {
		verdict, salvaged, err := parseVerdict(`{"classification": "uncertain", "confidence_score": 40,
			"ai_indicators": [], "human_indicators": [], "reasoning": "mixed signals"}`)
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if salvaged {
			t.Error("strict parse reported as salvaged")
		}
		if verdict.Classification != "uncertain" || verdict.ConfidenceScore != 40 {
			t.Errorf("unexpected verdict: %+v", verdict)
		}
	})

	t.Run("embedded", func(t *testing.T) {
		verdict, salvaged, err := parseVerdict(`Analysis follows. {"classification": "ai_generated",
			"confidence_score": 88, "ai_indicators": [], "human_indicators": [], "reasoning": "x"} Done.`)
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if !salvaged {
			t.Error("embedded parse not reported as salvaged")
		}
		if verdict.Classification != "ai_generated" {
			t.Errorf("unexpected verdict: %+v", verdict)
		}
	})

	t.Run("unparseable", func(t *testing.T) {
		if _, _, err := parseVerdict("no json here"); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestKeywordVerdict(t *testing.T) {
	tests := []struct {
		name           string
		content        string
		want           string
		wantConfidence int
	}{
		{"ai keyword", "verdict: AI_GENERATED without doubt", "ai_generated", 70},
		{"ai hyphenated", "this looks AI-generated to me", "ai_generated", 70},
		{"human keyword", "definitely human_created prose", "human_created", 70},
		{"human hyphenated", "reads as human-written", "human_created", 70},
		{"no keyword", "inconclusive rambling", "uncertain", 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := keywordVerdict(tt.content)
			if verdict.Classification != tt.want {
				t.Errorf("classification: got %s, want %s", verdict.Classification, tt.want)
			}
			if verdict.ConfidenceScore != tt.wantConfidence {
				t.Errorf("confidence: got %d, want %d", verdict.ConfidenceScore, tt.wantConfidence)
			}
		})
	}
}

func TestClampConfidence(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-10, 0},
		{0, 0},
		{55, 55},
		{100, 100},
		{900, 100},
	}

	for _, tt := range tests {
		if got := clampConfidence(tt.in); got != tt.want {
			t.Errorf("clampConfidence(%d): got %d, want %d", tt.in, got, tt.want)
		}
	}
}
