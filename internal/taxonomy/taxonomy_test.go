package taxonomy

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadEmbeddedDefault(t *testing.T) {
	tax, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if len(tax.AIIndicators) == 0 {
		t.Error("no ai indicators in default taxonomy")
	}
	if len(tax.HumanIndicators) == 0 {
		t.Error("no human indicators in default taxonomy")
	}

	// Heuristic analysis depends on these ids being present.
	for _, id := range []string{"formulaic_url_slug", "suspicious_domain", "unreachable_content"} {
		if !tax.HasAIIndicator(id) {
			t.Errorf("default taxonomy missing ai indicator %s", id)
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	content := `
ai_indicators:
  - id: repetitive
    label: Repetitive phrasing
    category: language
human_indicators:
  - id: anecdotes
    label: Personal anecdotes
    category: substance
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	tax, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if !tax.HasAIIndicator("repetitive") {
		t.Error("missing ai indicator from file")
	}
	if !tax.HasHumanIndicator("anecdotes") {
		t.Error("missing human indicator from file")
	}
	if tax.HasAIIndicator("anecdotes") {
		t.Error("human indicator leaked into ai vocabulary")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing human indicators",
			content: `
ai_indicators:
  - id: a
    label: A
    category: language
`,
		},
		{
			name: "duplicate ids",
			content: `
ai_indicators:
  - id: dup
    label: A
    category: language
human_indicators:
  - id: dup
    label: B
    category: tone
`,
		},
		{
			name: "missing id",
			content: `
ai_indicators:
  - label: A
    category: language
human_indicators:
  - id: b
    label: B
    category: tone
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "taxonomy.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestFilter(t *testing.T) {
	tax := Taxonomy{
		AIIndicators: []Indicator{
			{ID: "a1", Label: "A1", Category: "language"},
			{ID: "a2", Label: "A2", Category: "tone"},
		},
		HumanIndicators: []Indicator{
			{ID: "h1", Label: "H1", Category: "substance"},
		},
	}

	got := tax.FilterAI([]string{"a2", "unknown", "a1", "h1"})
	want := []string{"a2", "a1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FilterAI: got %v, want %v", got, want)
	}

	got = tax.FilterHuman([]string{"h1", "a1"})
	want = []string{"h1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FilterHuman: got %v, want %v", got, want)
	}
}
