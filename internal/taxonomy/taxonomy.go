// Package taxonomy defines the indicator vocabulary shared by human labelers
// and the AI classifier. The taxonomy is loaded once at startup and treated
// as immutable afterward, so it may be shared across concurrent requests
// without locking.
package taxonomy

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed indicators.yaml
var defaultTaxonomy []byte

// Indicator is a named, categorized authorship cue.
type Indicator struct {
	ID       string `yaml:"id" json:"id"`
	Label    string `yaml:"label" json:"label"`
	Category string `yaml:"category" json:"category"`
}

// Taxonomy holds the two indicator vocabularies: signals of AI authorship
// and signals of human authorship.
type Taxonomy struct {
	AIIndicators    []Indicator `yaml:"ai_indicators" json:"ai_indicators"`
	HumanIndicators []Indicator `yaml:"human_indicators" json:"human_indicators"`
}

// Load reads a taxonomy from the given YAML file. An empty path loads the
// embedded default vocabulary.
func Load(path string) (Taxonomy, error) {
	data := defaultTaxonomy

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Taxonomy{}, fmt.Errorf("read taxonomy: %w", err)
		}
		data = raw
	}

	var t Taxonomy
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Taxonomy{}, fmt.Errorf("parse taxonomy: %w", err)
	}

	if err := t.validate(); err != nil {
		return Taxonomy{}, err
	}

	return t, nil
}

// HasAIIndicator reports whether id belongs to the AI indicator vocabulary.
func (t Taxonomy) HasAIIndicator(id string) bool {
	return contains(t.AIIndicators, id)
}

// HasHumanIndicator reports whether id belongs to the human indicator vocabulary.
func (t Taxonomy) HasHumanIndicator(id string) bool {
	return contains(t.HumanIndicators, id)
}

// FilterAI returns the subset of ids present in the AI indicator vocabulary,
// preserving order and dropping unknown entries.
func (t Taxonomy) FilterAI(ids []string) []string {
	return filter(t.AIIndicators, ids)
}

// FilterHuman returns the subset of ids present in the human indicator
// vocabulary, preserving order and dropping unknown entries.
func (t Taxonomy) FilterHuman(ids []string) []string {
	return filter(t.HumanIndicators, ids)
}

func (t Taxonomy) validate() error {
	if len(t.AIIndicators) == 0 {
		return fmt.Errorf("taxonomy requires at least one ai indicator")
	}
	if len(t.HumanIndicators) == 0 {
		return fmt.Errorf("taxonomy requires at least one human indicator")
	}

	seen := make(map[string]struct{})
	for _, ind := range append(append([]Indicator{}, t.AIIndicators...), t.HumanIndicators...) {
		if ind.ID == "" {
			return fmt.Errorf("indicator %q missing id", ind.Label)
		}
		if _, ok := seen[ind.ID]; ok {
			return fmt.Errorf("duplicate indicator id: %s", ind.ID)
		}
		seen[ind.ID] = struct{}{}
	}

	return nil
}

func contains(indicators []Indicator, id string) bool {
	for _, ind := range indicators {
		if ind.ID == id {
			return true
		}
	}
	return false
}

func filter(indicators []Indicator, ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if contains(indicators, id) {
			out = append(out, id)
		}
	}
	return out
}
