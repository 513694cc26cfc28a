package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// AnalysisConfig holds content extraction and model classification settings.
type AnalysisConfig struct {
	APIKey          string `toml:"api_key"`
	Model           string `toml:"model"`
	BaseURL         string `toml:"base_url"`
	ExtractTimeout  string `toml:"extract_timeout"`
	RequestTimeout  string `toml:"request_timeout"`
	MinWordCount    int    `toml:"min_word_count"`
	MaxContentChars int    `toml:"max_content_chars"`
	TaxonomyPath    string `toml:"taxonomy_path"`
}

// ExtractTimeoutDuration returns ExtractTimeout as a time.Duration.
func (c *AnalysisConfig) ExtractTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ExtractTimeout)
	return d
}

// RequestTimeoutDuration returns RequestTimeout as a time.Duration.
func (c *AnalysisConfig) RequestTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.RequestTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
// An empty API key is permitted; the classifier falls back to URL heuristics
// when no model is configured.
func (c *AnalysisConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *AnalysisConfig) Merge(overlay *AnalysisConfig) {
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.ExtractTimeout != "" {
		c.ExtractTimeout = overlay.ExtractTimeout
	}
	if overlay.RequestTimeout != "" {
		c.RequestTimeout = overlay.RequestTimeout
	}
	if overlay.MinWordCount != 0 {
		c.MinWordCount = overlay.MinWordCount
	}
	if overlay.MaxContentChars != 0 {
		c.MaxContentChars = overlay.MaxContentChars
	}
	if overlay.TaxonomyPath != "" {
		c.TaxonomyPath = overlay.TaxonomyPath
	}
}

func (c *AnalysisConfig) loadDefaults() {
	if c.Model == "" {
		c.Model = "gpt-4o-mini"
	}
	if c.ExtractTimeout == "" {
		c.ExtractTimeout = "15s"
	}
	if c.RequestTimeout == "" {
		c.RequestTimeout = "60s"
	}
	if c.MinWordCount == 0 {
		c.MinWordCount = 50
	}
	if c.MaxContentChars == 0 {
		c.MaxContentChars = 8000
	}
}

func (c *AnalysisConfig) loadEnv() {
	if v := os.Getenv(EnvAnalysisAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvAnalysisModel); v != "" {
		c.Model = v
	}
	if v := os.Getenv(EnvAnalysisBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvAnalysisExtractTimeout); v != "" {
		c.ExtractTimeout = v
	}
	if v := os.Getenv(EnvAnalysisRequestTimeout); v != "" {
		c.RequestTimeout = v
	}
	if v := os.Getenv(EnvAnalysisMinWordCount); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MinWordCount = n
		}
	}
	if v := os.Getenv(EnvAnalysisMaxContentChars); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxContentChars = n
		}
	}
	if v := os.Getenv(EnvAnalysisTaxonomyPath); v != "" {
		c.TaxonomyPath = v
	}
}

func (c *AnalysisConfig) validate() error {
	if c.MinWordCount < 1 {
		return fmt.Errorf("min_word_count must be positive")
	}
	if c.MaxContentChars < c.MinWordCount {
		return fmt.Errorf("max_content_chars must exceed min_word_count")
	}
	if _, err := time.ParseDuration(c.ExtractTimeout); err != nil {
		return fmt.Errorf("invalid extract_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.RequestTimeout); err != nil {
		return fmt.Errorf("invalid request_timeout: %w", err)
	}
	return nil
}
