package config

import (
	"fmt"
	"os"
	"strconv"
)

// LabelingConfig holds consensus and batch processing settings.
type LabelingConfig struct {
	ConsensusThreshold int `toml:"consensus_threshold"`
	BatchConcurrency   int `toml:"batch_concurrency"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *LabelingConfig) Finalize() error {
	if c.ConsensusThreshold == 0 {
		c.ConsensusThreshold = 3
	}
	if c.BatchConcurrency == 0 {
		c.BatchConcurrency = 4
	}

	if v := os.Getenv(EnvLabelingConsensusThreshold); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.ConsensusThreshold = n
		}
	}
	if v := os.Getenv(EnvLabelingBatchConcurrency); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.BatchConcurrency = n
		}
	}

	if c.ConsensusThreshold < 1 {
		return fmt.Errorf("consensus_threshold must be positive")
	}
	if c.BatchConcurrency < 1 {
		return fmt.Errorf("batch_concurrency must be positive")
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *LabelingConfig) Merge(overlay *LabelingConfig) {
	if overlay.ConsensusThreshold != 0 {
		c.ConsensusThreshold = overlay.ConsensusThreshold
	}
	if overlay.BatchConcurrency != 0 {
		c.BatchConcurrency = overlay.BatchConcurrency
	}
}
