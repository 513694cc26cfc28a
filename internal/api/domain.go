package api

import (
	"github.com/verdict-labs/verdict/internal/analysis"
	"github.com/verdict-labs/verdict/internal/assignment"
	"github.com/verdict-labs/verdict/internal/config"
	"github.com/verdict-labs/verdict/internal/content"
	"github.com/verdict-labs/verdict/internal/infrastructure"
	"github.com/verdict-labs/verdict/internal/labelers"
	"github.com/verdict-labs/verdict/internal/labels"
)

// Domains holds the assembled domain systems.
type Domains struct {
	Labelers   labelers.System
	Analysis   analysis.System
	Content    content.System
	Assignment assignment.System
	Labels     labels.System
}

// buildDomains wires every domain system against shared infrastructure.
func buildDomains(cfg *config.Config, infra *infrastructure.Infrastructure) *Domains {
	labelerSystem := labelers.New(infra, cfg.API.Pagination)
	analysisSystem := analysis.New(infra, cfg.Analysis)

	contentSystem := content.New(
		infra,
		labelerSystem,
		analysisSystem,
		cfg.API.Pagination,
		cfg.Labeling.BatchConcurrency,
	)

	assignmentSystem := assignment.New(
		assignment.NewStore(infra),
		labelerSystem,
		cfg.Labeling.ConsensusThreshold,
		infra.Logger,
	)

	labelSystem := labels.New(
		labels.NewStore(infra),
		labelerSystem,
		infra,
		cfg.Labeling.ConsensusThreshold,
	)

	return &Domains{
		Labelers:   labelerSystem,
		Analysis:   analysisSystem,
		Content:    contentSystem,
		Assignment: assignmentSystem,
		Labels:     labelSystem,
	}
}
