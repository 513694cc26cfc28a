// Package infrastructure bundles the shared runtime dependencies injected
// into every domain system.
package infrastructure

import (
	"log/slog"

	"github.com/verdict-labs/verdict/internal/taxonomy"
	"github.com/verdict-labs/verdict/pkg/database"
	"github.com/verdict-labs/verdict/pkg/lifecycle"
)

// Infrastructure carries the cross-cutting dependencies for domain systems.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Taxonomy  taxonomy.Taxonomy
}

// New assembles an Infrastructure from its components.
func New(
	lc *lifecycle.Coordinator,
	logger *slog.Logger,
	db database.System,
	tax taxonomy.Taxonomy,
) *Infrastructure {
	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Taxonomy:  tax,
	}
}
