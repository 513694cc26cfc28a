package api

import (
	"net/http"

	"github.com/verdict-labs/verdict/internal/analysis"
	"github.com/verdict-labs/verdict/internal/assignment"
	"github.com/verdict-labs/verdict/internal/config"
	"github.com/verdict-labs/verdict/internal/content"
	"github.com/verdict-labs/verdict/internal/infrastructure"
	"github.com/verdict-labs/verdict/internal/labelers"
	"github.com/verdict-labs/verdict/internal/labels"
	"github.com/verdict-labs/verdict/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, cfg *config.Config, infra *infrastructure.Infrastructure, domains *Domains) {
	routes.Register(mux,
		labelers.NewHandler(domains.Labelers, cfg.API.Pagination, infra.Logger).Routes(),
		content.NewHandler(domains.Content, cfg.API.Pagination, infra.Logger).Routes(),
		assignment.NewHandler(domains.Assignment, infra.Logger).Routes(),
		labels.NewHandler(domains.Labels, infra.Logger).Routes(),
		analysis.NewHandler(domains.Analysis, infra.Logger).Routes(),
	)
}
