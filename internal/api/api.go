// Package api assembles domain systems and exposes them as a routed HTTP
// surface under the configured base path.
package api

import (
	"net/http"

	"github.com/verdict-labs/verdict/internal/config"
	"github.com/verdict-labs/verdict/internal/infrastructure"
	"github.com/verdict-labs/verdict/pkg/middleware"
	"github.com/verdict-labs/verdict/pkg/module"
)

// API is the assembled HTTP surface of the service.
type API struct {
	Router  *module.Router
	Domains *Domains
}

// New builds the domain systems, registers their routes, and mounts the API
// module with its middleware stack.
func New(cfg *config.Config, infra *infrastructure.Infrastructure) *API {
	domains := buildDomains(cfg, infra)

	mux := http.NewServeMux()
	registerRoutes(mux, cfg, infra, domains)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.Logger(infra.Logger))
	m.Use(middleware.CORS(&cfg.API.CORS))

	router := module.NewRouter()
	router.Mount(m)

	return &API{
		Router:  router,
		Domains: domains,
	}
}
