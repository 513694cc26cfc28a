package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/verdict-labs/verdict/pkg/middleware"
	"github.com/verdict-labs/verdict/pkg/pagination"
)

// APIConfig holds API surface settings: base path, pagination, and CORS.
type APIConfig struct {
	BasePath   string                `toml:"base_path"`
	Pagination pagination.Config     `toml:"pagination"`
	CORS       middleware.CORSConfig `toml:"cors"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *APIConfig) Finalize() error {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
	if !strings.HasPrefix(c.BasePath, "/") {
		return fmt.Errorf("base_path must start with /: %s", c.BasePath)
	}
	c.BasePath = strings.TrimSuffix(c.BasePath, "/")

	if err := c.Pagination.Finalize(&pagination.ConfigEnv{
		DefaultPageSize: EnvAPIDefaultPageSize,
		MaxPageSize:     EnvAPIMaxPageSize,
	}); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}

	if err := c.CORS.Finalize(&middleware.CORSEnv{
		Enabled:          EnvCORSEnabled,
		Origins:          EnvCORSOrigins,
		AllowedMethods:   EnvCORSAllowedMethods,
		AllowedHeaders:   EnvCORSAllowedHeaders,
		AllowCredentials: EnvCORSAllowCredentials,
		MaxAge:           EnvCORSMaxAge,
	}); err != nil {
		return fmt.Errorf("cors: %w", err)
	}

	return nil
}

// Merge overwrites fields from overlay.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	c.Pagination.Merge(&overlay.Pagination)
	c.CORS.Merge(&overlay.CORS)
}
