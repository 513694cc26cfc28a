// Package config loads layered service configuration: TOML base file,
// optional environment overlay file, then environment variable overrides.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/verdict-labs/verdict/pkg/database"
)

// Environment variable names recognized by the service.
const (
	EnvEnvironment = "VERDICT_ENVIRONMENT"
	EnvConfigFile  = "VERDICT_CONFIG_FILE"

	EnvServerHost            = "VERDICT_SERVER_HOST"
	EnvServerPort            = "VERDICT_SERVER_PORT"
	EnvServerReadTimeout     = "VERDICT_SERVER_READ_TIMEOUT"
	EnvServerWriteTimeout    = "VERDICT_SERVER_WRITE_TIMEOUT"
	EnvServerIdleTimeout     = "VERDICT_SERVER_IDLE_TIMEOUT"
	EnvServerShutdownTimeout = "VERDICT_SERVER_SHUTDOWN_TIMEOUT"

	EnvDBHost            = "VERDICT_DB_HOST"
	EnvDBPort            = "VERDICT_DB_PORT"
	EnvDBName            = "VERDICT_DB_NAME"
	EnvDBUser            = "VERDICT_DB_USER"
	EnvDBPassword        = "VERDICT_DB_PASSWORD"
	EnvDBSSLMode         = "VERDICT_DB_SSL_MODE"
	EnvDBMaxOpenConns    = "VERDICT_DB_MAX_OPEN_CONNS"
	EnvDBMaxIdleConns    = "VERDICT_DB_MAX_IDLE_CONNS"
	EnvDBConnMaxLifetime = "VERDICT_DB_CONN_MAX_LIFETIME"
	EnvDBConnTimeout     = "VERDICT_DB_CONN_TIMEOUT"

	EnvAPIBasePath        = "VERDICT_API_BASE_PATH"
	EnvAPIDefaultPageSize = "VERDICT_API_DEFAULT_PAGE_SIZE"
	EnvAPIMaxPageSize     = "VERDICT_API_MAX_PAGE_SIZE"

	EnvCORSEnabled          = "VERDICT_CORS_ENABLED"
	EnvCORSOrigins          = "VERDICT_CORS_ORIGINS"
	EnvCORSAllowedMethods   = "VERDICT_CORS_ALLOWED_METHODS"
	EnvCORSAllowedHeaders   = "VERDICT_CORS_ALLOWED_HEADERS"
	EnvCORSAllowCredentials = "VERDICT_CORS_ALLOW_CREDENTIALS"
	EnvCORSMaxAge           = "VERDICT_CORS_MAX_AGE"

	EnvAnalysisAPIKey          = "VERDICT_ANALYSIS_API_KEY"
	EnvAnalysisModel           = "VERDICT_ANALYSIS_MODEL"
	EnvAnalysisBaseURL         = "VERDICT_ANALYSIS_BASE_URL"
	EnvAnalysisExtractTimeout  = "VERDICT_ANALYSIS_EXTRACT_TIMEOUT"
	EnvAnalysisRequestTimeout  = "VERDICT_ANALYSIS_REQUEST_TIMEOUT"
	EnvAnalysisMinWordCount    = "VERDICT_ANALYSIS_MIN_WORD_COUNT"
	EnvAnalysisMaxContentChars = "VERDICT_ANALYSIS_MAX_CONTENT_CHARS"
	EnvAnalysisTaxonomyPath    = "VERDICT_ANALYSIS_TAXONOMY_PATH"

	EnvLabelingConsensusThreshold = "VERDICT_LABELING_CONSENSUS_THRESHOLD"
	EnvLabelingBatchConcurrency   = "VERDICT_LABELING_BATCH_CONCURRENCY"
)

// Config is the root service configuration.
type Config struct {
	Server   ServerConfig    `toml:"server"`
	Database database.Config `toml:"database"`
	API      APIConfig       `toml:"api"`
	Analysis AnalysisConfig  `toml:"analysis"`
	Labeling LabelingConfig  `toml:"labeling"`
}

// Load reads configuration from the given TOML file, applies an optional
// environment overlay file (config.<env>.toml next to the base file), then
// finalizes every section with defaults and environment variable overrides.
// A missing base file is not an error; the service can run entirely from
// defaults and environment variables.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path == "" {
		path = "config.toml"
	}

	cfg := &Config{}

	if err := readInto(path, cfg); err != nil {
		return nil, err
	}

	if env := os.Getenv(EnvEnvironment); env != "" {
		overlayPath := overlayFile(path, env)
		overlay := &Config{}
		if err := readInto(overlayPath, overlay); err != nil {
			return nil, err
		}
		cfg.merge(overlay)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Finalize applies defaults, environment overrides, and validation to every
// section.
func (c *Config) Finalize() error {
	if err := c.Server.Finalize(&ServerEnv{
		Host:            EnvServerHost,
		Port:            EnvServerPort,
		ReadTimeout:     EnvServerReadTimeout,
		WriteTimeout:    EnvServerWriteTimeout,
		IdleTimeout:     EnvServerIdleTimeout,
		ShutdownTimeout: EnvServerShutdownTimeout,
	}); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Database.Finalize(&database.Env{
		Host:            EnvDBHost,
		Port:            EnvDBPort,
		Name:            EnvDBName,
		User:            EnvDBUser,
		Password:        EnvDBPassword,
		SSLMode:         EnvDBSSLMode,
		MaxOpenConns:    EnvDBMaxOpenConns,
		MaxIdleConns:    EnvDBMaxIdleConns,
		ConnMaxLifetime: EnvDBConnMaxLifetime,
		ConnTimeout:     EnvDBConnTimeout,
	}); err != nil {
		return fmt.Errorf("database config: %w", err)
	}

	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api config: %w", err)
	}

	if err := c.Analysis.Finalize(); err != nil {
		return fmt.Errorf("analysis config: %w", err)
	}

	if err := c.Labeling.Finalize(); err != nil {
		return fmt.Errorf("labeling config: %w", err)
	}

	return nil
}

func (c *Config) merge(overlay *Config) {
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.API.Merge(&overlay.API)
	c.Analysis.Merge(&overlay.Analysis)
	c.Labeling.Merge(&overlay.Labeling)
}

func readInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func overlayFile(base, env string) string {
	ext := ".toml"
	trimmed := base
	if len(base) > len(ext) && base[len(base)-len(ext):] == ext {
		trimmed = base[:len(base)-len(ext)]
	}
	return fmt.Sprintf("%s.%s%s", trimmed, env, ext)
}
