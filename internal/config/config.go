package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// envPrefix namespaces every environment variable, e.g. SALES_SERVER_PORT.
const envPrefix = "SALES"

// Config represents the complete application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Ingest   IngestConfig   `yaml:"ingest" envconfig:"INGEST"`
	Forecast ForecastConfig `yaml:"forecast" envconfig:"FORECAST"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	// MaxUploadBytes caps workbook upload size.
	MaxUploadBytes int64           `yaml:"max_upload_bytes" envconfig:"MAX_UPLOAD_BYTES"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS"`
	Burst   int     `yaml:"burst" envconfig:"BURST"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL"`
	Format string `yaml:"format" envconfig:"FORMAT"`
	Output string `yaml:"output" envconfig:"OUTPUT"`
}

// IngestConfig controls workbook parsing.
type IngestConfig struct {
	// ExcludedSheets are tab names skipped without parsing. Nil keeps
	// the ingest service's built-in exclusion list.
	ExcludedSheets []string `yaml:"excluded_sheets" envconfig:"EXCLUDED_SHEETS"`
	// HeaderCandidates are the zero-based rows the generic parser
	// probes for a header before brute-force scanning.
	HeaderCandidates []int `yaml:"header_candidates" envconfig:"HEADER_CANDIDATES"`
	// TerritoryFile optionally points at a YAML file overriding the
	// built-in territory list and alias map.
	TerritoryFile string `yaml:"territory_file" envconfig:"TERRITORY_FILE"`
}

// ForecastConfig controls the forecasting engine.
type ForecastConfig struct {
	DefaultHorizon int     `yaml:"default_horizon" envconfig:"DEFAULT_HORIZON"`
	MaxHorizon     int     `yaml:"max_horizon" envconfig:"MAX_HORIZON"`
	ProfitMargin   float64 `yaml:"profit_margin" envconfig:"PROFIT_MARGIN"`
	// MaxConcurrency bounds the per-group model fitting workers.
	MaxConcurrency int `yaml:"max_concurrency" envconfig:"MAX_CONCURRENCY"`
}

// Default returns the configuration used when neither the file nor the
// environment overrides a value.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     60 * time.Second,
			MaxHeaderBytes:  1 << 20,
			ShutdownTimeout: 30 * time.Second,
			MaxUploadBytes:  50 << 20,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     50,
				Burst:   25,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "console",
		},
		Forecast: ForecastConfig{
			DefaultHorizon: 3,
			MaxHorizon:     24,
			ProfitMargin:   15,
			MaxConcurrency: 4,
		},
	}
}

// Load layers configuration: defaults, then the optional YAML file,
// then SALES_* environment variables.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			data, err := os.ReadFile(configFile)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format: %q", c.Logging.Format)
	}
	if c.Forecast.DefaultHorizon < 1 {
		return fmt.Errorf("default horizon must be positive, got %d", c.Forecast.DefaultHorizon)
	}
	if c.Forecast.MaxHorizon < c.Forecast.DefaultHorizon {
		return fmt.Errorf("max horizon %d below default horizon %d",
			c.Forecast.MaxHorizon, c.Forecast.DefaultHorizon)
	}
	if c.Forecast.ProfitMargin < 0 {
		return fmt.Errorf("profit margin must not be negative, got %g", c.Forecast.ProfitMargin)
	}
	return nil
}
