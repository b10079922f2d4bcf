// Package config provides application configuration loaded from environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
	CORS     CORSConfig
	App      AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string `envconfig:"PORT" default:"5001"`
	ReadTimeout     int    `envconfig:"SERVER_READ_TIMEOUT" default:"15"`  // seconds
	WriteTimeout    int    `envconfig:"SERVER_WRITE_TIMEOUT" default:"15"` // seconds
	IdleTimeout     int    `envconfig:"SERVER_IDLE_TIMEOUT" default:"60"`  // seconds
	ShutdownTimeout int    `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`     // seconds
}

// DatabaseConfig selects the store. SQLite uses Path; PostgreSQL uses the rest.
type DatabaseConfig struct {
	Driver   string `envconfig:"DB_DRIVER" default:"sqlite"`
	Path     string `envconfig:"DB_PATH" default:"products.db"`
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"inventory"`
	Password string `envconfig:"DB_PASSWORD" default:"inventory"`
	DBName   string `envconfig:"DB_NAME" default:"inventory"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	Debug    bool   `envconfig:"DB_DEBUG" default:"false"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

// CORSConfig lists origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Migrations bool `envconfig:"MIGRATIONS" default:"true"`
	Seed       bool `envconfig:"DB_SEED" default:"true"`
}

// DSN returns the connection string for the configured driver.
func (d DatabaseConfig) DSN() string {
	if d.Driver == DriverPostgres {
		return fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
		)
	}
	return SQLiteDSN(d.Path)
}

// SQLiteDSN enables foreign key enforcement on a sqlite file or URI.
func SQLiteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

// Redacted describes the target without credentials, for logging.
func (d DatabaseConfig) Redacted() string {
	if d.Driver == DriverPostgres {
		return fmt.Sprintf("postgres host=%s port=%d dbname=%s user=%s", d.Host, d.Port, d.DBName, d.User)
	}
	return "sqlite " + d.Path
}

// Load reads configuration from environment variables.
// It uses sensible defaults for local development.
func Load() (*Config, error) {
	var cfg Config
	for _, part := range []any{&cfg.Server, &cfg.Database, &cfg.Log, &cfg.CORS, &cfg.App} {
		if err := envconfig.Process("", part); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("DB_PATH is required for sqlite")
		}
	case DriverPostgres:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (must be sqlite or postgres)", c.Database.Driver)
	}
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Log.Level)
	}
	if f := strings.ToLower(c.Log.Format); f != "json" && f != "text" {
		return fmt.Errorf("invalid log format: %s (must be json or text)", c.Log.Format)
	}
	return nil
}
