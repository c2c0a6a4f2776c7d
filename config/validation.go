package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates every problem found in a configuration
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "\n")
}

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if cfg.ServerPort == "" {
		add("server_port", "is required")
	}
	if len(cfg.CORSOrigins) == 0 {
		add("cors_origins", "must list at least one origin")
	}

	switch cfg.DBDriver {
	case "postgres":
		if cfg.DBHost == "" {
			add("db_host", "is required for postgres")
		}
		if cfg.DBName == "" {
			add("db_name", "is required for postgres")
		}
		if cfg.DBUser == "" {
			add("db_user", "is required for postgres")
		}
	case "sqlite":
		if cfg.Environment.IsProduction() {
			add("db_driver", "sqlite is not allowed in production")
		}
		if cfg.SQLitePath == "" {
			add("sqlite_path", "is required for sqlite")
		}
	default:
		add("db_driver", fmt.Sprintf("unsupported driver %q", cfg.DBDriver))
	}

	if cfg.JWTSecret == "" {
		add("jwt_secret", "is required")
	} else if cfg.Environment.IsProduction() && (cfg.JWTSecret == defaultJWTSecret || len(cfg.JWTSecret) < 32) {
		add("jwt_secret", "must be a non-default secret of at least 32 characters in production")
	}
	if cfg.AccessTokenTTL <= 0 {
		add("access_token_ttl", "must be positive")
	}
	if cfg.RefreshTokenTTL <= 0 {
		add("refresh_token_ttl", "must be positive")
	}
	if cfg.RateLimitWindow <= 0 {
		add("rate_limit_window", "must be positive")
	}
	if cfg.AuthRateLimit < 0 || cfg.WriteRateLimit < 0 {
		add("rate_limit", "limits cannot be negative")
	}

	for _, e := range cfg.Storage.validate() {
		errs = append(errs, e)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
