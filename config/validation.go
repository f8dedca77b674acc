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

// ValidateConfig checks that the loaded configuration is usable. The
// production environment demands every sensitive value; development and
// test run on defaults.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if cfg.DBHost == "" {
		errors = append(errors, "database host is required")
	}
	if cfg.DBPort == "" {
		errors = append(errors, "database port is required")
	}
	if cfg.DBName == "" {
		errors = append(errors, "database name is required")
	}
	if cfg.ServerPort == "" {
		errors = append(errors, "server port is required")
	}

	if IsProduction() {
		if cfg.DBPassword == "" {
			errors = append(errors, "db_password secret is required in production")
		}
		if cfg.JWTSecret == "" || cfg.JWTSecret == "your-secret-key" {
			errors = append(errors, "jwt_secret secret is required in production")
		}
		if cfg.RedisPassword == "" {
			errors = append(errors, "redis_password secret is required in production")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
