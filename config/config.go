package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Path to SQL migration files
	MigrationsDir string
}

// LoadConfig creates a new Config instance with values from environment
// variables or Docker secrets, depending on the environment.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	switch env {
	case CI:
		if err := loadCIConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load CI configuration: %w", err)
		}
	case Development, Test:
		loadDevConfig(cfg)
	case Production:
		if err := loadProdConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load production configuration: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadCIConfig loads configuration for CI using environment variables only
func loadCIConfig(cfg *Config) error {
	loadDevConfig(cfg)

	if os.Getenv("TEST_DB_PASSWORD") != "" {
		cfg.DBPassword = os.Getenv("TEST_DB_PASSWORD")
	}
	if os.Getenv("TEST_JWT_SECRET") != "" {
		cfg.JWTSecret = os.Getenv("TEST_JWT_SECRET")
	}
	if os.Getenv("TEST_REDIS_PASSWORD") != "" {
		cfg.RedisPassword = os.Getenv("TEST_REDIS_PASSWORD")
	}
	if os.Getenv("TEST_REDIS_URL") != "" {
		cfg.RedisURL = os.Getenv("TEST_REDIS_URL")
	}
	return nil
}

// loadDevConfig loads configuration for development and test from the
// environment, with workable local defaults.
func loadDevConfig(cfg *Config) {
	cfg.ServerPort = envOrDefault("SERVER_PORT", "8080")
	cfg.ServerHost = envOrDefault("SERVER_HOST", "localhost")
	cfg.DBHost = envOrDefault("DB_HOST", "localhost")
	cfg.DBPort = envOrDefault("DB_PORT", "5432")
	cfg.DBUser = envOrDefault("DB_USER", "postgres")
	cfg.DBPassword = envOrDefault("DB_PASSWORD", "postgres")
	cfg.DBName = envOrDefault("DB_NAME", "fridgechef")
	cfg.DBSSLMode = envOrDefault("DB_SSL_MODE", "disable")
	cfg.RedisHost = envOrDefault("REDIS_HOST", "localhost")
	cfg.RedisPort = envOrDefault("REDIS_PORT", "6379")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisDB = 0
	cfg.RedisURL = envOrDefault("REDIS_URL", "redis://localhost:6379")
	cfg.JWTSecret = envOrDefault("JWT_SECRET", "your-secret-key")
	cfg.MigrationsDir = envOrDefault("MIGRATIONS_DIR", "migrations")
}

// loadProdConfig loads configuration for production using ONLY Docker secrets
func loadProdConfig(cfg *Config) error {
	cfg.ServerPort = readSecret("server_port")
	cfg.ServerHost = readSecret("server_host")
	cfg.DBHost = readSecret("db_host")
	cfg.DBPort = readSecret("db_port")
	cfg.DBUser = readSecret("db_user")
	cfg.DBPassword = readSecret("db_password")
	cfg.DBName = readSecret("db_name")
	cfg.DBSSLMode = readSecret("db_ssl_mode")
	cfg.RedisHost = readSecret("redis_host")
	cfg.RedisPort = readSecret("redis_port")
	cfg.RedisPassword = readSecret("redis_password")
	cfg.RedisDB = 0
	cfg.RedisURL = readSecret("redis_url")
	cfg.JWTSecret = readSecret("jwt_secret")
	cfg.MigrationsDir = envOrDefault("MIGRATIONS_DIR", "migrations")

	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
