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

	// HTTP configuration
	CORSOrigins []string

	// Shopping optimizer presentation
	CurrencySymbol string
}

// LoadConfig creates a new Config instance with values from environment
// variables or Docker secrets, depending on the environment. Development and
// test fall back to local defaults so the server runs without any setup.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	switch env {
	case CI:
		loadCIConfig(cfg)
	case Development, Test:
		loadDevConfig(cfg)
	case Production:
		if err := loadProdConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load production configuration: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.CORSOrigins = splitAndTrim(origins)
	}
	if symbol := os.Getenv("CURRENCY_SYMBOL"); symbol != "" {
		cfg.CurrencySymbol = symbol
	}
	if cfg.CurrencySymbol == "" {
		cfg.CurrencySymbol = "€"
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadCIConfig loads configuration for CI using environment variables only
func loadCIConfig(cfg *Config) {
	cfg.ServerPort = envOr("SERVER_PORT", "8080")
	cfg.ServerHost = envOr("SERVER_HOST", "0.0.0.0")
	cfg.DBHost = envOr("DB_HOST", "localhost")
	cfg.DBPort = envOr("DB_PORT", "5432")
	cfg.DBUser = envOr("DB_USER", "postgres")
	cfg.DBPassword = os.Getenv("TEST_DB_PASSWORD")
	cfg.DBName = envOr("DB_NAME", "grocerly_test")
	cfg.DBSSLMode = envOr("DB_SSL_MODE", "disable")
	cfg.RedisHost = envOr("REDIS_HOST", "localhost")
	cfg.RedisPort = envOr("REDIS_PORT", "6379")
	cfg.RedisPassword = os.Getenv("TEST_REDIS_PASSWORD")
	cfg.RedisURL = os.Getenv("TEST_REDIS_URL")
	cfg.JWTSecret = os.Getenv("TEST_JWT_SECRET")
	cfg.RedisDB = 0
}

// loadDevConfig loads configuration for development and test. Environment
// variables win; Docker secrets fill gaps; local defaults fill the rest.
func loadDevConfig(cfg *Config) {
	cfg.ServerPort = envSecretOr("SERVER_PORT", "server_port", "8080")
	cfg.ServerHost = envSecretOr("SERVER_HOST", "server_host", "0.0.0.0")
	cfg.DBHost = envSecretOr("DB_HOST", "db_host", "localhost")
	cfg.DBPort = envSecretOr("DB_PORT", "db_port", "5432")
	cfg.DBUser = envSecretOr("DB_USER", "db_user", "postgres")
	cfg.DBPassword = envSecretOr("DB_PASSWORD", "db_password", "postgres")
	cfg.DBName = envSecretOr("DB_NAME", "db_name", "grocerly")
	cfg.DBSSLMode = envSecretOr("DB_SSL_MODE", "db_ssl_mode", "disable")
	cfg.RedisHost = envSecretOr("REDIS_HOST", "redis_host", "localhost")
	cfg.RedisPort = envSecretOr("REDIS_PORT", "redis_port", "6379")
	cfg.RedisPassword = envSecretOr("REDIS_PASSWORD", "redis_password", "")
	cfg.RedisURL = envSecretOr("REDIS_URL", "redis_url", "")
	cfg.JWTSecret = envSecretOr("JWT_SECRET", "jwt_secret", "dev-secret-do-not-use-in-production")
	cfg.RedisDB = 0
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
	cfg.RedisURL = readSecret("redis_url")
	cfg.JWTSecret = readSecret("jwt_secret")
	cfg.RedisDB = 0
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envSecretOr(envKey, secretName, fallback string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	if v := readSecret(secretName); v != "" {
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
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
