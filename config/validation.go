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

// ValidateConfig checks that the loaded configuration is usable in the
// current environment. Development and test are forgiving; CI and production
// must carry real secrets.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if cfg.ServerPort == "" {
		errors = append(errors, "server port is not set")
	}
	if cfg.DBHost == "" {
		errors = append(errors, "database host is not set")
	}
	if cfg.DBName == "" {
		errors = append(errors, "database name is not set")
	}
	if cfg.JWTSecret == "" {
		errors = append(errors, "jwt secret is not set")
	}

	env := GetEnvironment()
	if env == Production || env == CI {
		if cfg.DBPassword == "" {
			errors = append(errors, "database password is required in "+string(env))
		}
		if cfg.JWTSecret == "dev-secret-do-not-use-in-production" {
			errors = append(errors, "jwt secret must not be the development default in "+string(env))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}
	return nil
}
