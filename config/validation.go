package config

import (
	"fmt"
	"os"
	"strings"
)

// ValidationError reports a single invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var baseEnvVars = []string{
	"SERVER_PORT",
	"SERVER_HOST",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
	"DB_SSL_MODE",
	"REDIS_HOST",
	"REDIS_PORT",
	"REDIS_URL",
}

var secretNames = []string{
	"db_user",
	"db_password",
	"jwt_secret",
	"redis_password",
}

// ciOnlyEnvVars hold the values that come from Docker secrets everywhere
// except CI, where the pipeline injects them as plain environment variables.
var ciOnlyEnvVars = []string{
	"DB_USER",
	"DB_PASSWORD",
	"JWT_SECRET",
	"REDIS_PASSWORD",
}

// ValidateConfig checks that every value the current environment requires is
// present, collecting all failures into one error.
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()

	var errors []string

	required := baseEnvVars
	if env == CI {
		required = append(append([]string{}, baseEnvVars...), ciOnlyEnvVars...)
	}
	for _, envVar := range required {
		if os.Getenv(envVar) == "" {
			errors = append(errors, fmt.Sprintf("required environment variable %s is not set", envVar))
		}
	}

	if env == CI {
		if cfg.DBPassword == "" {
			errors = append(errors, "DB_PASSWORD environment variable is required in CI environment")
		}
		if cfg.JWTSecret == "" {
			errors = append(errors, "JWT_SECRET environment variable is required in CI environment")
		}
		if cfg.RedisPassword == "" {
			errors = append(errors, "REDIS_PASSWORD environment variable is required in CI environment")
		}
	} else {
		for _, secret := range secretNames {
			if readSecret(secret) == "" {
				errors = append(errors, fmt.Sprintf("required secret %s is not set", secret))
			}
		}
		if cfg.DBPassword == "" {
			errors = append(errors, "db_password secret is required")
		}
		if cfg.JWTSecret == "" {
			errors = append(errors, "jwt_secret secret is required")
		}
		if cfg.RedisPassword == "" {
			errors = append(errors, "redis_password secret is required")
		}
	}

	if cfg.RecommendationLimit <= 0 {
		errors = append(errors, "recommendation limit must be positive")
	}
	if len(cfg.DefaultBasicIngredients) == 0 {
		errors = append(errors, "default basic ingredients must not be empty")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
