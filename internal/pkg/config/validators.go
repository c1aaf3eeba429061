// internal/pkg/config/validators.go
package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrMissingRequiredConfig marks a required setting that is absent
var ErrMissingRequiredConfig = errors.New("missing required configuration")

var validate = validator.New()

// validateStruct runs the validate tags and folds every failure into one error
func validateStruct(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("failed to validate configuration: %w", err)
	}

	fields := ProcessValidationErrors(validationErrors)
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	missing := false
	for _, name := range names {
		tag := fields[name]
		if strings.HasPrefix(tag, "required") {
			missing = true
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", name, tag))
	}

	if missing {
		return fmt.Errorf("%w: %s", ErrMissingRequiredConfig, strings.Join(parts, ", "))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(parts, ", "))
}

// ProcessValidationErrors maps each failing field to the rule it broke
func ProcessValidationErrors(errs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(errs))
	for _, ve := range errs {
		out[strings.TrimPrefix(ve.Namespace(), "Config.")] = ve.Tag()
	}
	return out
}

// ProductionValidator performs strict validation for production environments
type ProductionValidator struct{}

// Validate performs production-specific validation
func (v *ProductionValidator) Validate(cfg *Config) error {
	if cfg.Database.Password == "" {
		return fmt.Errorf("%w: database password", ErrMissingRequiredConfig)
	}

	if cfg.Database.SSLMode == "disable" {
		return fmt.Errorf("database SSL must be enabled in production")
	}

	if cfg.Security.JWTSecret == "development-secret-change-in-production" {
		return fmt.Errorf("default JWT secret cannot be used in production")
	}
	if len(cfg.Security.JWTSecret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}

	if !cfg.Security.SecureHeaders {
		return fmt.Errorf("secure headers must be enabled in production")
	}

	for _, origin := range cfg.Security.AllowedOrigins {
		if origin == "*" {
			return fmt.Errorf("wildcard origin (*) not allowed in production")
		}
	}

	return nil
}

// validateQueues checks that the reorder queue is one the worker serves
func validateQueues(cfg *Config) error {
	if _, ok := cfg.Asynq.Queues[cfg.Reorder.Queue]; !ok {
		return fmt.Errorf("reorder queue %q is not in ASYNQ_QUEUES", cfg.Reorder.Queue)
	}
	return nil
}
