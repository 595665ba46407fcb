package bootstrap

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-authgate/passwordgrant/internal/config"
)

const defaultJWTSecret = "your-256-bit-secret-change-in-production"

var errInsecureJWTSecret = errors.New("JWT_SECRET must be changed from its default in production")

// validateAllConfiguration validates all configuration settings
func validateAllConfiguration(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := validateTokenConfig(cfg); err != nil {
		return fmt.Errorf("invalid token configuration: %w", err)
	}
	return nil
}

// validateTokenConfig refuses to sign tokens with the published default
// secret outside development.
func validateTokenConfig(cfg *config.Config) error {
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return errInsecureJWTSecret
		}
		log.Println("WARNING: using the default JWT_SECRET; set JWT_SECRET before deploying")
	}
	if cfg.JWTExpiration <= 0 {
		return fmt.Errorf("JWT_EXPIRATION must be positive, got %s", cfg.JWTExpiration)
	}
	return nil
}
