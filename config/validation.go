package config

import (
	"fmt"
)

// ValidateConfig checks that the configuration is usable. JWT secrets are
// mandatory everywhere but development, where a fixed value keeps local
// setups friction-free.
func ValidateConfig(cfg *Config) error {
	if cfg.ServerPort == "" {
		return fmt.Errorf("server port is required")
	}
	if cfg.DBHost == "" || cfg.DBPort == "" || cfg.DBUser == "" || cfg.DBName == "" {
		return fmt.Errorf("database configuration is incomplete")
	}
	if cfg.JWTSecret == "" {
		if IsProduction() {
			return fmt.Errorf("JWT secret is required in production")
		}
		cfg.JWTSecret = "dev-only-secret"
	}
	if cfg.CartTTL <= 0 {
		return fmt.Errorf("cart TTL must be positive")
	}
	return nil
}
