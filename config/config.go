package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string

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

	// Cart behavior
	CartTTL time.Duration
	// OrderUseEffectivePrice makes order totals use the deal-aware price
	// shown in the cart instead of the base price. Defaults to false,
	// which reproduces the historical billing behavior.
	OrderUseEffectivePrice bool

	// S3 photo storage
	S3Bucket  string
	AWSRegion string

	// SMTP notifications (optional; emails are dropped when unset)
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string
}

// LoadConfig builds a Config from environment variables, falling back to
// Docker secrets for sensitive values in production.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort: getEnv("SERVER_PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getSecret("DB_PASSWORD", "db_password"),
		DBName:     getEnv("DB_NAME", "platemate"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getSecret("REDIS_PASSWORD", "redis_password"),
		RedisURL:      getEnv("REDIS_URL", ""),

		JWTSecret: getSecret("JWT_SECRET", "jwt_secret"),

		CartTTL:                24 * time.Hour,
		OrderUseEffectivePrice: getEnv("ORDER_USE_EFFECTIVE_PRICE", "false") == "true",

		S3Bucket:  getEnv("S3_BUCKET_NAME", "platemate-photos"),
		AWSRegion: getEnv("AWS_REGION", "us-east-1"),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: getSecret("SMTP_USERNAME", "smtp_username"),
		SMTPPassword: getSecret("SMTP_PASSWORD", "smtp_password"),
		EmailFrom:    getEnv("EMAIL_FROM", "noreply@platemate.app"),
	}

	if raw := os.Getenv("CART_TTL_HOURS"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours < 1 {
			return nil, fmt.Errorf("invalid CART_TTL_HOURS %q", raw)
		}
		cfg.CartTTL = time.Duration(hours) * time.Hour
	}
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q", raw)
		}
		cfg.RedisDB = db
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// getEnv reads an environment variable with a default.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getSecret reads a sensitive value from the environment, falling back to a
// Docker secret file.
func getSecret(envKey, secretName string) string {
	if value := os.Getenv(envKey); value != "" {
		return value
	}
	return readSecret(secretName)
}

// readSecret reads a Docker secret from the secrets directory.
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
