package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string `validate:"required,numeric"`
	ServerHost string

	// Database configuration
	DBDriver   string `validate:"required,oneof=postgres sqlite"`
	DBHost     string `validate:"required_if=DBDriver postgres"`
	DBPort     string `validate:"required_if=DBDriver postgres"`
	DBUser     string `validate:"required_if=DBDriver postgres"`
	DBPassword string
	DBName     string `validate:"required_if=DBDriver postgres"`
	DBSSLMode  string `validate:"omitempty,oneof=disable require verify-ca verify-full"`
	SQLitePath string `validate:"required_if=DBDriver sqlite"`

	// Redis configuration. Rate limiting is disabled when neither URL nor host is set.
	RedisURL      string `validate:"omitempty,url"`
	RedisHost     string
	RedisPort     string `validate:"omitempty,numeric"`
	RedisPassword string
	RedisDB       int `validate:"gte=0"`

	// JWT configuration
	JWTSecret string        `validate:"required,min=16"`
	TokenTTL  time.Duration `validate:"gt=0"`

	CORSOrigins []string

	// S3 image storage. Uploads are disabled when the bucket is empty.
	S3Bucket string
	S3Region string

	LogLevel  string `validate:"omitempty,oneof=trace debug info warn error"`
	LogFormat string `validate:"omitempty,oneof=json console"`
}

// RedisEnabled reports whether a Redis server was configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// S3Enabled reports whether recipe image uploads are configured.
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != ""
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	if env.UsesDotenv() {
		// A missing .env file is fine; the process environment still applies.
		_ = godotenv.Load()
	}

	lookup := os.Getenv
	if env == Production {
		lookup = secretOrEnv
	}
	loadEnvConfig(cfg, lookup)

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadEnvConfig fills cfg from lookup, falling back to development defaults.
func loadEnvConfig(cfg *Config, lookup func(string) string) {
	get := func(key, fallback string) string {
		if v := lookup(key); v != "" {
			return v
		}
		return fallback
	}

	cfg.ServerPort = get("SERVER_PORT", "8080")
	cfg.ServerHost = get("SERVER_HOST", "0.0.0.0")

	cfg.DBDriver = get("DB_DRIVER", "postgres")
	cfg.DBHost = get("DB_HOST", "localhost")
	cfg.DBPort = get("DB_PORT", "5432")
	cfg.DBUser = get("DB_USER", "postgres")
	cfg.DBPassword = lookup("DB_PASSWORD")
	cfg.DBName = get("DB_NAME", "mealplanner")
	cfg.DBSSLMode = get("DB_SSL_MODE", "disable")
	cfg.SQLitePath = get("SQLITE_PATH", "mealplanner.db")

	cfg.RedisURL = lookup("REDIS_URL")
	cfg.RedisHost = lookup("REDIS_HOST")
	cfg.RedisPort = get("REDIS_PORT", "6379")
	cfg.RedisPassword = lookup("REDIS_PASSWORD")
	cfg.RedisDB, _ = strconv.Atoi(get("REDIS_DB", "0"))

	cfg.JWTSecret = lookup("JWT_SECRET")
	cfg.TokenTTL = 24 * time.Hour
	if d, err := time.ParseDuration(lookup("TOKEN_TTL")); err == nil {
		cfg.TokenTTL = d
	}

	cfg.CORSOrigins = splitList(get("CORS_ORIGINS", "http://localhost:3000"))

	cfg.S3Bucket = lookup("S3_BUCKET_NAME")
	cfg.S3Region = get("AWS_REGION", "us-east-1")

	cfg.LogLevel = get("LOG_LEVEL", "info")
	cfg.LogFormat = get("LOG_FORMAT", "json")
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// secretOrEnv looks up a Docker secret named after the lower-cased key, then the
// environment variable itself.
func secretOrEnv(key string) string {
	if v := readSecret(strings.ToLower(key)); v != "" {
		return v
	}
	return os.Getenv(key)
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
