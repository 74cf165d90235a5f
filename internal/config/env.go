package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service configuration loaded from the environment.
type Config struct {
	Host         string
	Port         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	DatabaseURL string
	RedisURL    string

	WorkerURL   string
	AuthURL     string
	CallbackURL string

	UseAsyncDispatch bool
	QueueStream      string
	QueueMaxAttempts int

	SigningKeyCurrent string
	SigningKeyNext    string

	FreeTierDailyLimit int
	TranscriptCacheTTL time.Duration
	JobStatusTTL       time.Duration

	RateLimitPerMinute int
	RateLimitBurst     int
}

// LoadEnv loads environment variables from a .env file if one exists.
// Missing files are not an error; variables may be set system-wide.
func LoadEnv() error {
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
		"../../.env",
	}

	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			break
		}
	}

	return nil
}

// Load reads the full service configuration from the environment,
// applying defaults and failing fast on missing required values.
func Load() (*Config, error) {
	if err := LoadEnv(); err != nil {
		return nil, err
	}

	cfg := &Config{
		Host:         getEnv("HOST", "0.0.0.0"),
		Port:         getEnv("PORT", "8080"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		ReadTimeout:  getEnvDuration("READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getEnvDuration("WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:  getEnvDuration("IDLE_TIMEOUT", 60*time.Second),

		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		RedisURL:    strings.TrimSpace(os.Getenv("REDIS_URL")),

		WorkerURL:   getEnv("WORKER_URL", "http://localhost:8000"),
		AuthURL:     strings.TrimSpace(os.Getenv("AUTH_URL")),
		CallbackURL: strings.TrimSpace(os.Getenv("CALLBACK_URL")),

		UseAsyncDispatch: getEnvBool("USE_ASYNC_DISPATCH", false),
		QueueStream:      getEnv("QUEUE_STREAM", "extractions:v1"),
		QueueMaxAttempts: getEnvInt("QUEUE_MAX_ATTEMPTS", 3),

		SigningKeyCurrent: strings.TrimSpace(os.Getenv("CALLBACK_SIGNING_KEY_CURRENT")),
		SigningKeyNext:    strings.TrimSpace(os.Getenv("CALLBACK_SIGNING_KEY_NEXT")),

		FreeTierDailyLimit: getEnvInt("FREE_TIER_DAILY_LIMIT", 5),
		TranscriptCacheTTL: getEnvDuration("TRANSCRIPT_CACHE_TTL", 7*24*time.Hour),
		JobStatusTTL:       getEnvDuration("JOB_STATUS_TTL", 5*time.Minute),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 30),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must be set")
	}
	if c.RedisURL == "" {
		return fmt.Errorf("REDIS_URL must be set")
	}
	if c.AuthURL == "" {
		return fmt.Errorf("AUTH_URL must be set")
	}
	if c.UseAsyncDispatch {
		if c.CallbackURL == "" {
			return fmt.Errorf("CALLBACK_URL must be set when USE_ASYNC_DISPATCH is enabled")
		}
		if c.SigningKeyCurrent == "" {
			return fmt.Errorf("CALLBACK_SIGNING_KEY_CURRENT must be set when USE_ASYNC_DISPATCH is enabled")
		}
	}
	return nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
