package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/transcripts")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("AUTH_URL", "http://localhost:9000")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.UseAsyncDispatch)
	assert.Equal(t, "extractions:v1", cfg.QueueStream)
	assert.Equal(t, 3, cfg.QueueMaxAttempts)
	assert.Equal(t, 5, cfg.FreeTierDailyLimit)
	assert.Equal(t, 7*24*time.Hour, cfg.TranscriptCacheTTL)
	assert.Equal(t, 5*time.Minute, cfg.JobStatusTTL)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("FREE_TIER_DAILY_LIMIT", "10")
	t.Setenv("TRANSCRIPT_CACHE_TTL", "24h")
	t.Setenv("JOB_STATUS_TTL", "10m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 10, cfg.FreeTierDailyLimit)
	assert.Equal(t, 24*time.Hour, cfg.TranscriptCacheTTL)
	assert.Equal(t, 10*time.Minute, cfg.JobStatusTTL)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FREE_TIER_DAILY_LIMIT", "not-a-number")
	t.Setenv("TRANSCRIPT_CACHE_TTL", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.FreeTierDailyLimit)
	assert.Equal(t, 7*24*time.Hour, cfg.TranscriptCacheTTL)
}

func TestValidateRequiredValues(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing database URL",
			mutate:  func(c *Config) { c.DatabaseURL = "" },
			wantErr: "DATABASE_URL",
		},
		{
			name:    "missing redis URL",
			mutate:  func(c *Config) { c.RedisURL = "" },
			wantErr: "REDIS_URL",
		},
		{
			name:    "missing auth URL",
			mutate:  func(c *Config) { c.AuthURL = "" },
			wantErr: "AUTH_URL",
		},
		{
			name: "async dispatch without callback URL",
			mutate: func(c *Config) {
				c.UseAsyncDispatch = true
				c.SigningKeyCurrent = "key"
			},
			wantErr: "CALLBACK_URL",
		},
		{
			name: "async dispatch without signing key",
			mutate: func(c *Config) {
				c.UseAsyncDispatch = true
				c.CallbackURL = "https://api.example.com/api/v1/extract/callback"
			},
			wantErr: "CALLBACK_SIGNING_KEY_CURRENT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				DatabaseURL: "postgres://localhost/db",
				RedisURL:    "redis://localhost:6379",
				AuthURL:     "http://localhost:9000",
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
