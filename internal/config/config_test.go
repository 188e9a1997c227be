package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, time.Minute, cfg.DispatchInterval)
	assert.Equal(t, time.Minute, cfg.DispatchTolerance)
	assert.Equal(t, 30*time.Second, cfg.DispatchLockTTL)
	assert.Equal(t, "sendgrid", cfg.EmailProvider)
	assert.Empty(t, cfg.CORSAllowedOrigins)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DISPATCH_INTERVAL", "30s")
	t.Setenv("DISPATCH_TOLERANCE", "2m")
	t.Setenv("EMAIL_PROVIDER", " SES ")
	t.Setenv("REDIS_TLS", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.DispatchInterval)
	assert.Equal(t, 2*time.Minute, cfg.DispatchTolerance)
	assert.Equal(t, "ses", cfg.EmailProvider)
	assert.True(t, cfg.RedisTLS)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSAllowedOrigins)
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	t.Setenv("DISPATCH_INTERVAL", "soon")

	cfg := Load()

	assert.Equal(t, time.Minute, cfg.DispatchInterval)
}
