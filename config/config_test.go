package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvDefaults(t *testing.T) {
	cfg := LoadEnv()

	assert.Equal(t, "dev", cfg.Server.AppEnv)
	assert.Equal(t, "http://localhost:3333", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.True(t, cfg.Logger.DisableStacktrace)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.com/")
	t.Setenv("API_TIMEOUT", "3")
	t.Setenv("LOGGER_DISABLE_CALLER", "true")
	t.Setenv("LOGGER_MAX_BACKUPS", "not-a-number")
	t.Setenv("SESSION_DB_PATH", "/tmp/session.db")

	cfg := LoadEnv()

	assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.True(t, cfg.Logger.DisableCaller)
	assert.Equal(t, 3, cfg.Logger.MaxBackups)
	assert.Equal(t, "/tmp/session.db", cfg.Session.DBPath)
}

func TestGetEnvDurationParsesGoSyntax(t *testing.T) {
	t.Setenv("API_TIMEOUT", "1m30s")
	assert.Equal(t, 90*time.Second, getEnvDuration("API_TIMEOUT", time.Second))
}
