package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "MINDSPEED_BASE_URL", "MINDSPEED_DB", "MINDSPEED_LOG_LEVEL",
		"MINDSPEED_SEED", "MINDSPEED_RATE_LIMIT", "MINDSPEED_RATE_WINDOW",
	} {
		t.Setenv(k, "")
	}
	// An empty value is still "set"; restore the unset defaults the tests
	// rely on.
	t.Setenv("PORT", "3000")
	t.Setenv("MINDSPEED_LOG_LEVEL", "info")
	t.Setenv("MINDSPEED_RATE_LIMIT", "60")
	t.Setenv("MINDSPEED_RATE_WINDOW", "1m")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir()) // no .env here

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.False(t, cfg.HasSeed)
	assert.Equal(t, 60, cfg.RateLimit)
	assert.Equal(t, time.Minute, cfg.RateWindow)
	assert.Equal(t, "http://localhost:3000/api/v1", cfg.APIBaseURL())
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "8081")
	t.Setenv("MINDSPEED_BASE_URL", "https://quiz.example.com/api/v1/")
	t.Setenv("MINDSPEED_LOG_LEVEL", "debug")
	t.Setenv("MINDSPEED_SEED", "42")
	t.Setenv("MINDSPEED_RATE_WINDOW", "0s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.True(t, cfg.HasSeed)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Zero(t, cfg.RateWindow)
	assert.Equal(t, "https://quiz.example.com/api/v1", cfg.APIBaseURL())
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"PORT", "not-a-port"},
		{"PORT", "70000"},
		{"MINDSPEED_LOG_LEVEL", "loud"},
		{"MINDSPEED_SEED", "-1"},
		{"MINDSPEED_RATE_LIMIT", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Chdir(t.TempDir())
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
