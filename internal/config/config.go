// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Port       string
	BaseURL    string // API root advertised in submit URLs
	DBPath     string // empty means the store default
	LogLevel   slog.Level
	Seed       uint64 // question seed; only used when HasSeed
	HasSeed    bool
	RateLimit  int           // requests per RateWindow per client
	RateWindow time.Duration // 0 disables rate limiting
}

// Load reads configuration from a .env file, if present, and then from
// environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:       getEnv("PORT", "3000"),
		DBPath:     getEnv("MINDSPEED_DB", ""),
		RateLimit:  getEnvInt("MINDSPEED_RATE_LIMIT", 60),
		RateWindow: getEnvDuration("MINDSPEED_RATE_WINDOW", time.Minute),
	}
	cfg.BaseURL = getEnv("MINDSPEED_BASE_URL", "")

	level, err := parseLevel(getEnv("MINDSPEED_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	cfg.LogLevel = level

	if s, ok := os.LookupEnv("MINDSPEED_SEED"); ok && strings.TrimSpace(s) != "" {
		seed, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid configuration: MINDSPEED_SEED: %w", err)
		}
		cfg.Seed, cfg.HasSeed = seed, true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if n, err := strconv.Atoi(c.Port); err != nil || n <= 0 || n > 65535 {
		return fmt.Errorf("PORT must be a TCP port, got %q", c.Port)
	}
	if c.RateWindow < 0 {
		return fmt.Errorf("MINDSPEED_RATE_WINDOW must be >= 0")
	}
	if c.RateWindow > 0 && c.RateLimit <= 0 {
		return fmt.Errorf("MINDSPEED_RATE_LIMIT must be > 0")
	}
	return nil
}

// APIBaseURL returns the configured base URL, or the local address of the
// server when none is set.
func (c *Config) APIBaseURL() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	return "http://localhost:" + c.Port + "/api/v1"
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("MINDSPEED_LOG_LEVEL: %w", err)
	}
	return l, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}
