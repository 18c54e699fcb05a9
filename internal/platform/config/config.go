// Package config builds runtime configuration from environment variables so
// main stays lean. cmd binaries load a local .env first via godotenv.
package config

import (
	"os"
	"strconv"
	"time"
)

// RateLimit carries the fixed-window parameters for one endpoint.
type RateLimit struct {
	MaxAttempts int
	Window      time.Duration
}

// Config captures everything the server needs at startup.
type Config struct {
	Addr        string
	DatabaseURL string
	RedisURL    string

	Contact    RateLimit
	Newsletter RateLimit

	// RateLimitDisabled turns the limiters into pass-throughs (demo/tests).
	RateLimitDisabled bool
}

// FromEnv builds a Config from environment variables with development
// defaults. The rate-limit defaults match the product contract: contact
// 3 attempts per 15 minutes, newsletter 5 per 10 minutes.
func FromEnv() Config {
	addr := os.Getenv("WEBFORMS_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	return Config{
		Addr:        addr,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		Contact: RateLimit{
			MaxAttempts: envInt("CONTACT_RATE_MAX", 3),
			Window:      envDuration("CONTACT_RATE_WINDOW", 15*time.Minute),
		},
		Newsletter: RateLimit{
			MaxAttempts: envInt("NEWSLETTER_RATE_MAX", 5),
			Window:      envDuration("NEWSLETTER_RATE_WINDOW", 10*time.Minute),
		},
		RateLimitDisabled: os.Getenv("RATE_LIMIT_DISABLED") == "true",
	}
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
