package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	ListenAddr      string        // HTTP listen address
	AllowedOrigins  []string      // CORS allowed origins
	ShutdownTimeout time.Duration // Graceful shutdown budget
	SeedUsers       bool          // Load the built-in seed records at startup
}

// Load reads configuration from environment variables, falling back to defaults.
// LISTEN_ADDR takes precedence over PORT.
func Load() *Config {
	return &Config{
		ListenAddr:      envOrDefault("LISTEN_ADDR", ":"+envOrDefault("PORT", "8080")),
		AllowedOrigins:  envOrDefaultList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		ShutdownTimeout: time.Duration(envOrDefaultInt64("SHUTDOWN_TIMEOUT_SEC", 10)) * time.Second,
		SeedUsers:       envOrDefaultBool("SEED_USERS", true),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrDefaultInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func envOrDefaultBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envOrDefaultList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
