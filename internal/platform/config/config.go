// Package config builds runtime configuration from the environment so main
// stays lean.
package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr     string
	Upstream Upstream
	Catalog  Catalog
	Redis    Redis
}

// Upstream holds the migration-data API connection settings.
type Upstream struct {
	BaseURL string
	Timeout time.Duration
}

// Catalog holds the location-catalog cache settings.
type Catalog struct {
	TTL time.Duration
}

// Redis holds the optional shared-cache connection. An empty URL means the
// in-process store is used instead.
type Redis struct {
	URL string
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	return Server{
		Addr: getenv("MIGFLOW_ADDR", ":8080"),
		Upstream: Upstream{
			BaseURL: os.Getenv("MIGFLOW_UPSTREAM_URL"),
			Timeout: getenvDuration("MIGFLOW_UPSTREAM_TIMEOUT", 30*time.Second),
		},
		Catalog: Catalog{
			TTL: getenvDuration("MIGFLOW_CATALOG_TTL", 5*time.Minute),
		},
		Redis: Redis{
			URL: os.Getenv("MIGFLOW_REDIS_URL"),
		},
	}
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
