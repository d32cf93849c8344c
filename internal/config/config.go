// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends accepted by STORAGE_BACKEND.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// StorageBackend is one of sqlite (default), postgres or memory.
	StorageBackend string

	// DatabaseURL is the Postgres connection string. Required when
	// StorageBackend is postgres.
	DatabaseURL string

	// SQLitePath is the database file for the sqlite backend.
	// Defaults to "data/travelbook.db".
	SQLitePath string

	// RatesAPIURL and RatesAPIKey locate the exchange-rate provider. Without
	// a key, rates are never fetched and conversions are identity.
	RatesAPIURL string
	RatesAPIKey string

	// RatesTTL is how long a fetched rate table stays fresh. Defaults to 24h.
	RatesTTL time.Duration

	// RatesTimeout bounds one rate fetch. Defaults to 10s.
	RatesTimeout time.Duration

	// GeocoderURL is the Nominatim-compatible search service.
	GeocoderURL string

	// GeocoderLanguage is sent as Accept-Language. Defaults to "fr".
	GeocoderLanguage string

	// StaticMapURL is the static-map URL template used for export cover
	// pages. Empty disables the map.
	StaticMapURL string

	// MaxBodyBytes limits request bodies. Defaults to 10 MiB so a day image
	// fits inline.
	MaxBodyBytes int64
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set and any
// values that cannot be parsed.
func Load() (Config, error) {
	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		CORSOrigins:      splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		StorageBackend:   strings.ToLower(getEnv("STORAGE_BACKEND", BackendSQLite)),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		SQLitePath:       getEnv("SQLITE_PATH", "data/travelbook.db"),
		RatesAPIURL:      getEnv("RATES_API_URL", "https://v6.exchangerate-api.com/v6"),
		RatesAPIKey:      os.Getenv("RATES_API_KEY"),
		GeocoderURL:      getEnv("GEOCODER_URL", "https://nominatim.openstreetmap.org"),
		GeocoderLanguage: getEnv("GEOCODER_LANGUAGE", "fr"),
		StaticMapURL:     os.Getenv("STATIC_MAP_URL"),
	}

	var missing, invalid []string

	switch cfg.StorageBackend {
	case BackendSQLite, BackendMemory:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	default:
		invalid = append(invalid, "STORAGE_BACKEND="+cfg.StorageBackend)
	}

	var err error
	if cfg.RatesTTL, err = getDuration("RATES_TTL", 24*time.Hour); err != nil {
		invalid = append(invalid, err.Error())
	}
	if cfg.RatesTimeout, err = getDuration("RATES_TIMEOUT", 10*time.Second); err != nil {
		invalid = append(invalid, err.Error())
	}
	if cfg.MaxBodyBytes, err = getInt64("MAX_BODY_BYTES", 10<<20); err != nil {
		invalid = append(invalid, err.Error())
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s=%q", key, v)
	}
	return d, nil
}

func getInt64(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s=%q", key, v)
	}
	return n, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
