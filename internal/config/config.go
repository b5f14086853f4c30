package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultJWTSecret      = "change-me-jwt-secret"
	defaultJWTAccessTTL   = "24h"
	defaultListenAddr     = ":8080"
	defaultGeocodeBase    = "https://api.postcodes.io"
	defaultGeocodeTimeout = "3s"
	defaultGeocodeTTL     = "24h"
)

type Config struct {
	AppEnv         string
	ListenAddr     string
	DatabaseURL    string
	JWTSecret      string
	JWTAccessTTL   time.Duration
	GeocodeBaseURL string
	GeocodeTimeout time.Duration
	GeocodeTTL     time.Duration
}

// Load reads configuration from the environment, with a .env file as a
// convenience for local development. Missing optional values fall back to
// defaults; DATABASE_URL is the only hard requirement.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		ListenAddr:     getEnv("LISTEN_ADDR", defaultListenAddr),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JWTSecret:      getEnv("JWT_SECRET", defaultJWTSecret),
		GeocodeBaseURL: getEnv("GEOCODE_BASE_URL", defaultGeocodeBase),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}
	if cfg.AppEnv == "production" && cfg.JWTSecret == defaultJWTSecret {
		return nil, fmt.Errorf("JWT_SECRET must be set in production")
	}

	var err error
	if cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL); err != nil {
		return nil, err
	}
	if cfg.GeocodeTimeout, err = parseDurationEnv("GEOCODE_TIMEOUT", defaultGeocodeTimeout); err != nil {
		return nil, err
	}
	if cfg.GeocodeTTL, err = parseDurationEnv("GEOCODE_CACHE_TTL", defaultGeocodeTTL); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, raw, err)
	}
	return d, nil
}
