package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultPowerBIURL = "https://app.powerbi.com/view?r=eyJrIjoiNjRkNjQ1ZjgtOWFjZS00ODhiLTg2MzktNmE5ZmJlYzdhMmFkIiwidCI6IjFjODA3N2YwLTY5MDItNDc1NC1hYzE4LTA4Zjc4ZjhlOTUxZSJ9"

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// Config aggregates application-wide configuration values.
type Config struct {
	Port            string
	JobsAPIBaseURL  string
	JobsAPIAudience string
	LookupTimeout   time.Duration
	SearchTimeout   time.Duration
	PageSize        int
	LookupCacheTTL  time.Duration
	SessionSecret   string
	SessionTTL      time.Duration
	RateLimitAPI    RateLimitConfig
	PowerBIURL      string
	LogLevel        string
	LogFormat       string
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		JobsAPIBaseURL:  strings.TrimRight(getEnv("JOBS_API_BASE_URL", "https://back-end-render-dg5f.onrender.com"), "/"),
		JobsAPIAudience: os.Getenv("JOBS_API_AUDIENCE"),
		LookupTimeout:   parseDuration(getEnv("LOOKUP_TIMEOUT", "20s"), 20*time.Second),
		SearchTimeout:   parseDuration(getEnv("SEARCH_TIMEOUT", "60s"), 60*time.Second),
		LookupCacheTTL:  parseDuration(getEnv("LOOKUP_CACHE_TTL", "10m"), 10*time.Minute),
		SessionSecret:   getEnv("SESSION_SECRET", "dev-secret"),
		SessionTTL:      parseDuration(getEnv("SESSION_TTL", "12h"), 12*time.Hour),
		PowerBIURL:      getEnv("POWERBI_EMBED_URL", defaultPowerBIURL),
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:       strings.ToLower(getEnv("LOG_FORMAT", "tint")),
	}

	pageSize, err := strconv.Atoi(getEnv("PAGE_SIZE", "20"))
	if err != nil || pageSize <= 0 {
		return nil, fmt.Errorf("invalid PAGE_SIZE value: %q", os.Getenv("PAGE_SIZE"))
	}
	cfg.PageSize = pageSize

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_API", "30/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_API value: %w", err)
	}
	cfg.RateLimitAPI = rl

	return cfg, nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseDuration(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}
