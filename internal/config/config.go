package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	LogLevel string

	// Leaderboard API
	LeaderboardURL string
	RequestTimeout time.Duration
	PageDelay      time.Duration
	ExactPaging    bool

	// Optional page cache
	RedisURL string
	CacheTTL time.Duration

	// Optional Prometheus textfile output
	MetricsTextfile string
}

// Load loads configuration from environment variables, after applying any
// of the given .env files that exist. Variables already set in the
// environment take precedence over the files.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &Config{
		Env:      getEnv("ENV", "production"),
		LogLevel: getEnv("LOG_LEVEL", "warn"),

		LeaderboardURL: getEnv("LEADERBOARD_URL", "https://www.diabotical.com/api/v0/stats/leaderboard"),

		RedisURL:        os.Getenv("REDIS_URL"),
		MetricsTextfile: os.Getenv("METRICS_TEXTFILE"),
	}

	var err error
	if cfg.RequestTimeout, err = getEnvDuration("REQUEST_TIMEOUT", 2*time.Second); err != nil {
		return nil, err
	}
	if cfg.PageDelay, err = getEnvDuration("PAGE_DELAY", 200*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getEnvDuration("CACHE_TTL", time.Minute); err != nil {
		return nil, err
	}
	if cfg.ExactPaging, err = getEnvBool("LEADERBOARD_EXACT_PAGING", false); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsDevelopment reports whether human-friendly logging should be used.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

func (c *Config) validate() error {
	u, err := url.Parse(c.LeaderboardURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid LEADERBOARD_URL %q: want an absolute http(s) URL", c.LeaderboardURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("invalid REQUEST_TIMEOUT %s: must be positive", c.RequestTimeout)
	}
	if c.PageDelay < 0 {
		return fmt.Errorf("invalid PAGE_DELAY %s: must not be negative", c.PageDelay)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("invalid CACHE_TTL %s: must be positive", c.CacheTTL)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return b, nil
}
