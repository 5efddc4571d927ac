package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Supabase settings
	SupabaseDBURL       string // Postgres connection URL of the Supabase project
	SupabaseServiceRole string // service-level key, used as DB password when the URL carries none

	// Scraper settings
	SourcesConfigPath string
	RequestTimeout    time.Duration
	ArticlePause      time.Duration // pause between article fetches within one source
	SourceDelayMin    time.Duration // randomized delay between sources
	SourceDelayMax    time.Duration

	// App settings
	Debug         bool
	RetryAttempts int
	RetryDelay    time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		SourcesConfigPath: "configs/sources.yaml",
		RequestTimeout:    15 * time.Second,
		ArticlePause:      500 * time.Millisecond,
		SourceDelayMin:    2 * time.Second,
		SourceDelayMax:    5 * time.Second,
		RetryAttempts:     3,
		RetryDelay:        2 * time.Second,
	}

	// Load from environment
	cfg.SupabaseDBURL = os.Getenv("SUPABASE_DB_URL")
	cfg.SupabaseServiceRole = os.Getenv("SUPABASE_SERVICE_ROLE")

	if path := os.Getenv("SOURCES_CONFIG_PATH"); path != "" {
		cfg.SourcesConfigPath = path
	}

	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RequestTimeout = time.Duration(val) * time.Second
		}
	}
	if v := os.Getenv("ARTICLE_PAUSE_MS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val >= 0 {
			cfg.ArticlePause = time.Duration(val) * time.Millisecond
		}
	}
	if v := os.Getenv("SOURCE_DELAY_MIN_MS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val >= 0 {
			cfg.SourceDelayMin = time.Duration(val) * time.Millisecond
		}
	}
	if v := os.Getenv("SOURCE_DELAY_MAX_MS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val >= 0 {
			cfg.SourceDelayMax = time.Duration(val) * time.Millisecond
		}
	}
	if v := os.Getenv("RETRY_ATTEMPTS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RetryAttempts = val
		}
	}

	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.SupabaseDBURL == "" {
		return fmt.Errorf("SUPABASE_DB_URL is required")
	}
	if c.SupabaseServiceRole == "" {
		return fmt.Errorf("SUPABASE_SERVICE_ROLE is required")
	}
	if c.SourceDelayMax < c.SourceDelayMin {
		return fmt.Errorf("SOURCE_DELAY_MAX_MS must be >= SOURCE_DELAY_MIN_MS")
	}
	return nil
}

// DSN returns the Postgres connection string. Supabase hands out URLs
// without an embedded password; the service role key fills that slot.
func (c *Config) DSN() (string, error) {
	u, err := url.Parse(c.SupabaseDBURL)
	if err != nil {
		return "", fmt.Errorf("invalid SUPABASE_DB_URL: %w", err)
	}
	if u.User == nil || u.User.Username() == "" {
		u.User = url.UserPassword("postgres", c.SupabaseServiceRole)
	} else if _, has := u.User.Password(); !has {
		u.User = url.UserPassword(u.User.Username(), c.SupabaseServiceRole)
	}
	return u.String(), nil
}
