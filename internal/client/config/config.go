package config

import (
	"fmt"
	"os"
	"time"
)

// MaxPageSize caps the number of rows shown per list page.
const MaxPageSize = 500

// Config holds runtime settings for the school admin console.
//
// Units: all intervals are time.Duration values.
type Config struct {
	PrimaryBaseURL      string
	FallbackBaseURL     string
	RequestTimeout      time.Duration
	ResendCooldown      time.Duration
	OnlineCheckInterval time.Duration
	DatabasePath        string
	LogLevel            string
	PageSize            int
	RemoteOTP           bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.PrimaryBaseURL = "http://localhost:8080"
	c.FallbackBaseURL = "http://localhost:8081"
	c.RequestTimeout = 15 * time.Second
	c.ResendCooldown = 30 * time.Second
	c.OnlineCheckInterval = 10 * time.Second
	c.DatabasePath = "schooladmin.db"
	c.LogLevel = "info"
	c.PageSize = 10
	c.RemoteOTP = false
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	switch {
	case c.PrimaryBaseURL == "":
		return fmt.Errorf("primary base url is empty")
	case c.RequestTimeout <= 0:
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	case c.ResendCooldown <= 0:
		return fmt.Errorf("resend cooldown must be positive, got %s", c.ResendCooldown)
	case c.OnlineCheckInterval <= 0:
		return fmt.Errorf("online check interval must be positive, got %s", c.OnlineCheckInterval)
	case c.DatabasePath == "":
		return fmt.Errorf("database path is empty")
	case c.PageSize <= 0:
		return fmt.Errorf("page size must be positive, got %d", c.PageSize)
	case c.PageSize > MaxPageSize:
		return fmt.Errorf("page size must be at most %d, got %d", MaxPageSize, c.PageSize)
	}
	return nil
}

// Load builds a Config from defaults, then the JSON file, then the
// environment, then the flags in args. Later sources take precedence.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, args, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadConfig is Load over the process arguments.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}
