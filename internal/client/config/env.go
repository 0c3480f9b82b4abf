package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/schooladmin/internal/flagx"
	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvPrimaryBaseURL      = "SCHOOL_API_URL"
	EnvFallbackBaseURL     = "SCHOOL_FALLBACK_API_URL"
	EnvRequestTimeout      = "SCHOOL_REQUEST_TIMEOUT"
	EnvResendCooldown      = "SCHOOL_RESEND_COOLDOWN"
	EnvOnlineCheckInterval = "SCHOOL_ONLINE_CHECK_INTERVAL"
	EnvDatabasePath        = "SCHOOL_DB_PATH"
	EnvLogLevel            = "SCHOOL_LOG_LEVEL"
	EnvPageSize            = "SCHOOL_PAGE_SIZE"
	EnvRemoteOTP           = "SCHOOL_REMOTE_OTP"
)

type lookupFunc func(key string) (string, bool)

// parseEnv overlays cfg with SCHOOL_* variables. A dotenv file given with -e
// or -env-file fills in variables the process environment does not set.
func parseEnv(cfg *Config, args []string, lookup lookupFunc) error {
	var dotenv map[string]string
	if path := flagx.EnvFileFlag(args); path != "" {
		m, err := godotenv.Read(path)
		if err != nil {
			return fmt.Errorf("read env file: %w", err)
		}
		dotenv = m
	}

	get := func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	if v, ok := get(EnvPrimaryBaseURL); ok {
		cfg.PrimaryBaseURL = v
	}
	if v, ok := get(EnvFallbackBaseURL); ok {
		cfg.FallbackBaseURL = v
	}
	if v, ok := get(EnvDatabasePath); ok {
		cfg.DatabasePath = v
	}
	if v, ok := get(EnvLogLevel); ok {
		cfg.LogLevel = v
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{EnvRequestTimeout, &cfg.RequestTimeout},
		{EnvResendCooldown, &cfg.ResendCooldown},
		{EnvOnlineCheckInterval, &cfg.OnlineCheckInterval},
	}
	for _, d := range durations {
		v, ok := get(d.key)
		if !ok {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", d.key, err)
		}
		*d.dst = parsed
	}

	if v, ok := get(EnvPageSize); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPageSize, err)
		}
		cfg.PageSize = n
	}
	if v, ok := get(EnvRemoteOTP); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRemoteOTP, err)
		}
		cfg.RemoteOTP = b
	}
	return nil
}
