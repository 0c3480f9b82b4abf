package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/schooladmin/internal/flagx"
	"github.com/dmitrijs2005/schooladmin/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Intervals use
// timex.Duration so they can be written as "15s" or as integer nanoseconds.
// Pointer fields tell an absent key from a zero value.
type JsonConfig struct {
	PrimaryBaseURL      *string         `json:"primary_base_url"`
	FallbackBaseURL     *string         `json:"fallback_base_url"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	ResendCooldown      *timex.Duration `json:"resend_cooldown"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	DatabasePath        *string         `json:"database_path"`
	LogLevel            *string         `json:"log_level"`
	PageSize            *int            `json:"page_size"`
	RemoteOTP           *bool           `json:"remote_otp"`
}

// parseJson overlays cfg with the file named by -c or -config. Without the
// flag nothing changes.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if jc.PrimaryBaseURL != nil {
		cfg.PrimaryBaseURL = *jc.PrimaryBaseURL
	}
	if jc.FallbackBaseURL != nil {
		cfg.FallbackBaseURL = *jc.FallbackBaseURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.ResendCooldown != nil {
		cfg.ResendCooldown = jc.ResendCooldown.Duration
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.PageSize != nil {
		cfg.PageSize = *jc.PageSize
	}
	if jc.RemoteOTP != nil {
		cfg.RemoteOTP = *jc.RemoteOTP
	}
	return nil
}
