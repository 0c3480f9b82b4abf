// Package config loads runtime configuration for the school admin console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. SCHOOL_* environment variables, optionally backed by a dotenv file
//     selected via -e or -env-file.
//  4. Command-line flags, which override earlier values.
//
// # JSON schema
//
// Intervals use timex.Duration, so they can be strings like "15s" or integer
// nanoseconds:
//
//	{
//	  "primary_base_url": "https://api.school.example",
//	  "fallback_base_url": "https://api-backup.school.example",
//	  "request_timeout": "15s",
//	  "resend_cooldown": "30s",
//	  "online_check_interval": "10s",
//	  "database_path": "schooladmin.db",
//	  "log_level": "info",
//	  "page_size": 10,
//	  "remote_otp": true
//	}
package config
