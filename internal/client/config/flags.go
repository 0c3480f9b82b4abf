package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/schooladmin/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     primary API base URL
//	-f string     fallback API base URL
//	-t duration   request timeout
//	-r duration   OTP resend cooldown
//	-i int        online check interval in seconds
//	-d string     local database path
//	-l string     log level (debug, info, warn, error)
//	-n int        records per page
//	-remote-otp   send and verify codes through the API
//
// Only the flags above are parsed; see flagx.FilterArgs.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, flagx.Known{
		Value: []string{"-a", "-f", "-t", "-r", "-i", "-d", "-l", "-n"},
		Bool:  []string{"-remote-otp"},
	})

	fs := flag.NewFlagSet("schooladmin", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.PrimaryBaseURL, "a", cfg.PrimaryBaseURL, "primary API base URL")
	fs.StringVar(&cfg.FallbackBaseURL, "f", cfg.FallbackBaseURL, "fallback API base URL")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")
	fs.DurationVar(&cfg.ResendCooldown, "r", cfg.ResendCooldown, "OTP resend cooldown")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.IntVar(&cfg.PageSize, "n", cfg.PageSize, "records per page")
	fs.BoolVar(&cfg.RemoteOTP, "remote-otp", cfg.RemoteOTP, "send and verify codes through the API")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" {
			cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
		}
	})
	return nil
}
