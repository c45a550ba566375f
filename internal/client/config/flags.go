package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/warrantyguard/internal/flagx"
)

// parseFlags overlays cfg with command-line flags:
//
//	-a string   backup server URL
//	-u string   user id used as the backup key
//	-d string   path of the local SQLite database
//	-t int      request timeout in seconds
//	-l string   log level (debug, info, warn, error)
//
// Only these flags are looked at; anything else in os.Args is ignored.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-u", "-d", "-t", "-l"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "backup server URL")
	fs.StringVar(&cfg.UserID, "u", cfg.UserID, "user id for backup and restore")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database path")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
