package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/notehub/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the REST API
//	-d string   local database path
//	-l string   log level
//	-p int      default page size
//
// Only these flags are looked at (flagx.FilterArgs), so -c/-config and any
// flags owned by other components pass through untouched.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("notehub", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "base URL of the REST API")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "local database path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.IntVar(&cfg.PerPage, "p", cfg.PerPage, "default page size")

	return fs.Parse(flagx.FilterArgs(args, "a", "d", "l", "p"))
}
