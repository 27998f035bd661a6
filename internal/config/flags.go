package config

import (
	"flag"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/tripquote/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
// os.Args is filtered with flagx.FilterArgs so that -c/-config and unknown
// arguments do not break parsing. Panics on malformed values.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-l", "-t", "-s", "-g", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the SQLite database")
	fs.StringVar(&cfg.LibraryURL, "l", cfg.LibraryURL, "master library URL")
	fs.StringVar(&cfg.TemplatesURL, "t", cfg.TemplatesURL, "itinerary templates URL")
	staleness := fs.Int("s", int(cfg.SyncInterval.Hours()), "sync staleness window (in hours)")
	fs.StringVar(&cfg.Consultant, "g", cfg.Consultant, "consultant name")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if *staleness > 0 && *staleness != int(cfg.SyncInterval.Hours()) {
		cfg.SyncInterval = time.Duration(*staleness) * time.Hour
	}
}
