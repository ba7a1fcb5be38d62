package config

import (
	"flag"
	"os"
	"time"

	"github.com/shelfhq/shelf/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the Shelf API (default from Config)
//	-d string   state directory (default from Config)
//	-i int      payment poll interval in seconds (default from Config)
//
// os.Args is filtered to the flags handled here, via flagx.FilterArgs, to
// avoid interference with flags owned by other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the Shelf API")
	fs.StringVar(&cfg.StateDir, "d", cfg.StateDir, "state directory")
	pollInterval := fs.Int("i", int(cfg.PaymentPollInterval.Seconds()), "payment poll interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.PaymentPollInterval = time.Duration(*pollInterval) * time.Second
}
