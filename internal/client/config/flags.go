package config

import (
	"flag"
	"io"

	"github.com/farmily/farmily/internal/flagx"
)

// parseFlags overlays cfg with command-line flags.
//
//	-e string     gate endpoint URL
//	-t duration   gate timeout, e.g. 10s
//	-d string     database file
//	-l string     log level (debug|info|warn|error)
//	-metrics      record gate metrics (use -metrics=false to disable)
//
// Only these flags are parsed; everything else in args is ignored.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-e", "-t", "-d", "-l", "-metrics"})

	fs := flag.NewFlagSet("farmily", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.GateEndpoint, "e", cfg.GateEndpoint, "gate endpoint URL")
	fs.DurationVar(&cfg.GateTimeout, "t", cfg.GateTimeout, "gate timeout")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "database file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.BoolVar(&cfg.MetricsEnabled, "metrics", cfg.MetricsEnabled, "record gate metrics")

	return fs.Parse(args)
}
