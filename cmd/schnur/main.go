// Package main is the entry point for the schnur buffer tool.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dshills/schnur/internal/config"
	"github.com/dshills/schnur/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var errUsage = errors.New("usage error")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	configPath string
	encoding   string
	blockSize  int
	logLevel   string
	json       bool
	version    bool
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("schnur", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.configPath, "config", "", "Path to TOML configuration file")
	fs.StringVar(&opts.encoding, "encoding", "", "Narrow encoding (overrides config)")
	fs.IntVar(&opts.blockSize, "block-size", 0, "Allocation block size in units (overrides config)")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&opts.json, "json", false, "Emit a JSON report")
	fs.BoolVar(&opts.version, "version", false, "Show version information")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "schnur - block-granular string buffer tool\n\n")
		fmt.Fprintf(stderr, "Usage: schnur [options] <command> [text]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nCommands:\n")
		for _, c := range commands {
			fmt.Fprintf(stderr, "  %-8s %s\n", c.name, c.summary)
		}
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if opts.version {
		fmt.Fprintf(stdout, "schnur %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return exitOK
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fmt.Fprintf(stderr, "Error: no command given\n")
		fs.Usage()
		return exitUsage
	}

	cmd, ok := lookupCommand(rest[0])
	if !ok {
		fmt.Fprintf(stderr, "Error: unknown command %q\n", rest[0])
		fs.Usage()
		return exitUsage
	}

	cfg, err := loadConfig(fs, opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	logger := logging.New(logging.Config{
		Level:  cfg.LogLevel(),
		Output: stderr,
		Prefix: "schnur",
	})

	env := &environment{
		cfg:  cfg,
		log:  logger,
		text: strings.Join(rest[1:], " "),
	}
	if cmd.needsText && len(rest) < 2 {
		fmt.Fprintf(stderr, "Error: %s requires text\n", cmd.name)
		return exitUsage
	}

	rep, err := cmd.run(env)
	if err != nil {
		logger.Debug("%s failed: %v", cmd.name, err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	if err := rep.write(stdout, opts.json); err != nil {
		fmt.Fprintf(stderr, "Error: writing report: %v\n", err)
		return exitError
	}
	return exitOK
}

// loadConfig reads the config file and environment, applies any flags that
// were set explicitly and only then validates.
func loadConfig(fs *flag.FlagSet, opts options) (config.Config, error) {
	cfg, err := config.Read(opts.configPath)
	if err != nil {
		return cfg, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "encoding":
			cfg.Codec.Encoding = opts.encoding
		case "block-size":
			cfg.Buffer.BlockSize = opts.blockSize
		case "log-level":
			cfg.Logging.Level = opts.logLevel
		}
	})

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
