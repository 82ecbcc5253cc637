package config

import (
	"errors"
	"fmt"

	"github.com/dshills/schnur/internal/codec"
	"github.com/dshills/schnur/internal/logging"
	"github.com/dshills/schnur/internal/schnur"
)

// MaxBlockSize bounds buffer.block_size.
const MaxBlockSize = 1 << 20

// Config holds all runtime settings.
type Config struct {
	Buffer  BufferConfig  `toml:"buffer"`
	Codec   CodecConfig   `toml:"codec"`
	Logging LoggingConfig `toml:"logging"`
}

// BufferConfig configures buffer storage.
type BufferConfig struct {
	// BlockSize is the allocation granularity in units.
	BlockSize int `toml:"block_size"`
}

// CodecConfig selects the narrow encoding.
type CodecConfig struct {
	// Encoding is a name or alias known to codec.Lookup.
	Encoding string `toml:"encoding"`
}

// LoggingConfig configures diagnostics.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Buffer:  BufferConfig{BlockSize: schnur.DefaultBlockSize},
		Codec:   CodecConfig{Encoding: codec.Default.Name()},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Validate checks every setting and joins all failures.
func (c Config) Validate() error {
	var errs []error

	if c.Buffer.BlockSize <= 0 || c.Buffer.BlockSize > MaxBlockSize {
		errs = append(errs, &ValidationError{
			Path:    "buffer.block_size",
			Message: fmt.Sprintf("must be between 1 and %d", MaxBlockSize),
			Value:   c.Buffer.BlockSize,
		})
	}
	if _, err := codec.Lookup(c.Codec.Encoding); err != nil {
		errs = append(errs, &ValidationError{
			Path:    "codec.encoding",
			Message: fmt.Sprintf("unknown encoding, expected one of %v", codec.Names()),
			Value:   c.Codec.Encoding,
		})
	}
	if _, ok := logging.ParseLevel(c.Logging.Level); !ok {
		errs = append(errs, &ValidationError{
			Path:    "logging.level",
			Message: "must be debug, info, warn or error",
			Value:   c.Logging.Level,
		})
	}

	return errors.Join(errs...)
}

// ResolveCodec resolves the configured encoding.
func (c Config) ResolveCodec() (codec.Codec, error) {
	return codec.Lookup(c.Codec.Encoding)
}

// LogLevel returns the configured level, defaulting to info.
func (c Config) LogLevel() logging.Level {
	level, _ := logging.ParseLevel(c.Logging.Level)
	return level
}

// BufferOptions translates the configuration into buffer options.
func (c Config) BufferOptions(l *logging.Logger) ([]schnur.Option, error) {
	cd, err := c.ResolveCodec()
	if err != nil {
		return nil, err
	}
	return []schnur.Option{
		schnur.WithBlockSize(c.Buffer.BlockSize),
		schnur.WithCodec(cd),
		schnur.WithLogger(l),
	}, nil
}
