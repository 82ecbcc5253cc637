package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix of all environment overrides.
const EnvPrefix = "SCHNUR_"

// Load reads the configuration like Read and validates the result.
func Load(path string) (Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Read layers the TOML file at path (if path is non-empty and the file
// exists) and environment overrides on top of the defaults. The result is
// not validated.
func Read(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// Missing file keeps the defaults.
		case err != nil:
			return cfg, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := decodeTOML(path, data, &cfg); err != nil {
				return cfg, err
			}
		}
	}

	if err := ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadFromReader decodes TOML from r on top of the defaults. Environment
// overrides are not applied.
func LoadFromReader(r io.Reader) (Config, error) {
	cfg := Default()
	data, err := io.ReadAll(r)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := decodeTOML("<reader>", data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func decodeTOML(source string, data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return perr
	}
	return nil
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides cfg with SCHNUR_* variables found through lookup.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	if v, ok := lookup(EnvPrefix + "BLOCK_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &ValidationError{Path: "buffer.block_size", Message: "not an integer", Value: v}
		}
		cfg.Buffer.BlockSize = n
	}
	if v, ok := lookup(EnvPrefix + "ENCODING"); ok {
		cfg.Codec.Encoding = v
	}
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		cfg.Logging.Level = v
	}
	return nil
}
