// Package config defines process configuration for the podium tools.
//
// Configuration layers, lowest precedence first: defaults, an optional
// YAML file named by PODIUM_CONFIG, then PODIUM_-prefixed environment
// variables.
package config

import (
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config contains process configuration for the report tool.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// SeasonFile optionally points at a YAML season definition. When
	// empty the built-in season is used.
	SeasonFile string `koanf:"season_file"`

	// SnapshotFile points at the YAML snapshot to build the report
	// from. A positional CLI argument overrides it.
	SnapshotFile string `koanf:"snapshot_file"`

	// Strategy selects tie handling: ordinal or shared.
	Strategy string `koanf:"strategy"`

	// FallbackToRaw ranks on raw scores when room normalization is
	// undefined, instead of failing the build.
	FallbackToRaw bool `koanf:"fallback_to_raw"`

	// Output selects the report format: table or json.
	Output string `koanf:"output"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		LogLevel: "info",
		Strategy: "ordinal",
		Output:   "table",
	}
}

// Load builds a Config by layering defaults, optional file, and env
// vars. Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if PODIUM_CONFIG is set
//  3. env (prefix PODIUM_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("PODIUM_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: PODIUM_LOG_LEVEL, PODIUM_STRATEGY, ...
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("PODIUM_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "podium_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	switch cfg.Strategy {
	case "ordinal", "shared":
	default:
		return nil, errors.New("strategy must be ordinal or shared")
	}
	switch cfg.Output {
	case "table", "json":
	default:
		return nil, errors.New("output must be table or json")
	}
	return &cfg, nil
}
