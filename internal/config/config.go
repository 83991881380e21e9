// Package config loads the varmatch YAML configuration.
//
// Every field has a default, so an absent file or an empty document yields
// a working configuration. Values present in the file override the defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"varmatch/internal/diagnostic"
	"varmatch/internal/match"
)

// Config is the root configuration document.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
	Match      MatchConfig      `yaml:"match"`
	Vocabulary VocabularyConfig `yaml:"vocabulary"`
	Limits     LimitsConfig     `yaml:"limits"`
	Batch      BatchConfig      `yaml:"batch"`
}

// ServerConfig configures the HTTP boundary.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Mode string `yaml:"mode"` // dev | prod
}

// MatchConfig carries the matcher tuning knobs.
type MatchConfig struct {
	Thresholds match.Thresholds `yaml:"thresholds"`
	Dedup      string           `yaml:"dedup"` // placeholder | global
}

// VocabularyConfig selects the concept table. An empty path means the built-in table.
type VocabularyConfig struct {
	Path string `yaml:"path"`
}

// LimitsConfig caps request sizes before they reach the matcher,
// whose cost grows with placeholders × preferences.
type LimitsConfig struct {
	MaxPlaceholders int `yaml:"max_placeholders"`
	MaxPreferences  int `yaml:"max_preferences"`
	MaxNameLength   int `yaml:"max_name_length"`
}

// BatchConfig configures concurrent batch reconciliation.
type BatchConfig struct {
	Workers     int `yaml:"workers"`
	MaxRequests int `yaml:"max_requests"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		Log:    LogConfig{Mode: "dev"},
		Match: MatchConfig{
			Thresholds: match.DefaultThresholds(),
			Dedup:      match.DedupPerPlaceholder.String(),
		},
		Limits: LimitsConfig{
			MaxPlaceholders: 256,
			MaxPreferences:  512,
			MaxNameLength:   128,
		},
		Batch: BatchConfig{
			Workers:     runtime.GOMAXPROCS(0),
			MaxRequests: 1000,
		},
	}
}

// Load reads the configuration file at path. A missing file is not an
// error and yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Parse parses YAML data on top of the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	err := yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if diags := Validate(cfg); diags.HasErrors() {
		return nil, diags.Error()
	}

	return cfg, nil
}

// Validate checks a configuration for values the service cannot run with.
func Validate(cfg *Config) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if cfg == nil {
		res.AddError("config_is_nil", "config is nil", "")
		return res
	}

	if err := cfg.Match.Thresholds.Validate(); err != nil {
		res.AddError("invalid_threshold", err.Error(), "match.thresholds")
	}

	if _, ok := match.ParseDedupScope(cfg.Match.Dedup); !ok {
		res.AddError("invalid_dedup",
			fmt.Sprintf("unknown dedup scope %q (must be placeholder or global)", cfg.Match.Dedup), "match.dedup")
	}

	switch cfg.Log.Mode {
	case "dev", "development", "prod", "production":
	default:
		res.AddError("invalid_log_mode",
			fmt.Sprintf("unknown log mode %q (must be dev or prod)", cfg.Log.Mode), "log.mode")
	}

	for _, f := range []struct {
		field string
		value int
	}{
		{"limits.max_placeholders", cfg.Limits.MaxPlaceholders},
		{"limits.max_preferences", cfg.Limits.MaxPreferences},
		{"limits.max_name_length", cfg.Limits.MaxNameLength},
		{"batch.workers", cfg.Batch.Workers},
		{"batch.max_requests", cfg.Batch.MaxRequests},
	} {
		if f.value <= 0 {
			res.AddError("invalid_limit", fmt.Sprintf("%s must be positive, got %d", f.field, f.value), f.field)
		}
	}

	return res
}

// MatcherConfig converts the match section into a match.Config.
// The config must have passed Validate.
func (c *Config) MatcherConfig() match.Config {
	scope, _ := match.ParseDedupScope(c.Match.Dedup)

	return match.Config{
		Thresholds: c.Match.Thresholds,
		Dedup:      scope,
	}
}
