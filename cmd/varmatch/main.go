// Package main provides the CLI entrypoint for varmatch.
//
// varmatch proposes which saved user preferences should fill the
// placeholders of a prompt template:
//   - match:    reconcile placeholders given on the command line
//   - batch:    reconcile a JSON-lines file of requests concurrently
//   - serve:    expose the matcher over HTTP
//   - concepts: print the active concept vocabulary
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"varmatch/internal/config"
	"varmatch/internal/diagnostic"
	"varmatch/internal/logger"
	"varmatch/internal/match"
	"varmatch/internal/request"
	"varmatch/internal/vocab"
)

var Version = "dev"

// env bundles everything a command needs, built from config and global flags.
type env struct {
	cfg     *config.Config
	log     *logger.Logger
	vocab   *vocab.Vocabulary
	matcher *match.Matcher
}

func (e *env) limits() request.Limits {
	return request.Limits{
		MaxPlaceholders: e.cfg.Limits.MaxPlaceholders,
		MaxPreferences:  e.cfg.Limits.MaxPreferences,
		MaxNameLength:   e.cfg.Limits.MaxNameLength,
	}
}

// loadConfigWithOverrides loads configuration and applies CLI flag overrides
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	configPath := c.String("config")

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}

	if c.IsSet("vocab") {
		cfg.Vocabulary.Path = c.String("vocab")
	}
	if c.IsSet("log-mode") {
		cfg.Log.Mode = c.String("log-mode")
	}
	if c.IsSet("dedup") {
		cfg.Match.Dedup = c.String("dedup")
	}

	if diags := config.Validate(cfg); diags.HasErrors() {
		return nil, diags.Error()
	}

	return cfg, nil
}

func setup(c *cli.Context) (*env, error) {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	v := vocab.Default()
	if cfg.Vocabulary.Path != "" {
		v, err = vocab.LoadFile(cfg.Vocabulary.Path)
		if err != nil {
			return nil, err
		}
	}
	diags := startupDiagnostics(cfg, v)
	for _, w := range diags.Warnings {
		log.Warn("vocabulary warning", "warning", w.String())
	}
	for _, i := range diags.Infos {
		log.Info("vocabulary", "info", i.String())
	}

	log.Debug("configuration loaded",
		"concepts", v.Len(),
		"dedup", cfg.Match.Dedup,
		"vocabulary", cfg.Vocabulary.Path,
	)

	return &env{
		cfg:     cfg,
		log:     log,
		vocab:   v,
		matcher: match.NewMatcher(v, cfg.MatcherConfig()),
	}, nil
}

// startupDiagnostics collects the non-fatal findings about the active
// configuration and vocabulary.
func startupDiagnostics(cfg *config.Config, v *vocab.Vocabulary) *diagnostic.Diagnostics {
	diags := &diagnostic.Diagnostics{}
	if cfg.Vocabulary.Path == "" {
		diags.AddInfo("builtin_vocabulary",
			fmt.Sprintf("using the built-in vocabulary of %d concepts", v.Len()), "vocabulary.path")
	}
	diags.Merge(*vocab.Validate(v))

	return diags
}

func main() {
	app := &cli.App{
		Name:                   "varmatch",
		Usage:                  "Suggest saved preferences for prompt template placeholders",
		Version:                Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path",
				Value:   "varmatch.yaml",
				EnvVars: []string{"VARMATCH_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "vocab",
				Usage: "Concept vocabulary YAML file (overrides config; default is the built-in table)",
			},
			&cli.StringFlag{
				Name:  "log-mode",
				Usage: "Log mode: dev or prod (overrides config)",
			},
			&cli.StringFlag{
				Name:  "dedup",
				Usage: "Dedup scope: placeholder or global (overrides config)",
			},
		},
		Commands: []*cli.Command{
			matchCommand(),
			batchCommand(),
			serveCommand(),
			conceptsCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
