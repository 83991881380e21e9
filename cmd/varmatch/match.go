package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/urfave/cli/v2"

	"varmatch/internal/match"
	"varmatch/internal/request"
)

func matchCommand() *cli.Command {
	return &cli.Command{
		Name:      "match",
		Aliases:   []string{"m"},
		Usage:     "Suggest preferences for the given placeholders",
		ArgsUsage: "PLACEHOLDER...",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "pref",
				Aliases: []string{"p"},
				Usage:   "Saved preference as key=value (repeatable)",
			},
			&cli.StringFlag{
				Name:  "prefs",
				Usage: "JSON file holding an object of saved preferences",
			},
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "Output as JSON",
			},
			&cli.BoolFlag{
				Name:  "best",
				Usage: "Keep only the best suggestion for each placeholder",
			},
			&cli.IntFlag{
				Name:  "top",
				Usage: "Keep at most N suggestions overall (0 keeps all)",
			},
			&cli.BoolFlag{
				Name:  "explain",
				Usage: "Dump every candidate with the step and concept that produced it",
			},
		},
		Action: func(c *cli.Context) error {
			e, err := setup(c)
			if err != nil {
				return err
			}
			defer e.log.Sync()

			prefs, err := loadPreferences(c.String("prefs"), c.StringSlice("pref"))
			if err != nil {
				return err
			}

			req, diags, err := request.Validate(request.Request{
				ExtractedVariables: c.Args().Slice(),
				UserPreferences:    prefs,
			}, e.limits())
			if err != nil {
				return err
			}
			for _, w := range diags.Warnings {
				e.log.Warn("request warning", "warning", w.String())
			}

			matches := e.matcher.Reconcile(req.ExtractedVariables, req.UserPreferences)
			if c.Bool("best") {
				matches = bestPerPlaceholder(matches, req.ExtractedVariables)
			}
			if n := c.Int("top"); n > 0 {
				matches = matches.Top(n)
			}

			w := c.App.Writer
			if c.Bool("explain") {
				explain(w, e.matcher, req)
			}
			if c.Bool("json") {
				return writeJSON(w, matches)
			}
			return writeTable(w, matches)
		},
	}
}

// loadPreferences merges preferences from an optional JSON file with
// key=value pairs; pairs win over the file.
func loadPreferences(path string, pairs []string) (map[string]string, error) {
	prefs := map[string]string{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read preferences file %s: %w", path, err)
		}
		if err := json.Unmarshal(data, &prefs); err != nil {
			return nil, fmt.Errorf("preferences file %s must hold an object of string values: %w", path, err)
		}
	}

	parsed, err := parsePrefPairs(pairs)
	if err != nil {
		return nil, err
	}
	for k, v := range parsed {
		prefs[k] = v
	}

	return prefs, nil
}

func parsePrefPairs(pairs []string) (map[string]string, error) {
	prefs := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid preference %q (want key=value)", pair)
		}
		prefs[key] = value
	}
	return prefs, nil
}

// bestPerPlaceholder keeps the highest-confidence suggestion of each
// placeholder. matches must already be sorted by confidence.
func bestPerPlaceholder(matches match.CandidateList, placeholders []string) match.CandidateList {
	out := match.CandidateList{}
	seen := map[string]bool{}
	for _, placeholder := range placeholders {
		if seen[placeholder] {
			continue
		}
		seen[placeholder] = true

		if best := matches.ForPlaceholder(placeholder).Best(); best != nil {
			out = append(out, *best)
		}
	}
	return out.SortByConfidence()
}

func writeJSON(w io.Writer, payload any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func writeTable(w io.Writer, matches match.CandidateList) error {
	if len(matches) == 0 {
		_, err := fmt.Fprintln(w, "no suggestions")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PLACEHOLDER\tPREFERENCE\tCONFIDENCE")
	for _, m := range matches {
		fmt.Fprintf(tw, "%s\t%s\t%.3f\n", m.Original, m.Suggested, m.Confidence)
	}
	return tw.Flush()
}

// explain dumps the raw per-placeholder candidates before dedup and filtering.
func explain(w io.Writer, m *match.Matcher, req request.Request) {
	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
	for _, placeholder := range req.ExtractedVariables {
		fmt.Fprintf(w, "# %s\n", placeholder)
		cfg.Fdump(w, m.SemanticMatches(placeholder, req.UserPreferences))
	}
}
