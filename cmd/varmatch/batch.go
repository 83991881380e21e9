package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"varmatch/internal/batch"
	"varmatch/internal/request"
)

func batchCommand() *cli.Command {
	return &cli.Command{
		Name:  "batch",
		Usage: "Reconcile a JSON-lines file of requests, writing one result per line",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "JSON-lines request file (- for stdin)",
				Value:   "-",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "Concurrent workers (0 = config batch.workers)",
			},
		},
		Action: func(c *cli.Context) error {
			e, err := setup(c)
			if err != nil {
				return err
			}
			defer e.log.Sync()

			in := io.Reader(os.Stdin)
			if path := c.String("input"); path != "-" {
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("failed to open batch input %s: %w", path, err)
				}
				defer f.Close()
				in = f
			}

			reqs, err := readRequests(in, e.limits(), e.cfg.Batch.MaxRequests)
			if err != nil {
				return err
			}

			workers := e.cfg.Batch.Workers
			if n := c.Int("workers"); n > 0 {
				workers = n
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runBatch(ctx, batch.NewRunner(e.matcher, workers, e.log), reqs, c.App.Writer)
		},
	}
}

// readRequests reads one JSON request per non-blank line.
func readRequests(r io.Reader, limits request.Limits, maxRequests int) ([]request.Request, error) {
	var reqs []request.Request

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	line := 0
	for scanner.Scan() {
		line++
		data := scanner.Bytes()
		if len(bytes.TrimSpace(data)) == 0 {
			continue
		}

		if maxRequests > 0 && len(reqs) >= maxRequests {
			return nil, &request.LimitError{Field: "requests", Limit: maxRequests, Got: len(reqs) + 1}
		}

		req, _, err := request.Decode(data, limits)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		reqs = append(reqs, req)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch input: %w", err)
	}

	return reqs, nil
}

func runBatch(ctx context.Context, runner *batch.Runner, reqs []request.Request, w io.Writer) error {
	results, err := runner.Run(ctx, reqs)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	for _, res := range results {
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	}
	return nil
}
