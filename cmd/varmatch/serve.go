package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"

	"varmatch/internal/batch"
	"varmatch/internal/httpapi"
)

const shutdownTimeout = 10 * time.Second

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the reconcile API over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Aliases: []string{"a"},
				Usage:   "Listen address (overrides config server.addr)",
			},
		},
		Action: func(c *cli.Context) error {
			e, err := setup(c)
			if err != nil {
				return err
			}
			defer e.log.Sync()

			addr := e.cfg.Server.Addr
			if c.IsSet("addr") {
				addr = c.String("addr")
			}

			if e.cfg.Log.Mode == "prod" || e.cfg.Log.Mode == "production" {
				gin.SetMode(gin.ReleaseMode)
			}

			router := httpapi.NewRouter(httpapi.RouterConfig{
				ReconcileHandler: httpapi.NewReconcileHandler(
					e.matcher,
					batch.NewRunner(e.matcher, e.cfg.Batch.Workers, e.log),
					e.limits(),
					e.cfg.Batch.MaxRequests,
					e.log,
				),
				ConceptsHandler: httpapi.NewConceptsHandler(e.vocab),
				HealthHandler:   httpapi.NewHealthHandler(),
				Logger:          e.log,
			})

			srv := &http.Server{
				Addr:              addr,
				Handler:           router,
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				e.log.Info("listening", "addr", addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("server failed: %w", err)
			case <-ctx.Done():
			}

			e.log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown failed: %w", err)
			}
			return nil
		},
	}
}
