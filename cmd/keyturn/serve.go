// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyturn Contributors

package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/keyturn/keyturn/internal/auth"
	"github.com/keyturn/keyturn/internal/config"
	"github.com/keyturn/keyturn/internal/observability"
)

// shutdownTimeout bounds graceful shutdown of the observability server.
const shutdownTimeout = 5 * time.Second

// NewServeCmd creates the serve subcommand, which keeps the session core
// resident and exposes metrics and health probes over HTTP. Readiness
// reflects session hydration.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the session core with metrics and health endpoints",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The observability server owns the metrics registry, so it
			// must exist before the manager that records into it.
			var server *observability.Server

			c, err := buildCore(cmd, auth.WithRecorder(recorderFor(&server)))
			if err != nil {
				return err
			}
			defer c.close() //nolint:errcheck // store close on exit

			server = observability.NewServer(c.cfg.Metrics.Addr, c.manager.Ready)
			errCh, err := server.Start()
			if err != nil {
				return err
			}

			if err := c.hydrate(cmd.Context()); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			select {
			case <-ctx.Done():
				slog.Info("shutting down")
			case serveErr := <-errCh:
				if serveErr != nil {
					return serveErr
				}
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return server.Stop(shutdownCtx)
		},
	}

	cmd.Flags().String("metrics.addr", config.Default().Metrics.Addr, "metrics listen address")

	return cmd
}

// recorderFor defers metric recording until the observability server
// exists. Operations recorded before Start are dropped.
func recorderFor(server **observability.Server) auth.OperationRecorder {
	return recorderFunc(func(operation, status string) {
		if *server != nil {
			(*server).Metrics().RecordOperation(operation, status)
		}
	})
}

// recorderFunc adapts a function to auth.OperationRecorder.
type recorderFunc func(operation, status string)

func (f recorderFunc) RecordOperation(operation, status string) {
	f(operation, status)
}
