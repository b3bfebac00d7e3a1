// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyturn Contributors

package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/keyturn/keyturn/internal/auth"
	"github.com/keyturn/keyturn/internal/config"
	"github.com/keyturn/keyturn/internal/logging"
	"github.com/keyturn/keyturn/internal/storage"
)

// core bundles the wired-up session core for a command invocation.
type core struct {
	cfg     config.Config
	manager *auth.SessionManager
	close   func() error
}

// buildCore loads configuration, configures logging, and assembles the
// storage backend, registry, and session manager. The manager is returned
// un-hydrated; callers run Hydrate when they are ready to accept it.
func buildCore(cmd *cobra.Command, opts ...auth.ManagerOption) (*core, error) {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logging.SetDefault("keyturn", version, cfg.Log.Format)

	store, closeStore, err := buildStore(cfg)
	if err != nil {
		return nil, err
	}

	registry, err := auth.NewRegistry(store)
	if err != nil {
		return nil, err
	}

	opts = append([]auth.ManagerOption{auth.WithLogger(slog.Default())}, opts...)
	manager, err := auth.NewSessionManager(registry, store, opts...)
	if err != nil {
		return nil, err
	}

	return &core{cfg: cfg, manager: manager, close: closeStore}, nil
}

// buildStore creates the configured storage backend. The returned closer
// is never nil.
func buildStore(cfg config.Config) (storage.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Storage.Backend {
	case config.BackendRedis:
		store := storage.NewRedisStore(
			cfg.Redis.Addr,
			cfg.Redis.Password,
			cfg.Redis.DB,
			storage.WithPrefix(cfg.Redis.Prefix),
		)
		return store, store.Close, nil
	case config.BackendMemory:
		return storage.NewMemoryStore(), noop, nil
	default:
		store, err := storage.NewFileStore(cfg.Storage.Dir)
		if err != nil {
			return nil, nil, err
		}
		return store, noop, nil
	}
}

// hydrate restores the persisted session before the command runs.
func (c *core) hydrate(ctx context.Context) error {
	return c.manager.Hydrate(ctx)
}
