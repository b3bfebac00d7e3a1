// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyturn Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/keyturn/keyturn/internal/config"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the keyturn CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keyturn",
		Short: "keyturn - local account registry and session manager",
		Long: `keyturn keeps a local registry of accounts and a single current
session that survives restarts. Accounts and session state live in a
pluggable key-value store (file, redis, or in-memory).`,
		SilenceUsage: true,
	}

	defaults := config.Default()
	pf := cmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path")
	pf.String("storage.backend", defaults.Storage.Backend, `storage backend ("file", "redis", or "memory")`)
	pf.String("storage.dir", defaults.Storage.Dir, "data directory for the file backend")
	pf.String("redis.addr", defaults.Redis.Addr, "redis server address")
	pf.String("redis.password", "", "redis password")
	pf.Int("redis.db", 0, "redis database number")
	pf.String("redis.prefix", defaults.Redis.Prefix, "redis key prefix")
	pf.String("log.format", defaults.Log.Format, `log format ("json" or "text")`)

	cmd.AddCommand(NewSignupCmd())
	cmd.AddCommand(NewLoginCmd())
	cmd.AddCommand(NewLogoutCmd())
	cmd.AddCommand(NewWhoamiCmd())
	cmd.AddCommand(NewServeCmd())

	return cmd
}
