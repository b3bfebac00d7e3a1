// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyturn Contributors

// Package config loads keyturn configuration from defaults, an optional
// YAML file, and command-line flags, in that precedence order.
package config

import (
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/keyturn/keyturn/internal/xdg"
)

// Storage backend names accepted in configuration.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config is the full keyturn configuration.
type Config struct {
	Storage StorageConfig `koanf:"storage"`
	Redis   RedisConfig   `koanf:"redis"`
	Log     LogConfig     `koanf:"log"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// StorageConfig selects and parameterizes the storage backend.
type StorageConfig struct {
	// Backend is one of "file", "redis", or "memory".
	Backend string `koanf:"backend"`

	// Dir is the directory used by the file backend. Defaults to the
	// XDG state directory.
	Dir string `koanf:"dir"`
}

// RedisConfig parameterizes the redis backend.
type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
	Prefix   string `koanf:"prefix"`
}

// LogConfig controls log output.
type LogConfig struct {
	// Format is "json" or "text".
	Format string `koanf:"format"`
}

// MetricsConfig controls the observability server started by `keyturn serve`.
type MetricsConfig struct {
	Addr string `koanf:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Storage: StorageConfig{
			Backend: BackendFile,
			Dir:     xdg.StateDir(),
		},
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "keyturn:",
		},
		Log: LogConfig{
			Format: "text",
		},
		Metrics: MetricsConfig{
			Addr: "127.0.0.1:9295",
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigDir(), "config.yaml")
}

// Load builds the configuration. path may be empty, in which case the
// default location is read if it exists. flags may be nil; set flags use
// dotted names matching the koanf keys (e.g. --storage.backend).
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	explicit := path != ""
	if path == "" {
		path = DefaultPath()
	}

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, oops.Code("CONFIG_LOAD_FAILED").
				With("path", path).
				Wrap(err)
		}
	} else if explicit {
		return Config{}, oops.Code("CONFIG_LOAD_FAILED").
			With("path", path).
			Wrap(err)
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return Config{}, oops.Code("CONFIG_LOAD_FAILED").
				With("source", "flags").
				Wrap(err)
		}
	}

	// Unmarshal over the defaults so absent keys keep their values.
	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, oops.Code("CONFIG_PARSE_FAILED").Wrap(err)
	}

	switch cfg.Storage.Backend {
	case BackendFile, BackendRedis, BackendMemory:
	default:
		return Config{}, oops.Code("CONFIG_INVALID").
			With("backend", cfg.Storage.Backend).
			Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	return cfg, nil
}
