// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyturn Contributors

package storage

import (
	"context"
	"errors"

	backend "github.com/redis/go-redis/v9"
	"github.com/samber/oops"
)

// RedisStore is a Store backed by a Redis server. Values persist as plain
// string keys; Redis durability settings decide how well they survive a
// server restart.
type RedisStore struct {
	client *backend.Client
	prefix string
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithPrefix sets the prefix prepended to every key.
func WithPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// NewRedisStore creates a RedisStore connecting to the given address.
func NewRedisStore(addr, password string, db int, opts ...RedisOption) *RedisStore {
	client := backend.NewClient(&backend.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewRedisStoreFromClient(client, opts...)
}

// NewRedisStoreFromClient creates a RedisStore from an existing client.
func NewRedisStoreFromClient(client *backend.Client, opts ...RedisOption) *RedisStore {
	store := &RedisStore{
		client: client,
		prefix: "keyturn:",
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *RedisStore) key(key string) string {
	return s.prefix + key
}

// Get retrieves the value stored under key.
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, backend.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, oops.Code("STORAGE_GET_FAILED").
			With("key", key).
			Wrap(err)
	}
	return val, true, nil
}

// Set stores value under key with no expiration.
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return oops.Code("STORAGE_SET_FAILED").
			With("key", key).
			Wrap(err)
	}
	return nil
}

// Remove deletes the value under key. DEL of a missing key is a no-op.
func (s *RedisStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return oops.Code("STORAGE_REMOVE_FAILED").
			With("key", key).
			Wrap(err)
	}
	return nil
}

// Close closes the underlying Redis client.
func (s *RedisStore) Close() error {
	//nolint:wrapcheck // Close passthrough
	return s.client.Close()
}
