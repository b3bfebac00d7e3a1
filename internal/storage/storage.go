// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyturn Contributors

// Package storage provides the durable key-value service backing the
// credential registry and session state.
//
// A Store holds opaque string values under string keys. An absent key is
// not an error: Get reports it as ok=false with a nil error. All failures
// carry STORAGE_* error codes and are never retried here.
package storage

import "context"

// Store is an asynchronous string-keyed value store.
//
// Implementations must treat a missing key as (value="", ok=false, err=nil)
// on Get, and must succeed on Remove of a key that does not exist.
type Store interface {
	// Get retrieves the value stored under key.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes the value under key, if any.
	Remove(ctx context.Context, key string) error
}
