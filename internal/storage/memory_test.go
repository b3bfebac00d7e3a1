// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyturn Contributors

package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyturn/keyturn/internal/storage"
)

// runStoreContract exercises the Store behaviors every backend must share.
func runStoreContract(t *testing.T, store storage.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("absent key is not an error", func(t *testing.T) {
		value, ok, err := store.Get(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, value)
	})

	t.Run("set then get round-trips", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "auth:users", `[{"id":"1"}]`))

		value, ok, err := store.Get(ctx, "auth:users")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `[{"id":"1"}]`, value)
	})

	t.Run("set replaces previous value", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "key", "old"))
		require.NoError(t, store.Set(ctx, "key", "new"))

		value, ok, err := store.Get(ctx, "key")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "new", value)
	})

	t.Run("remove deletes the value", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "gone", "value"))
		require.NoError(t, store.Remove(ctx, "gone"))

		_, ok, err := store.Get(ctx, "gone")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("remove of an absent key succeeds", func(t *testing.T) {
		require.NoError(t, store.Remove(ctx, "never-existed"))
	})
}

func TestMemoryStore_Contract(t *testing.T) {
	runStoreContract(t, storage.NewMemoryStore())
}
