// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyturn Contributors

package auth

import (
	"context"
	"encoding/json"

	"github.com/samber/oops"

	"github.com/keyturn/keyturn/internal/storage"
)

// UsersKey is the storage key holding the JSON-encoded Account collection.
const UsersKey = "auth:users"

// Registry is the durable store of Accounts. It enforces nothing on its
// own besides encoding; uniqueness checks happen in SessionManager before
// Insert (single-writer assumption).
type Registry struct {
	store storage.Store
}

// NewRegistry creates a Registry over the given storage service.
func NewRegistry(store storage.Store) (*Registry, error) {
	if store == nil {
		return nil, oops.Errorf("storage service is required")
	}
	return &Registry{store: store}, nil
}

// ListAll reads the full Account collection. An absent or malformed
// collection decodes to an empty one: corruption is treated as "no data"
// rather than surfaced, so the registry can always start fresh. Storage
// read failures do propagate.
func (r *Registry) ListAll(ctx context.Context) ([]Account, error) {
	raw, ok, err := r.store.Get(ctx, UsersKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var accounts []Account
	if err := json.Unmarshal([]byte(raw), &accounts); err != nil {
		return nil, nil
	}
	return accounts, nil
}

// FindByNormalizedEmail scans the collection for an account whose
// normalized email equals the normalized query. A query that is not
// normalizable matches nothing. Returns ErrNotFound when absent.
func (r *Registry) FindByNormalizedEmail(ctx context.Context, email string) (Account, error) {
	query, ok := NormalizeEmail(email)
	if !ok {
		return Account{}, ErrNotFound
	}

	accounts, err := r.ListAll(ctx)
	if err != nil {
		return Account{}, err
	}
	for _, a := range accounts {
		stored, ok := NormalizeEmail(a.Email)
		if ok && stored == query {
			return a, nil
		}
	}
	return Account{}, ErrNotFound
}

// Insert prepends account to the collection (newest first) and persists
// the whole collection. The caller must have verified email uniqueness
// already; Insert does not re-check.
func (r *Registry) Insert(ctx context.Context, account Account) error {
	accounts, err := r.ListAll(ctx)
	if err != nil {
		return err
	}

	next := make([]Account, 0, len(accounts)+1)
	next = append(next, account)
	next = append(next, accounts...)

	data, err := json.Marshal(next)
	if err != nil {
		return oops.Code("STORAGE_SET_FAILED").
			With("operation", "encode accounts").
			Wrap(err)
	}
	return r.store.Set(ctx, UsersKey, string(data))
}
