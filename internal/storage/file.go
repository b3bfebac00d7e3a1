// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyturn Contributors

package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/oops"
)

// FileStore is a Store that keeps one file per key inside a directory.
// Writes go through a temp file and rename so a crash mid-write never
// leaves a torn value behind.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir, creating the directory
// if needed. Files are created with 0600 permissions since values may
// contain credentials.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, oops.Code("STORAGE_INVALID_DIR").Errorf("storage directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, oops.Code("STORAGE_INVALID_DIR").
			With("dir", dir).
			Wrap(err)
	}
	return &FileStore{dir: dir}, nil
}

// path maps a key to a file name. Keys may contain characters that are not
// filesystem-safe (the auth keys use ':'), so those are flattened.
func (s *FileStore) path(key string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '/', '\\':
			return '_'
		}
		return r
	}, key)
	return filepath.Join(s.dir, name)
}

// Get retrieves the value stored under key.
func (s *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, oops.Code("STORAGE_GET_FAILED").
			With("key", key).
			Wrap(err)
	}
	return string(data), true, nil
}

// Set stores value under key.
func (s *FileStore) Set(_ context.Context, key, value string) error {
	target := s.path(key)
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return oops.Code("STORAGE_SET_FAILED").
			With("key", key).
			Wrap(err)
	}
	tmpName := tmp.Name()

	_, writeErr := tmp.WriteString(value)
	closeErr := tmp.Close()
	if writeErr == nil {
		writeErr = closeErr
	}
	if writeErr == nil {
		writeErr = os.Chmod(tmpName, 0o600)
	}
	if writeErr == nil {
		writeErr = os.Rename(tmpName, target)
	}
	if writeErr != nil {
		_ = os.Remove(tmpName)
		return oops.Code("STORAGE_SET_FAILED").
			With("key", key).
			Wrap(writeErr)
	}
	return nil
}

// Remove deletes the value under key. Removing an absent key succeeds.
func (s *FileStore) Remove(_ context.Context, key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return oops.Code("STORAGE_REMOVE_FAILED").
			With("key", key).
			Wrap(err)
	}
	return nil
}
