// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyturn Contributors

package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("keyturn", "1.2.3", "json", &buf)

	logger.Info("hello", "key", "value")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "value", entry["key"])
	assert.Equal(t, "keyturn", entry["service"])
	assert.Equal(t, "1.2.3", entry["version"])
}

func TestSetup_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("keyturn", "dev", "text", &buf)

	logger.Info("hello")

	out := buf.String()
	assert.Contains(t, out, "msg=hello")
	assert.Contains(t, out, "service=keyturn")
	assert.Contains(t, out, "version=dev")
}

func TestSetup_DefaultsToJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("keyturn", "dev", "", &buf)

	logger.Info("hello")

	assert.True(t, strings.HasPrefix(strings.TrimSpace(buf.String()), "{"))
}

func TestSetup_WithAttrsKeepsServiceIdentity(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("keyturn", "dev", "json", &buf)

	logger.With("component", "auth").Info("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "auth", entry["component"])
	assert.Equal(t, "keyturn", entry["service"])
}

func TestSetup_WithGroupKeepsServiceIdentity(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("keyturn", "dev", "json", &buf)

	logger.WithGroup("op").Info("hello", "name", "login")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "keyturn", entry["service"])
	group, ok := entry["op"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "login", group["name"])
}
