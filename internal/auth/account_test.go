// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyturn Contributors

package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/keyturn/keyturn/internal/auth"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		want       string
		normalized bool
	}{
		{
			name:       "lowercases and trims",
			email:      " A@B.com ",
			want:       "a@b.com",
			normalized: true,
		},
		{
			name:       "already normalized",
			email:      "a@b.com",
			want:       "a@b.com",
			normalized: true,
		},
		{
			name:       "missing at sign",
			email:      "no-at-sign",
			normalized: false,
		},
		{
			name:       "empty",
			email:      "",
			normalized: false,
		},
		{
			name:       "whitespace only",
			email:      "   ",
			normalized: false,
		},
		{
			name:       "inner whitespace kept",
			email:      " user name@x.com",
			want:       "user name@x.com",
			normalized: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := auth.NormalizeEmail(tt.email)
			assert.Equal(t, tt.normalized, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeEmail_CaseInsensitiveEquality(t *testing.T) {
	a, ok := auth.NormalizeEmail(" A@B.com ")
	assert.True(t, ok)
	b, ok := auth.NormalizeEmail("a@b.com")
	assert.True(t, ok)
	assert.Equal(t, a, b)
}
