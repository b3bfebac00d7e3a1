// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyturn Contributors

package auth

import "strings"

// Account is a registered credential record. The password is stored as
// typed; see the package docs for the plaintext-comparison caveat.
type Account struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is the password-free projection of an Account, representing the
// currently authenticated user. At most one Session exists per process.
type Session struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// sessionOf derives the Session projection of an account.
func sessionOf(a Account) Session {
	return Session{ID: a.ID, Name: a.Name, Email: a.Email}
}

// NormalizeEmail trims surrounding whitespace and lowercases the address.
// An address without an '@' is not normalizable: ok is false and such an
// address never matches anything in a lookup, including itself.
func NormalizeEmail(email string) (normalized string, ok bool) {
	normalized = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(normalized, "@") {
		return "", false
	}
	return normalized, true
}
