// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyturn Contributors

// Package auth provides the credential registry and session core.
//
// # Domain Types
//
// Account is a registered credential record, including its password.
// Session is the password-free projection of an Account and represents
// the currently authenticated user. Accounts are created by Signup and
// never mutated or deleted afterwards.
//
// # Components
//
//   - Registry - durable Account list with email-uniqueness lookups
//   - SessionManager - login, signup, logout, and startup hydration
//
// SessionManager is the only type presentation code should talk to. It
// must be hydrated once at startup before any other operation; earlier
// calls fail with the AUTH_NOT_READY code.
package auth
