// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyturn Contributors

package auth

import (
	"errors"
	"strings"

	"github.com/samber/oops"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// Error codes used by this package. Validation, credential, and conflict
// errors carry messages meant to be shown to the end user verbatim.
const (
	// CodeValidation marks malformed caller input.
	CodeValidation = "AUTH_VALIDATION"

	// CodeInvalidCredentials marks an unknown user or a password mismatch.
	CodeInvalidCredentials = "AUTH_INVALID_CREDENTIALS"

	// CodeConflict marks an attempt to register an email twice.
	CodeConflict = "AUTH_CONFLICT"

	// CodeNotReady marks an operation attempted before hydration resolved.
	CodeNotReady = "AUTH_NOT_READY"
)

func errCode(err error) string {
	if oopsErr, ok := oops.AsOops(err); ok {
		return oopsErr.Code()
	}
	return ""
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	return errCode(err) == CodeValidation
}

// IsAuth reports whether err is a credential error.
func IsAuth(err error) bool {
	return errCode(err) == CodeInvalidCredentials
}

// IsConflict reports whether err is a duplicate-registration error.
func IsConflict(err error) bool {
	return errCode(err) == CodeConflict
}

// IsNotReady reports whether err was rejected for running before hydration.
func IsNotReady(err error) bool {
	return errCode(err) == CodeNotReady
}

// IsStorage reports whether err originated in the durable storage layer.
func IsStorage(err error) bool {
	return strings.HasPrefix(errCode(err), "STORAGE_")
}
