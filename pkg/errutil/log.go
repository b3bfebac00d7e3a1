// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyturn Contributors

// Package errutil provides logging and test helpers for oops errors.
package errutil

import (
	"log/slog"

	"github.com/samber/oops"
)

// Code returns the oops error code of err, or "" if err carries none.
func Code(err error) string {
	if oopsErr, ok := oops.AsOops(err); ok {
		return oopsErr.Code()
	}
	return ""
}

// LogError logs err with its code and context when it is an oops error,
// and as a plain error otherwise.
func LogError(logger *slog.Logger, msg string, err error) {
	if oopsErr, ok := oops.AsOops(err); ok {
		attrs := []any{
			"error", oopsErr.Error(),
		}
		if code := oopsErr.Code(); code != "" {
			attrs = append(attrs, "code", code)
		}
		if ctx := oopsErr.Context(); len(ctx) > 0 {
			attrs = append(attrs, "context", ctx)
		}
		logger.Error(msg, attrs...)
	} else {
		logger.Error(msg, "error", err)
	}
}
