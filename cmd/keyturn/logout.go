// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyturn Contributors

package main

import (
	"github.com/spf13/cobra"
)

// NewLogoutCmd creates the logout subcommand.
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := buildCore(cmd)
			if err != nil {
				return err
			}
			defer c.close() //nolint:errcheck // store close on exit

			if err := c.hydrate(cmd.Context()); err != nil {
				return err
			}

			if err := c.manager.Logout(cmd.Context()); err != nil {
				return err
			}

			cmd.Println("Logged out")
			return nil
		},
	}
}
