// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyturn Contributors

package main

import (
	"github.com/spf13/cobra"
)

// NewWhoamiCmd creates the whoami subcommand.
func NewWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session, if any",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := buildCore(cmd)
			if err != nil {
				return err
			}
			defer c.close() //nolint:errcheck // store close on exit

			if err := c.hydrate(cmd.Context()); err != nil {
				return err
			}

			session, ok := c.manager.Current()
			if !ok {
				cmd.Println("Not logged in")
				return nil
			}

			cmd.Printf("%s <%s> (id %s)\n", session.Name, session.Email, session.ID)
			return nil
		},
	}
}
