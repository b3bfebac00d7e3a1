// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyturn Contributors

package main

import (
	"github.com/spf13/cobra"
)

// NewLoginCmd creates the login subcommand.
func NewLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and start a session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := buildCore(cmd)
			if err != nil {
				return err
			}
			defer c.close() //nolint:errcheck // store close on exit

			if err := c.hydrate(cmd.Context()); err != nil {
				return err
			}

			if password == "" {
				password, err = promptPassword(cmd.OutOrStdout())
				if err != nil {
					return err
				}
			}

			session, err := c.manager.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			cmd.Printf("Logged in as %s <%s>\n", session.Name, session.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")

	return cmd
}
