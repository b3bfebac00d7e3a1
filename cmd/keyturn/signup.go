// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyturn Contributors

package main

import (
	"github.com/spf13/cobra"
)

// NewSignupCmd creates the signup subcommand.
func NewSignupCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new account and start a session",
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

			session, err := c.manager.Signup(cmd.Context(), name, email, password)
			if err != nil {
				return err
			}

			cmd.Printf("Signed up as %s <%s>\n", session.Name, session.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")

	return cmd
}
