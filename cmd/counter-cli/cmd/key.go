// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/spf13/cobra"
)

func newKeyCmd() *cobra.Command {
	keyCmd := &cobra.Command{
		Use: "key",
		RunE: func(*cobra.Command, []string) error {
			return ErrMissingSubcommand
		},
	}
	keyCmd.AddCommand(
		&cobra.Command{
			Use:   "generate",
			Short: "Generate a new key and make it the default",
			RunE: func(*cobra.Command, []string) error {
				_, err := handler.GenerateKey()
				return err
			},
		},
		&cobra.Command{
			Use:   "import [path]",
			Short: "Import a JSON keypair file and make it the default",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				_, err := handler.ImportKey(args[0])
				return err
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List stored keys and their balances",
			RunE: func(cmd *cobra.Command, _ []string) error {
				_, err := handler.ListKeys(cmd.Context())
				return err
			},
		},
		&cobra.Command{
			Use:   "set",
			Short: "Choose the default key",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return handler.SetKey(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "address",
			Short: "Print the address of the default key",
			RunE: func(*cobra.Command, []string) error {
				_, err := handler.Address()
				return err
			},
		},
	)
	return keyCmd
}
