// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ava-labs/countervm/cli"
)

func newConsoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Run commands interactively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if inConsole {
				return ErrNestedConsole
			}
			inConsole = true
			defer func() {
				inConsole = false
			}()
			return cli.Console(cmd.Context(), cmd.InOrStdin(), func(ctx context.Context, args []string) error {
				root := NewRootCmd()
				root.SetArgs(args)
				root.SetIn(cmd.InOrStdin())
				root.SetOut(cmd.OutOrStdout())
				return root.ExecuteContext(ctx)
			})
		},
	}
}
