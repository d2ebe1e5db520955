// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ava-labs/countervm/cli"
)

func newCounterCmd() *cobra.Command {
	counterCmd := &cobra.Command{
		Use: "counter",
		RunE: func(*cobra.Command, []string) error {
			return ErrMissingSubcommand
		},
	}
	for _, instruction := range []string{
		cli.InitializeInstruction,
		cli.IncrementInstruction,
		cli.DecrementInstruction,
	} {
		instruction := instruction
		counterCmd.AddCommand(&cobra.Command{
			Use:   instruction,
			Short: "Send a " + instruction + " instruction signed by the default key",
			RunE: func(cmd *cobra.Command, _ []string) error {
				_, err := handler.SendInstruction(cmd.Context(), instruction)
				return err
			},
		})
	}
	counterCmd.AddCommand(
		&cobra.Command{
			Use:   "count",
			Short: "Print the current count",
			RunE: func(cmd *cobra.Command, _ []string) error {
				_, err := handler.Count(cmd.Context())
				return err
			},
		},
		&cobra.Command{
			Use:   "address",
			Short: "Print the counter address and bump",
			RunE: func(cmd *cobra.Command, _ []string) error {
				_, err := handler.CounterAddress(cmd.Context())
				return err
			},
		},
	)
	return counterCmd
}
