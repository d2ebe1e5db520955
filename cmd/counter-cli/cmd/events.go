// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/spf13/cobra"
)

func newEventsCmd() *cobra.Command {
	eventsCmd := &cobra.Command{
		Use: "events",
		RunE: func(*cobra.Command, []string) error {
			return ErrMissingSubcommand
		},
	}
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Print counter events as blocks are accepted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handler.WatchEvents(cmd.Context(), watchLimit)
		},
	}
	watchCmd.PersistentFlags().IntVar(
		&watchLimit,
		"limit",
		0,
		"stop after this many events (0 watches forever)",
	)
	eventsCmd.AddCommand(watchCmd)
	return eventsCmd
}
