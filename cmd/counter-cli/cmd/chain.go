// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/spf13/cobra"
)

func newChainCmd() *cobra.Command {
	chainCmd := &cobra.Command{
		Use: "chain",
		RunE: func(*cobra.Command, []string) error {
			return ErrMissingSubcommand
		},
	}
	chainCmd.AddCommand(&cobra.Command{
		Use:   "set [uri]",
		Short: "Set the default counterd endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handler.SetChain(cmd.Context(), args[0])
		},
	})
	var (
		prometheusURI  string
		prometheusFile string
		openBrowser    bool
	)
	prometheusCmd := &cobra.Command{
		Use:   "prometheus",
		Short: "Write a prometheus config for the default endpoint and print a dashboard link",
		RunE: func(*cobra.Command, []string) error {
			_, err := handler.GeneratePrometheus(prometheusURI, prometheusFile, openBrowser)
			return err
		},
	}
	prometheusCmd.Flags().StringVar(&prometheusURI, "prometheus-uri", "http://localhost:9090", "prometheus server the dashboard link points at")
	prometheusCmd.Flags().StringVar(&prometheusFile, "file", "prometheus.yaml", "where to write the prometheus config")
	prometheusCmd.Flags().BoolVar(&openBrowser, "open", false, "open the dashboard in a browser")
	chainCmd.AddCommand(prometheusCmd)
	return chainCmd
}
