// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// "counterd" runs a single-node counter ledger behind JSON-RPC.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ava-labs/countervm/config"
	"github.com/ava-labs/countervm/logger"
	"github.com/ava-labs/countervm/node"
	"github.com/ava-labs/countervm/version"
)

var (
	configFile string
	dataDir    string
	httpPort   uint16
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "counterd",
		Short:   "CounterVM node",
		Version: version.Version.String(),
		RunE:    run,
	}
	cmd.SilenceUsage = true
	cmd.Flags().StringVar(&configFile, "config", "", "path to a JSON config file")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "overrides the configured data directory")
	cmd.Flags().Uint16Var(&httpPort, "http-port", 0, "overrides the configured HTTP port")
	return cmd
}

func run(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("data-dir") {
		c.DataDir = dataDir
		c.LogConfig.Directory = ""
		if c, err = reparse(c); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("http-port") {
		c.HTTPPort = httpPort
	}

	logFactory := logger.NewFactory(c.LogConfig)
	defer logFactory.Close()
	log, err := logFactory.Make("counterd")
	if err != nil {
		return err
	}
	log.Info("starting counterd",
		zap.Stringer("version", version.Version),
		zap.String("address", c.Address()),
		zap.Any("config", c),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	n, err := node.New(ctx, log, c)
	if err != nil {
		log.Error("failed to start", zap.Error(err))
		return err
	}
	return n.Run(ctx)
}

// reparse fills directories derived from the data directory.
func reparse(c config.Config) (config.Config, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return config.Config{}, err
	}
	return config.Parse(b)
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "counterd exited with error: %+v\n", err)
		os.Exit(1)
	}
}
