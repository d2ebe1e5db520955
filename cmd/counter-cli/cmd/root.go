// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ava-labs/countervm/cli"
	"github.com/ava-labs/countervm/logger"
	"github.com/ava-labs/countervm/utils"
)

const (
	defaultDatabase = ".counter-cli"
	dbDirectory     = "db"
	logDirectory    = "logs"
)

var (
	handler    *cli.Handler
	logFactory *logger.Factory

	// inConsole is set while the console runs its commands on the open
	// [handler].
	inConsole bool

	dbPath     string
	logLevel   string
	watchLimit int
)

// NewRootCmd builds the full command tree. The console builds a fresh tree
// for every line it reads.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:        "counter-cli",
		Short:      "CounterVM CLI",
		SuggestFor: []string{"counter-cli", "countercli"},
	}
	cobra.EnablePrefixMatching = true
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	rootCmd.AddCommand(
		newKeyCmd(),
		newChainCmd(),
		newCounterCmd(),
		newEventsCmd(),
		newSimulateCmd(),
		newConsoleCmd(),
	)
	rootCmd.PersistentFlags().StringVar(
		&dbPath,
		"database",
		defaultDatabase,
		"path to database (will create it missing)",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel,
		"log-level",
		"info",
		"log level",
	)
	rootCmd.PersistentPreRunE = func(*cobra.Command, []string) error {
		if handler != nil {
			return nil
		}
		utils.Outf("{{yellow}}database:{{/}} %s\n", dbPath)
		config := logger.NewDefaultConfig()
		config.Directory = filepath.Join(dbPath, logDirectory)
		config.LogLevel = logLevel
		config.DisableDisplay = true
		logFactory = logger.NewFactory(config)
		log, err := logFactory.Make("cli")
		if err != nil {
			logFactory.Close()
			return err
		}
		handler, err = cli.New(log, filepath.Join(dbPath, dbDirectory))
		return err
	}
	return rootCmd
}

func closeHandler() error {
	if handler == nil {
		return nil
	}
	err := handler.CloseDatabase()
	logFactory.Close()
	handler = nil
	return err
}

func Execute() error {
	return execute(NewRootCmd())
}

// execute runs [root] and then closes the handler, whether or not the
// command failed.
func execute(root *cobra.Command) error {
	err := root.Execute()
	return errors.Join(err, closeHandler())
}
