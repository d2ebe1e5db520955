// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package cli implements the commands of counter-cli: a local key store,
// counter instructions sent over JSON-RPC, an event watcher, a plan
// simulator and an interactive console.
package cli

import (
	"fmt"

	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/ava-labs/countervm/pebble"
)

type Handler struct {
	log logging.Logger
	db  *pebble.Database
}

// New opens the key store at [dbPath].
func New(log logging.Logger, dbPath string) (*Handler, error) {
	db, _, err := pebble.New(dbPath, pebble.NewDefaultConfig())
	if err != nil {
		return nil, err
	}
	return &Handler{log: log, db: db}, nil
}

func (h *Handler) CloseDatabase() error {
	if h.db == nil {
		return nil
	}
	if err := h.db.Close(); err != nil {
		return fmt.Errorf("unable to close database: %w", err)
	}
	// Allow DB to be closed multiple times
	h.db = nil
	return nil
}
