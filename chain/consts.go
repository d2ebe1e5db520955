// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

const (
	// MaxActionsPerTx bounds the instructions a transaction may carry.
	MaxActionsPerTx = 16

	// DefaultValidityWindow is how far ahead of block time a transaction
	// may expire, in milliseconds.
	DefaultValidityWindow int64 = 60_000
)
