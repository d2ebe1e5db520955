// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "errors"

var (
	// Parsing
	ErrInvalidObject  = errors.New("invalid object")
	ErrNoActions      = errors.New("transaction has no actions")
	ErrTooManyActions = errors.New("too many actions")
	ErrNoTxs          = errors.New("no transactions")

	// Verification
	ErrMisalignedTime    = errors.New("misaligned time")
	ErrTimestampTooLate  = errors.New("timestamp too late")
	ErrTimestampTooEarly = errors.New("timestamp too early")
	ErrInvalidChainID    = errors.New("invalid chain ID")
	ErrInvalidSignature  = errors.New("invalid signature")
	ErrDuplicateTx       = errors.New("duplicate transaction")
)
