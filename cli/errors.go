// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import "errors"

var (
	ErrDuplicate     = errors.New("duplicate")
	ErrNoChains      = errors.New("no available chains")
	ErrNoKeys        = errors.New("no available keys")
	ErrUnknownKey    = errors.New("unknown key")
	ErrTxFailed      = errors.New("tx failed on-chain")
	ErrInvalidPlan   = errors.New("invalid plan")
	ErrInvalidStep   = errors.New("invalid step")
	ErrAssertion     = errors.New("assertion failed")
	ErrInvalidFormat = errors.New("plan is neither JSON nor YAML")
	ErrInvalidURI    = errors.New("invalid uri")
)
