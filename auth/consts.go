// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import "github.com/ava-labs/countervm/chain"

// Note: Registry will error during initialization if a duplicate ID is
// assigned. We explicitly assign IDs to avoid accidental remapping.
const (
	ED25519ID uint8 = 0

	ED25519Key = "ed25519"
)

// Engines returns the batch verifiers of every auth type that has one.
func Engines() chain.AuthEngines {
	return chain.AuthEngines{
		ED25519ID: NewED25519Batch,
	}
}
