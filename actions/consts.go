// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

const (
	// system program actions start from 0xf0
	TransferID uint8 = 0xf0
)
