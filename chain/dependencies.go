// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/runtime"
	"github.com/ava-labs/countervm/state"
)

type (
	ActionRegistry = *codec.TypeParser[Action]
	AuthRegistry   = *codec.TypeParser[Auth]
)

// Action is a single instruction addressed to a program.
type Action interface {
	codec.Typed

	// ProgramID identifies the program executing this instruction.
	ProgramID() codec.Address

	// Name is the instruction name written to the transaction logs.
	Name() string

	// StateKeys is a full enumeration of all database keys that could be
	// touched during execution by [actor], with the permission required on
	// each. Undeclared keys cannot be read or written.
	//
	// All keys specified must be suffixed with the number of chunks that
	// could ever be read from that key (formatted as a big-endian uint16).
	StateKeys(actor codec.Address) state.Keys

	// Execute runs the instruction. Any error reverts every state change
	// and event made by the transaction.
	Execute(ctx context.Context, ic *runtime.InvokeContext) error

	// Size is the number of bytes it takes to represent this [Action]. This
	// is used to preallocate memory during encoding.
	Size() int

	// Marshal encodes an [Action] as bytes.
	Marshal(p *codec.Packer)
}

// Auth proves who authorized a transaction.
type Auth interface {
	codec.Typed

	// Actor is the account the transaction acts on behalf of. It is the
	// signer seen by every instruction and pays for any account creation.
	Actor() codec.Address

	// Verify checks the signature over [msg].
	Verify(ctx context.Context, msg []byte) error

	// Size is the number of bytes it takes to represent this [Auth].
	Size() int

	// Marshal encodes an [Auth] as bytes.
	Marshal(p *codec.Packer)
}

// AuthFactory signs transactions.
type AuthFactory interface {
	Sign(msg []byte) (Auth, error)
	Address() codec.Address
}

// AuthBatchVerifier checks many signatures of one auth type at once.
type AuthBatchVerifier interface {
	// Add queues [auth] over [msg].
	Add(msg []byte, auth Auth)
	// Verify returns one entry per queued auth, in order; nil means the
	// signature is valid.
	Verify() []error
}

// AuthEngines maps an auth type ID onto a constructor for its batch
// verifier. Auth types without an engine are verified one by one.
type AuthEngines map[uint8]func(items int) AuthBatchVerifier
