// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
)

const BaseSize = consts.Uint64Len + consts.IDLen

type Base struct {
	// Timestamp is the expiry of the transaction (inclusive). Once this time
	// passes and the transaction is not included in a block, it is safe to
	// regenerate it.
	Timestamp int64 `json:"timestamp"`

	// ChainID protects against replay attacks on different ledgers.
	ChainID ids.ID `json:"chainId"`
}

// Verify checks [b] against a block produced at [timestamp] on [chainID].
func (b *Base) Verify(chainID ids.ID, validityWindow int64, timestamp int64) error {
	switch {
	case b.Timestamp%consts.MillisecondsPerSecond != 0:
		return fmt.Errorf("%w: timestamp=%d", ErrMisalignedTime, b.Timestamp)
	case b.Timestamp < timestamp: // tx: 100 block: 110
		return ErrTimestampTooLate
	case b.Timestamp > timestamp+validityWindow: // tx: 100 block 10
		return ErrTimestampTooEarly
	case b.ChainID != chainID:
		return ErrInvalidChainID
	default:
		return nil
	}
}

func (*Base) Size() int {
	return BaseSize
}

func (b *Base) Marshal(p *codec.Packer) {
	p.PackInt64(b.Timestamp)
	p.PackID(b.ChainID)
}

func UnmarshalBase(p *codec.Packer) (*Base, error) {
	var base Base
	base.Timestamp = p.UnpackInt64(true)
	if base.Timestamp%consts.MillisecondsPerSecond != 0 {
		return nil, fmt.Errorf("%w: timestamp=%d", ErrMisalignedTime, base.Timestamp)
	}
	p.UnpackID(true, &base.ChainID)
	return &base, p.Err()
}
