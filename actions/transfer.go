// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/runtime"
	"github.com/ava-labs/countervm/state"
)

var _ chain.Action = (*Transfer)(nil)

// Transfer moves lamports from the signer to [To] through the system
// program.
type Transfer struct {
	// To is the recipient of the [Value].
	To codec.Address `json:"to"`

	// Value is the number of lamports transferred to [To].
	Value uint64 `json:"value"`
}

func (*Transfer) GetTypeID() uint8 {
	return TransferID
}

func (*Transfer) ProgramID() codec.Address {
	return runtime.SystemProgramID
}

func (*Transfer) Name() string {
	return "Transfer"
}

func (t *Transfer) StateKeys(actor codec.Address) state.Keys {
	return state.Keys{
		string(runtime.AccountKey(actor)): state.Read | state.Write,
		string(runtime.AccountKey(t.To)):  state.All,
	}
}

func (t *Transfer) Execute(ctx context.Context, ic *runtime.InvokeContext) error {
	return runtime.Transfer(ctx, ic.State, ic.Signer, t.To, t.Value)
}

func (*Transfer) Size() int {
	return codec.AddressLen + consts.Uint64Len
}

func (t *Transfer) Marshal(p *codec.Packer) {
	p.PackAddress(t.To)
	p.PackUint64(t.Value)
}

func UnmarshalTransfer(p *codec.Packer) (chain.Action, error) {
	var transfer Transfer
	p.UnpackAddress(true, &transfer.To)
	transfer.Value = p.UnpackUint64(true)
	return &transfer, p.Err()
}
