// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/utils"
)

type Transaction struct {
	Base *Base `json:"base"`

	Actions []Action `json:"actions"`
	Auth    Auth     `json:"auth"`

	digest    []byte
	bytes     []byte
	size      int
	id        ids.ID
	stateKeys state.Keys
}

func NewTx(base *Base, actions []Action) *Transaction {
	return &Transaction{
		Base:    base,
		Actions: actions,
	}
}

// Digest is the message signed by [Auth]: the base followed by every
// action.
func (t *Transaction) Digest() ([]byte, error) {
	if len(t.digest) > 0 {
		return t.digest, nil
	}
	p := codec.NewWriter(t.unsignedSize(), consts.NetworkSizeLimit)
	t.marshalUnsigned(p)
	return p.Bytes(), p.Err()
}

func (t *Transaction) unsignedSize() int {
	size := t.Base.Size() + consts.IntLen
	for _, action := range t.Actions {
		size += consts.ByteLen + action.Size()
	}
	return size
}

func (t *Transaction) marshalUnsigned(p *codec.Packer) {
	t.Base.Marshal(p)
	p.PackInt(uint32(len(t.Actions)))
	for _, action := range t.Actions {
		p.PackByte(action.GetTypeID())
		action.Marshal(p)
	}
}

// Sign authorizes the transaction with [factory] and returns it reloaded
// from its encoding so that ID, size and bytes are populated.
func (t *Transaction) Sign(
	factory AuthFactory,
	actionRegistry ActionRegistry,
	authRegistry AuthRegistry,
) (*Transaction, error) {
	msg, err := t.Digest()
	if err != nil {
		return nil, err
	}
	auth, err := factory.Sign(msg)
	if err != nil {
		return nil, err
	}
	t.Auth = auth

	// Reparse so the returned tx carries its ID, size and bytes.
	p := codec.NewWriter(len(msg)+consts.ByteLen+auth.Size(), consts.NetworkSizeLimit)
	if err := t.Marshal(p); err != nil {
		return nil, err
	}
	return ParseTx(p.Bytes(), actionRegistry, authRegistry)
}

func (t *Transaction) Bytes() []byte { return t.bytes }

func (t *Transaction) Size() int { return t.size }

func (t *Transaction) ID() ids.ID { return t.id }

func (t *Transaction) Expiry() int64 { return t.Base.Timestamp }

// StateKeys is the union of the keys every action declares for the signer.
func (t *Transaction) StateKeys() state.Keys {
	if t.stateKeys != nil {
		return t.stateKeys
	}
	stateKeys := make(state.Keys)
	actor := t.Auth.Actor()
	for _, action := range t.Actions {
		stateKeys.Union(action.StateKeys(actor))
	}
	t.stateKeys = stateKeys
	return stateKeys
}

func (t *Transaction) Marshal(p *codec.Packer) error {
	if len(t.bytes) > 0 {
		p.PackFixedBytes(t.bytes)
		return p.Err()
	}
	t.marshalUnsigned(p)
	p.PackByte(t.Auth.GetTypeID())
	t.Auth.Marshal(p)
	return p.Err()
}

func UnmarshalTx(
	p *codec.Packer,
	actionRegistry ActionRegistry,
	authRegistry AuthRegistry,
) (*Transaction, error) {
	start := p.Offset()
	base, err := UnmarshalBase(p)
	if err != nil {
		return nil, fmt.Errorf("%w: could not unmarshal base", err)
	}
	actions, err := unmarshalActions(p, actionRegistry)
	if err != nil {
		return nil, fmt.Errorf("%w: could not unmarshal actions", err)
	}
	digest := p.Offset()
	auth, err := authRegistry.Unmarshal(p)
	if err != nil {
		return nil, fmt.Errorf("%w: could not unmarshal auth", err)
	}
	if err := p.Err(); err != nil {
		return nil, err
	}

	raw := p.Bytes()
	tx := &Transaction{
		Base:    base,
		Actions: actions,
		Auth:    auth,
		digest:  raw[start:digest],
		bytes:   raw[start:p.Offset()],
	}
	tx.size = len(tx.bytes)
	tx.id = utils.ToID(tx.bytes)
	return tx, nil
}

// ParseTx decodes a single transaction that must span all of [raw].
func ParseTx(raw []byte, actionRegistry ActionRegistry, authRegistry AuthRegistry) (*Transaction, error) {
	p := codec.NewReader(raw, consts.NetworkSizeLimit)
	tx, err := UnmarshalTx(p, actionRegistry, authRegistry)
	if err != nil {
		return nil, err
	}
	if !p.Empty() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidObject, codec.ErrExtraBytes)
	}
	return tx, nil
}

func unmarshalActions(p *codec.Packer, actionRegistry ActionRegistry) ([]Action, error) {
	actionCount := p.UnpackInt(true)
	if err := p.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoActions, err)
	}
	if actionCount > MaxActionsPerTx {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyActions, actionCount, MaxActionsPerTx)
	}
	actions := make([]Action, 0, actionCount)
	for i := uint32(0); i < actionCount; i++ {
		action, err := actionRegistry.Unmarshal(p)
		if err != nil {
			return nil, fmt.Errorf("%w: could not unmarshal action", err)
		}
		actions = append(actions, action)
	}
	return actions, nil
}
