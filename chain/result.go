// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/runtime"
)

// Result is the outcome of executing a transaction. A failed transaction
// carries no events: its logs stop at the failing instruction.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`

	// ErrorCode is the program error number of a failure, or 0 if the
	// failure was not a [runtime.ProgramError].
	ErrorCode uint32 `json:"errorCode,omitempty"`

	Events []*runtime.Event `json:"events"`
	Logs   []string         `json:"logs"`
}

func (r *Result) Size() int {
	size := consts.BoolLen + codec.StringLen(r.Error) + consts.IntLen
	size += consts.IntLen
	for _, e := range r.Events {
		size += codec.AddressLen + codec.StringLen(e.Name) + codec.BytesLen(e.Data)
	}
	size += consts.IntLen
	for _, l := range r.Logs {
		size += codec.StringLen(l)
	}
	return size
}

func (r *Result) Marshal(p *codec.Packer) {
	p.PackBool(r.Success)
	p.PackString(r.Error)
	p.PackInt(r.ErrorCode)
	p.PackInt(uint32(len(r.Events)))
	for _, e := range r.Events {
		p.PackAddress(e.Program)
		p.PackString(e.Name)
		p.PackBytes(e.Data)
	}
	p.PackInt(uint32(len(r.Logs)))
	for _, l := range r.Logs {
		p.PackString(l)
	}
}

func (r *Result) Bytes() ([]byte, error) {
	p := codec.NewWriter(r.Size(), consts.MaxInt)
	r.Marshal(p)
	return p.Bytes(), p.Err()
}

func UnmarshalResult(p *codec.Packer) (*Result, error) {
	result := &Result{
		Success: p.UnpackBool(),
		Error:   p.UnpackString(false),
	}
	result.ErrorCode = p.UnpackInt(false)
	numEvents := p.UnpackInt(false)
	for i := uint32(0); i < numEvents && p.Err() == nil; i++ {
		e := &runtime.Event{}
		p.UnpackAddress(false, &e.Program)
		e.Name = p.UnpackString(true)
		p.UnpackBytes(-1, false, &e.Data)
		result.Events = append(result.Events, e)
	}
	numLogs := p.UnpackInt(false)
	for i := uint32(0); i < numLogs && p.Err() == nil; i++ {
		result.Logs = append(result.Logs, p.UnpackString(false))
	}
	return result, p.Err()
}

func ParseResult(raw []byte) (*Result, error) {
	p := codec.NewReader(raw, consts.MaxInt)
	result, err := UnmarshalResult(p)
	if err != nil {
		return nil, err
	}
	if !p.Empty() {
		return nil, ErrInvalidObject
	}
	return result, nil
}
