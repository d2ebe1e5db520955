// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/runtime"
	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/state/statetest"
)

func TestTransferAction(t *testing.T) {
	var (
		from = codec.Address{1}
		to   = codec.Address{2}
	)
	tests := []struct {
		name        string
		value       uint64
		expectedErr error
	}{
		{
			name:  "transfer",
			value: 10,
		},
		{
			name:        "not enough balance",
			value:       101,
			expectedErr: runtime.ErrInsufficientFunds,
		},
		{
			name:        "zero value",
			expectedErr: runtime.ErrInvalidTransfer,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			ctx := context.Background()
			mu := statetest.NewInMemoryStore()
			require.NoError(runtime.AddBalance(ctx, mu, from, 100))

			action := &Transfer{To: to, Value: tt.value}
			keys := action.StateKeys(from)
			require.True(keys[string(runtime.AccountKey(from))].Has(state.Write))
			require.Equal(state.All, keys[string(runtime.AccountKey(to))])

			ic := runtime.NewInvokeContext(from, action.ProgramID(), mu, 0)
			err := action.Execute(ctx, ic)
			require.ErrorIs(err, tt.expectedErr)
			if err != nil {
				return
			}
			bal, err := runtime.GetBalance(ctx, mu, to)
			require.NoError(err)
			require.Equal(tt.value, bal)
		})
	}
}

func TestTransferMarshal(t *testing.T) {
	require := require.New(t)
	action := &Transfer{To: codec.Address{3}, Value: 5}
	p := codec.NewWriter(action.Size(), action.Size())
	action.Marshal(p)
	require.NoError(p.Err())

	parsed, err := UnmarshalTransfer(codec.NewReader(p.Bytes(), action.Size()))
	require.NoError(err)
	require.Equal(action, parsed)

	empty := &Transfer{To: codec.Address{3}}
	p = codec.NewWriter(empty.Size(), empty.Size())
	empty.Marshal(p)
	_, err = UnmarshalTransfer(codec.NewReader(p.Bytes(), empty.Size()))
	require.ErrorIs(err, codec.ErrFieldNotPopulated)
}
