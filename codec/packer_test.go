// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/stretchr/testify/require"
)

func TestPackerAddress(t *testing.T) {
	require := require.New(t)
	addr := Address(ids.GenerateTestID())

	wp := NewWriter(AddressLen, AddressLen)
	wp.PackAddress(addr)
	require.NoError(wp.Err())
	require.Len(wp.Bytes(), AddressLen)

	rp := NewReader(wp.Bytes(), AddressLen)
	var unpacked Address
	rp.UnpackAddress(true, &unpacked)
	require.NoError(rp.Err())
	require.True(rp.Empty())
	require.Equal(addr, unpacked)
}

func TestPackerRequiredAddress(t *testing.T) {
	require := require.New(t)
	wp := NewWriter(AddressLen, AddressLen)
	wp.PackAddress(EmptyAddress)

	rp := NewReader(wp.Bytes(), AddressLen)
	var unpacked Address
	rp.UnpackAddress(true, &unpacked)
	require.ErrorIs(rp.Err(), ErrFieldNotPopulated)
}

func TestPackerWriteLimit(t *testing.T) {
	require := require.New(t)
	wp := NewWriter(4, 4)
	wp.PackUint64(10)
	require.ErrorIs(wp.Err(), wrappers.ErrInsufficientLength)
}

func TestPackerUnpackBytes(t *testing.T) {
	require := require.New(t)
	msg := []byte("counter")

	wp := NewWriter(BytesLen(msg), BytesLen(msg))
	wp.PackBytes(msg)
	require.NoError(wp.Err())

	rp := NewReader(wp.Bytes(), BytesLen(msg))
	var unpacked []byte
	rp.UnpackBytes(len(msg), true, &unpacked)
	require.NoError(rp.Err())
	require.Equal(msg, unpacked)

	// Limit smaller than the encoded length
	rp = NewReader(wp.Bytes(), BytesLen(msg))
	rp.UnpackBytes(1, true, &unpacked)
	require.Error(rp.Err())
}

func TestPackerScalars(t *testing.T) {
	require := require.New(t)
	wp := NewWriter(32, 64)
	wp.PackBool(true)
	wp.PackByte(7)
	wp.PackInt64(-5)
	wp.PackUint64(^uint64(0))
	wp.PackString("seed")
	require.NoError(wp.Err())

	rp := NewReader(wp.Bytes(), 64)
	require.True(rp.UnpackBool())
	require.Equal(byte(7), rp.UnpackByte())
	require.Equal(int64(-5), rp.UnpackInt64(true))
	require.Equal(^uint64(0), rp.UnpackUint64(true))
	require.Equal("seed", rp.UnpackString(true))
	require.NoError(rp.Err())
	require.True(rp.Empty())
}
