// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/crypto/ed25519"
)

func newTestHandler(t *testing.T) *Handler {
	h, err := New(logging.NoLog{}, filepath.Join(t.TempDir(), "db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, h.CloseDatabase())
	})
	return h
}

func TestKeyStore(t *testing.T) {
	require := require.New(t)
	h := newTestHandler(t)

	_, err := h.GetDefaultKey()
	require.ErrorIs(err, ErrNoKeys)

	addr, err := h.GenerateKey()
	require.NoError(err)
	priv, err := h.GetDefaultKey()
	require.NoError(err)
	require.Equal(addr, priv.Address())
	require.ErrorIs(h.StoreKey(priv), ErrDuplicate)

	other, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	require.NoError(h.StoreKey(other))
	keys, err := h.GetKeys()
	require.NoError(err)
	require.ElementsMatch([]ed25519.PrivateKey{priv, other}, keys)

	require.NoError(h.StoreDefaultKey(other.Address()))
	current, err := h.Address()
	require.NoError(err)
	require.Equal(other.Address(), current)

	listed, err := h.ListKeys(context.Background())
	require.NoError(err)
	require.Len(listed, 2)

	_, err = h.GetKey(codec.EmptyAddress)
	require.ErrorIs(err, ErrUnknownKey)
}

func TestImportKey(t *testing.T) {
	require := require.New(t)
	h := newTestHandler(t)

	priv, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	b, err := ed25519.MarshalKeypair(priv)
	require.NoError(err)
	path := filepath.Join(t.TempDir(), "id.json")
	require.NoError(os.WriteFile(path, b, 0o600))

	addr, err := h.ImportKey(path)
	require.NoError(err)
	require.Equal(priv.Address(), addr)
	_, err = h.ImportKey(path)
	require.ErrorIs(err, ErrDuplicate)
}

func TestDefaultChain(t *testing.T) {
	require := require.New(t)
	h := newTestHandler(t)

	_, err := h.GetDefaultChain()
	require.ErrorIs(err, ErrNoChains)
	require.NoError(h.StoreDefaultChain("http://localhost:9650"))
	uri, err := h.GetDefaultChain()
	require.NoError(err)
	require.Equal("http://localhost:9650", uri)

	require.NoError(h.CloseDatabase())
	require.NoError(h.CloseDatabase())
}
