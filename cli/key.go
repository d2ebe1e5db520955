// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/ava-labs/countervm/cli/prompt"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/crypto/ed25519"
	"github.com/ava-labs/countervm/rpc"
	"github.com/ava-labs/countervm/utils"
)

// GenerateKey creates a new key, stores it and makes it the default.
func (h *Handler) GenerateKey() (codec.Address, error) {
	priv, err := ed25519.GeneratePrivateKey()
	if err != nil {
		return codec.EmptyAddress, err
	}
	return h.storeAndDefault(priv)
}

// ImportKey loads a JSON keypair file, stores it and makes it the default.
func (h *Handler) ImportKey(path string) (codec.Address, error) {
	priv, err := ed25519.LoadKeypair(path)
	if err != nil {
		return codec.EmptyAddress, err
	}
	return h.storeAndDefault(priv)
}

func (h *Handler) storeAndDefault(priv ed25519.PrivateKey) (codec.Address, error) {
	if err := h.StoreKey(priv); err != nil {
		return codec.EmptyAddress, err
	}
	addr := priv.Address()
	if err := h.StoreDefaultKey(addr); err != nil {
		return codec.EmptyAddress, err
	}
	h.log.Debug("stored key", zap.Stringer("address", addr))
	utils.Outf("{{green}}stored key:{{/}} %s\n", addr)
	return addr, nil
}

// ListKeys prints every stored key. Balances are looked up when a default
// chain is set.
func (h *Handler) ListKeys(ctx context.Context) ([]codec.Address, error) {
	keys, err := h.GetKeys()
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		utils.Outf("{{red}}no stored keys{{/}}\n")
		return nil, nil
	}
	var cli *rpc.JSONRPCClient
	uri, err := h.GetDefaultChain()
	switch {
	case err == nil:
		cli = rpc.NewJSONRPCClient(uri)
	case !errors.Is(err, ErrNoChains):
		return nil, err
	}
	var defaultAddr codec.Address
	if priv, err := h.GetDefaultKey(); err == nil {
		defaultAddr = priv.Address()
	}

	utils.Outf("{{cyan}}stored keys:{{/}} %d\n", len(keys))
	addrs := make([]codec.Address, len(keys))
	for i, key := range keys {
		addrs[i] = key.Address()
		marker := ""
		if addrs[i] == defaultAddr {
			marker = " {{yellow}}(default){{/}}"
		}
		if cli == nil {
			utils.Outf("%d) {{cyan}}address:{{/}} %s"+marker+"\n", i, addrs[i])
			continue
		}
		balance, err := cli.Balance(ctx, addrs[i])
		if err != nil {
			return nil, err
		}
		utils.Outf(
			"%d) {{cyan}}address:{{/}} %s {{cyan}}balance:{{/}} %s"+marker+"\n",
			i,
			addrs[i],
			utils.FormatBalance(balance),
		)
	}
	return addrs, nil
}

// SetKey prompts for one of the stored keys and makes it the default.
func (h *Handler) SetKey(ctx context.Context) error {
	addrs, err := h.ListKeys(ctx)
	if err != nil {
		return err
	}
	if len(addrs) == 0 {
		return ErrNoKeys
	}
	keyIndex, err := prompt.Choice("set default key", len(addrs))
	if err != nil {
		return err
	}
	return h.StoreDefaultKey(addrs[keyIndex])
}

// Address prints and returns the address of the default key.
func (h *Handler) Address() (codec.Address, error) {
	priv, err := h.GetDefaultKey()
	if err != nil {
		return codec.EmptyAddress, err
	}
	addr := priv.Address()
	utils.Outf("{{yellow}}address:{{/}} %s\n", addr)
	return addr, nil
}

// SetChain stores [uri] as the default node after checking it answers.
func (h *Handler) SetChain(ctx context.Context, uri string) error {
	cli := rpc.NewJSONRPCClient(uri)
	network, err := cli.Network(ctx)
	if err != nil {
		return err
	}
	if err := h.StoreDefaultChain(uri); err != nil {
		return err
	}
	utils.Outf("{{yellow}}chainID:{{/}} %s {{yellow}}uri:{{/}} %s\n", network.ChainID, uri)
	return nil
}
