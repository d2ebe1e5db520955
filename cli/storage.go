// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"errors"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/crypto/ed25519"
)

const (
	defaultPrefix = 0x0
	keyPrefix     = 0x1

	defaultKeyKey   = "key"
	defaultChainKey = "chain"
)

func (h *Handler) StoreDefault(key string, value []byte) error {
	k := make([]byte, 1+len(key))
	k[0] = defaultPrefix
	copy(k[1:], key)
	return h.db.Put(k, value)
}

// GetDefault returns nil if [key] was never stored.
func (h *Handler) GetDefault(key string) ([]byte, error) {
	k := make([]byte, 1+len(key))
	k[0] = defaultPrefix
	copy(k[1:], key)
	v, err := h.db.Get(k)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	return v, err
}

func keyKey(addr codec.Address) []byte {
	k := make([]byte, 1+codec.AddressLen)
	k[0] = keyPrefix
	copy(k[1:], addr[:])
	return k
}

func (h *Handler) StoreKey(priv ed25519.PrivateKey) error {
	k := keyKey(priv.Address())
	has, err := h.db.Has(k)
	if err != nil {
		return err
	}
	if has {
		return ErrDuplicate
	}
	return h.db.Put(k, priv[:])
}

func (h *Handler) GetKey(addr codec.Address) (ed25519.PrivateKey, error) {
	v, err := h.db.Get(keyKey(addr))
	if errors.Is(err, database.ErrNotFound) {
		return ed25519.EmptyPrivateKey, ErrUnknownKey
	}
	if err != nil {
		return ed25519.EmptyPrivateKey, err
	}
	return ed25519.PrivateKey(v), nil
}

// GetKeys returns every stored key ordered by address.
func (h *Handler) GetKeys() ([]ed25519.PrivateKey, error) {
	keys := []ed25519.PrivateKey{}
	err := h.db.IteratePrefix([]byte{keyPrefix}, func(_, value []byte) error {
		if len(value) != ed25519.PrivateKeyLen {
			return ed25519.ErrInvalidPrivateKey
		}
		keys = append(keys, ed25519.PrivateKey(value))
		return nil
	})
	return keys, err
}

func (h *Handler) StoreDefaultKey(addr codec.Address) error {
	return h.StoreDefault(defaultKeyKey, addr[:])
}

func (h *Handler) GetDefaultKey() (ed25519.PrivateKey, error) {
	v, err := h.GetDefault(defaultKeyKey)
	if err != nil {
		return ed25519.EmptyPrivateKey, err
	}
	if len(v) == 0 {
		return ed25519.EmptyPrivateKey, ErrNoKeys
	}
	addr, err := codec.ToAddress(v)
	if err != nil {
		return ed25519.EmptyPrivateKey, err
	}
	return h.GetKey(addr)
}

func (h *Handler) StoreDefaultChain(uri string) error {
	return h.StoreDefault(defaultChainKey, []byte(uri))
}

func (h *Handler) GetDefaultChain() (string, error) {
	v, err := h.GetDefault(defaultChainKey)
	if err != nil {
		return "", err
	}
	if len(v) == 0 {
		return "", ErrNoChains
	}
	return string(v), nil
}
