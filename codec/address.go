// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"bytes"

	"github.com/btcsuite/btcd/btcutil/base58"
)

const AddressLen = 32

// Address is the 32 byte identifier of an account. Signer addresses are
// ed25519 public keys, program-derived addresses are off-curve hashes.
type Address [AddressLen]byte

var EmptyAddress = Address{}

// ToAddress copies [b] into an [Address]. [b] must be exactly
// [AddressLen] bytes.
func ToAddress(b []byte) (Address, error) {
	var a Address
	if len(b) != AddressLen {
		return EmptyAddress, ErrInvalidAddressLength
	}
	copy(a[:], b)
	return a, nil
}

// ParseAddress decodes the base58 representation of an address.
func ParseAddress(s string) (Address, error) {
	b := base58.Decode(s)
	if len(b) == 0 && len(s) > 0 {
		return EmptyAddress, ErrInvalidAddressEncoding
	}
	return ToAddress(b)
}

// MustParseAddress is [ParseAddress] for constants known to be valid.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// String implements fmt.Stringer.
func (a Address) String() string {
	return base58.Encode(a[:])
}

func (a Address) Equal(o Address) bool {
	return bytes.Equal(a[:], o[:])
}

// MarshalText returns the base58 representation of a.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText parses a base58-encoded address.
func (a *Address) UnmarshalText(input []byte) error {
	parsed, err := ParseAddress(string(input))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
