// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"context"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/crypto/ed25519"
)

var _ chain.Auth = (*ED25519)(nil)

const ED25519Size = ed25519.PublicKeyLen + ed25519.SignatureLen

type ED25519 struct {
	Signer    ed25519.PublicKey `json:"signer"`
	Signature ed25519.Signature `json:"signature"`
}

func (*ED25519) GetTypeID() uint8 {
	return ED25519ID
}

// Actor is the signer's public key: every ed25519 key is also an address.
func (d *ED25519) Actor() codec.Address {
	return d.Signer.Address()
}

func (d *ED25519) Verify(_ context.Context, msg []byte) error {
	if !ed25519.Verify(msg, d.Signer, d.Signature) {
		return ErrInvalidSignature
	}
	return nil
}

func (*ED25519) Size() int {
	return ED25519Size
}

func (d *ED25519) Marshal(p *codec.Packer) {
	p.PackFixedBytes(d.Signer[:])
	p.PackFixedBytes(d.Signature[:])
}

func UnmarshalED25519(p *codec.Packer) (chain.Auth, error) {
	var d ED25519
	signer := d.Signer[:] // avoid allocating additional memory
	p.UnpackFixedBytes(ed25519.PublicKeyLen, &signer)
	signature := d.Signature[:] // avoid allocating additional memory
	p.UnpackFixedBytes(ed25519.SignatureLen, &signature)
	return &d, p.Err()
}

var _ chain.AuthFactory = (*ED25519Factory)(nil)

func NewED25519Factory(priv ed25519.PrivateKey) *ED25519Factory {
	return &ED25519Factory{priv}
}

type ED25519Factory struct {
	priv ed25519.PrivateKey
}

func (d *ED25519Factory) Sign(msg []byte) (chain.Auth, error) {
	sig := ed25519.Sign(msg, d.priv)
	return &ED25519{Signer: d.priv.PublicKey(), Signature: sig}, nil
}

func (d *ED25519Factory) Address() codec.Address {
	return d.priv.Address()
}

var _ chain.AuthBatchVerifier = (*ED25519Batch)(nil)

// ED25519Batch verifies ed25519 signatures together. When the batch as a
// whole fails, each signature is rechecked to find the invalid ones.
type ED25519Batch struct {
	msgs  [][]byte
	auths []*ED25519
}

func NewED25519Batch(items int) chain.AuthBatchVerifier {
	return &ED25519Batch{
		msgs:  make([][]byte, 0, items),
		auths: make([]*ED25519, 0, items),
	}
}

func (b *ED25519Batch) Add(msg []byte, rauth chain.Auth) {
	auth, ok := rauth.(*ED25519)
	if !ok {
		b.msgs = append(b.msgs, nil)
		b.auths = append(b.auths, nil)
		return
	}
	b.msgs = append(b.msgs, msg)
	b.auths = append(b.auths, auth)
}

func (b *ED25519Batch) Verify() []error {
	errs := make([]error, len(b.auths))
	batch := ed25519.NewBatch(len(b.auths))
	valid := true
	for i, auth := range b.auths {
		if auth == nil {
			errs[i] = ErrWrongAuthType
			valid = false
			continue
		}
		batch.Add(b.msgs[i], auth.Signer, auth.Signature)
	}
	if valid && len(b.auths) >= ed25519.MinBatchSize && batch.Verify() {
		return errs
	}
	for i, auth := range b.auths {
		if auth == nil {
			continue
		}
		errs[i] = auth.Verify(context.Background(), b.msgs[i])
	}
	return errs
}
