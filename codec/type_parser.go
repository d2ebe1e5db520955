// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "fmt"

// Typed is implemented by every object registered in a [TypeParser].
type Typed interface {
	GetTypeID() uint8
}

// TypeParser maps a type ID onto the function that decodes it.
type TypeParser[T Typed] struct {
	indexToDecoder map[uint8]decoder[T]
}

type decoder[T any] struct {
	name string
	f    func(*Packer) (T, error)
}

func NewTypeParser[T Typed]() *TypeParser[T] {
	return &TypeParser[T]{
		indexToDecoder: map[uint8]decoder[T]{},
	}
}

// Register adds [o] to the parser under [o.GetTypeID]. Registering two types
// with the same ID returns ErrDuplicateItem.
func (p *TypeParser[T]) Register(o T, f func(*Packer) (T, error)) error {
	index := o.GetTypeID()
	if _, ok := p.indexToDecoder[index]; ok {
		return ErrDuplicateItem
	}
	p.indexToDecoder[index] = decoder[T]{name: fmt.Sprintf("%T", o), f: f}
	return nil
}

func (p *TypeParser[T]) LookupIndex(index uint8) (func(*Packer) (T, error), bool) {
	d, ok := p.indexToDecoder[index]
	return d.f, ok
}

// Name returns the registered Go type name of [index].
func (p *TypeParser[T]) Name(index uint8) (string, bool) {
	d, ok := p.indexToDecoder[index]
	return d.name, ok
}

// Unmarshal reads a type ID followed by the matching object.
func (p *TypeParser[T]) Unmarshal(packer *Packer) (T, error) {
	var empty T
	typeID := packer.UnpackByte()
	if err := packer.Err(); err != nil {
		return empty, err
	}
	f, ok := p.LookupIndex(typeID)
	if !ok {
		return empty, fmt.Errorf("%w: %d", ErrUnknownType, typeID)
	}
	return f(packer)
}
