// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package group defines the prime-order group capability used by the
// protocol packages, together with concrete multiplicative (Schnorr),
// elliptic curve, and product group implementations. A Group value is
// selected once per protocol instance and is immutable thereafter.
package group

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"

	"github.com/verificatum/verificatum-vmn-sub000/bytetree"
)

// ErrMalformedElement is reported when decoded bytes do not describe a
// member of the expected group, or have the wrong size.
var ErrMalformedElement = errors.New("malformed group element")

// Element is an opaque member of some Group. Elements are immutable and only
// meaningful to the group that produced them.
type Element interface {
	String() string
}

// Group is the capability set over a prime-order group of order q. All
// arithmetic is infallible; only decoding can fail.
type Group interface {
	// ID identifies the group in hash derivations and transcripts.
	ID() string
	// Order returns the prime order q of the group.
	Order() *big.Int
	Generator() Element
	// One returns the identity element.
	One() Element
	// Width is the arity of the group: 1 for an atomic group, w for a
	// product group.
	Width() int
	// Project returns the i:th component group of a product group. For an
	// atomic group, Project(0) returns the group itself.
	Project(i int) Group

	Mul(x, y Element) Element
	Inv(x Element) Element
	// Exp raises x to a plain integer exponent. Negative exponents raise to
	// the absolute value and invert.
	Exp(x Element, e *big.Int) Element
	Equal(x, y Element) bool

	// ElementByteLen is the number of bytes of the fixed-width encoding of
	// one element (the total leaf length for product groups).
	ElementByteLen() int
	ToByteTree(x Element) *bytetree.ByteTree
	// FromByteTree decodes one element, reporting ErrMalformedElement for
	// bytes that do not describe a group member.
	FromByteTree(bt *bytetree.ByteTree) (Element, error)
}

// Product returns the width-w product of the given group. Elements of the
// product are tuples with componentwise arithmetic.
func Product(g Group, width int) Group {
	if width < 1 {
		panic(fmt.Errorf("group: product width %d < 1", width))
	}
	if width == 1 {
		return g
	}
	return &ProductGroup{base: g, width: width}
}
