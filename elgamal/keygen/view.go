// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package keygen provides the distributed key generation output consumed by
// the decryption session: a read-only view of the local secret share, the
// per-party public keys, the joint public key and the polynomial in the
// exponent.
package keygen

import (
	"math/big"

	"github.com/verificatum/verificatum-vmn-sub000/bytetree"
	"github.com/verificatum/verificatum-vmn-sub000/crypto/group"
)

// View is one party's read-only window into the generated key material.
// Implementations are immutable after construction.
type View interface {
	// Group returns the key group in which all public values live.
	Group() group.Group
	// Generator returns the basic public key g.
	Generator() group.Element
	// PublicKey returns party l's public key y_l = g^{x_l}, l in [1, k].
	PublicKey(l int) group.Element
	// JointPublicKey returns Y = g^s for the shared secret s.
	JointPublicKey() group.Element
	// SecretShare returns this party's share x_j of the secret.
	SecretShare() *big.Int
	// PolynomialInExponent returns the byte tree recorded in proof
	// transcripts.
	PolynomialInExponent() *bytetree.ByteTree
}

type localView struct {
	grp     group.Group
	gen     group.Element
	pubKeys []group.Element // indexed 1..k, slot 0 unused
	joint   group.Element
	share   *big.Int
	polyBT  *bytetree.ByteTree
}

func (v *localView) Group() group.Group {
	return v.grp
}

func (v *localView) Generator() group.Element {
	return v.gen
}

func (v *localView) PublicKey(l int) group.Element {
	return v.pubKeys[l]
}

func (v *localView) JointPublicKey() group.Element {
	return v.joint
}

func (v *localView) SecretShare() *big.Int {
	return new(big.Int).Set(v.share)
}

func (v *localView) PolynomialInExponent() *bytetree.ByteTree {
	return v.polyBT
}
