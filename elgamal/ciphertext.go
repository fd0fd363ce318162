// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package elgamal

import (
	"github.com/pkg/errors"

	"github.com/verificatum/verificatum-vmn-sub000/bytetree"
	"github.com/verificatum/verificatum-vmn-sub000/crypto/group"
)

// Ciphertexts is an array of El-Gamal ciphertexts over the key group: the
// left components U hold the randomization g^r, the right components V hold
// pk^r * m.
type Ciphertexts struct {
	U, V *group.ElementArray
}

func NewCiphertexts(u, v *group.ElementArray) (*Ciphertexts, error) {
	if u == nil || v == nil || u.Size() != v.Size() {
		return nil, errors.New("ciphertexts: component arrays must have equal length")
	}
	return &Ciphertexts{U: u, V: v}, nil
}

func (ct *Ciphertexts) Size() int {
	return ct.U.Size()
}

func (ct *Ciphertexts) ToByteTree() *bytetree.ByteTree {
	return bytetree.NewNode(ct.U.ToByteTree(), ct.V.ToByteTree())
}

// CiphertextsFromByteTree decodes a pair of equal-length element arrays over
// the key group.
func CiphertextsFromByteTree(keyGroup group.Group, size int, bt *bytetree.ByteTree) (*Ciphertexts, error) {
	if bt == nil || bt.IsLeaf() || bt.Len() != 2 {
		return nil, errors.Wrap(group.ErrMalformedElement, "ciphertexts: bad node")
	}
	uTree, err := bt.Child(0)
	if err != nil {
		return nil, err
	}
	vTree, err := bt.Child(1)
	if err != nil {
		return nil, err
	}
	u, err := group.ArrayFromByteTree(keyGroup, size, uTree)
	if err != nil {
		return nil, err
	}
	v, err := group.ArrayFromByteTree(keyGroup, size, vTree)
	if err != nil {
		return nil, err
	}
	return &Ciphertexts{U: u, V: v}, nil
}
