// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package keygen

import (
	"io"

	"github.com/verificatum/verificatum-vmn-sub000/common"
	"github.com/verificatum/verificatum-vmn-sub000/crypto/group"
	"github.com/verificatum/verificatum-vmn-sub000/elgamal"
)

// Encrypt produces the ciphertext array (g^r_i, Y^r_i * m_i) for a message
// array over the key group.
func Encrypt(g group.Group, gen, jointKey group.Element, messages *group.ElementArray, rand io.Reader) (*elgamal.Ciphertexts, error) {
	n := messages.Size()
	q := g.Order()
	us := make([]group.Element, n)
	vs := make([]group.Element, n)
	for i := 0; i < n; i++ {
		r := common.GetRandomPositiveInt(rand, q)
		us[i] = g.Exp(gen, r)
		vs[i] = g.Mul(g.Exp(jointKey, r), messages.Get(i))
	}
	return elgamal.NewCiphertexts(group.NewElementArray(g, us), group.NewElementArray(g, vs))
}
