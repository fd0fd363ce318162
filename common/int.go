// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package common

import (
	"math/big"
)

// modInt is a *big.Int that performs all of its arithmetic with modular reduction.
type modInt big.Int

var (
	zero = big.NewInt(0)
	one  = big.NewInt(1)
)

func ModInt(mod *big.Int) *modInt {
	return (*modInt)(mod)
}

func (mi *modInt) Add(x, y *big.Int) *big.Int {
	i := new(big.Int)
	i.Add(x, y)
	return i.Mod(i, mi.i())
}

func (mi *modInt) Sub(x, y *big.Int) *big.Int {
	i := new(big.Int)
	i.Sub(x, y)
	return i.Mod(i, mi.i())
}

func (mi *modInt) Mul(x, y *big.Int) *big.Int {
	i := new(big.Int)
	i.Mul(x, y)
	return i.Mod(i, mi.i())
}

func (mi *modInt) Neg(x *big.Int) *big.Int {
	i := new(big.Int)
	i.Neg(x)
	return i.Mod(i, mi.i())
}

func (mi *modInt) Exp(x, y *big.Int) *big.Int {
	return new(big.Int).Exp(x, y, mi.i())
}

func (mi *modInt) ModInverse(g *big.Int) *big.Int {
	return new(big.Int).ModInverse(g, mi.i())
}

func (mi *modInt) i() *big.Int {
	return (*big.Int)(mi)
}

// SymmetricMod reduces x modulo q and returns the representative of minimal
// absolute value: x mod q when it is at most q/2, and x mod q minus q
// otherwise.
func SymmetricMod(x, q *big.Int) *big.Int {
	r := new(big.Int).Mod(x, q)
	half := new(big.Int).Rsh(q, 1)
	if r.Cmp(half) > 0 {
		r.Sub(r, q)
	}
	return r
}

func IsInInterval(b *big.Int, bound *big.Int) bool {
	return b.Cmp(bound) == -1 && b.Cmp(zero) >= 0
}

// TruncToBits masks away all bits of x above the given bit length and returns
// the result as a fresh integer. x must be non-negative.
func TruncToBits(x *big.Int, bits int) *big.Int {
	mask := new(big.Int).Lsh(one, uint(bits))
	mask.Sub(mask, one)
	return new(big.Int).And(x, mask)
}

// PaddedBytes returns the big-endian encoding of x left-padded with zeros to
// exactly byteLen bytes. x must be non-negative and fit in byteLen bytes.
func PaddedBytes(x *big.Int, byteLen int) []byte {
	out := make([]byte, byteLen)
	bz := x.Bytes()
	copy(out[byteLen-len(bz):], bz)
	return out
}
