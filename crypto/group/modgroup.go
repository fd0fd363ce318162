// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package group

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/verificatum/verificatum-vmn-sub000/bytetree"
	"github.com/verificatum/verificatum-vmn-sub000/common"
)

// ModGroup is the order-q multiplicative subgroup of Z_p^* for a prime
// modulus p with q | p-1. With a safe prime p = 2q+1 this is the subgroup of
// quadratic residues. Elements are *big.Int residues in [1, p).
type ModGroup struct {
	id      string
	p, q, g *big.Int
	byteLen int
}

func NewModGroup(id string, p, q, g *big.Int) (*ModGroup, error) {
	if p == nil || q == nil || g == nil {
		return nil, errors.New("mod group: nil parameter")
	}
	if new(big.Int).Mod(new(big.Int).Sub(p, big.NewInt(1)), q).Sign() != 0 {
		return nil, errors.New("mod group: q does not divide p-1")
	}
	if g.Cmp(big.NewInt(2)) < 0 || g.Cmp(p) >= 0 {
		return nil, errors.New("mod group: generator out of range")
	}
	if new(big.Int).Exp(g, q, p).Cmp(big.NewInt(1)) != 0 {
		return nil, errors.New("mod group: generator has wrong order")
	}
	return &ModGroup{
		id:      id,
		p:       p,
		q:       q,
		g:       g,
		byteLen: (p.BitLen() + 7) / 8,
	}, nil
}

func (mg *ModGroup) ID() string {
	return mg.id
}

func (mg *ModGroup) Order() *big.Int {
	return new(big.Int).Set(mg.q)
}

func (mg *ModGroup) Generator() Element {
	return new(big.Int).Set(mg.g)
}

func (mg *ModGroup) One() Element {
	return big.NewInt(1)
}

func (mg *ModGroup) Width() int {
	return 1
}

func (mg *ModGroup) Project(i int) Group {
	if i != 0 {
		panic(errors.Errorf("mod group: project index %d on atomic group", i))
	}
	return mg
}

func (mg *ModGroup) Mul(x, y Element) Element {
	return common.ModInt(mg.p).Mul(mg.el(x), mg.el(y))
}

func (mg *ModGroup) Inv(x Element) Element {
	return common.ModInt(mg.p).ModInverse(mg.el(x))
}

func (mg *ModGroup) Exp(x Element, e *big.Int) Element {
	// x has order dividing q, so the exponent acts modulo q; big.Int.Exp
	// requires a non-negative exponent.
	return new(big.Int).Exp(mg.el(x), new(big.Int).Mod(e, mg.q), mg.p)
}

func (mg *ModGroup) Equal(x, y Element) bool {
	return mg.el(x).Cmp(mg.el(y)) == 0
}

func (mg *ModGroup) ElementByteLen() int {
	return mg.byteLen
}

func (mg *ModGroup) ToByteTree(x Element) *bytetree.ByteTree {
	return bytetree.LeafBigInt(mg.el(x), mg.byteLen)
}

func (mg *ModGroup) FromByteTree(bt *bytetree.ByteTree) (Element, error) {
	if bt == nil || !bt.IsLeaf() || len(bt.Data()) != mg.byteLen {
		return nil, errors.Wrap(ErrMalformedElement, "mod group: bad leaf")
	}
	x := new(big.Int).SetBytes(bt.Data())
	if x.Sign() <= 0 || x.Cmp(mg.p) >= 0 {
		return nil, errors.Wrap(ErrMalformedElement, "mod group: residue out of range")
	}
	if new(big.Int).Exp(x, mg.q, mg.p).Cmp(big.NewInt(1)) != 0 {
		return nil, errors.Wrap(ErrMalformedElement, "mod group: not in the prime-order subgroup")
	}
	return x, nil
}

func (mg *ModGroup) el(x Element) *big.Int {
	i, ok := x.(*big.Int)
	if !ok {
		panic(errors.Errorf("mod group: foreign element %T", x))
	}
	return i
}

// modp2048 is the 2048-bit MODP group of RFC 3526. The modulus is a safe
// prime, so 2 generates the order-(p-1)/2 subgroup of quadratic residues.
const modp2048Hex = "" +
	"FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD1" +
	"29024E088A67CC74020BBEA63B139B22514A08798E3404DD" +
	"EF9519B3CD3A431B302B0A6DF25F14374FE1356D6D51C245" +
	"E485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B7ED" +
	"EE386BFB5A899FA5AE9F24117C4B1FE649286651ECE45B3D" +
	"C2007CB8A163BF0598DA48361C55D39A69163FA8FD24CF5F" +
	"83655D23DCA3AD961C62F356208552BB9ED529077096966D" +
	"670C354E4ABC9804F1746C08CA18217C32905E462E36CE3B" +
	"E39E772C180E86039B2783A2EC07A28FB5C55DF06F4C52C9" +
	"DE2BCBF6955817183995497CEA956AE515D2261898FA0510" +
	"15728E5A8AACAA68FFFFFFFFFFFFFFFF"

// ModP2048 returns the standard 2048-bit Schnorr group used when no group is
// configured explicitly.
func ModP2048() *ModGroup {
	p, ok := new(big.Int).SetString(modp2048Hex, 16)
	if !ok {
		panic("modp2048 modulus failed to parse")
	}
	q := new(big.Int).Rsh(new(big.Int).Sub(p, big.NewInt(1)), 1)
	mg, err := NewModGroup("modp2048", p, q, big.NewInt(2))
	if err != nil {
		panic(err)
	}
	return mg
}
