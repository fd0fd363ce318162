// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Feldman VSS, based on Paul Feldman, 1987., A practical scheme for non-interactive verifiable secret sharing.
// In Foundations of Computer Science, 1987., 28th Annual Symposium on. IEEE, 427–43
//

package vss

import (
	"io"
	"math/big"

	"github.com/pkg/errors"

	"github.com/verificatum/verificatum-vmn-sub000/bytetree"
	"github.com/verificatum/verificatum-vmn-sub000/common"
	"github.com/verificatum/verificatum-vmn-sub000/crypto/group"
)

type (
	// Share is party ID's evaluation of the sharing polynomial. Threshold
	// many shares reconstruct the secret.
	Share struct {
		Threshold int
		ID        int
		Share     *big.Int
	}

	Shares []*Share

	// PolynomialInExponent holds g^{a_0}..g^{a_{t-1}} for the coefficients
	// of the sharing polynomial. It is published for share verification and
	// recorded in proof transcripts.
	PolynomialInExponent []group.Element
)

var (
	ErrNumSharesBelowThreshold = errors.New("not enough shares to satisfy the threshold")
)

// Create shares the secret with a degree threshold-1 polynomial over Z_q
// among parties 1..k and returns the polynomial in the exponent alongside
// the shares.
func Create(g group.Group, threshold, k int, secret *big.Int, rand io.Reader) (PolynomialInExponent, Shares, error) {
	if secret == nil {
		return nil, nil, errors.New("vss secret == nil")
	}
	if threshold < 1 || k < threshold {
		return nil, nil, errors.Errorf("vss bad threshold %d of %d", threshold, k)
	}
	q := g.Order()

	coeffs := make([]*big.Int, threshold)
	coeffs[0] = new(big.Int).Mod(secret, q)
	for i := 1; i < threshold; i++ {
		coeffs[i] = common.GetRandomPositiveInt(rand, q)
	}

	gen := g.Generator()
	poly := make(PolynomialInExponent, threshold)
	for i, ai := range coeffs {
		poly[i] = g.Exp(gen, ai)
	}

	shares := make(Shares, k)
	for i := 1; i <= k; i++ {
		shares[i-1] = &Share{Threshold: threshold, ID: i, Share: evaluatePolynomial(q, coeffs, i)}
	}
	return poly, shares, nil
}

// Verify checks the share against the published polynomial in the exponent:
// g^{x_i} must equal the product of poly[j]^{i^j}.
func (share *Share) Verify(g group.Group, poly PolynomialInExponent) bool {
	if share.Threshold != len(poly) || poly == nil {
		return false
	}
	q := g.Order()
	modQ := common.ModInt(q)
	id := big.NewInt(int64(share.ID))

	v := poly[0]
	t := big.NewInt(1)
	for j := 1; j < len(poly); j++ {
		t = modQ.Mul(t, id)
		v = g.Mul(v, g.Exp(poly[j], t))
	}
	return g.Equal(g.Exp(g.Generator(), share.Share), v)
}

// Reconstruct recovers the secret from at least Threshold shares with plain
// Lagrange interpolation at zero.
func (shares Shares) Reconstruct(q *big.Int) (*big.Int, error) {
	if len(shares) == 0 || shares[0].Threshold > len(shares) {
		return nil, ErrNumSharesBelowThreshold
	}
	modQ := common.ModInt(q)

	secret := big.NewInt(0)
	for i, share := range shares {
		times := big.NewInt(1)
		xi := big.NewInt(int64(share.ID))
		for j, other := range shares {
			if j == i {
				continue
			}
			xj := big.NewInt(int64(other.ID))
			sub := modQ.Sub(xj, xi)
			subInv := modQ.ModInverse(sub)
			if subInv == nil {
				return nil, errors.New("vss duplicate share index")
			}
			times = modQ.Mul(times, modQ.Mul(xj, subInv))
		}
		secret = modQ.Add(secret, modQ.Mul(share.Share, times))
	}
	return secret, nil
}

// ToByteTree encodes the polynomial as a node of element encodings.
func (poly PolynomialInExponent) ToByteTree(g group.Group) *bytetree.ByteTree {
	children := make([]*bytetree.ByteTree, len(poly))
	for i, x := range poly {
		children[i] = g.ToByteTree(x)
	}
	return bytetree.NewNode(children...)
}

func PolynomialFromByteTree(g group.Group, bt *bytetree.ByteTree) (PolynomialInExponent, error) {
	if bt == nil || bt.IsLeaf() {
		return nil, errors.Wrap(group.ErrMalformedElement, "polynomial: bad node")
	}
	poly := make(PolynomialInExponent, bt.Len())
	for i := range poly {
		child, err := bt.Child(i)
		if err != nil {
			return nil, err
		}
		x, err := g.FromByteTree(child)
		if err != nil {
			return nil, err
		}
		poly[i] = x
	}
	return poly, nil
}

// Evaluates the polynomial a_0 + a_1 x + ... at an integer point.
func evaluatePolynomial(q *big.Int, coeffs []*big.Int, id int) *big.Int {
	modQ := common.ModInt(q)
	x := big.NewInt(int64(id))
	result := new(big.Int).Set(coeffs[0])
	xi := big.NewInt(1)
	for i := 1; i < len(coeffs); i++ {
		xi = modQ.Mul(xi, x)
		result = modQ.Add(result, new(big.Int).Mul(coeffs[i], xi))
	}
	return result
}
