// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package vss

import (
	"math/big"

	"github.com/otiai10/primes"
	"github.com/pkg/errors"

	"github.com/verificatum/verificatum-vmn-sub000/common"
)

// MaxParties bounds the party count so that the clearing constant can be
// built from the fixed table of primes up to 1009.
const MaxParties = 1009

var ErrTooManyParties = errors.New("party count exceeds the prime table bound")

func init() {
	_ = primes.Globally.Until(MaxParties)
}

// ClearingConstant computes pi = (prod of p^floor(log_p k) over primes
// p <= k)^2 mod q and its inverse. Raising shares to pi*L_i clears the
// denominators of the Lagrange coefficients L_i, keeping all exponents
// integral. pi is coprime to q for every k <= MaxParties since q is a large
// prime.
func ClearingConstant(k int, q *big.Int) (pi, piInv *big.Int, err error) {
	if k < 1 {
		return nil, nil, errors.Errorf("party count %d < 1", k)
	}
	if MaxParties < k {
		return nil, nil, ErrTooManyParties
	}
	prod := big.NewInt(1)
	for _, p := range primes.Until(int64(k)).List() {
		pk := big.NewInt(p)
		// p^floor(log_p k): highest power of p not exceeding k
		for next := new(big.Int).Mul(pk, big.NewInt(p)); next.Cmp(big.NewInt(int64(k))) <= 0; next.Mul(next, big.NewInt(p)) {
			pk.Set(next)
		}
		prod.Mul(prod, pk)
	}
	modQ := common.ModInt(q)
	pi = modQ.Mul(prod, prod)
	if new(big.Int).GCD(nil, nil, pi, q).Cmp(big.NewInt(1)) != 0 {
		return nil, nil, errors.New("clearing constant not coprime to the group order")
	}
	piInv = modQ.ModInverse(pi)
	return pi, piInv, nil
}

// Coefficients returns the first threshold indices l with correct[l] true in
// ascending order, together with the modified Lagrange coefficients
// lambda_i = pi * prod_{l != i} l/(l-i) mod q, each minimized to the signed
// representative of smallest absolute value. correct is indexed 1..k with
// slot 0 unused.
func Coefficients(correct []bool, threshold int, pi, q *big.Int) ([]int, []*big.Int, error) {
	indices := make([]int, 0, threshold)
	for l := 1; l < len(correct) && len(indices) < threshold; l++ {
		if correct[l] {
			indices = append(indices, l)
		}
	}
	if len(indices) < threshold {
		return nil, nil, ErrNumSharesBelowThreshold
	}

	modQ := common.ModInt(q)
	lambdas := make([]*big.Int, threshold)
	for i, li := range indices {
		lambda := new(big.Int).Set(pi)
		for _, l := range indices {
			if l == li {
				continue
			}
			num := big.NewInt(int64(l))
			den := modQ.ModInverse(new(big.Int).Mod(big.NewInt(int64(l-li)), q))
			lambda = modQ.Mul(lambda, modQ.Mul(num, den))
		}
		lambdas[i] = common.SymmetricMod(lambda, q)
	}
	return indices, lambdas, nil
}
