// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package group

import (
	"math/big"
	"sync"

	"github.com/pkg/errors"
)

// ExpProd computes the product of bases[i]^exps[i] using simultaneous
// square-and-multiply. The work is split into index-ordered chunks over at
// most concurrency goroutines and the partial products are combined in
// ascending chunk order, so the output is deterministic.
func ExpProd(g Group, bases []Element, exps []*big.Int, concurrency int) Element {
	if len(bases) != len(exps) {
		panic(errors.Errorf("exp prod: %d bases, %d exponents", len(bases), len(exps)))
	}
	if len(bases) == 0 {
		return g.One()
	}
	if concurrency < 1 {
		concurrency = 1
	}
	if len(bases) < concurrency {
		concurrency = len(bases)
	}
	chunk := (len(bases) + concurrency - 1) / concurrency
	nChunks := (len(bases) + chunk - 1) / chunk

	partials := make([]Element, nChunks)
	var wg sync.WaitGroup
	for c := 0; c < nChunks; c++ {
		lo, hi := c*chunk, (c+1)*chunk
		if len(bases) < hi {
			hi = len(bases)
		}
		wg.Add(1)
		go func(c, lo, hi int) {
			defer wg.Done()
			partials[c] = expProdRange(g, bases[lo:hi], exps[lo:hi])
		}(c, lo, hi)
	}
	wg.Wait()

	out := partials[0]
	for c := 1; c < nChunks; c++ {
		out = g.Mul(out, partials[c])
	}
	return out
}

func expProdRange(g Group, bases []Element, exps []*big.Int) Element {
	// fold negative exponents into inverted bases
	bs := make([]Element, len(bases))
	es := make([]*big.Int, len(exps))
	maxBits := 0
	for i := range bases {
		bs[i], es[i] = bases[i], exps[i]
		if es[i].Sign() < 0 {
			bs[i] = g.Inv(bs[i])
			es[i] = new(big.Int).Neg(es[i])
		}
		if maxBits < es[i].BitLen() {
			maxBits = es[i].BitLen()
		}
	}
	out := g.One()
	for bit := maxBits - 1; 0 <= bit; bit-- {
		out = g.Mul(out, out)
		for i := range bs {
			if es[i].Bit(bit) == 1 {
				out = g.Mul(out, bs[i])
			}
		}
	}
	return out
}
