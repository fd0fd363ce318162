// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package common

import (
	"fmt"
	"io"
	"math/big"

	"github.com/pkg/errors"
)

const (
	mustGetRandomIntMaxBits = 5000
)

// MustGetRandomInt panics if it is unable to gather entropy from the given
// source or when `bits` is <= 0
func MustGetRandomInt(rand io.Reader, bits int) *big.Int {
	if bits <= 0 || mustGetRandomIntMaxBits < bits {
		panic(fmt.Errorf("MustGetRandomInt: bits should be positive, non-zero and less than %d", mustGetRandomIntMaxBits))
	}
	buf := make([]byte, (bits+7)/8)
	if _, err := io.ReadFull(rand, buf); err != nil {
		panic(errors.Wrap(err, "rand read failure in MustGetRandomInt!"))
	}
	return TruncToBits(new(big.Int).SetBytes(buf), bits)
}

func GetRandomPositiveInt(rand io.Reader, lessThan *big.Int) *big.Int {
	if lessThan == nil || zero.Cmp(lessThan) != -1 {
		return nil
	}
	var try *big.Int
	for {
		try = MustGetRandomInt(rand, lessThan.BitLen())
		if try.Cmp(lessThan) < 0 && try.Cmp(zero) >= 0 {
			break
		}
	}
	return try
}

// GetRandomIntStatDist samples an integer modulo q whose distribution is
// within statistical distance 2^-rbitlen of uniform: it reads
// q.BitLen()+rbitlen random bits and reduces.
func GetRandomIntStatDist(rand io.Reader, q *big.Int, rbitlen int) *big.Int {
	if q == nil || zero.Cmp(q) != -1 || rbitlen < 0 {
		return nil
	}
	wide := MustGetRandomInt(rand, q.BitLen()+rbitlen)
	return wide.Mod(wide, q)
}
