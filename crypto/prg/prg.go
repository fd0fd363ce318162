// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package prg expands short seeds into unbounded pseudo-random streams with
// the blake2b XOF. The expansion is deterministic across runs and machines.
package prg

import (
	"io"
	"math/big"

	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"

	"github.com/verificatum/verificatum-vmn-sub000/common"
)

const (
	// ID is the symbol recorded for this generator in hash derivations.
	ID = "blake2b-xof"

	// SeedByteLen is the seed length fed to the XOF key.
	SeedByteLen = 32
)

// New returns a deterministic stream keyed by the seed.
func New(seed []byte) (io.Reader, error) {
	if len(seed) == 0 {
		return nil, errors.New("prg: empty seed")
	}
	key := seed
	if 64 < len(key) {
		key = key[:64]
	}
	xof, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, key)
	if err != nil {
		return nil, errors.Wrap(err, "prg: blake2b xof")
	}
	return xof, nil
}

// ReadInts derives n integers in [0, 2^bitlen) from the stream. Each integer
// is read as ceil(bitlen/8) big-endian bytes with the high bits beyond
// bitlen masked to zero.
func ReadInts(r io.Reader, n, bitlen int) ([]*big.Int, error) {
	if n < 0 || bitlen <= 0 {
		return nil, errors.Errorf("prg: invalid request n=%d bitlen=%d", n, bitlen)
	}
	byteLen := (bitlen + 7) / 8
	buf := make([]byte, byteLen)
	out := make([]*big.Int, n)
	for i := range out {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, errors.Wrap(err, "prg: short read")
		}
		out[i] = common.TruncToBits(new(big.Int).SetBytes(buf), bitlen)
	}
	return out, nil
}
