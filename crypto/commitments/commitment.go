// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// partly ported from:
// https://github.com/KZen-networks/curv/blob/78a70f43f5eda376e5888ce33aec18962f572bbe/src/cryptographic_primitives/commitments/hash_commitment.rs

package commitments

import (
	"crypto"
	"io"

	"github.com/verificatum/verificatum-vmn-sub000/common"
)

const (
	// RandomnessByteLen is the length of the blinding randomness r.
	RandomnessByteLen = 32
)

type (
	HashCommitment   = []byte
	HashDeCommitment = [][]byte

	HashCommitDecommit struct {
		C HashCommitment
		D HashDeCommitment
	}
)

func NewHashCommitmentWithRandomness(h crypto.Hash, r []byte, secrets ...[]byte) *HashCommitDecommit {
	parts := make([][]byte, len(secrets)+1)
	parts[0] = r
	for i := 1; i < len(parts); i++ {
		parts[i] = secrets[i-1]
	}
	cmt := &HashCommitDecommit{}
	cmt.C = common.Hash(h, parts...)
	cmt.D = parts
	return cmt
}

func NewHashCommitment(h crypto.Hash, rand io.Reader, secrets ...[]byte) (*HashCommitDecommit, error) {
	r := make([]byte, RandomnessByteLen)
	if _, err := io.ReadFull(rand, r); err != nil {
		return nil, err
	}
	return NewHashCommitmentWithRandomness(h, r, secrets...), nil
}

func (cmt *HashCommitDecommit) Verify(h crypto.Hash) bool {
	C, D := cmt.C, cmt.D
	if C == nil || D == nil {
		return false
	}
	hash := common.Hash(h, D...)
	if len(hash) != len(C) {
		return false
	}
	for i := range hash {
		if hash[i] != C[i] {
			return false
		}
	}
	return true
}

func (cmt *HashCommitDecommit) DeCommit(h crypto.Hash) (bool, HashDeCommitment) {
	if cmt.Verify(h) {
		// [1:] skips random element r in D
		return true, cmt.D[1:]
	}
	return false, nil
}
