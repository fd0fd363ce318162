// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package challenger produces batching seeds and challenge integers for the
// verifiable decryption protocol, either non-interactively from a random
// oracle keyed by a session-wide prefix, or interactively from a joint
// coin-flip source.
package challenger

import (
	"crypto"
	"io"
	"math/big"

	"github.com/pkg/errors"

	"github.com/verificatum/verificatum-vmn-sub000/bytetree"
	"github.com/verificatum/verificatum-vmn-sub000/common"
	"github.com/verificatum/verificatum-vmn-sub000/crypto/prg"
)

// Version is the protocol version recorded in the global prefix.
const Version = "1.0"

// Challenger turns transcript byte trees into seeds and challenges.
type Challenger interface {
	// Seed derives nBytes of batching seed material from the transcript.
	Seed(data *bytetree.ByteTree, nBytes int) ([]byte, error)
	// Challenge derives an integer in [0, 2^bitlen) from the transcript.
	Challenge(data *bytetree.ByteTree, bitlen int) (*big.Int, error)
}

// RO is the Fiat-Shamir challenger: a random oracle instantiated with a hash
// function and a per-session global prefix.
type RO struct {
	hash   crypto.Hash
	prefix []byte
}

func NewRO(hash crypto.Hash, prefix []byte) *RO {
	return &RO{hash: hash, prefix: prefix}
}

func (ro *RO) Seed(data *bytetree.ByteTree, nBytes int) ([]byte, error) {
	digest := common.Hash(ro.hash, ro.prefix, data.Marshal())
	if digest == nil {
		return nil, errors.New("challenger: hash failed")
	}
	r, err := prg.New(digest)
	if err != nil {
		return nil, err
	}
	out := make([]byte, nBytes)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (ro *RO) Challenge(data *bytetree.ByteTree, bitlen int) (*big.Int, error) {
	digest := common.Hash(ro.hash, ro.prefix, data.Marshal())
	if digest == nil {
		return nil, errors.New("challenger: hash failed")
	}
	need := (bitlen + 7) / 8
	if len(digest) < need {
		// expand for challenge sizes beyond the digest length
		r, err := prg.New(digest)
		if err != nil {
			return nil, err
		}
		digest = make([]byte, need)
		if _, err := io.ReadFull(r, digest); err != nil {
			return nil, err
		}
	}
	return common.TruncToBits(new(big.Int).SetBytes(digest[:need]), bitlen), nil
}

// GlobalPrefix derives the session-wide domain separator from the protocol
// configuration. The leaf layout is fixed; integers are 4-byte big-endian.
func GlobalPrefix(hash crypto.Hash, sessionID string, rbitlen, vbitlenRO, ebitlenRO int, prgID, groupID, hashID string) []byte {
	bt := bytetree.NewNode(
		bytetree.LeafString(Version),
		bytetree.LeafString(sessionID),
		bytetree.LeafUint32(uint32(rbitlen)),
		bytetree.LeafUint32(uint32(vbitlenRO)),
		bytetree.LeafUint32(uint32(ebitlenRO)),
		bytetree.LeafString(prgID),
		bytetree.LeafString(groupID),
		bytetree.LeafString(hashID),
	)
	return common.Hash(hash, bt.Marshal())
}

// HashByName resolves the configured random-oracle hash.
func HashByName(name string) (crypto.Hash, error) {
	switch name {
	case "SHA-256":
		return crypto.SHA256, nil
	case "SHA-384":
		return crypto.SHA384, nil
	case "SHA-512":
		return crypto.SHA512, nil
	default:
		return 0, errors.Errorf("challenger: unsupported hash %q", name)
	}
}
