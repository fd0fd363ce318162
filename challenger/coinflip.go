// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package challenger

import (
	"context"
	"crypto"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/verificatum/verificatum-vmn-sub000/board"
	"github.com/verificatum/verificatum-vmn-sub000/bytetree"
	"github.com/verificatum/verificatum-vmn-sub000/common"
	"github.com/verificatum/verificatum-vmn-sub000/crypto/commitments"
)

// CoinFlip is a CoinSource backed by a hash commit/reveal exchange on the
// bulletin board. Every active party commits to a fresh random string, then
// reveals; the coins are the XOR of all correctly revealed strings. A party
// whose reveal is missing or does not match its commitment is skipped, which
// every honest party observes identically through the board.
type CoinFlip struct {
	ctx   context.Context
	brd   board.Board
	hash  crypto.Hash
	rand  io.Reader
	self  int
	k     int
	round int
}

func NewCoinFlip(ctx context.Context, brd board.Board, hash crypto.Hash, rand io.Reader, self, k int) *CoinFlip {
	return &CoinFlip{ctx: ctx, brd: brd, hash: hash, rand: rand, self: self, k: k}
}

func (cf *CoinFlip) Coins(nBytes int) ([]byte, error) {
	round := cf.round
	cf.round++

	own := make([]byte, nBytes)
	if _, err := io.ReadFull(cf.rand, own); err != nil {
		return nil, errors.Wrap(err, "coin flip: sampling")
	}
	cmt, err := commitments.NewHashCommitment(cf.hash, cf.rand, own)
	if err != nil {
		return nil, errors.Wrap(err, "coin flip: commitment")
	}
	if err := cf.brd.Publish(commitLabel(round), bytetree.NewLeaf(cmt.C)); err != nil {
		return nil, err
	}

	commits := make([][]byte, cf.k+1)
	for l := 1; l <= cf.k; l++ {
		if l == cf.self || !cf.brd.IsActive(l) {
			continue
		}
		leaf, err := cf.readLeaf(l, commitLabel(round))
		if err != nil {
			continue // skipped below when the reveal is checked
		}
		commits[l] = leaf
	}

	if err := cf.brd.Publish(revealLabel(round), bytetree.NewNode(
		bytetree.NewLeaf(cmt.D[0]),
		bytetree.NewLeaf(own),
	)); err != nil {
		return nil, err
	}

	coins := make([]byte, nBytes)
	copy(coins, own)
	for l := 1; l <= cf.k; l++ {
		if l == cf.self || commits[l] == nil {
			continue
		}
		r, value, err := cf.readReveal(l, revealLabel(round))
		if err != nil || len(value) != nBytes {
			common.Logger.Warnf("coin flip: party %d reveal rejected", l)
			continue
		}
		check := &commitments.HashCommitDecommit{C: commits[l], D: [][]byte{r, value}}
		if !check.Verify(cf.hash) {
			common.Logger.Warnf("coin flip: party %d reveal does not match commitment", l)
			continue
		}
		for i := range coins {
			coins[i] ^= value[i]
		}
	}
	return coins, nil
}

func (cf *CoinFlip) readLeaf(party int, label string) ([]byte, error) {
	rd, err := cf.brd.WaitFor(cf.ctx, party, label)
	if err != nil {
		return nil, err
	}
	defer rd.Close()
	bt, err := rd.NextChild()
	if err != nil || !bt.IsLeaf() {
		return nil, errors.Wrap(bytetree.ErrMalformed, "coin flip: expected a leaf")
	}
	return bt.Data(), nil
}

func (cf *CoinFlip) readReveal(party int, label string) (r, value []byte, err error) {
	rd, err := cf.brd.WaitFor(cf.ctx, party, label)
	if err != nil {
		return nil, nil, err
	}
	defer rd.Close()
	first, err := rd.NextChild()
	if err != nil || !first.IsLeaf() {
		return nil, nil, errors.Wrap(bytetree.ErrMalformed, "coin flip: bad reveal")
	}
	second, err := rd.NextChild()
	if err != nil || !second.IsLeaf() {
		return nil, nil, errors.Wrap(bytetree.ErrMalformed, "coin flip: bad reveal")
	}
	return first.Data(), second.Data(), nil
}

func commitLabel(round int) string {
	return fmt.Sprintf("CoinCommit%d", round)
}

func revealLabel(round int) string {
	return fmt.Sprintf("CoinReveal%d", round)
}
