// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package challenger

import (
	"math/big"

	"github.com/verificatum/verificatum-vmn-sub000/bytetree"
	"github.com/verificatum/verificatum-vmn-sub000/common"
)

// CoinSource yields jointly generated random bytes.
type CoinSource interface {
	Coins(nBytes int) ([]byte, error)
}

// Interactive is the coin-flip challenger: both seeds and challenges read
// bits from a joint coin-flip source instead of a random oracle. The
// transcript argument is not consumed; binding is provided by the coin-flip
// protocol running after the commitments are fixed.
type Interactive struct {
	coins CoinSource
}

func NewInteractive(coins CoinSource) *Interactive {
	return &Interactive{coins: coins}
}

func (ic *Interactive) Seed(_ *bytetree.ByteTree, nBytes int) ([]byte, error) {
	return ic.coins.Coins(nBytes)
}

func (ic *Interactive) Challenge(_ *bytetree.ByteTree, bitlen int) (*big.Int, error) {
	bz, err := ic.coins.Coins((bitlen + 7) / 8)
	if err != nil {
		return nil, err
	}
	return common.TruncToBits(new(big.Int).SetBytes(bz), bitlen), nil
}
