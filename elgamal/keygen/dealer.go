// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package keygen

import (
	"io"

	"github.com/pkg/errors"

	"github.com/verificatum/verificatum-vmn-sub000/common"
	"github.com/verificatum/verificatum-vmn-sub000/crypto/group"
	"github.com/verificatum/verificatum-vmn-sub000/crypto/vss"
)

// TrustedDealer shares a fresh secret key among k parties with the given
// reconstruction threshold and returns one view per party, indexed 1..k in
// slots 1..k of the result (slot 0 is nil). The dealer discards the secret;
// only the shares and public values survive.
func TrustedDealer(g group.Group, k, threshold int, rand io.Reader) ([]View, error) {
	if k < 1 || threshold < 1 || k < threshold {
		return nil, errors.Errorf("keygen: bad threshold %d of %d", threshold, k)
	}
	q := g.Order()
	secret := common.GetRandomPositiveInt(rand, q)

	poly, shares, err := vss.Create(g, threshold, k, secret, rand)
	if err != nil {
		return nil, err
	}

	gen := g.Generator()
	pubKeys := make([]group.Element, k+1)
	for _, share := range shares {
		pubKeys[share.ID] = g.Exp(gen, share.Share)
	}
	joint := poly[0] // g^{a_0} = g^s
	polyBT := poly.ToByteTree(g)

	views := make([]View, k+1)
	for _, share := range shares {
		views[share.ID] = &localView{
			grp:     g,
			gen:     gen,
			pubKeys: pubKeys,
			joint:   joint,
			share:   share.Share,
			polyBT:  polyBT,
		}
	}
	return views, nil
}
