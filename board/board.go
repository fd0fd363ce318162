// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package board defines the bulletin board contract relied on by the
// protocol sessions: an append-only, authenticated, multi-writer store in
// which each party publishes at most one message per label and readers block
// until a matching message exists.
package board

import (
	"context"

	"github.com/verificatum/verificatum-vmn-sub000/bytetree"
)

// Board is one party's handle to the bulletin board. Authentication and
// replay protection are the board's responsibility; the protocol only relies
// on per-(party,label) stability: successive waits for the same pair return
// the same bytes.
type Board interface {
	// Publish appends this party's message under the given label.
	Publish(label string, payload *bytetree.ByteTree) error

	// WaitFor blocks until a message published by the given party under the
	// label is available and returns a lazy reader over it. A cancelled
	// context aborts the wait with ctx.Err(); the caller treats an aborted
	// wait like an inactive party.
	WaitFor(ctx context.Context, party int, label string) (*bytetree.Reader, error)

	// IsActive reports the liveness snapshot taken at session start.
	IsActive(party int) bool
}
