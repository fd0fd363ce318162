// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package board

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/verificatum/verificatum-vmn-sub000/bytetree"
)

// Memory is an in-process bulletin board for tests and single-machine runs.
// All parties share one hub; each obtains a Board handle bound to its own
// index for publishing.
type Memory struct {
	mtx     sync.Mutex
	msgs    map[string][]byte
	waiters map[string][]chan []byte
	active  []bool // indexed 1..k, slot 0 unused
}

func NewMemory(k int) *Memory {
	active := make([]bool, k+1)
	for l := 1; l <= k; l++ {
		active[l] = true
	}
	return &Memory{
		msgs:    make(map[string][]byte),
		waiters: make(map[string][]chan []byte),
		active:  active,
	}
}

// SetActive marks a party live or dead in the liveness snapshot.
func (m *Memory) SetActive(party int, active bool) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.active[party] = active
}

// Handle returns the publishing handle of the given party.
func (m *Memory) Handle(party int) Board {
	return &memoryHandle{hub: m, party: party}
}

// Corrupt overwrites the stored message of (party, label) with raw bytes,
// for adversarial tests.
func (m *Memory) Corrupt(party int, label string, raw []byte) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.store(key(party, label), raw)
}

func (m *Memory) publish(party int, label string, payload *bytetree.ByteTree) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	k := key(party, label)
	if _, ok := m.msgs[k]; ok {
		return errors.Errorf("board: duplicate publish under %s", k)
	}
	m.store(k, payload.Marshal())
	return nil
}

// store must be called with the mutex held.
func (m *Memory) store(k string, raw []byte) {
	m.msgs[k] = raw
	for _, ch := range m.waiters[k] {
		ch <- raw
	}
	delete(m.waiters, k)
}

func (m *Memory) waitFor(ctx context.Context, party int, label string) ([]byte, error) {
	k := key(party, label)
	m.mtx.Lock()
	if raw, ok := m.msgs[k]; ok {
		m.mtx.Unlock()
		return raw, nil
	}
	ch := make(chan []byte, 1)
	m.waiters[k] = append(m.waiters[k], ch)
	m.mtx.Unlock()

	select {
	case raw := <-ch:
		return raw, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type memoryHandle struct {
	hub   *Memory
	party int
}

func (h *memoryHandle) Publish(label string, payload *bytetree.ByteTree) error {
	return h.hub.publish(h.party, label, payload)
}

func (h *memoryHandle) WaitFor(ctx context.Context, party int, label string) (*bytetree.Reader, error) {
	raw, err := h.hub.waitFor(ctx, party, label)
	if err != nil {
		return nil, err
	}
	return bytetree.NewBytesReader(raw), nil
}

func (h *memoryHandle) IsActive(party int) bool {
	h.hub.mtx.Lock()
	defer h.hub.mtx.Unlock()
	return h.hub.active[party]
}

func key(party int, label string) string {
	return fmt.Sprintf("%d/%s", party, label)
}
