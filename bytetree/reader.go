// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package bytetree

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// Reader reads the children of a single byte tree lazily from a stream. On
// the first call to NextChild the root header is consumed: a node yields its
// children one by one, a leaf yields the whole tree exactly once. After the
// last child, NextChild returns io.EOF.
type Reader struct {
	br     *bufio.Reader
	closer io.Closer

	started   bool
	remaining int
	pending   *ByteTree
}

func NewReader(r io.Reader) *Reader {
	closer, _ := r.(io.Closer)
	return &Reader{br: bufio.NewReader(r), closer: closer}
}

func NewBytesReader(data []byte) *Reader {
	return NewReader(bytes.NewReader(data))
}

func (rd *Reader) start() error {
	hdr := make([]byte, 5)
	if _, err := io.ReadFull(rd.br, hdr); err != nil {
		return errors.Wrap(ErrMalformed, "byte tree header")
	}
	length := binary.BigEndian.Uint32(hdr[1:])
	switch hdr[0] {
	case tagLeaf:
		if maxLeafLen < length {
			return errors.Wrap(ErrMalformed, "leaf too large")
		}
		// rewind conceptually: yield the leaf as the only child
		data := make([]byte, length)
		if _, err := io.ReadFull(rd.br, data); err != nil {
			return errors.Wrap(ErrMalformed, "leaf data")
		}
		rd.pending = NewLeaf(data)
		rd.remaining = 1
	case tagNode:
		if maxChildren < length {
			return errors.Wrap(ErrMalformed, "too many children")
		}
		rd.remaining = int(length)
	default:
		return errors.Wrapf(ErrMalformed, "unknown tag %#x", hdr[0])
	}
	rd.started = true
	return nil
}

// NextChild parses and returns the next complete child tree.
func (rd *Reader) NextChild() (*ByteTree, error) {
	if !rd.started {
		if err := rd.start(); err != nil {
			return nil, err
		}
	}
	if rd.remaining == 0 {
		return nil, io.EOF
	}
	rd.remaining--
	if rd.pending != nil {
		bt := rd.pending
		rd.pending = nil
		return bt, nil
	}
	return readTree(rd.br)
}

// Remaining returns the number of children not yet read, or -1 before the
// root header has been consumed.
func (rd *Reader) Remaining() int {
	if !rd.started {
		return -1
	}
	return rd.remaining
}

func (rd *Reader) Close() error {
	if rd.closer != nil {
		return rd.closer.Close()
	}
	return nil
}
