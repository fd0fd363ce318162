// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package bytetree implements the canonical, self-delimiting binary tree
// format used for bulletin board messages and proof transcript files. A tree
// is either a leaf carrying raw bytes or a node holding an ordered list of
// child trees. Leaves are encoded as tag 0x01 followed by a 4-byte big-endian
// length and the data; nodes as tag 0x00 followed by a 4-byte big-endian
// child count and the encoded children.
package bytetree

import (
	"bytes"
	"encoding/binary"
	"io"
	"math/big"

	"github.com/pkg/errors"

	"github.com/verificatum/verificatum-vmn-sub000/common"
)

const (
	tagNode = byte(0x00)
	tagLeaf = byte(0x01)

	// decoding limits; anything larger is treated as malformed
	maxLeafLen  = 1 << 30
	maxChildren = 1 << 24
)

// ErrMalformed is reported for every structural decoding error.
var ErrMalformed = errors.New("malformed byte tree")

type ByteTree struct {
	leaf     []byte
	children []*ByteTree
	isLeaf   bool
}

func NewLeaf(data []byte) *ByteTree {
	return &ByteTree{leaf: data, isLeaf: true}
}

func NewNode(children ...*ByteTree) *ByteTree {
	return &ByteTree{children: children}
}

// LeafUint32 returns a 4-byte big-endian integer leaf.
func LeafUint32(v uint32) *ByteTree {
	bz := make([]byte, 4)
	binary.BigEndian.PutUint32(bz, v)
	return NewLeaf(bz)
}

func LeafString(s string) *ByteTree {
	return NewLeaf([]byte(s))
}

// LeafBigInt returns a fixed-width big-endian leaf holding the minimal
// positive representative of x. x must fit in byteLen bytes.
func LeafBigInt(x *big.Int, byteLen int) *ByteTree {
	return NewLeaf(common.PaddedBytes(x, byteLen))
}

// LeafBools encodes a boolean array as a leaf with one byte per flag.
func LeafBools(flags []bool) *ByteTree {
	bz := make([]byte, len(flags))
	for i, f := range flags {
		if f {
			bz[i] = 1
		}
	}
	return NewLeaf(bz)
}

func (bt *ByteTree) IsLeaf() bool {
	return bt.isLeaf
}

// Data returns the raw bytes of a leaf, or nil for a node.
func (bt *ByteTree) Data() []byte {
	return bt.leaf
}

// Len returns the number of children of a node, or 0 for a leaf.
func (bt *ByteTree) Len() int {
	return len(bt.children)
}

func (bt *ByteTree) Child(i int) (*ByteTree, error) {
	if bt.isLeaf || i < 0 || len(bt.children) <= i {
		return nil, errors.Wrapf(ErrMalformed, "no child %d", i)
	}
	return bt.children[i], nil
}

// Uint32 decodes a 4-byte big-endian integer leaf.
func (bt *ByteTree) Uint32() (uint32, error) {
	if !bt.isLeaf || len(bt.leaf) != 4 {
		return 0, errors.Wrap(ErrMalformed, "expected a 4-byte integer leaf")
	}
	return binary.BigEndian.Uint32(bt.leaf), nil
}

// Bools decodes a boolean array leaf of the expected length.
func (bt *ByteTree) Bools(expectLen int) ([]bool, error) {
	if !bt.isLeaf || len(bt.leaf) != expectLen {
		return nil, errors.Wrap(ErrMalformed, "expected a boolean array leaf")
	}
	flags := make([]bool, expectLen)
	for i, b := range bt.leaf {
		switch b {
		case 0:
		case 1:
			flags[i] = true
		default:
			return nil, errors.Wrap(ErrMalformed, "boolean leaf byte out of range")
		}
	}
	return flags, nil
}

func (bt *ByteTree) marshalSize() int {
	if bt.isLeaf {
		return 5 + len(bt.leaf)
	}
	size := 5
	for _, c := range bt.children {
		size += c.marshalSize()
	}
	return size
}

func (bt *ByteTree) Marshal() []byte {
	buf := bytes.NewBuffer(make([]byte, 0, bt.marshalSize()))
	_, _ = bt.WriteTo(buf) // writes to a Buffer cannot fail
	return buf.Bytes()
}

func (bt *ByteTree) WriteTo(w io.Writer) (int64, error) {
	hdr := make([]byte, 5)
	if bt.isLeaf {
		hdr[0] = tagLeaf
		binary.BigEndian.PutUint32(hdr[1:], uint32(len(bt.leaf)))
		n, err := w.Write(hdr)
		written := int64(n)
		if err != nil {
			return written, err
		}
		n, err = w.Write(bt.leaf)
		return written + int64(n), err
	}
	hdr[0] = tagNode
	binary.BigEndian.PutUint32(hdr[1:], uint32(len(bt.children)))
	n, err := w.Write(hdr)
	written := int64(n)
	if err != nil {
		return written, err
	}
	for _, c := range bt.children {
		cn, err := c.WriteTo(w)
		written += cn
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// Unmarshal parses exactly one byte tree from data. Trailing bytes are a
// structural error.
func Unmarshal(data []byte) (*ByteTree, error) {
	r := bytes.NewReader(data)
	bt, err := readTree(r)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, errors.Wrap(ErrMalformed, "trailing bytes after byte tree")
	}
	return bt, nil
}

func readTree(r io.Reader) (*ByteTree, error) {
	hdr := make([]byte, 5)
	if _, err := io.ReadFull(r, hdr); err != nil {
		return nil, errors.Wrap(ErrMalformed, "byte tree header")
	}
	length := binary.BigEndian.Uint32(hdr[1:])
	switch hdr[0] {
	case tagLeaf:
		if maxLeafLen < length {
			return nil, errors.Wrap(ErrMalformed, "leaf too large")
		}
		data := make([]byte, length)
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, errors.Wrap(ErrMalformed, "leaf data")
		}
		return NewLeaf(data), nil
	case tagNode:
		if maxChildren < length {
			return nil, errors.Wrap(ErrMalformed, "too many children")
		}
		children := make([]*ByteTree, length)
		for i := range children {
			c, err := readTree(r)
			if err != nil {
				return nil, err
			}
			children[i] = c
		}
		return NewNode(children...), nil
	default:
		return nil, errors.Wrapf(ErrMalformed, "unknown tag %#x", hdr[0])
	}
}
