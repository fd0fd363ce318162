// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package group

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/verificatum/verificatum-vmn-sub000/bytetree"
)

// ElementArray is an ordered, fixed-length sequence of elements of one
// group. Arrays are single-owner: the owner calls Free when done.
type ElementArray struct {
	grp   Group
	elems []Element
}

func NewElementArray(g Group, elems []Element) *ElementArray {
	return &ElementArray{grp: g, elems: elems}
}

// Ones returns the length-n array of identity elements.
func Ones(g Group, n int) *ElementArray {
	elems := make([]Element, n)
	one := g.One()
	for i := range elems {
		elems[i] = one
	}
	return NewElementArray(g, elems)
}

func (a *ElementArray) Group() Group {
	return a.grp
}

func (a *ElementArray) Size() int {
	return len(a.elems)
}

func (a *ElementArray) Get(i int) Element {
	return a.elems[i]
}

// Mul is the pointwise product of two arrays of equal length.
func (a *ElementArray) Mul(b *ElementArray) *ElementArray {
	if len(a.elems) != len(b.elems) {
		panic(errors.Errorf("element array: size mismatch %d != %d", len(a.elems), len(b.elems)))
	}
	out := make([]Element, len(a.elems))
	for i := range out {
		out[i] = a.grp.Mul(a.elems[i], b.elems[i])
	}
	return NewElementArray(a.grp, out)
}

// Exp raises every element to the same plain integer exponent.
func (a *ElementArray) Exp(e *big.Int) *ElementArray {
	out := make([]Element, len(a.elems))
	for i := range out {
		out[i] = a.grp.Exp(a.elems[i], e)
	}
	return NewElementArray(a.grp, out)
}

// ExpProd computes the product of a[i]^exps[i] with simultaneous
// multi-exponentiation, splitting the bases over at most concurrency
// workers. The result is independent of the worker count.
func (a *ElementArray) ExpProd(exps []*big.Int, concurrency int) Element {
	return ExpProd(a.grp, a.elems, exps, concurrency)
}

// Project returns the array of i:th components of a product-group array.
func (a *ElementArray) Project(i int) *ElementArray {
	pg, ok := a.grp.(*ProductGroup)
	if !ok {
		if i == 0 {
			return a
		}
		panic(errors.Errorf("element array: project index %d on atomic array", i))
	}
	out := make([]Element, len(a.elems))
	for j := range out {
		out[j] = pg.ProjectElement(a.elems[j], i)
	}
	return NewElementArray(pg.Project(i), out)
}

func (a *ElementArray) ToByteTree() *bytetree.ByteTree {
	children := make([]*bytetree.ByteTree, len(a.elems))
	for i, x := range a.elems {
		children[i] = a.grp.ToByteTree(x)
	}
	return bytetree.NewNode(children...)
}

// ArrayFromByteTree decodes a node with exactly size element children.
func ArrayFromByteTree(g Group, size int, bt *bytetree.ByteTree) (*ElementArray, error) {
	if bt == nil || bt.IsLeaf() || bt.Len() != size {
		return nil, errors.Wrap(ErrMalformedElement, "element array: bad node")
	}
	elems := make([]Element, size)
	for i := range elems {
		child, err := bt.Child(i)
		if err != nil {
			return nil, errors.Wrap(ErrMalformedElement, "element array: missing child")
		}
		x, err := g.FromByteTree(child)
		if err != nil {
			return nil, err
		}
		elems[i] = x
	}
	return NewElementArray(g, elems), nil
}

// ArrayFromReader decodes exactly size elements child by child from a lazy
// byte tree reader.
func ArrayFromReader(g Group, size int, rd *bytetree.Reader) (*ElementArray, error) {
	elems := make([]Element, size)
	for i := range elems {
		child, err := rd.NextChild()
		if err != nil {
			return nil, errors.Wrap(ErrMalformedElement, "element array: short node")
		}
		x, err := g.FromByteTree(child)
		if err != nil {
			return nil, err
		}
		elems[i] = x
	}
	if rd.Remaining() != 0 {
		return nil, errors.Wrap(ErrMalformedElement, "element array: trailing children")
	}
	return NewElementArray(g, elems), nil
}

// Free releases the backing storage. The array must not be used afterwards.
func (a *ElementArray) Free() {
	a.elems = nil
}
