// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package group

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"

	"github.com/verificatum/verificatum-vmn-sub000/bytetree"
)

// Tuple is an element of a product group: one component element per slot.
type Tuple []Element

func (t Tuple) String() string {
	return fmt.Sprintf("%v", []Element(t))
}

// ProductGroup is the width-w power of one base group with componentwise
// arithmetic. Elements encode as a node with one child per component.
type ProductGroup struct {
	base  Group
	width int
}

func (pg *ProductGroup) ID() string {
	return fmt.Sprintf("%s^%d", pg.base.ID(), pg.width)
}

func (pg *ProductGroup) Order() *big.Int {
	return pg.base.Order()
}

func (pg *ProductGroup) Generator() Element {
	return pg.replicate(pg.base.Generator())
}

func (pg *ProductGroup) One() Element {
	return pg.replicate(pg.base.One())
}

func (pg *ProductGroup) Width() int {
	return pg.width
}

func (pg *ProductGroup) Project(i int) Group {
	if i < 0 || pg.width <= i {
		panic(errors.Errorf("product group: project index %d out of range", i))
	}
	return pg.base
}

// ProjectElement returns the i:th component of a product element.
func (pg *ProductGroup) ProjectElement(x Element, i int) Element {
	if i < 0 || pg.width <= i {
		panic(errors.Errorf("product group: project index %d out of range", i))
	}
	return pg.tuple(x)[i]
}

func (pg *ProductGroup) Mul(x, y Element) Element {
	a, b := pg.tuple(x), pg.tuple(y)
	out := make(Tuple, pg.width)
	for i := range out {
		out[i] = pg.base.Mul(a[i], b[i])
	}
	return out
}

func (pg *ProductGroup) Inv(x Element) Element {
	a := pg.tuple(x)
	out := make(Tuple, pg.width)
	for i := range out {
		out[i] = pg.base.Inv(a[i])
	}
	return out
}

func (pg *ProductGroup) Exp(x Element, e *big.Int) Element {
	a := pg.tuple(x)
	out := make(Tuple, pg.width)
	for i := range out {
		out[i] = pg.base.Exp(a[i], e)
	}
	return out
}

func (pg *ProductGroup) Equal(x, y Element) bool {
	a, b := pg.tuple(x), pg.tuple(y)
	for i := range a {
		if !pg.base.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func (pg *ProductGroup) ElementByteLen() int {
	return pg.width * pg.base.ElementByteLen()
}

func (pg *ProductGroup) ToByteTree(x Element) *bytetree.ByteTree {
	a := pg.tuple(x)
	children := make([]*bytetree.ByteTree, pg.width)
	for i := range children {
		children[i] = pg.base.ToByteTree(a[i])
	}
	return bytetree.NewNode(children...)
}

func (pg *ProductGroup) FromByteTree(bt *bytetree.ByteTree) (Element, error) {
	if bt == nil || bt.IsLeaf() || bt.Len() != pg.width {
		return nil, errors.Wrap(ErrMalformedElement, "product group: bad node")
	}
	out := make(Tuple, pg.width)
	for i := range out {
		child, err := bt.Child(i)
		if err != nil {
			return nil, errors.Wrap(ErrMalformedElement, "product group: missing component")
		}
		x, err := pg.base.FromByteTree(child)
		if err != nil {
			return nil, err
		}
		out[i] = x
	}
	return out, nil
}

func (pg *ProductGroup) replicate(x Element) Tuple {
	out := make(Tuple, pg.width)
	for i := range out {
		out[i] = x
	}
	return out
}

func (pg *ProductGroup) tuple(x Element) Tuple {
	t, ok := x.(Tuple)
	if !ok || len(t) != pg.width {
		panic(errors.Errorf("product group: foreign element %T", x))
	}
	return t
}
