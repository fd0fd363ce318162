// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package group

import (
	"crypto/elliptic"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec"
	"github.com/decred/dcrd/dcrec/edwards/v2"
	"github.com/pkg/errors"

	"github.com/verificatum/verificatum-vmn-sub000/bytetree"
	"github.com/verificatum/verificatum-vmn-sub000/common"
)

type CurveName string

const (
	Secp256k1 CurveName = "secp256k1"
	Ed25519   CurveName = "ed25519"
)

var curveRegistry = map[CurveName]elliptic.Curve{
	Secp256k1: btcec.S256(),
	Ed25519:   edwards.Edwards(),
}

// RegisterCurve adds a curve to the registry used by NewECGroup.
func RegisterCurve(name CurveName, curve elliptic.Curve) {
	curveRegistry[name] = curve
}

// Point is an affine curve point. The point at infinity is marked explicitly
// since short Weierstrass curves have no affine representation for it.
type Point struct {
	x, y *big.Int
	inf  bool
}

func (pt *Point) String() string {
	if pt.inf {
		return "(inf)"
	}
	return fmt.Sprintf("(%x,%x)", pt.x, pt.y)
}

// ECGroup adapts an elliptic curve to the Group capability. The group
// operation is written multiplicatively: Mul is point addition and Exp is
// scalar multiplication.
type ECGroup struct {
	name     CurveName
	curve    elliptic.Curve
	q        *big.Int
	coordLen int
	one      *Point
}

// NewECGroup looks the named curve up in the registry.
func NewECGroup(name CurveName) (*ECGroup, error) {
	curve, ok := curveRegistry[name]
	if !ok {
		return nil, errors.Errorf("ec group: unknown curve %q", name)
	}
	params := curve.Params()
	eg := &ECGroup{
		name:     name,
		curve:    curve,
		q:        params.N,
		coordLen: (params.BitSize + 7) / 8,
	}
	// twisted Edwards curves have the affine identity (0,1); short
	// Weierstrass curves only have the point at infinity
	if curve.IsOnCurve(big.NewInt(0), big.NewInt(1)) {
		eg.one = &Point{x: big.NewInt(0), y: big.NewInt(1)}
	} else {
		eg.one = &Point{inf: true}
	}
	return eg, nil
}

func (eg *ECGroup) ID() string {
	return string(eg.name)
}

func (eg *ECGroup) Order() *big.Int {
	return new(big.Int).Set(eg.q)
}

func (eg *ECGroup) Generator() Element {
	params := eg.curve.Params()
	return &Point{x: new(big.Int).Set(params.Gx), y: new(big.Int).Set(params.Gy)}
}

func (eg *ECGroup) One() Element {
	return eg.one
}

func (eg *ECGroup) Width() int {
	return 1
}

func (eg *ECGroup) Project(i int) Group {
	if i != 0 {
		panic(errors.Errorf("ec group: project index %d on atomic group", i))
	}
	return eg
}

func (eg *ECGroup) Mul(x, y Element) Element {
	a, b := eg.pt(x), eg.pt(y)
	if eg.isOne(a) {
		return b
	}
	if eg.isOne(b) {
		return a
	}
	rx, ry := eg.curve.Add(a.x, a.y, b.x, b.y)
	return eg.fromCoords(rx, ry)
}

func (eg *ECGroup) Inv(x Element) Element {
	// generic over the curve shape: x has order q, so x^-1 = x^(q-1)
	return eg.Exp(x, new(big.Int).Sub(eg.q, big.NewInt(1)))
}

func (eg *ECGroup) Exp(x Element, e *big.Int) Element {
	a := eg.pt(x)
	k := new(big.Int).Mod(e, eg.q)
	if eg.isOne(a) || k.Sign() == 0 {
		return eg.one
	}
	rx, ry := eg.curve.ScalarMult(a.x, a.y, k.Bytes())
	return eg.fromCoords(rx, ry)
}

func (eg *ECGroup) Equal(x, y Element) bool {
	a, b := eg.pt(x), eg.pt(y)
	if eg.isOne(a) || eg.isOne(b) {
		return eg.isOne(a) == eg.isOne(b)
	}
	return a.x.Cmp(b.x) == 0 && a.y.Cmp(b.y) == 0
}

func (eg *ECGroup) ElementByteLen() int {
	return 2 * eg.coordLen
}

// ToByteTree encodes the two affine coordinates fixed-width in one leaf; the
// point at infinity is all zero bytes.
func (eg *ECGroup) ToByteTree(x Element) *bytetree.ByteTree {
	a := eg.pt(x)
	bz := make([]byte, 2*eg.coordLen)
	if !a.inf {
		copy(bz, common.PaddedBytes(a.x, eg.coordLen))
		copy(bz[eg.coordLen:], common.PaddedBytes(a.y, eg.coordLen))
	}
	return bytetree.NewLeaf(bz)
}

func (eg *ECGroup) FromByteTree(bt *bytetree.ByteTree) (Element, error) {
	if bt == nil || !bt.IsLeaf() || len(bt.Data()) != 2*eg.coordLen {
		return nil, errors.Wrap(ErrMalformedElement, "ec group: bad leaf")
	}
	data := bt.Data()
	px := new(big.Int).SetBytes(data[:eg.coordLen])
	py := new(big.Int).SetBytes(data[eg.coordLen:])
	if px.Sign() == 0 && py.Sign() == 0 {
		if eg.one.inf {
			return eg.one, nil
		}
		return nil, errors.Wrap(ErrMalformedElement, "ec group: invalid identity encoding")
	}
	if !eg.curve.IsOnCurve(px, py) {
		return nil, errors.Wrap(ErrMalformedElement, "ec group: point not on curve")
	}
	p := &Point{x: px, y: py}
	// cofactor check: the point must lie in the prime-order subgroup. The
	// exponent is applied raw here; Exp would reduce it modulo q and turn
	// the check into a no-op.
	if !eg.Equal(eg.expRaw(p, eg.q), eg.one) {
		return nil, errors.Wrap(ErrMalformedElement, "ec group: point outside the prime-order subgroup")
	}
	return p, nil
}

// expRaw is double-and-add with the plain non-negative exponent, without the
// subgroup-order reduction performed by Exp.
func (eg *ECGroup) expRaw(p *Point, e *big.Int) Element {
	var out Element = eg.one
	for bit := e.BitLen() - 1; 0 <= bit; bit-- {
		out = eg.Mul(out, out)
		if e.Bit(bit) == 1 {
			out = eg.Mul(out, p)
		}
	}
	return out
}

func (eg *ECGroup) pt(x Element) *Point {
	p, ok := x.(*Point)
	if !ok {
		panic(errors.Errorf("ec group: foreign element %T", x))
	}
	return p
}

func (eg *ECGroup) isOne(p *Point) bool {
	if p.inf {
		return true
	}
	if eg.one.inf {
		// stdlib-style curves return (0,0) for the point at infinity
		return p.x.Sign() == 0 && p.y.Sign() == 0
	}
	return p.x.Cmp(eg.one.x) == 0 && p.y.Cmp(eg.one.y) == 0
}

func (eg *ECGroup) fromCoords(x, y *big.Int) *Point {
	if x.Sign() == 0 && y.Sign() == 0 && eg.one.inf {
		return eg.one
	}
	return &Point{x: x, y: y}
}
