// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package decrypt

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/verificatum/verificatum-vmn-sub000/common"
	"github.com/verificatum/verificatum-vmn-sub000/crypto/group"
	"github.com/verificatum/verificatum-vmn-sub000/crypto/vss"
	"github.com/verificatum/verificatum-vmn-sub000/elgamal"
)

type sessionState int

const (
	stateCreated sessionState = iota
	stateInstanceSet
	stateBatched
	stateCommitted
	stateReplied
	stateFreed
)

// SessionBasic is the pure per-session state of the batched proof of correct
// decryption: batching, commitment, reply, combination and verification. It
// performs no I/O; Session drives all transitions.
//
// The proof shows, for every party l, equality of the discrete logarithms of
// y_l w.r.t. g and of the batched decryption factor w.r.t. the batched left
// components, compressed over all ciphertexts by a random batching vector.
type SessionBasic struct {
	params *elgamal.Parameters
	grp    group.Group
	q      *big.Int

	// clearing constant for the Lagrange denominators and its inverse
	pi, piInv *big.Int

	state sessionState

	g, jointY group.Element
	u         *group.ElementArray
	x         *big.Int
	// dExp = -x * pi^-1 mod q, the exponent of the own decryption factor
	dExp *big.Int

	y []group.Element        // per-party public keys, indexed 1..k
	f []*group.ElementArray  // per-party decryption factors, indexed 1..k

	e    []*big.Int    // batching vector
	bigA group.Element // A = u^e

	yPrime []group.Element // commitments y'_l, indexed 1..k
	bPrime []group.Element // commitments B'_l, indexed 1..k
	kx     []*big.Int      // replies k_x,l, indexed 1..k
	r      *big.Int        // own blinder

	fc              *group.ElementArray // combined factors F_c
	yPrimeC, bPrimeC group.Element
	kxC             *big.Int
}

func NewSessionBasic(params *elgamal.Parameters) (*SessionBasic, error) {
	grp := params.KeyGroup()
	q := grp.Order()
	pi, piInv, err := vss.ClearingConstant(params.PartyCount(), q)
	if err != nil {
		return nil, errors.Wrapf(ErrInternal, "session basic: %v", err)
	}
	k := params.PartyCount()
	return &SessionBasic{
		params: params,
		grp:    grp,
		q:      q,
		pi:     pi,
		piInv:  piInv,
		state:  stateCreated,
		y:      make([]group.Element, k+1),
		f:      make([]*group.ElementArray, k+1),
		yPrime: make([]group.Element, k+1),
		bPrime: make([]group.Element, k+1),
		kx:     make([]*big.Int, k+1),
	}, nil
}

// SetInstance binds the proof instance: generator, left ciphertext
// components, per-party public keys (indexed 1..k), the own secret share and
// the joint public key.
func (sb *SessionBasic) SetInstance(g group.Element, u *group.ElementArray, y []group.Element, x *big.Int, jointY group.Element) error {
	if sb.state != stateCreated {
		return NewError(errors.Wrap(ErrInternal, "instance already set"), "setInstance", sb.params.PartyIndex())
	}
	sb.g = g
	sb.u = u
	copy(sb.y, y)
	sb.x = new(big.Int).Mod(x, sb.q)
	sb.jointY = jointY
	modQ := common.ModInt(sb.q)
	sb.dExp = modQ.Neg(modQ.Mul(sb.x, sb.piInv))
	sb.state = stateInstanceSet
	return nil
}

// OwnFactor computes, stores and returns the own decryption factor
// f_j = u^(-x_j * pi^-1) pointwise.
func (sb *SessionBasic) OwnFactor() *group.ElementArray {
	fj := sb.u.Exp(common.SymmetricMod(sb.dExp, sb.q))
	sb.f[sb.params.PartyIndex()] = fj
	return fj
}

// SetFactor stores party l's decryption factor array.
func (sb *SessionBasic) SetFactor(l int, fa *group.ElementArray) {
	sb.f[l] = fa
}

func (sb *SessionBasic) Factor(l int) *group.ElementArray {
	return sb.f[l]
}

// CombineFactors raises the factors of the first threshold correct parties
// to their modified Lagrange coefficients and multiplies them pointwise,
// yielding F_c = u^-s for honest inputs.
func (sb *SessionBasic) CombineFactors(correct []bool) (*group.ElementArray, error) {
	indices, lambdas, err := vss.Coefficients(correct, sb.params.Threshold(), sb.pi, sb.q)
	if err != nil {
		return nil, ErrNotEnoughShares
	}
	var fc *group.ElementArray
	for i, l := range indices {
		part := sb.f[l].Exp(lambdas[i])
		if fc == nil {
			fc = part
		} else {
			prev := fc
			fc = fc.Mul(part)
			prev.Free()
			part.Free()
		}
	}
	return fc, nil
}

// SetCombinedFactors installs F_c, freeing any previous combination.
func (sb *SessionBasic) SetCombinedFactors(fc *group.ElementArray) {
	if sb.fc != nil {
		sb.fc.Free()
	}
	sb.fc = fc
}

func (sb *SessionBasic) CombinedFactors() *group.ElementArray {
	return sb.fc
}

// SetBatchVector installs the batching vector and computes the batched left
// component A = u^e.
func (sb *SessionBasic) SetBatchVector(e []*big.Int) error {
	if sb.state != stateInstanceSet {
		return NewError(errors.Wrap(ErrInternal, "batch vector out of order"), "batch", sb.params.PartyIndex())
	}
	sb.e = e
	sb.bigA = sb.u.ExpProd(e, sb.params.Concurrency())
	sb.state = stateBatched
	return nil
}

// Commitment samples the blinder and returns the own commitment pair
// (y'_j, B'_j) = (g^r, A^r).
func (sb *SessionBasic) Commitment() (group.Element, group.Element, error) {
	if sb.state != stateBatched {
		return nil, nil, NewError(errors.Wrap(ErrInternal, "commitment out of order"), "commit", sb.params.PartyIndex())
	}
	sb.r = common.GetRandomIntStatDist(sb.params.Rand(), sb.q, sb.params.Rbitlen())
	j := sb.params.PartyIndex()
	sb.yPrime[j] = sb.grp.Exp(sb.g, sb.r)
	sb.bPrime[j] = sb.grp.Exp(sb.bigA, sb.r)
	sb.state = stateCommitted
	return sb.yPrime[j], sb.bPrime[j], nil
}

func (sb *SessionBasic) SetCommitment(l int, yp, bp group.Element) {
	sb.yPrime[l] = yp
	sb.bPrime[l] = bp
}

func (sb *SessionBasic) CommitmentOf(l int) (group.Element, group.Element) {
	return sb.yPrime[l], sb.bPrime[l]
}

// BatchedLeft returns A = u^e.
func (sb *SessionBasic) BatchedLeft() group.Element {
	return sb.bigA
}

// Reply computes the own reply k_x,j = r + (-x_j * pi^-1) * c mod q.
func (sb *SessionBasic) Reply(c *big.Int) (*big.Int, error) {
	if sb.state != stateCommitted {
		return nil, NewError(errors.Wrap(ErrInternal, "reply out of order"), "reply", sb.params.PartyIndex())
	}
	modQ := common.ModInt(sb.q)
	j := sb.params.PartyIndex()
	sb.kx[j] = modQ.Add(sb.r, modQ.Mul(sb.dExp, c))
	sb.state = stateReplied
	return sb.kx[j], nil
}

func (sb *SessionBasic) SetReply(l int, kx *big.Int) {
	sb.kx[l] = new(big.Int).Mod(kx, sb.q)
}

// Combine folds the commitments and replies of the first threshold correct
// parties with the modified Lagrange coefficients: y'_c, B'_c and k_x,c.
func (sb *SessionBasic) Combine(correct []bool) error {
	if sb.state != stateReplied {
		return NewError(errors.Wrap(ErrInternal, "combine out of order"), "combine", sb.params.PartyIndex())
	}
	indices, lambdas, err := vss.Coefficients(correct, sb.params.Threshold(), sb.pi, sb.q)
	if err != nil {
		return ErrNotEnoughShares
	}
	modQ := common.ModInt(sb.q)
	yc := sb.grp.One()
	bc := sb.grp.One()
	kxc := big.NewInt(0)
	for i, l := range indices {
		yc = sb.grp.Mul(yc, sb.grp.Exp(sb.yPrime[l], lambdas[i]))
		bc = sb.grp.Mul(bc, sb.grp.Exp(sb.bPrime[l], lambdas[i]))
		kxc = modQ.Add(kxc, new(big.Int).Mul(lambdas[i], sb.kx[l]))
	}
	sb.yPrimeC, sb.bPrimeC, sb.kxC = yc, bc, kxc
	return nil
}

// VerifyCombined checks the combined proof against the challenge:
// Y^-c * y'_c == g^k_x,c and B_c^c * B'_c == A^k_x,c with B_c = F_c^e.
func (sb *SessionBasic) VerifyCombined(c *big.Int) bool {
	if sb.yPrimeC == nil || sb.fc == nil {
		return false
	}
	negC := new(big.Int).Neg(c)
	lhs1 := sb.grp.Mul(sb.grp.Exp(sb.jointY, negC), sb.yPrimeC)
	if !sb.grp.Equal(lhs1, sb.grp.Exp(sb.g, sb.kxC)) {
		return false
	}
	bigB := sb.fc.ExpProd(sb.e, sb.params.Concurrency())
	lhs2 := sb.grp.Mul(sb.grp.Exp(bigB, c), sb.bPrimeC)
	return sb.grp.Equal(lhs2, sb.grp.Exp(sb.bigA, sb.kxC))
}

// VerifySeparate checks party l's own sigma transcript:
// y_l^(-pi^-1 * c) * y'_l == g^k_x,l and B_l^c * B'_l == A^k_x,l with
// B_l = f_l^e.
func (sb *SessionBasic) VerifySeparate(l int, c *big.Int) bool {
	if sb.yPrime[l] == nil || sb.bPrime[l] == nil || sb.kx[l] == nil || sb.f[l] == nil {
		return false
	}
	modQ := common.ModInt(sb.q)
	exp := common.SymmetricMod(modQ.Neg(modQ.Mul(sb.piInv, c)), sb.q)
	lhs1 := sb.grp.Mul(sb.grp.Exp(sb.y[l], exp), sb.yPrime[l])
	if !sb.grp.Equal(lhs1, sb.grp.Exp(sb.g, sb.kx[l])) {
		return false
	}
	bigB := sb.f[l].ExpProd(sb.e, sb.params.Concurrency())
	lhs2 := sb.grp.Mul(sb.grp.Exp(bigB, c), sb.bPrime[l])
	return sb.grp.Equal(lhs2, sb.grp.Exp(sb.bigA, sb.kx[l]))
}

// Free releases all owned element arrays. The session must not be used
// afterwards.
func (sb *SessionBasic) Free() {
	for _, fa := range sb.f {
		if fa != nil {
			fa.Free()
		}
	}
	if sb.fc != nil {
		sb.fc.Free()
	}
	sb.e = nil
	sb.state = stateFreed
}
