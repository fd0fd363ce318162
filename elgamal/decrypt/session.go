// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package decrypt implements the distributed, threshold, verifiable
// El-Gamal decryption session: each party contributes a decryption factor
// for the whole ciphertext array and proves, in one batched sigma protocol,
// that the contribution matches its public key. Verification is optimistic:
// a single combined check over a threshold subset is tried first and only on
// failure does the session fall back to checking every party separately.
package decrypt

import (
	"context"
	"math/big"

	"github.com/verificatum/verificatum-vmn-sub000/board"
	"github.com/verificatum/verificatum-vmn-sub000/bytetree"
	"github.com/verificatum/verificatum-vmn-sub000/challenger"
	"github.com/verificatum/verificatum-vmn-sub000/common"
	"github.com/verificatum/verificatum-vmn-sub000/crypto/group"
	"github.com/verificatum/verificatum-vmn-sub000/crypto/prg"
	"github.com/verificatum/verificatum-vmn-sub000/elgamal"
	"github.com/verificatum/verificatum-vmn-sub000/elgamal/keygen"
)

// On-board message labels within a session.
const (
	LabelFactors    = "DecryptionFactors"
	LabelCommitment = "Commitment"
	LabelReply      = "Reply"
)

// Session orchestrates one decryption run: it drives the bulletin board
// exchanges, feeds SessionBasic, writes the proof transcript and computes
// the plaintexts.
type Session struct {
	params *elgamal.Parameters
	view   keygen.View
	brd    board.Board
	basic  *SessionBasic
	tr     *Transcript

	// correct is indexed 1..k with slot 0 unused. Entries only ever flip
	// from true to false.
	correct []bool

	// subsession marks a run whose key material artifacts were produced by
	// an enclosing protocol; the session then consumes rather than writes
	// PolynomialInExponent and FullPublicKey.
	subsession bool
}

func NewSession(params *elgamal.Parameters, view keygen.View, brd board.Board, transcriptDir string) (*Session, error) {
	basic, err := NewSessionBasic(params)
	if err != nil {
		return nil, err
	}
	tr, err := NewTranscript(transcriptDir)
	if err != nil {
		return nil, err
	}
	correct := make([]bool, params.PartyCount()+1)
	for l := 1; l <= params.PartyCount(); l++ {
		correct[l] = true
	}
	return &Session{
		params:  params,
		view:    view,
		brd:     brd,
		basic:   basic,
		tr:      tr,
		correct: correct,
	}, nil
}

func (s *Session) SetSubsession(subsession bool) {
	s.subsession = subsession
}

// Correct returns a copy of the verdict array, indexed 1..k with slot 0
// unused.
func (s *Session) Correct() []bool {
	out := make([]bool, len(s.correct))
	copy(out, s.correct)
	return out
}

// Free releases the element arrays owned by the session state.
func (s *Session) Free() {
	s.basic.Free()
}

// Decrypt runs the full protocol over the ciphertext array and returns the
// plaintext array. A non-nil error wrapping ErrTranscriptIO accompanies
// valid plaintexts when only transcript persistence failed; all other errors
// are fatal and yield no plaintexts.
func (s *Session) Decrypt(ctx context.Context, cts *elgamal.Ciphertexts) (*group.ElementArray, error) {
	j := s.params.PartyIndex()
	k := s.params.PartyCount()
	n := cts.Size()
	grp := s.params.KeyGroup()
	chal := s.newChallenger(ctx)

	common.Logger.Infof("party %d: %s starting, %d parties, threshold %d, %d ciphertexts",
		j, TaskName, k, s.params.Threshold(), n)

	s.tr.WriteActiveThreshold(s.params.Threshold())
	s.tr.WriteByteTree(FileCiphertexts, cts.ToByteTree())
	if !s.subsession {
		s.tr.WriteByteTree(FilePolynomialInExponent, s.view.PolynomialInExponent())
		s.tr.WriteByteTree(FileFullPublicKey, grp.ToByteTree(s.view.JointPublicKey()))
	}

	// own decryption factor
	pubKeys := make([]group.Element, k+1)
	for l := 1; l <= k; l++ {
		pubKeys[l] = s.view.PublicKey(l)
	}
	if err := s.basic.SetInstance(s.view.Generator(), cts.U, pubKeys, s.view.SecretShare(), s.view.JointPublicKey()); err != nil {
		return nil, err
	}
	fj := s.basic.OwnFactor()
	if err := s.brd.Publish(LabelFactors, fj.ToByteTree()); err != nil {
		return nil, NewError(err, "publish factors", j)
	}

	// exchange factors; a missing or malformed array flips the verdict and
	// is substituted with the all-one array so arithmetic stays defined
	for l := 1; l <= k; l++ {
		if l == j {
			s.tr.WriteByteTree(FactorsFile(l), fj.ToByteTree())
			continue
		}
		fa, ok := s.readFactors(ctx, l, n)
		if !ok {
			s.markIncorrect(l, "factors")
			fa = group.Ones(grp, n)
		}
		s.basic.SetFactor(l, fa)
		s.tr.WriteByteTree(FactorsFile(l), fa.ToByteTree())
	}

	// optimistic combination over the first threshold correct parties
	fc, err := s.basic.CombineFactors(s.correct)
	if err != nil {
		return nil, NewError(err, "combine factors", j)
	}
	s.basic.SetCombinedFactors(fc)

	// batching seed over the full instance and all published factors
	seed, err := chal.Seed(s.seedData(cts), prg.SeedByteLen)
	if err != nil {
		return nil, NewError(err, "seed", j)
	}
	stream, err := prg.New(seed)
	if err != nil {
		return nil, NewError(err, "seed", j)
	}
	e, err := prg.ReadInts(stream, n, s.params.Ebitlen())
	if err != nil {
		return nil, NewError(err, "seed", j)
	}
	if err := s.basic.SetBatchVector(e); err != nil {
		return nil, err
	}

	// exchange commitments
	yp, bp, err := s.basic.Commitment()
	if err != nil {
		return nil, err
	}
	if err := s.brd.Publish(LabelCommitment, bytetree.NewNode(grp.ToByteTree(yp), grp.ToByteTree(bp))); err != nil {
		return nil, NewError(err, "publish commitment", j)
	}
	for l := 1; l <= k; l++ {
		if l != j {
			ypl, bpl, ok := s.readCommitment(ctx, l)
			if !ok {
				s.markIncorrect(l, "commitment")
				ypl, bpl = s.view.Generator(), s.basic.BatchedLeft()
			}
			s.basic.SetCommitment(l, ypl, bpl)
		}
		cy, cb := s.basic.CommitmentOf(l)
		s.tr.WriteByteTree(CommitmentFile(l), bytetree.NewNode(grp.ToByteTree(cy), grp.ToByteTree(cb)))
	}

	// challenge over the seed and every commitment
	c, err := chal.Challenge(s.challengeData(seed), s.params.Vbitlen())
	if err != nil {
		return nil, NewError(err, "challenge", j)
	}

	// exchange replies
	kx, err := s.basic.Reply(c)
	if err != nil {
		return nil, err
	}
	qLen := s.scalarByteLen()
	if err := s.brd.Publish(LabelReply, bytetree.LeafBigInt(kx, qLen)); err != nil {
		return nil, NewError(err, "publish reply", j)
	}
	for l := 1; l <= k; l++ {
		if l != j {
			kxl, ok := s.readReply(ctx, l)
			if !ok {
				s.markIncorrect(l, "reply")
				kxl = big.NewInt(0)
			}
			s.basic.SetReply(l, kxl)
		}
		s.tr.WriteByteTree(ReplyFile(l), bytetree.LeafBigInt(s.basic.kx[l], qLen))
	}

	// combined verification, falling back to per-party checks on failure
	combinedOK := false
	if err := s.basic.Combine(s.correct); err == nil {
		combinedOK = s.basic.VerifyCombined(c)
	}
	if !combinedOK {
		common.Logger.Warnf("party %d: combined proof rejected, verifying parties separately", j)
		for l := 1; l <= k; l++ {
			if l == j || !s.correct[l] {
				continue
			}
			if !s.basic.VerifySeparate(l, c) {
				s.markIncorrect(l, "proof")
			}
		}
		fc, err := s.basic.CombineFactors(s.correct)
		if err != nil {
			return nil, NewError(err, "recombine factors", j, s.culprits()...)
		}
		s.basic.SetCombinedFactors(fc)
	}

	// plaintexts: v * F_c = v * u^-s
	plain := cts.V.Mul(s.basic.CombinedFactors())
	s.basic.SetCombinedFactors(nil)

	s.tr.WriteByteTree(FileCorrectIndices, bytetree.LeafBools(s.correct[1:]))

	common.Logger.Infof("party %d: %s finished!", j, TaskName)
	return plain, s.tr.Err()
}

func (s *Session) newChallenger(ctx context.Context) challenger.Challenger {
	if s.params.NonInteractive() {
		return challenger.NewRO(s.params.ROHash(), s.params.GlobalPrefix())
	}
	coins := challenger.NewCoinFlip(ctx, s.brd, s.params.ROHash(), s.params.Rand(),
		s.params.PartyIndex(), s.params.PartyCount())
	return challenger.NewInteractive(coins)
}

// seedData binds the batching seed to the instance inputs (generator and
// ciphertexts) and outputs (polynomial in the exponent and all published
// factors).
func (s *Session) seedData(cts *elgamal.Ciphertexts) *bytetree.ByteTree {
	grp := s.params.KeyGroup()
	inputs := bytetree.NewNode(grp.ToByteTree(s.view.Generator()), cts.ToByteTree())
	outs := make([]*bytetree.ByteTree, s.params.PartyCount()+1)
	outs[0] = s.view.PolynomialInExponent()
	for l := 1; l <= s.params.PartyCount(); l++ {
		outs[l] = s.basic.Factor(l).ToByteTree()
	}
	return bytetree.NewNode(inputs, bytetree.NewNode(outs...))
}

func (s *Session) challengeData(seed []byte) *bytetree.ByteTree {
	grp := s.params.KeyGroup()
	cmts := make([]*bytetree.ByteTree, s.params.PartyCount())
	for l := 1; l <= s.params.PartyCount(); l++ {
		cy, cb := s.basic.CommitmentOf(l)
		cmts[l-1] = bytetree.NewNode(grp.ToByteTree(cy), grp.ToByteTree(cb))
	}
	return bytetree.NewNode(bytetree.NewLeaf(seed), bytetree.NewNode(cmts...))
}

func (s *Session) readFactors(ctx context.Context, l, n int) (*group.ElementArray, bool) {
	if !s.brd.IsActive(l) {
		return nil, false
	}
	rd, err := s.brd.WaitFor(ctx, l, LabelFactors)
	if err != nil {
		return nil, false
	}
	defer rd.Close()
	fa, err := group.ArrayFromReader(s.params.KeyGroup(), n, rd)
	if err != nil {
		common.Logger.Debugf("party %d: factors of party %d rejected: %v", s.params.PartyIndex(), l, err)
		return nil, false
	}
	return fa, true
}

func (s *Session) readCommitment(ctx context.Context, l int) (group.Element, group.Element, bool) {
	if !s.brd.IsActive(l) {
		return nil, nil, false
	}
	rd, err := s.brd.WaitFor(ctx, l, LabelCommitment)
	if err != nil {
		return nil, nil, false
	}
	defer rd.Close()
	grp := s.params.KeyGroup()
	first, err := rd.NextChild()
	if err != nil {
		return nil, nil, false
	}
	yp, err := grp.FromByteTree(first)
	if err != nil {
		return nil, nil, false
	}
	second, err := rd.NextChild()
	if err != nil {
		return nil, nil, false
	}
	bp, err := grp.FromByteTree(second)
	if err != nil {
		return nil, nil, false
	}
	return yp, bp, true
}

func (s *Session) readReply(ctx context.Context, l int) (*big.Int, bool) {
	if !s.brd.IsActive(l) {
		return nil, false
	}
	rd, err := s.brd.WaitFor(ctx, l, LabelReply)
	if err != nil {
		return nil, false
	}
	defer rd.Close()
	leaf, err := rd.NextChild()
	if err != nil || !leaf.IsLeaf() || len(leaf.Data()) != s.scalarByteLen() {
		return nil, false
	}
	kx := new(big.Int).SetBytes(leaf.Data())
	if kx.Cmp(s.params.KeyGroup().Order()) >= 0 {
		return nil, false
	}
	return kx, true
}

func (s *Session) scalarByteLen() int {
	return (s.params.KeyGroup().Order().BitLen() + 7) / 8
}

func (s *Session) markIncorrect(l int, step string) {
	if s.correct[l] {
		common.Logger.Warnf("party %d: marking party %d incorrect at %s", s.params.PartyIndex(), l, step)
		s.correct[l] = false
	}
}

func (s *Session) culprits() []int {
	var out []int
	for l := 1; l < len(s.correct); l++ {
		if !s.correct[l] {
			out = append(out, l)
		}
	}
	return out
}
