// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package elgamal holds the protocol parameters and the ciphertext type
// shared by the key generation and decryption packages.
package elgamal

import (
	"crypto"
	"crypto/rand"
	"io"
	"runtime"

	"github.com/pkg/errors"

	"github.com/verificatum/verificatum-vmn-sub000/challenger"
	"github.com/verificatum/verificatum-vmn-sub000/crypto/group"
	"github.com/verificatum/verificatum-vmn-sub000/crypto/prg"
	"github.com/verificatum/verificatum-vmn-sub000/crypto/vss"
)

// ErrConfigInvalid is reported when a security parameter is below its floor,
// a party count exceeds the prime table bound, or an option value is
// unrecognized.
var ErrConfigInvalid = errors.New("invalid protocol configuration")

const (
	minVbitlen   = 128
	minVbitlenRO = 256
	minEbitlen   = 128
	minEbitlenRO = 256

	ArraysRAM  = "ram"
	ArraysFile = "file"
)

// Config carries the recognized protocol options. The zero value of a field
// selects its default.
type Config struct {
	KeyWidth       int    // public key arity, >= 1
	Vbitlen        int    // interactive challenge size
	VbitlenRO      int    // non-interactive challenge size
	Ebitlen        int    // interactive batching component size
	EbitlenRO      int    // non-interactive batching component size
	Rbitlen        int    // statistical distance for random sampling
	Interactive    bool   // select the coin-flip challenger instead of the random oracle
	ROHash         string // SHA-256, SHA-384 or SHA-512
	Arrays         string // ram or file
}

func DefaultConfig() Config {
	return Config{
		KeyWidth:       1,
		Vbitlen:        minVbitlen,
		VbitlenRO:      minVbitlenRO,
		Ebitlen:        minEbitlen,
		EbitlenRO:      minEbitlenRO,
		Rbitlen:        100,
		ROHash:         "SHA-256",
		Arrays:         ArraysRAM,
	}
}

// Parameters is the validated, immutable per-protocol-instance
// configuration.
type Parameters struct {
	atomic     group.Group
	keyGroup   group.Group
	sessionID  string
	self       int
	partyCount int
	threshold  int

	cfg    Config
	roHash crypto.Hash

	concurrency int
	rand        io.Reader
}

// NewParameters validates the configuration and binds it to a group and a
// session. self and threshold are in [1, partyCount].
func NewParameters(g group.Group, sessionID string, self, partyCount, threshold int, cfg Config) (*Parameters, error) {
	if cfg.KeyWidth == 0 {
		cfg.KeyWidth = 1
	}
	def := DefaultConfig()
	if cfg.Vbitlen == 0 {
		cfg.Vbitlen = def.Vbitlen
	}
	if cfg.VbitlenRO == 0 {
		cfg.VbitlenRO = def.VbitlenRO
	}
	if cfg.Ebitlen == 0 {
		cfg.Ebitlen = def.Ebitlen
	}
	if cfg.EbitlenRO == 0 {
		cfg.EbitlenRO = def.EbitlenRO
	}
	if cfg.Rbitlen == 0 {
		cfg.Rbitlen = def.Rbitlen
	}
	if cfg.ROHash == "" {
		cfg.ROHash = def.ROHash
	}
	if cfg.Arrays == "" {
		cfg.Arrays = def.Arrays
	}

	if partyCount < 1 || vss.MaxParties < partyCount {
		return nil, errors.Wrapf(ErrConfigInvalid, "party count %d outside [1, %d]", partyCount, vss.MaxParties)
	}
	if threshold < 1 || partyCount < threshold {
		return nil, errors.Wrapf(ErrConfigInvalid, "threshold %d outside [1, %d]", threshold, partyCount)
	}
	if self < 1 || partyCount < self {
		return nil, errors.Wrapf(ErrConfigInvalid, "party index %d outside [1, %d]", self, partyCount)
	}
	if cfg.KeyWidth < 1 {
		return nil, errors.Wrapf(ErrConfigInvalid, "keywidth %d < 1", cfg.KeyWidth)
	}
	if cfg.Vbitlen < minVbitlen || cfg.VbitlenRO < minVbitlenRO {
		return nil, errors.Wrapf(ErrConfigInvalid, "challenge sizes below floor: %d/%d", cfg.Vbitlen, cfg.VbitlenRO)
	}
	if cfg.Ebitlen < minEbitlen || cfg.EbitlenRO < minEbitlenRO {
		return nil, errors.Wrapf(ErrConfigInvalid, "batching sizes below floor: %d/%d", cfg.Ebitlen, cfg.EbitlenRO)
	}
	if cfg.Rbitlen < 0 {
		return nil, errors.Wrapf(ErrConfigInvalid, "rbitlen %d < 0", cfg.Rbitlen)
	}
	if cfg.Arrays != ArraysRAM && cfg.Arrays != ArraysFile {
		return nil, errors.Wrapf(ErrConfigInvalid, "unknown arrays option %q", cfg.Arrays)
	}
	roHash, err := challenger.HashByName(cfg.ROHash)
	if err != nil {
		return nil, errors.Wrapf(ErrConfigInvalid, "rohash: %v", err)
	}

	return &Parameters{
		atomic:      g,
		keyGroup:    group.Product(g, cfg.KeyWidth),
		sessionID:   sessionID,
		self:        self,
		partyCount:  partyCount,
		threshold:   threshold,
		cfg:         cfg,
		roHash:      roHash,
		concurrency: runtime.GOMAXPROCS(0),
		rand:        rand.Reader,
	}, nil
}

func (params *Parameters) Group() group.Group {
	return params.atomic
}

// KeyGroup returns the group in which public keys and ciphertext components
// live: the keywidth power of the atomic group.
func (params *Parameters) KeyGroup() group.Group {
	return params.keyGroup
}

func (params *Parameters) SessionID() string {
	return params.sessionID
}

func (params *Parameters) PartyIndex() int {
	return params.self
}

func (params *Parameters) PartyCount() int {
	return params.partyCount
}

func (params *Parameters) Threshold() int {
	return params.threshold
}

func (params *Parameters) KeyWidth() int {
	return params.cfg.KeyWidth
}

// Vbitlen returns the challenge size in effect for the configured mode.
func (params *Parameters) Vbitlen() int {
	if !params.cfg.Interactive {
		return params.cfg.VbitlenRO
	}
	return params.cfg.Vbitlen
}

// Ebitlen returns the batching component size in effect for the configured
// mode.
func (params *Parameters) Ebitlen() int {
	if !params.cfg.Interactive {
		return params.cfg.EbitlenRO
	}
	return params.cfg.Ebitlen
}

func (params *Parameters) Rbitlen() int {
	return params.cfg.Rbitlen
}

func (params *Parameters) NonInteractive() bool {
	return !params.cfg.Interactive
}

func (params *Parameters) ROHash() crypto.Hash {
	return params.roHash
}

func (params *Parameters) Concurrency() int {
	return params.concurrency
}

// The concurrency level must be >= 1.
func (params *Parameters) SetConcurrency(concurrency int) {
	params.concurrency = concurrency
}

func (params *Parameters) Rand() io.Reader {
	return params.rand
}

func (params *Parameters) SetRand(rand io.Reader) {
	params.rand = rand
}

// GlobalPrefix derives the Fiat-Shamir domain separator for this instance.
func (params *Parameters) GlobalPrefix() []byte {
	return challenger.GlobalPrefix(
		params.roHash,
		params.sessionID,
		params.cfg.Rbitlen,
		params.cfg.VbitlenRO,
		params.cfg.EbitlenRO,
		prg.ID,
		params.keyGroup.ID(),
		params.cfg.ROHash,
	)
}
