// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package decrypt

import (
	"encoding/binary"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/verificatum/verificatum-vmn-sub000/bytetree"
	"github.com/verificatum/verificatum-vmn-sub000/crypto/group"
	"github.com/verificatum/verificatum-vmn-sub000/crypto/vss"
	"github.com/verificatum/verificatum-vmn-sub000/elgamal"
)

// Transcript file names. All files are byte-tree encoded except
// ActiveThreshold, which is a raw 4-byte big-endian integer.
const (
	FileActiveThreshold      = "ActiveThreshold"
	FileCiphertexts          = "Ciphertexts"
	FileCorrectIndices       = "CorrectIndices.bt"
	FilePolynomialInExponent = "PolynomialInExponent.bt"
	FileFullPublicKey        = "FullPublicKey.bt"

	fileFactorsFmt    = "DecryptionFactors%02d.bt"
	fileCommitmentFmt = "DecrFactCommitment%02d.bt"
	fileReplyFmt      = "DecrFactReply%02d.bt"
)

// Transcript persists the artifacts that make a decryption run universally
// verifiable. Write failures do not stop the protocol; they accumulate and
// are surfaced once after the plaintexts are computed. A Transcript with an
// empty directory discards everything.
type Transcript struct {
	dir  string
	merr *multierror.Error
}

func NewTranscript(dir string) (*Transcript, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(ErrTranscriptIO, err.Error())
		}
	}
	return &Transcript{dir: dir}, nil
}

func (tr *Transcript) WriteActiveThreshold(threshold int) {
	if tr.dir == "" {
		return
	}
	bz := make([]byte, 4)
	binary.BigEndian.PutUint32(bz, uint32(threshold))
	if err := ioutil.WriteFile(filepath.Join(tr.dir, FileActiveThreshold), bz, 0o644); err != nil {
		tr.fail(FileActiveThreshold, err)
	}
}

func (tr *Transcript) WriteByteTree(name string, bt *bytetree.ByteTree) {
	if tr.dir == "" {
		return
	}
	if err := bt.WriteFile(filepath.Join(tr.dir, name)); err != nil {
		tr.fail(name, err)
	}
}

func FactorsFile(l int) string {
	return fmt.Sprintf(fileFactorsFmt, l)
}

func CommitmentFile(l int) string {
	return fmt.Sprintf(fileCommitmentFmt, l)
}

func ReplyFile(l int) string {
	return fmt.Sprintf(fileReplyFmt, l)
}

// ReadCiphertexts loads the input ciphertext array back from a transcript
// directory, as a subsession or a verifier would. Structural errors are
// reported as ErrMalformedTranscript.
func ReadCiphertexts(dir string, keyGroup group.Group, size int) (*elgamal.Ciphertexts, error) {
	bt, err := readTree(dir, FileCiphertexts)
	if err != nil {
		return nil, err
	}
	cts, err := elgamal.CiphertextsFromByteTree(keyGroup, size, bt)
	if err != nil {
		return nil, errors.Wrap(ErrMalformedTranscript, err.Error())
	}
	return cts, nil
}

// ReadPolynomialInExponent loads the published sharing polynomial from a
// transcript directory.
func ReadPolynomialInExponent(dir string, keyGroup group.Group) (vss.PolynomialInExponent, error) {
	bt, err := readTree(dir, FilePolynomialInExponent)
	if err != nil {
		return nil, err
	}
	poly, err := vss.PolynomialFromByteTree(keyGroup, bt)
	if err != nil {
		return nil, errors.Wrap(ErrMalformedTranscript, err.Error())
	}
	return poly, nil
}

// ReadCorrectIndices loads the persisted verdict array, indexed 1..k with
// slot 0 unused like Session.Correct.
func ReadCorrectIndices(dir string, k int) ([]bool, error) {
	bt, err := readTree(dir, FileCorrectIndices)
	if err != nil {
		return nil, err
	}
	flags, err := bt.Bools(k)
	if err != nil {
		return nil, errors.Wrap(ErrMalformedTranscript, err.Error())
	}
	out := make([]bool, k+1)
	copy(out[1:], flags)
	return out, nil
}

func readTree(dir, name string) (*bytetree.ByteTree, error) {
	bt, err := bytetree.ReadFile(filepath.Join(dir, name))
	if err != nil {
		if os.IsNotExist(errors.Cause(err)) {
			return nil, errors.Wrapf(err, "transcript %s", name)
		}
		return nil, errors.Wrapf(ErrMalformedTranscript, "%s: %v", name, err)
	}
	return bt, nil
}

func (tr *Transcript) fail(name string, err error) {
	tr.merr = multierror.Append(tr.merr, errors.Wrapf(err, "write %s", name))
}

// Err returns the accumulated write failures wrapped as ErrTranscriptIO, or
// nil when every write succeeded.
func (tr *Transcript) Err() error {
	if tr.merr == nil {
		return nil
	}
	return errors.Wrap(ErrTranscriptIO, tr.merr.Error())
}
