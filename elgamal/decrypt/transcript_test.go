package decrypt

import (
	"io/ioutil"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verificatum/verificatum-vmn-sub000/bytetree"
	"github.com/verificatum/verificatum-vmn-sub000/crypto/group"
	"github.com/verificatum/verificatum-vmn-sub000/elgamal"
)

func ciphertextsForTranscript(t *testing.T, g group.Group) *elgamal.Ciphertexts {
	gen := g.Generator()
	u := group.NewElementArray(g, []group.Element{g.Exp(gen, big.NewInt(2)), g.Exp(gen, big.NewInt(3))})
	v := group.NewElementArray(g, []group.Element{g.Exp(gen, big.NewInt(4)), g.Exp(gen, big.NewInt(5))})
	cts, err := elgamal.NewCiphertexts(u, v)
	require.NoError(t, err)
	return cts
}

func TestTranscriptFileNames(t *testing.T) {
	assert.Equal(t, "DecryptionFactors01.bt", FactorsFile(1))
	assert.Equal(t, "DecryptionFactors12.bt", FactorsFile(12))
	assert.Equal(t, "DecrFactCommitment03.bt", CommitmentFile(3))
	assert.Equal(t, "DecrFactReply07.bt", ReplyFile(7))
}

func TestTranscriptWriteAndReadBack(t *testing.T) {
	dir := t.TempDir()
	tr, err := NewTranscript(dir)
	require.NoError(t, err)

	tr.WriteActiveThreshold(5)
	tr.WriteByteTree(FileCorrectIndices, bytetree.LeafBools([]bool{true, false, true}))
	require.NoError(t, tr.Err())

	raw, err := ioutil.ReadFile(filepath.Join(dir, FileActiveThreshold))
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 5}, raw)

	correct, err := ReadCorrectIndices(dir, 3)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, false, true}, correct)
}

func TestTranscriptEmptyDirDiscards(t *testing.T) {
	tr, err := NewTranscript("")
	require.NoError(t, err)
	tr.WriteActiveThreshold(2)
	tr.WriteByteTree(FileCorrectIndices, bytetree.LeafBools([]bool{true}))
	assert.NoError(t, tr.Err())
}

func TestTranscriptWriteFailureSurfaces(t *testing.T) {
	dir := t.TempDir()
	tr, err := NewTranscript(dir)
	require.NoError(t, err)

	// a directory squatting on the file name forces the write to fail
	require.NoError(t, os.Mkdir(filepath.Join(dir, FileCorrectIndices), 0o755))
	tr.WriteByteTree(FileCorrectIndices, bytetree.LeafBools([]bool{true}))

	err = tr.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTranscriptIO))
}

func TestReadCorrectIndicesMalformed(t *testing.T) {
	dir := t.TempDir()

	// not a byte tree at all
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, FileCorrectIndices), []byte{0xba, 0xad}, 0o644))
	_, err := ReadCorrectIndices(dir, 3)
	assert.True(t, errors.Is(err, ErrMalformedTranscript))

	// a valid byte tree of the wrong shape
	require.NoError(t, bytetree.NewNode().WriteFile(filepath.Join(dir, FileCorrectIndices)))
	_, err = ReadCorrectIndices(dir, 3)
	assert.True(t, errors.Is(err, ErrMalformedTranscript))
}

func TestReadCiphertextsRoundTrip(t *testing.T) {
	g := testModGroup(t)
	dir := t.TempDir()
	tr, err := NewTranscript(dir)
	require.NoError(t, err)

	fx := ciphertextsForTranscript(t, g)
	tr.WriteByteTree(FileCiphertexts, fx.ToByteTree())
	require.NoError(t, tr.Err())

	got, err := ReadCiphertexts(dir, g, fx.Size())
	require.NoError(t, err)
	assert.True(t, g.Equal(fx.U.Get(0), got.U.Get(0)))
	assert.True(t, g.Equal(fx.V.Get(1), got.V.Get(1)))

	// garbage in place of the file
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, FileCiphertexts), []byte("junk"), 0o644))
	_, err = ReadCiphertexts(dir, g, fx.Size())
	assert.True(t, errors.Is(err, ErrMalformedTranscript))
}
