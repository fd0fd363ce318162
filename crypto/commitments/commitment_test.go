package commitments

import (
	"crypto"
	_ "crypto/sha256"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitmentVerifies(t *testing.T) {
	cmt, err := NewHashCommitment(crypto.SHA256, rand.Reader, []byte("one"), []byte("two"))
	require.NoError(t, err)

	assert.True(t, cmt.Verify(crypto.SHA256))
	ok, secrets := cmt.DeCommit(crypto.SHA256)
	assert.True(t, ok)
	require.Equal(t, 2, len(secrets))
	assert.Equal(t, []byte("one"), secrets[0])
	assert.Equal(t, []byte("two"), secrets[1])
}

func TestCommitmentTamperedValueFails(t *testing.T) {
	cmt, err := NewHashCommitment(crypto.SHA256, rand.Reader, []byte("value"))
	require.NoError(t, err)

	cmt.D[1] = []byte("other")
	assert.False(t, cmt.Verify(crypto.SHA256))
	ok, _ := cmt.DeCommit(crypto.SHA256)
	assert.False(t, ok)
}

func TestCommitmentTamperedRandomnessFails(t *testing.T) {
	cmt := NewHashCommitmentWithRandomness(crypto.SHA256, []byte("rrrr"), []byte("value"))
	assert.True(t, cmt.Verify(crypto.SHA256))

	cmt.D[0] = []byte("ssss")
	assert.False(t, cmt.Verify(crypto.SHA256))
}

func TestCommitmentHidesUnderDifferentRandomness(t *testing.T) {
	a := NewHashCommitmentWithRandomness(crypto.SHA256, []byte("r1"), []byte("value"))
	b := NewHashCommitmentWithRandomness(crypto.SHA256, []byte("r2"), []byte("value"))
	assert.NotEqual(t, a.C, b.C)
}
