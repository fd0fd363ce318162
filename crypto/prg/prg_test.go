package prg

import (
	"bytes"
	"io"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterministic(t *testing.T) {
	seed := bytes.Repeat([]byte{0x42}, SeedByteLen)

	a, err := New(seed)
	require.NoError(t, err)
	b, err := New(seed)
	require.NoError(t, err)

	bufA := make([]byte, 512)
	bufB := make([]byte, 512)
	_, err = io.ReadFull(a, bufA)
	require.NoError(t, err)
	_, err = io.ReadFull(b, bufB)
	require.NoError(t, err)
	assert.Equal(t, bufA, bufB)
}

func TestSeedSeparation(t *testing.T) {
	a, err := New(bytes.Repeat([]byte{1}, SeedByteLen))
	require.NoError(t, err)
	b, err := New(bytes.Repeat([]byte{2}, SeedByteLen))
	require.NoError(t, err)

	bufA := make([]byte, 64)
	bufB := make([]byte, 64)
	_, _ = io.ReadFull(a, bufA)
	_, _ = io.ReadFull(b, bufB)
	assert.NotEqual(t, bufA, bufB)
}

func TestEmptySeedRejected(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestReadInts(t *testing.T) {
	r, err := New(bytes.Repeat([]byte{7}, SeedByteLen))
	require.NoError(t, err)

	const bitlen = 12
	bound := new(big.Int).Lsh(big.NewInt(1), bitlen)
	ints, err := ReadInts(r, 100, bitlen)
	require.NoError(t, err)
	require.Equal(t, 100, len(ints))
	for i, v := range ints {
		assert.True(t, v.Sign() >= 0 && v.Cmp(bound) < 0, "index %d: %s", i, v)
	}

	// same seed, same vector
	r2, err := New(bytes.Repeat([]byte{7}, SeedByteLen))
	require.NoError(t, err)
	ints2, err := ReadInts(r2, 100, bitlen)
	require.NoError(t, err)
	assert.Equal(t, ints, ints2)
}

func TestReadIntsRejectsBadArgs(t *testing.T) {
	r, err := New([]byte{1})
	require.NoError(t, err)
	_, err = ReadInts(r, 1, 0)
	assert.Error(t, err)
	_, err = ReadInts(r, -1, 8)
	assert.Error(t, err)
}
