package group

import (
	"math/big"
	"testing"

	"github.com/decred/dcrd/dcrec/edwards/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verificatum/verificatum-vmn-sub000/bytetree"
)

func leafOf(bz []byte) *bytetree.ByteTree {
	return bytetree.NewLeaf(bz)
}

func TestECGroupUnknownCurve(t *testing.T) {
	_, err := NewECGroup("no-such-curve")
	assert.Error(t, err)
}

func TestECGroupSecp256k1(t *testing.T) {
	eg, err := NewECGroup(Secp256k1)
	require.NoError(t, err)

	g := eg.Generator()
	x := eg.Exp(g, big.NewInt(3))
	y := eg.Exp(g, big.NewInt(7))
	assert.True(t, eg.Equal(eg.Mul(x, y), eg.Exp(g, big.NewInt(10))))
	assert.True(t, eg.Equal(eg.Mul(x, eg.Inv(x)), eg.One()))
	assert.True(t, eg.Equal(eg.Exp(g, big.NewInt(0)), eg.One()))
	assert.True(t, eg.Equal(eg.Exp(g, big.NewInt(-3)), eg.Inv(x)))
}

func TestECGroupEncodeDecode(t *testing.T) {
	for _, name := range []CurveName{Secp256k1, Ed25519} {
		eg, err := NewECGroup(name)
		require.NoError(t, err)

		x := eg.Exp(eg.Generator(), big.NewInt(12345))
		bt := eg.ToByteTree(x)
		assert.Equal(t, eg.ElementByteLen(), len(bt.Data()), string(name))

		y, err := eg.FromByteTree(bt)
		require.NoError(t, err, string(name))
		assert.True(t, eg.Equal(x, y), string(name))
	}
}

func TestECGroupRejectsOffCurve(t *testing.T) {
	eg, err := NewECGroup(Secp256k1)
	require.NoError(t, err)

	bz := make([]byte, eg.ElementByteLen())
	bz[len(bz)-1] = 5 // (0, 5) is not on secp256k1
	_, err = eg.FromByteTree(leafOf(bz))
	assert.True(t, errors.Is(err, ErrMalformedElement))

	// wrong size
	_, err = eg.FromByteTree(leafOf(make([]byte, 3)))
	assert.True(t, errors.Is(err, ErrMalformedElement))
}

func TestECGroupIdentityEncoding(t *testing.T) {
	eg, err := NewECGroup(Secp256k1)
	require.NoError(t, err)

	bt := eg.ToByteTree(eg.One())
	one, err := eg.FromByteTree(bt)
	require.NoError(t, err)
	assert.True(t, eg.Equal(eg.One(), one))
}

func TestECGroupRejectsSmallOrderPoint(t *testing.T) {
	eg, err := NewECGroup(Ed25519)
	require.NoError(t, err)

	// (0, -1) is on the curve but has order 2, so it is outside the
	// prime-order subgroup
	fieldP := edwards.Edwards().Params().P
	bz := make([]byte, eg.ElementByteLen())
	yb := new(big.Int).Sub(fieldP, big.NewInt(1)).Bytes()
	copy(bz[eg.ElementByteLen()-len(yb):], yb)
	_, err = eg.FromByteTree(leafOf(bz))
	assert.True(t, errors.Is(err, ErrMalformedElement))
}

func TestECGroupEd25519Identity(t *testing.T) {
	eg, err := NewECGroup(Ed25519)
	require.NoError(t, err)

	g := eg.Generator()
	assert.True(t, eg.Equal(eg.Mul(g, eg.One()), g))
	assert.True(t, eg.Equal(eg.Mul(eg.One(), g), g))
}
