package keygen

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verificatum/verificatum-vmn-sub000/crypto/group"
	"github.com/verificatum/verificatum-vmn-sub000/crypto/vss"
)

func testGroup(t *testing.T) group.Group {
	mg, err := group.NewModGroup("test1019", big.NewInt(1019), big.NewInt(509), big.NewInt(4))
	require.NoError(t, err)
	return mg
}

func TestTrustedDealerShapes(t *testing.T) {
	g := testGroup(t)
	views, err := TrustedDealer(g, 4, 2, rand.Reader)
	require.NoError(t, err)
	require.Equal(t, 5, len(views))
	assert.Nil(t, views[0])

	joint := views[1].JointPublicKey()
	for l := 1; l <= 4; l++ {
		v := views[l]
		require.NotNil(t, v)
		assert.True(t, g.Equal(joint, v.JointPublicKey()))
		assert.True(t, g.Equal(g.Generator(), v.Generator()))
		// every view agrees on every public key
		for m := 1; m <= 4; m++ {
			assert.True(t, g.Equal(views[1].PublicKey(m), v.PublicKey(m)))
		}
		// the public key matches the share
		assert.True(t, g.Equal(v.PublicKey(l), g.Exp(g.Generator(), v.SecretShare())))
	}
}

func TestTrustedDealerSecretConsistent(t *testing.T) {
	g := testGroup(t)
	q := g.Order()
	views, err := TrustedDealer(g, 5, 3, rand.Reader)
	require.NoError(t, err)

	// reconstruct from shares 2, 4, 5 and compare against the joint key
	shares := vss.Shares{
		{Threshold: 3, ID: 2, Share: views[2].SecretShare()},
		{Threshold: 3, ID: 4, Share: views[4].SecretShare()},
		{Threshold: 3, ID: 5, Share: views[5].SecretShare()},
	}
	secret, err := shares.Reconstruct(q)
	require.NoError(t, err)
	assert.True(t, g.Equal(views[1].JointPublicKey(), g.Exp(g.Generator(), secret)))
}

func TestTrustedDealerPolynomialDecodes(t *testing.T) {
	g := testGroup(t)
	views, err := TrustedDealer(g, 3, 2, rand.Reader)
	require.NoError(t, err)

	poly, err := vss.PolynomialFromByteTree(g, views[1].PolynomialInExponent())
	require.NoError(t, err)
	assert.Equal(t, 2, len(poly))
	assert.True(t, g.Equal(views[1].JointPublicKey(), poly[0]))
}

func TestTrustedDealerRejectsBadThreshold(t *testing.T) {
	g := testGroup(t)
	_, err := TrustedDealer(g, 2, 3, rand.Reader)
	assert.Error(t, err)
	_, err = TrustedDealer(g, 0, 0, rand.Reader)
	assert.Error(t, err)
}

func TestEncryptDecryptsWithFullSecret(t *testing.T) {
	g := testGroup(t)
	q := g.Order()
	gen := g.Generator()

	views, err := TrustedDealer(g, 3, 3, rand.Reader)
	require.NoError(t, err)
	shares := vss.Shares{
		{Threshold: 3, ID: 1, Share: views[1].SecretShare()},
		{Threshold: 3, ID: 2, Share: views[2].SecretShare()},
		{Threshold: 3, ID: 3, Share: views[3].SecretShare()},
	}
	secret, err := shares.Reconstruct(q)
	require.NoError(t, err)

	msgs := group.NewElementArray(g, []group.Element{
		g.Exp(gen, big.NewInt(11)),
		g.Exp(gen, big.NewInt(22)),
	})
	cts, err := Encrypt(g, gen, views[1].JointPublicKey(), msgs, rand.Reader)
	require.NoError(t, err)

	// m = v * u^-s
	negS := new(big.Int).Neg(secret)
	for i := 0; i < cts.Size(); i++ {
		m := g.Mul(cts.V.Get(i), g.Exp(cts.U.Get(i), negS))
		assert.True(t, g.Equal(msgs.Get(i), m), "index %d", i)
	}
}
