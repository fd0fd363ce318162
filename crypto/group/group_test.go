package group

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verificatum/verificatum-vmn-sub000/bytetree"
)

// small Schnorr group for fast tests: p = 2q+1 with p = 1019, q = 509, and
// the quadratic residue 4 as generator
func testModGroup(t *testing.T) *ModGroup {
	mg, err := NewModGroup("test1019", big.NewInt(1019), big.NewInt(509), big.NewInt(4))
	require.NoError(t, err)
	return mg
}

func TestNewModGroupRejectsBadParams(t *testing.T) {
	// q does not divide p-1
	_, err := NewModGroup("bad", big.NewInt(1019), big.NewInt(11), big.NewInt(4))
	assert.Error(t, err)
	// generator of the wrong order: 2 is a non-residue mod 1019
	_, err = NewModGroup("bad", big.NewInt(1019), big.NewInt(509), big.NewInt(2))
	assert.Error(t, err)
}

func TestModGroupOps(t *testing.T) {
	mg := testModGroup(t)
	g := mg.Generator()

	x := mg.Exp(g, big.NewInt(3))
	y := mg.Exp(g, big.NewInt(7))
	assert.True(t, mg.Equal(mg.Mul(x, y), mg.Exp(g, big.NewInt(10))))
	assert.True(t, mg.Equal(mg.Mul(x, mg.Inv(x)), mg.One()))

	// negative exponents invert
	assert.True(t, mg.Equal(mg.Exp(g, big.NewInt(-3)), mg.Inv(x)))
	// exponents act modulo q
	assert.True(t, mg.Equal(mg.Exp(g, new(big.Int).Add(big.NewInt(3), big.NewInt(509))), x))
}

func TestModGroupEncodeDecode(t *testing.T) {
	mg := testModGroup(t)
	x := mg.Exp(mg.Generator(), big.NewInt(123))
	bt := mg.ToByteTree(x)
	assert.Equal(t, mg.ElementByteLen(), len(bt.Data()))

	y, err := mg.FromByteTree(bt)
	require.NoError(t, err)
	assert.True(t, mg.Equal(x, y))
}

func TestModGroupRejectsNonMembers(t *testing.T) {
	mg := testModGroup(t)

	// 2 is not a quadratic residue mod 1019
	_, err := mg.FromByteTree(bytetree.LeafBigInt(big.NewInt(2), mg.ElementByteLen()))
	assert.True(t, errors.Is(err, ErrMalformedElement))

	// out of range
	_, err = mg.FromByteTree(bytetree.LeafBigInt(big.NewInt(0), mg.ElementByteLen()))
	assert.True(t, errors.Is(err, ErrMalformedElement))
	_, err = mg.FromByteTree(bytetree.LeafBigInt(big.NewInt(1020), mg.ElementByteLen()))
	assert.True(t, errors.Is(err, ErrMalformedElement))

	// wrong width
	_, err = mg.FromByteTree(bytetree.LeafBigInt(big.NewInt(4), mg.ElementByteLen()+1))
	assert.True(t, errors.Is(err, ErrMalformedElement))
}

func TestModP2048(t *testing.T) {
	mg := ModP2048()
	assert.Equal(t, "modp2048", mg.ID())
	assert.Equal(t, 256, mg.ElementByteLen())
	assert.Equal(t, 2047, mg.Order().BitLen())

	g := mg.Generator()
	bt := mg.ToByteTree(g)
	back, err := mg.FromByteTree(bt)
	require.NoError(t, err)
	assert.True(t, mg.Equal(g, back))
}

func TestProductGroup(t *testing.T) {
	mg := testModGroup(t)
	pg := Product(mg, 3)
	assert.Equal(t, 3, pg.Width())
	assert.Equal(t, "test1019^3", pg.ID())

	g := pg.Generator()
	x := pg.Exp(g, big.NewInt(5))
	assert.True(t, pg.Equal(pg.Mul(x, pg.Inv(x)), pg.One()))

	bt := pg.ToByteTree(x)
	y, err := pg.FromByteTree(bt)
	require.NoError(t, err)
	assert.True(t, pg.Equal(x, y))

	// projection returns the base group
	assert.Equal(t, mg.ID(), pg.Project(1).ID())
}

func TestProductOfWidthOneIsBase(t *testing.T) {
	mg := testModGroup(t)
	assert.Equal(t, mg.ID(), Product(mg, 1).ID())
}

func TestExpProdMatchesNaive(t *testing.T) {
	mg := testModGroup(t)
	g := mg.Generator()

	bases := make([]Element, 10)
	exps := make([]*big.Int, 10)
	for i := range bases {
		bases[i] = mg.Exp(g, big.NewInt(int64(i+2)))
		exps[i] = big.NewInt(int64(3*i - 7)) // mixed signs
	}

	naive := mg.One()
	for i := range bases {
		naive = mg.Mul(naive, mg.Exp(bases[i], exps[i]))
	}

	for _, conc := range []int{1, 2, 4, 16} {
		got := ExpProd(mg, bases, exps, conc)
		assert.True(t, mg.Equal(naive, got), "concurrency %d", conc)
	}
}

func TestElementArrayOps(t *testing.T) {
	mg := testModGroup(t)
	g := mg.Generator()

	a := NewElementArray(mg, []Element{mg.Exp(g, big.NewInt(1)), mg.Exp(g, big.NewInt(2))})
	b := NewElementArray(mg, []Element{mg.Exp(g, big.NewInt(3)), mg.Exp(g, big.NewInt(4))})

	prod := a.Mul(b)
	assert.True(t, mg.Equal(mg.Exp(g, big.NewInt(4)), prod.Get(0)))
	assert.True(t, mg.Equal(mg.Exp(g, big.NewInt(6)), prod.Get(1)))

	sq := a.Exp(big.NewInt(2))
	assert.True(t, mg.Equal(mg.Exp(g, big.NewInt(2)), sq.Get(0)))
	assert.True(t, mg.Equal(mg.Exp(g, big.NewInt(4)), sq.Get(1)))

	// g^(1*5 + 2*6) = g^17
	acc := a.ExpProd([]*big.Int{big.NewInt(5), big.NewInt(6)}, 2)
	assert.True(t, mg.Equal(mg.Exp(g, big.NewInt(17)), acc))

	ones := Ones(mg, 2)
	assert.True(t, mg.Equal(mg.One(), ones.Get(0)))
	assert.True(t, mg.Equal(a.Get(0), a.Mul(ones).Get(0)))
}

func TestElementArrayRoundTrip(t *testing.T) {
	mg := testModGroup(t)
	g := mg.Generator()
	a := NewElementArray(mg, []Element{mg.Exp(g, big.NewInt(9)), mg.Exp(g, big.NewInt(11))})

	got, err := ArrayFromByteTree(mg, 2, a.ToByteTree())
	require.NoError(t, err)
	assert.True(t, mg.Equal(a.Get(0), got.Get(0)))
	assert.True(t, mg.Equal(a.Get(1), got.Get(1)))

	_, err = ArrayFromByteTree(mg, 3, a.ToByteTree())
	assert.True(t, errors.Is(err, ErrMalformedElement))
}

func TestProductArrayProject(t *testing.T) {
	mg := testModGroup(t)
	pg := Product(mg, 2)
	g := pg.Generator()
	a := NewElementArray(pg, []Element{pg.Exp(g, big.NewInt(2)), pg.Exp(g, big.NewInt(3))})

	left := a.Project(0)
	assert.Equal(t, mg.ID(), left.Group().ID())
	assert.True(t, mg.Equal(mg.Exp(mg.Generator(), big.NewInt(2)), left.Get(0)))
}
