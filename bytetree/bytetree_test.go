package bytetree

import (
	"io"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeafRoundTrip(t *testing.T) {
	leaf := NewLeaf([]byte{1, 2, 3})
	bt, err := Unmarshal(leaf.Marshal())
	require.NoError(t, err)
	assert.True(t, bt.IsLeaf())
	assert.Equal(t, []byte{1, 2, 3}, bt.Data())
}

func TestNodeRoundTrip(t *testing.T) {
	tree := NewNode(
		NewLeaf([]byte("a")),
		NewNode(NewLeaf([]byte("b")), NewLeaf(nil)),
	)
	bt, err := Unmarshal(tree.Marshal())
	require.NoError(t, err)
	assert.False(t, bt.IsLeaf())
	assert.Equal(t, 2, bt.Len())

	first, err := bt.Child(0)
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), first.Data())

	second, err := bt.Child(1)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Len())
	inner, err := second.Child(1)
	require.NoError(t, err)
	assert.Equal(t, 0, len(inner.Data()))
}

func TestUnmarshalMalformed(t *testing.T) {
	cases := [][]byte{
		{},                      // empty
		{0x02, 0, 0, 0, 0},      // unknown tag
		{0x01, 0, 0, 0, 4, 1},   // short leaf
		{0x00, 0, 0, 0, 1},      // missing child
		append(NewLeaf([]byte("x")).Marshal(), 0xff), // trailing byte
	}
	for i, data := range cases {
		_, err := Unmarshal(data)
		assert.True(t, errors.Is(err, ErrMalformed), "case %d: %v", i, err)
	}
}

func TestLeafUint32(t *testing.T) {
	bt, err := Unmarshal(LeafUint32(70000).Marshal())
	require.NoError(t, err)
	v, err := bt.Uint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(70000), v)

	_, err = NewLeaf([]byte{1, 2}).Uint32()
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestLeafBigInt(t *testing.T) {
	x := big.NewInt(0x0102)
	bt := LeafBigInt(x, 4)
	assert.Equal(t, []byte{0, 0, 1, 2}, bt.Data())
}

func TestLeafBools(t *testing.T) {
	flags := []bool{true, false, true}
	bt, err := Unmarshal(LeafBools(flags).Marshal())
	require.NoError(t, err)
	got, err := bt.Bools(3)
	require.NoError(t, err)
	assert.Equal(t, flags, got)

	_, err = NewLeaf([]byte{2}).Bools(1)
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestReaderNodeChildren(t *testing.T) {
	tree := NewNode(NewLeaf([]byte("a")), NewLeaf([]byte("b")), NewNode(NewLeaf([]byte("c"))))
	rd := NewBytesReader(tree.Marshal())

	first, err := rd.NextChild()
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), first.Data())
	assert.Equal(t, 2, rd.Remaining())

	second, err := rd.NextChild()
	require.NoError(t, err)
	assert.Equal(t, []byte("b"), second.Data())

	third, err := rd.NextChild()
	require.NoError(t, err)
	assert.Equal(t, 1, third.Len())

	_, err = rd.NextChild()
	assert.Equal(t, io.EOF, err)
	require.NoError(t, rd.Close())
}

func TestReaderLeafRoot(t *testing.T) {
	rd := NewBytesReader(NewLeaf([]byte("solo")).Marshal())
	bt, err := rd.NextChild()
	require.NoError(t, err)
	assert.Equal(t, []byte("solo"), bt.Data())
	_, err = rd.NextChild()
	assert.Equal(t, io.EOF, err)
}

func TestReaderMalformed(t *testing.T) {
	rd := NewBytesReader([]byte{0x07, 0, 0, 0, 0})
	_, err := rd.NextChild()
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.bt")
	tree := NewNode(NewLeaf([]byte("x")), LeafUint32(7))
	require.NoError(t, tree.WriteFile(path))

	bt, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, bt.Len())

	rd, err := OpenFile(path)
	require.NoError(t, err)
	first, err := rd.NextChild()
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), first.Data())
	require.NoError(t, rd.Close())
}
