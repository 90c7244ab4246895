package hufftree

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nwillc/huffgo/internal/freqlist"
)

type fakeFile struct {
	buf []byte
}

func (f *fakeFile) WriteAt(p []byte, off int64) (int, error) {
	end := int(off) + len(p)
	if end > len(f.buf) {
		grown := make([]byte, end)
		copy(grown, f.buf)
		f.buf = grown
	}
	copy(f.buf[off:], p)
	return len(p), nil
}

func (f *fakeFile) ReadAt(p []byte, off int64) (int, error) {
	if int(off) >= len(f.buf) {
		return 0, bytes.ErrTooLarge
	}
	n := copy(p, f.buf[off:])
	if n < len(p) {
		return n, bytes.ErrTooLarge
	}
	return n, nil
}

func buildFrom(t *testing.T, data string) (*Tree, *Codebook) {
	t.Helper()
	l := freqlist.New()
	for _, b := range []byte(data) {
		l.AddOrIncrement(b, 0)
	}
	tree, err := Build(l)
	require.NoError(t, err)
	table, err := tree.Parse()
	require.NoError(t, err)
	return tree, table
}

func TestBuildRejectsFewerThanTwoDistinctBytes(t *testing.T) {
	l := freqlist.New()
	_, err := Build(l)
	require.Error(t, err)

	l.AddOrIncrement('a', 0)
	l.AddOrIncrement('a', 0)
	_, err = Build(l)
	require.Error(t, err)
}

func TestCodebookIsPrefixFree(t *testing.T) {
	_, table := buildFrom(t, "ABRACADABRA")
	var codes []string
	for b := 0; b < 256; b++ {
		if c, ok := table.Lookup(byte(b)); ok {
			codes = append(codes, c)
		}
	}
	require.Len(t, codes, 5) // A, B, R, C, D

	for i, a := range codes {
		for j, b := range codes {
			if i == j {
				continue
			}
			assert.False(t, isPrefix(a, b), "%q is a prefix of %q", a, b)
		}
	}
}

func isPrefix(p, s string) bool {
	return len(p) <= len(s) && s[:len(p)] == p
}

func TestTwoSymbolInputProducesOneBitCodes(t *testing.T) {
	_, table := buildFrom(t, "AB")
	a, aok := table.Lookup('A')
	b, bok := table.Lookup('B')
	require.True(t, aok)
	require.True(t, bok)
	assert.Len(t, a, 1)
	assert.Len(t, b, 1)
	assert.NotEqual(t, a, b)
}

func TestAbracadabraPayloadIsTwentyThreeBits(t *testing.T) {
	_, table := buildFrom(t, "ABRACADABRA")
	freqs := map[byte]int{'A': 5, 'B': 2, 'R': 2, 'C': 1, 'D': 1}
	total := 0
	for b, f := range freqs {
		code, ok := table.Lookup(b)
		require.True(t, ok)
		total += f * len(code)
	}
	assert.Equal(t, 23, total)
}

func TestConnectPutsInternalChildOnLeft(t *testing.T) {
	l := freqlist.New()
	l.AddOrIncrement('a', 0)
	l.AddOrIncrement('b', 0)
	l.AddOrIncrement('c', 0)
	tree, err := Build(l)
	require.NoError(t, err)

	// Root must have exactly two children, and if exactly one is internal
	// it must be on the left.
	root := tree.Root
	require.NotNil(t, root.Left)
	require.NotNil(t, root.Right)
	if !root.Left.IsLeaf && root.Right.IsLeaf {
		// internal on the left: fine
	} else if root.Left.IsLeaf && root.Right.IsLeaf {
		// both leaves: also fine
	} else {
		t.Fatalf("expected internal child (if any single one) on the left, got left.IsLeaf=%v right.IsLeaf=%v", root.Left.IsLeaf, root.Right.IsLeaf)
	}
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	tree, _ := buildFrom(t, "ABRACADABRA")
	f := &fakeFile{}
	offset, err := tree.Serialize(f, 0)
	require.NoError(t, err)
	assert.Equal(t, HeaderSize(tree.Count), offset)

	got, err := Deserialize(f)
	require.NoError(t, err)
	assert.Equal(t, tree.Count, got.Count)
	assertSameShape(t, tree.Root, got.Root)
}

func assertSameShape(t *testing.T, a, b *freqlist.Node) {
	t.Helper()
	require.Equal(t, a.IsLeaf, b.IsLeaf)
	if a.IsLeaf {
		require.Equal(t, a.Byte, b.Byte)
		return
	}
	assertSameShape(t, a.Left, b.Left)
	assertSameShape(t, a.Right, b.Right)
}

func TestStateStepWalksAndResetsOnLeaf(t *testing.T) {
	tree, table := buildFrom(t, "AB")
	codeA, _ := table.Lookup('A')

	cursor := tree.Root
	var opcode int
	if codeA == "0" {
		opcode = 0
	} else {
		opcode = 1
	}
	next, emitted, ok, err := tree.StateStep(cursor, opcode)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, byte('A'), emitted)
	assert.Same(t, tree.Root, next)
}

func TestStateStepRejectsInvalidOpcode(t *testing.T) {
	tree, _ := buildFrom(t, "AB")
	_, _, _, err := tree.StateStep(tree.Root, 2)
	require.Error(t, err)
}

func TestDeserializeTruncatedContainerFailsCleanly(t *testing.T) {
	tree, _ := buildFrom(t, "ABRACADABRA")
	f := &fakeFile{}
	_, err := tree.Serialize(f, 0)
	require.NoError(t, err)

	truncated := &fakeFile{buf: f.buf[:len(f.buf)-3]}
	_, err = Deserialize(truncated)
	require.Error(t, err)
}
