package bitvector

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFile is a minimal io.WriterAt/io.ReaderAt backed by an in-memory
// buffer, standing in for a real file the way the pipeline uses *os.File.
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

func TestNewRejectsZeroCapacity(t *testing.T) {
	_, err := New(0)
	require.Error(t, err)
}

func TestSetClearCheck(t *testing.T) {
	v, err := New(17)
	require.NoError(t, err)

	require.NoError(t, v.Set(0))
	require.NoError(t, v.Set(16))
	bit, err := v.Check(0)
	require.NoError(t, err)
	assert.Equal(t, 1, bit)

	bit, err = v.Check(16)
	require.NoError(t, err)
	assert.Equal(t, 1, bit)

	require.NoError(t, v.Clear(0))
	bit, err = v.Check(0)
	require.NoError(t, err)
	assert.Equal(t, 0, bit)

	_, err = v.Check(17)
	assert.Error(t, err)
}

func TestAppendGrowsByDoubling(t *testing.T) {
	v, err := New(1)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		require.NoError(t, v.Append(byte(i%2)))
	}
	assert.Equal(t, uint64(10), v.Size(Stream))
	assert.GreaterOrEqual(t, v.Size(Full), uint64(10))

	for i := 0; i < 10; i++ {
		bit, err := v.Check(uint64(i))
		require.NoError(t, err)
		assert.Equal(t, i%2, bit)
	}
}

func TestAppendVectorCopiesAllBits(t *testing.T) {
	src, err := FromBitString("10110100")
	require.NoError(t, err)

	dst, err := New(1)
	require.NoError(t, err)
	require.NoError(t, dst.AppendVector(src, Full))

	assert.Equal(t, uint64(8), dst.Size(Stream))
	want := []int{1, 0, 1, 1, 0, 1, 0, 0}
	for i, w := range want {
		bit, err := dst.Check(uint64(i))
		require.NoError(t, err)
		assert.Equal(t, w, bit)
	}
}

func TestFromBitStringSkipsOtherCharacters(t *testing.T) {
	v, err := FromBitString("1 0-1_1")
	require.NoError(t, err)
	assert.Equal(t, uint64(4), v.Size(Stream))
	assert.Equal(t, uint64(4), v.Size(Full))
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	v, err := New(17)
	require.NoError(t, err)
	for _, b := range []byte{1, 0, 1, 1, 0, 1, 0, 0} {
		require.NoError(t, v.Append(b))
	}

	f := &fakeFile{}
	next, err := v.Serialize(f, 100, Stream)
	require.NoError(t, err)
	assert.Greater(t, next, uint64(100))

	got, _, err := Deserialize(f, 100)
	require.NoError(t, err)
	assert.Equal(t, uint64(8), got.Cursor())

	want := []int{1, 0, 1, 1, 0, 1, 0, 0}
	for i, w := range want {
		bit, err := got.Check(uint64(i))
		require.NoError(t, err)
		assert.Equal(t, w, bit)
	}
}

func TestResizePreservesExistingBits(t *testing.T) {
	v, err := New(4)
	require.NoError(t, err)
	require.NoError(t, v.Set(0))
	require.NoError(t, v.Set(3))

	require.NoError(t, v.Resize(32))
	bit, err := v.Check(0)
	require.NoError(t, err)
	assert.Equal(t, 1, bit)
	bit, err = v.Check(3)
	require.NoError(t, err)
	assert.Equal(t, 1, bit)
}
