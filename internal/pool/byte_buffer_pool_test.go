package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteBufferBasics(t *testing.T) {
	bb := NewByteBuffer(16)
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, 16, bb.Cap())

	bb.MustWrite([]byte("hello"))
	assert.Equal(t, "hello", string(bb.Bytes()))

	bb.MustWriteByte('!')
	assert.Equal(t, "hello!", string(bb.Bytes()))

	bb.Reset()
	assert.Equal(t, 0, bb.Len())
}

func TestByteBufferGrow(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.Grow(1024)
	assert.GreaterOrEqual(t, bb.Cap(), 1024)

	bb.MustWrite([]byte("data"))
	assert.Equal(t, "data", string(bb.Bytes()))
}

func TestByteBufferWriteTo(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.MustWrite([]byte("payload"))

	var out bytes.Buffer
	n, err := bb.WriteTo(&out)
	require.NoError(t, err)
	assert.EqualValues(t, 7, n)
	assert.Equal(t, "payload", out.String())
}

func TestByteBufferSliceAndSetLength(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.MustWrite([]byte("0123456789"))

	assert.Equal(t, "234", string(bb.Slice(2, 5)))

	bb.SetLength(4)
	assert.Equal(t, "0123", string(bb.Bytes()))
}

func TestByteBufferPoolReuse(t *testing.T) {
	pool := NewByteBufferPool(16, 64)

	bb := pool.Get()
	bb.MustWrite([]byte("reused"))
	pool.Put(bb)

	again := pool.Get()
	assert.Equal(t, 0, again.Len(), "Put must Reset before returning to the pool")
}

func TestByteBufferPoolDiscardsOversizedBuffers(t *testing.T) {
	pool := NewByteBufferPool(4, 8)

	bb := pool.Get()
	bb.Grow(1024)
	pool.Put(bb) // exceeds maxThreshold, should be discarded rather than pooled

	again := pool.Get()
	assert.Less(t, again.Cap(), 1024)
}

func TestDefaultPoolHelpers(t *testing.T) {
	bb := GetBuffer()
	bb.MustWrite([]byte("x"))
	PutBuffer(bb)
	PutBuffer(nil) // must not panic
}
