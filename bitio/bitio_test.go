package bitio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReaderReadByteAndRewind(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{1, 2, 3, 4}), MinBlockSize)

	b, err := r.ReadByte()
	require.NoError(t, err)
	require.EqualValues(t, 1, b)

	b, err = r.ReadByte()
	require.NoError(t, err)
	require.EqualValues(t, 2, b)

	require.NoError(t, r.Rewind(1))

	b, err = r.ReadByte()
	require.NoError(t, err)
	require.EqualValues(t, 2, b)
}

func TestReaderRewindPastOffsetFails(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{1, 2, 3}), MinBlockSize)
	_, _ = r.ReadByte()
	require.Error(t, r.Rewind(5))
}

func TestReaderReadBytesAcrossRefills(t *testing.T) {
	data := bytes.Repeat([]byte{0xAB}, MinBlockSize*3)
	r := NewReader(bytes.NewReader(data), MinBlockSize)

	out, err := r.ReadBytes(len(data))
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestReaderUnexpectedEOF(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{1, 2}), MinBlockSize)
	_, err := r.ReadBytes(10)
	require.Error(t, err)
}

func TestWriterBuffersAndFlushes(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out, MinBlockSize)

	require.NoError(t, w.WriteByte('a'))
	require.NoError(t, w.WriteBytes([]byte("bc")))
	require.Equal(t, 0, out.Len(), "writes below block size stay buffered until Flush")

	require.NoError(t, w.Flush())
	require.Equal(t, "abc", out.String())
}

func TestWriterLargeWriteBypassesBuffer(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out, MinBlockSize)

	big := bytes.Repeat([]byte{'z'}, MinBlockSize+1)
	require.NoError(t, w.WriteBytes(big))
	require.Equal(t, big, out.Bytes())
}

func TestWriterClose(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out, MinBlockSize)
	require.NoError(t, w.WriteByte('x'))
	require.NoError(t, w.Close())
	require.Equal(t, "x", out.String())
}
