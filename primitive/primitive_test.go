package primitive

import (
	"bytes"
	"testing"

	"github.com/LiquidTechnologies/fast-infoset/bitio"
	"github.com/stretchr/testify/require"
)

func roundTripInt(t *testing.T, p int, value int64) int64 {
	t.Helper()

	encoded, err := EncodeInt(0, p, value)
	require.NoError(t, err)

	r := bitio.NewReader(bytes.NewReader(encoded[1:]), bitio.MinBlockSize)
	got, err := DecodeInt(encoded[0], p, r)
	require.NoError(t, err)

	return got
}

func TestEncodeDecodeIntBit2Boundaries(t *testing.T) {
	for _, v := range []int64{1, 64, 65, 8256, 8257, 1 << 20} {
		require.Equal(t, v, roundTripInt(t, 2, v), "value %d", v)
	}
}

func TestEncodeDecodeIntBit3Boundaries(t *testing.T) {
	for _, v := range []int64{1, 32, 33, 2080, 2081, 526368, 526369, 1 << 20} {
		require.Equal(t, v, roundTripInt(t, 3, v), "value %d", v)
	}
}

func TestEncodeDecodeIntBit4Boundaries(t *testing.T) {
	for _, v := range []int64{1, 16, 17, 1040, 1041, 263184, 263185, 1 << 20} {
		require.Equal(t, v, roundTripInt(t, 4, v), "value %d", v)
	}
}

func TestEncodeIntOutOfRange(t *testing.T) {
	_, err := EncodeInt(0, 2, 0)
	require.Error(t, err)

	_, err = EncodeInt(0, 2, (1<<20)+1)
	require.Error(t, err)
}

func TestInt0ZeroSentinel(t *testing.T) {
	encoded, err := EncodeInt0(0, 0)
	require.NoError(t, err)
	require.Equal(t, []byte{0x7F}, encoded)

	got, err := DecodeInt0(encoded[0], bitio.NewReader(bytes.NewReader(nil), bitio.MinBlockSize))
	require.NoError(t, err)
	require.Zero(t, got)
}

func TestInt0DelegatesForNonZero(t *testing.T) {
	encoded, err := EncodeInt0(0, 100)
	require.NoError(t, err)

	r := bitio.NewReader(bytes.NewReader(encoded[1:]), bitio.MinBlockSize)
	got, err := DecodeInt0(encoded[0], r)
	require.NoError(t, err)
	require.EqualValues(t, 100, got)
}

func TestIntPrefixBitsPreserved(t *testing.T) {
	const prefix = 0x80 // bit1 set, as a caller-owned flag ahead of this field
	encoded, err := EncodeInt(prefix, 2, 1)
	require.NoError(t, err)
	require.Equal(t, byte(prefix), encoded[0]&0x80)

	r := bitio.NewReader(bytes.NewReader(encoded[1:]), bitio.MinBlockSize)
	got, err := DecodeInt(encoded[0], 2, r)
	require.NoError(t, err)
	require.EqualValues(t, 1, got)
}

func roundTripLen(t *testing.T, p int, value int64) int64 {
	t.Helper()

	encoded, err := EncodeLen(0, p, value)
	require.NoError(t, err)

	r := bitio.NewReader(bytes.NewReader(encoded[1:]), bitio.MinBlockSize)
	got, err := DecodeLen(encoded[0], p, r)
	require.NoError(t, err)

	return got
}

func TestEncodeDecodeLenBit2Boundaries(t *testing.T) {
	for _, v := range []int64{1, 64, 65, 320, 321, 1 << 20} {
		require.Equal(t, v, roundTripLen(t, 2, v), "value %d", v)
	}
}

func TestEncodeDecodeLenBit5Boundaries(t *testing.T) {
	for _, v := range []int64{1, 8, 9, 264, 265, 1 << 16} {
		require.Equal(t, v, roundTripLen(t, 5, v), "value %d", v)
	}
}

func TestEncodeDecodeLenBit7Boundaries(t *testing.T) {
	for _, v := range []int64{1, 2, 3, 258, 259, 1 << 16} {
		require.Equal(t, v, roundTripLen(t, 7, v), "value %d", v)
	}
}

func TestEncodeLenRejectsInvalidBitPosition(t *testing.T) {
	_, err := EncodeLen(0, 3, 1)
	require.Error(t, err)
}

func TestEncodeLenOutOfRange(t *testing.T) {
	_, err := EncodeLen(0, 2, 0)
	require.Error(t, err)
}
