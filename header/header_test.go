package header

import (
	"bytes"
	"testing"

	"github.com/LiquidTechnologies/fast-infoset/bitio"
	"github.com/LiquidTechnologies/fast-infoset/errs"
	"github.com/stretchr/testify/require"
)

func TestReadFrameNoDeclaration(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(Magic[:])
	buf.WriteByte(byte(FlagVersion | FlagStandalone))

	r := bitio.NewReader(&buf, bitio.MinBlockSize)
	frame, err := ReadFrame(r)
	require.NoError(t, err)
	require.Empty(t, frame.Declaration)
	require.True(t, frame.Options.HasVersion())
	require.True(t, frame.Options.HasStandalone())
	require.False(t, frame.Options.HasNotations())
}

func TestReadFrameWithDeclaration(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString(Declarations[4])
	buf.Write(Magic[:])
	buf.WriteByte(byte(FlagAdditionalData))

	r := bitio.NewReader(&buf, bitio.MinBlockSize)
	frame, err := ReadFrame(r)
	require.NoError(t, err)
	require.Equal(t, Declarations[4], frame.Declaration)
	require.True(t, frame.Options.HasAdditionalData())
}

func TestReadFrameRejectsUnknownDeclaration(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("<?xml encoding='bogus'?>")
	buf.Write(Magic[:])
	buf.WriteByte(0)

	r := bitio.NewReader(&buf, bitio.MinBlockSize)
	_, err := ReadFrame(r)
	require.ErrorIs(t, err, errs.ErrInvalidDeclaration)
}

func TestReadFrameRejectsBadMagic(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0xE0, 0x00, 0x00, 0x02})
	buf.WriteByte(0)

	r := bitio.NewReader(&buf, bitio.MinBlockSize)
	_, err := ReadFrame(r)
	require.Error(t, err)
}

func TestWriteFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	opts := Options(0)
	opts.WithInitialVocabulary()
	opts.WithCharacterEncodingScheme()

	w := bitio.NewWriter(&buf, bitio.MinBlockSize)
	err := WriteFrame(w, Declarations[0], opts)
	require.NoError(t, err)
	require.NoError(t, w.Flush())

	r := bitio.NewReader(&buf, bitio.MinBlockSize)
	frame, err := ReadFrame(r)
	require.NoError(t, err)
	require.Equal(t, Declarations[0], frame.Declaration)
	require.True(t, frame.Options.HasInitialVocabulary())
	require.True(t, frame.Options.HasCharacterEncodingScheme())
}

func TestWriteFrameRejectsUnknownDeclaration(t *testing.T) {
	var buf bytes.Buffer
	err := WriteFrame(bitio.NewWriter(&buf, bitio.MinBlockSize), "<?xml bogus?>", Options(0))
	require.Error(t, err)
}

func TestOptionsAccessorsToggle(t *testing.T) {
	var o Options
	require.False(t, o.HasUnparsedEntities())
	o.WithUnparsedEntities()
	require.True(t, o.HasUnparsedEntities())
	o.WithoutUnparsedEntities()
	require.False(t, o.HasUnparsedEntities())
}
