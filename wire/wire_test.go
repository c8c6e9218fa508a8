package wire

import (
	"bytes"
	"testing"

	"github.com/LiquidTechnologies/fast-infoset/algorithm"
	"github.com/LiquidTechnologies/fast-infoset/alphabet"
	"github.com/LiquidTechnologies/fast-infoset/bitio"
	"github.com/LiquidTechnologies/fast-infoset/errs"
	"github.com/LiquidTechnologies/fast-infoset/qname"
	"github.com/LiquidTechnologies/fast-infoset/vocab"
	"github.com/stretchr/testify/require"
)

func newWriter(buf *bytes.Buffer) *bitio.Writer { return bitio.NewWriter(buf, 4096) }
func newReader(buf *bytes.Buffer) *bitio.Reader { return bitio.NewReader(buf, 4096) }

func TestQNameRefFirstOccurrenceIsLiteral(t *testing.T) {
	table := vocab.NewQNameTable()
	prefixes := vocab.NewStringTable()
	namespaces := vocab.NewStringTable()
	locals := vocab.NewStringTable()

	var buf bytes.Buffer
	w := newWriter(&buf)

	q := qname.New("a", "urn:ns", "foo")
	require.NoError(t, EncodeQNameRef(w, table, prefixes, namespaces, locals, q))
	require.NoError(t, w.Flush())

	r := newReader(&buf)
	got, err := DecodeQNameRef(r, table, prefixes, namespaces, locals)
	require.NoError(t, err)
	require.Equal(t, q, got)
}

func TestQNameRefSecondOccurrenceIsIndex(t *testing.T) {
	table := vocab.NewQNameTable()
	prefixes := vocab.NewStringTable()
	namespaces := vocab.NewStringTable()
	locals := vocab.NewStringTable()

	q := qname.New("a", "urn:ns", "foo")
	idx, added := table.Intern(q)
	require.True(t, added)

	var buf bytes.Buffer
	w := newWriter(&buf)
	require.NoError(t, EncodeQNameRef(w, table, prefixes, namespaces, locals, q))
	require.NoError(t, w.Flush())

	require.Len(t, buf.Bytes(), 1, "index form for a table entry already present fits in one octet")
	require.Equal(t, byte(idx-1), buf.Bytes()[0])
}

func TestQNameRefRejectsPrefixWithoutNamespace(t *testing.T) {
	table := vocab.NewQNameTable()
	prefixes := vocab.NewStringTable()
	namespaces := vocab.NewStringTable()
	locals := vocab.NewStringTable()

	var buf bytes.Buffer
	w := newWriter(&buf)

	q := qname.New("a", "", "foo")
	err := EncodeQNameRef(w, table, prefixes, namespaces, locals, q)
	require.ErrorIs(t, err, errs.ErrInvalidQName)
}

func TestQNameRefNoPrefixNoNamespace(t *testing.T) {
	table := vocab.NewQNameTable()
	prefixes := vocab.NewStringTable()
	namespaces := vocab.NewStringTable()
	locals := vocab.NewStringTable()

	var buf bytes.Buffer
	w := newWriter(&buf)

	q := qname.New("", "", "root")
	require.NoError(t, EncodeQNameRef(w, table, prefixes, namespaces, locals, q))
	require.NoError(t, w.Flush())

	r := newReader(&buf)
	got, err := DecodeQNameRef(r, table, prefixes, namespaces, locals)
	require.NoError(t, err)
	require.Equal(t, q, got)
}

func TestStringRefEmptyIsSentinel(t *testing.T) {
	table := vocab.NewStringTable()

	var buf bytes.Buffer
	w := newWriter(&buf)
	require.NoError(t, EncodeStringRef(w, table, ""))
	require.NoError(t, w.Flush())

	require.Equal(t, []byte{0x7F}, buf.Bytes())

	r := newReader(&buf)
	got, err := DecodeStringRef(r, table, alphabet.NewRegistry(), algorithm.NewRegistry())
	require.NoError(t, err)
	require.Equal(t, "", got)
	require.Equal(t, 0, table.Len(), "empty-string sentinel never touches the table")
}

func TestStringRefFirstOccurrenceLiteralThenIndexed(t *testing.T) {
	table := vocab.NewStringTable()
	alphabets := alphabet.NewRegistry()
	algorithms := algorithm.NewRegistry()

	var buf bytes.Buffer
	w := newWriter(&buf)
	require.NoError(t, EncodeStringRef(w, table, "hello"))
	require.NoError(t, w.Flush())

	r := newReader(&buf)
	got, err := DecodeStringRef(r, table, alphabets, algorithms)
	require.NoError(t, err)
	require.Equal(t, "hello", got)
	require.Equal(t, 1, table.Len())

	var buf2 bytes.Buffer
	w2 := newWriter(&buf2)
	require.NoError(t, EncodeStringRef(w2, table, "hello"))
	require.NoError(t, w2.Flush())
	require.Len(t, buf2.Bytes(), 1, "already-interned string encodes as a one-byte index")

	r2 := newReader(&buf2)
	got2, err := DecodeStringRef(r2, table, alphabets, algorithms)
	require.NoError(t, err)
	require.Equal(t, "hello", got2)
}

func TestStringRefAlphabetRoundTrip(t *testing.T) {
	table := vocab.NewStringTable()
	alphabets := alphabet.NewRegistry()
	algorithms := algorithm.NewRegistry()

	var buf bytes.Buffer
	w := newWriter(&buf)
	require.NoError(t, EncodeStringRefAlphabet(w, table, alphabets, 1, "-123.45e+6"))
	require.NoError(t, w.Flush())

	r := newReader(&buf)
	got, err := DecodeStringRef(r, table, alphabets, algorithms)
	require.NoError(t, err)
	require.Equal(t, "-123.45e+6", got)
}

func TestStringRefAlgorithmRoundTrip(t *testing.T) {
	table := vocab.NewStringTable()
	alphabets := alphabet.NewRegistry()
	algorithms := algorithm.NewRegistry()

	var buf bytes.Buffer
	w := newWriter(&buf)
	require.NoError(t, EncodeStringRefAlgorithm(w, table, algorithms, algorithm.IndexHex, "DEADBEEF"))
	require.NoError(t, w.Flush())

	r := newReader(&buf)
	got, err := DecodeStringRef(r, table, alphabets, algorithms)
	require.NoError(t, err)
	require.Equal(t, "DEADBEEF", got)
}

func TestStringRefUTF16RoundTrip(t *testing.T) {
	table := vocab.NewStringTable()
	alphabets := alphabet.NewRegistry()
	algorithms := algorithm.NewRegistry()

	var buf bytes.Buffer
	w := newWriter(&buf)
	require.NoError(t, EncodeStringRefUTF16(w, table, "héllo"))
	require.NoError(t, w.Flush())

	r := newReader(&buf)
	got, err := DecodeStringRef(r, table, alphabets, algorithms)
	require.NoError(t, err)
	require.Equal(t, "héllo", got)
}

func TestIsElementDispatchAndDocType(t *testing.T) {
	require.True(t, IsElementDispatch(0x00))
	require.True(t, IsElementDispatch(ElementMax))
	require.False(t, IsElementDispatch(0x80))

	require.True(t, IsDocType(DocTypeBase))
	require.True(t, IsDocType(DocTypeBase+3))
	require.False(t, IsDocType(DocTypeBase+4))
}
