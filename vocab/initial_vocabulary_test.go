package vocab

import (
	"bytes"
	"testing"

	"github.com/LiquidTechnologies/fast-infoset/algorithm"
	"github.com/LiquidTechnologies/fast-infoset/alphabet"
	"github.com/LiquidTechnologies/fast-infoset/bitio"
	"github.com/LiquidTechnologies/fast-infoset/qname"
	"github.com/stretchr/testify/require"
)

func TestInitialVocabularyRoundTrip(t *testing.T) {
	v := New()
	v.LocalNames.Intern("item")
	v.LocalNames.Intern("id")
	v.AttributeValues.Intern("7")
	v.ElementNames.Intern(qname.New("", "urn:ns", "root"))

	var buf bytes.Buffer
	w := bitio.NewWriter(&buf, 4096)
	require.NoError(t, WriteInitialVocabulary(w, v, []string{"0123456789ABCDEF"}, []string{"urn:example:algo"}, "urn:example:vocab"))
	require.NoError(t, w.Flush())

	got := New()
	alphabets := alphabet.NewRegistry()
	algorithms := algorithm.NewRegistry()

	r := bitio.NewReader(&buf, 4096)
	result, err := ReadInitialVocabulary(r, got, alphabets, algorithms, nil)
	require.NoError(t, err)
	require.Equal(t, "urn:example:vocab", result.ExternalVocabularyURI)

	require.Equal(t, v.LocalNames.Entries(), got.LocalNames.Entries())
	require.Equal(t, v.AttributeValues.Entries(), got.AttributeValues.Entries())
	require.Equal(t, v.ElementNames.Entries(), got.ElementNames.Entries())

	a, err := alphabets.Lookup(alphabet.FirstExtendedAlphabetIndex)
	require.NoError(t, err)
	require.Equal(t, 16, a.Len())

	alg, err := algorithms.Lookup(algorithm.FirstExtendedIndex)
	require.NoError(t, err)
	wire, err := alg.ToWire("hello")
	require.NoError(t, err)
	require.Equal(t, "hello", string(wire), "unrecognized extended algorithm URI falls back to opaque passthrough")
}

func TestInitialVocabularyOmitsEmptyTables(t *testing.T) {
	v := New()

	var buf bytes.Buffer
	w := bitio.NewWriter(&buf, 4096)
	require.NoError(t, WriteInitialVocabulary(w, v, nil, nil, ""))
	require.NoError(t, w.Flush())

	// New() pre-seeds the xml prefix and the XML namespace, so those two
	// tables are written (a one-byte count, a one-byte length and the
	// string each) after the two option bytes; every empty table is omitted.
	require.Len(t, buf.Bytes(), 2+(1+1+len(XMLPrefix))+(1+1+len(XMLNamespaceURI)), "only the option bytes and the two pre-seeded tables are written")
}
