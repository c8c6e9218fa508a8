package parser

import (
	"bytes"
	"io"
	"testing"

	"github.com/LiquidTechnologies/fast-infoset/algorithm"
	"github.com/LiquidTechnologies/fast-infoset/bitio"
	"github.com/LiquidTechnologies/fast-infoset/event"
	"github.com/LiquidTechnologies/fast-infoset/header"
	"github.com/LiquidTechnologies/fast-infoset/qname"
	"github.com/LiquidTechnologies/fast-infoset/vocab"
	"github.com/LiquidTechnologies/fast-infoset/wire"
	"github.com/stretchr/testify/require"
)

// buildSimpleDocument hand-assembles a one-element, no-attribute document:
// <root>hi</root>, using wire's own encoders rather than literal byte
// tables, the same way wire_test.go builds its fixtures.
func buildSimpleDocument(t *testing.T) []byte {
	t.Helper()

	v := vocab.New()

	var buf bytes.Buffer
	w := bitio.NewWriter(&buf, 4096)

	require.NoError(t, header.WriteFrame(w, "", 0))

	require.NoError(t, w.WriteByte(0x00)) // element dispatch, no attrs/ns-attrs
	require.NoError(t, wire.EncodeQNameRef(w, v.ElementNames, v.PrefixNames, v.NamespaceNames, v.LocalNames, qname.New("", "", "root")))

	require.NoError(t, w.WriteByte(wire.CharChunk))
	require.NoError(t, wire.EncodeStringRef(w, v.ContentChunks, "hi"))

	require.NoError(t, w.WriteByte(wire.Terminator)) // closes root
	require.NoError(t, w.WriteByte(wire.Terminator)) // closes document

	require.NoError(t, w.Flush())

	return buf.Bytes()
}

func TestParserSimpleElementRoundTrip(t *testing.T) {
	p := New(bytes.NewReader(buildSimpleDocument(t)))

	n, err := p.Read()
	require.NoError(t, err)
	require.Equal(t, event.StartDocument, n.Type)

	n, err = p.Read()
	require.NoError(t, err)
	require.Equal(t, event.Element, n.Type)
	require.Equal(t, "root", n.Name.LocalName)
	require.Equal(t, 0, n.Depth)

	n, err = p.Read()
	require.NoError(t, err)
	require.Equal(t, event.Text, n.Type)
	require.Equal(t, "hi", n.Value)
	require.Equal(t, 1, n.Depth)

	n, err = p.Read()
	require.NoError(t, err)
	require.Equal(t, event.EndElement, n.Type)
	require.Equal(t, "root", n.Name.LocalName)

	n, err = p.Read()
	require.NoError(t, err)
	require.Equal(t, event.EndDocument, n.Type)

	_, err = p.Read()
	require.ErrorIs(t, err, io.EOF)
}

func TestParserDoubleTerminatorClosesTwoLevels(t *testing.T) {
	v := vocab.New()

	var buf bytes.Buffer
	w := bitio.NewWriter(&buf, 4096)

	require.NoError(t, header.WriteFrame(w, "", 0))

	require.NoError(t, w.WriteByte(0x00))
	require.NoError(t, wire.EncodeQNameRef(w, v.ElementNames, v.PrefixNames, v.NamespaceNames, v.LocalNames, qname.New("", "", "outer")))

	require.NoError(t, w.WriteByte(0x00))
	require.NoError(t, wire.EncodeQNameRef(w, v.ElementNames, v.PrefixNames, v.NamespaceNames, v.LocalNames, qname.New("", "", "inner")))

	require.NoError(t, w.WriteByte(wire.DoubleTerminator)) // closes inner, then outer
	require.NoError(t, w.WriteByte(wire.Terminator))       // closes document

	require.NoError(t, w.Flush())

	p := New(bytes.NewReader(buf.Bytes()))

	_, err := p.Read() // StartDocument
	require.NoError(t, err)

	n, err := p.Read() // outer
	require.NoError(t, err)
	require.Equal(t, "outer", n.Name.LocalName)

	n, err = p.Read() // inner
	require.NoError(t, err)
	require.Equal(t, "inner", n.Name.LocalName)
	require.Equal(t, 1, n.Depth)

	n, err = p.Read() // EndElement inner, from the double terminator's first close
	require.NoError(t, err)
	require.Equal(t, event.EndElement, n.Type)
	require.Equal(t, "inner", n.Name.LocalName)

	n, err = p.Read() // EndElement outer, from the latched pending close
	require.NoError(t, err)
	require.Equal(t, event.EndElement, n.Type)
	require.Equal(t, "outer", n.Name.LocalName)

	n, err = p.Read() // EndDocument
	require.NoError(t, err)
	require.Equal(t, event.EndDocument, n.Type)
}

func TestParserAttributesAndCDATA(t *testing.T) {
	v := vocab.New()

	var buf bytes.Buffer
	w := bitio.NewWriter(&buf, 4096)

	require.NoError(t, header.WriteFrame(w, "", 0))

	require.NoError(t, w.WriteByte(0x00|wire.ElementHasAttributes))
	require.NoError(t, wire.EncodeQNameRef(w, v.ElementNames, v.PrefixNames, v.NamespaceNames, v.LocalNames, qname.New("", "", "item")))

	require.NoError(t, wire.EncodeQNameRef(w, v.AttributeNames, v.PrefixNames, v.NamespaceNames, v.LocalNames, qname.New("", "", "id")))
	require.NoError(t, wire.EncodeStringRef(w, v.AttributeValues, "7"))
	require.NoError(t, w.WriteByte(wire.Terminator)) // closes attribute list

	require.NoError(t, w.WriteByte(wire.CharChunk))

	require.NoError(t, wire.EncodeStringRefAlgorithm(w, v.ContentChunks, algorithm.NewRegistry(), algorithm.IndexCDATA, "<raw/>"))

	require.NoError(t, w.WriteByte(wire.Terminator)) // closes item
	require.NoError(t, w.WriteByte(wire.Terminator)) // closes document

	require.NoError(t, w.Flush())

	p := New(bytes.NewReader(buf.Bytes()))

	_, err := p.Read() // StartDocument
	require.NoError(t, err)

	n, err := p.Read() // item
	require.NoError(t, err)
	require.Equal(t, "item", n.Name.LocalName)
	require.Len(t, n.Attributes, 1)
	require.Equal(t, "id", n.Attributes[0].Name.LocalName)
	require.Equal(t, "7", n.Attributes[0].Value)

	n, err = p.Read() // CDATA content chunk
	require.NoError(t, err)
	require.Equal(t, event.CDATA, n.Type)
	require.Equal(t, "<raw/>", n.Value)
}

func TestParserDeclarationIsRecorded(t *testing.T) {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf, 4096)

	require.NoError(t, header.WriteFrame(w, "<?xml encoding='finf' standalone='yes'?>", 0))
	require.NoError(t, w.WriteByte(wire.Terminator)) // empty document, closes immediately

	require.NoError(t, w.Flush())

	p := New(bytes.NewReader(buf.Bytes()))

	_, err := p.Read()
	require.NoError(t, err)

	require.Equal(t, "<?xml encoding='finf' standalone='yes'?>", p.Declaration().Text)
}
