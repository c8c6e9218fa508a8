package encoder

import (
	"bytes"
	"io"
	"testing"

	"github.com/LiquidTechnologies/fast-infoset/event"
	"github.com/LiquidTechnologies/fast-infoset/parser"
	"github.com/stretchr/testify/require"
)

func TestEncoderSimpleElementRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	e := New(&buf)

	require.NoError(t, e.WriteStartDocument(""))
	require.NoError(t, e.WriteStartElement(nil, "root", ""))
	require.NoError(t, e.WriteCharacterChunk("hi"))
	require.NoError(t, e.WriteEndElement())
	require.NoError(t, e.WriteEndDocument())

	p := parser.New(bytes.NewReader(buf.Bytes()))

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

func TestEncoderNestedEmptyElementsMergeTerminators(t *testing.T) {
	var buf bytes.Buffer
	e := New(&buf)

	require.NoError(t, e.WriteStartElement(nil, "outer", ""))
	require.NoError(t, e.WriteStartElement(nil, "inner", ""))
	require.NoError(t, e.WriteEndDocument())

	wire := buf.Bytes()
	require.Equal(t, byte(0xFF), wire[len(wire)-2], "empty inner+outer close should merge into one DoubleTerminator byte, followed by the document's own Terminator")

	p := parser.New(bytes.NewReader(wire))

	_, err := p.Read() // StartDocument
	require.NoError(t, err)

	n, err := p.Read() // outer
	require.NoError(t, err)
	require.Equal(t, "outer", n.Name.LocalName)

	n, err = p.Read() // inner
	require.NoError(t, err)
	require.Equal(t, "inner", n.Name.LocalName)
	require.Equal(t, 1, n.Depth)

	n, err = p.Read() // EndElement inner
	require.NoError(t, err)
	require.Equal(t, event.EndElement, n.Type)
	require.Equal(t, "inner", n.Name.LocalName)

	n, err = p.Read() // EndElement outer
	require.NoError(t, err)
	require.Equal(t, event.EndElement, n.Type)
	require.Equal(t, "outer", n.Name.LocalName)

	n, err = p.Read() // EndDocument
	require.NoError(t, err)
	require.Equal(t, event.EndDocument, n.Type)
}

func TestEncoderAttributesAndCData(t *testing.T) {
	var buf bytes.Buffer
	e := New(&buf)

	require.NoError(t, e.WriteStartElement(nil, "item", ""))
	require.NoError(t, e.WriteStartAttribute(nil, "id", ""))
	require.NoError(t, e.WriteString("7"))
	require.NoError(t, e.WriteEndAttribute())
	require.NoError(t, e.WriteCData("<raw/>"))
	require.NoError(t, e.WriteEndDocument())

	p := parser.New(bytes.NewReader(buf.Bytes()))

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

func TestEncoderEmptyElementWithAttributesClosesImmediately(t *testing.T) {
	var buf bytes.Buffer
	e := New(&buf)

	require.NoError(t, e.WriteStartElement(nil, "item", ""))
	require.NoError(t, e.WriteStartAttribute(nil, "id", ""))
	require.NoError(t, e.WriteString("7"))
	require.NoError(t, e.WriteEndAttribute())
	require.NoError(t, e.WriteEndDocument())

	p := parser.New(bytes.NewReader(buf.Bytes()))

	_, err := p.Read() // StartDocument
	require.NoError(t, err)

	n, err := p.Read() // item
	require.NoError(t, err)
	require.Equal(t, "item", n.Name.LocalName)
	require.Len(t, n.Attributes, 1)

	n, err = p.Read() // EndElement item, from the merged attribute-list+element close
	require.NoError(t, err)
	require.Equal(t, event.EndElement, n.Type)
	require.Equal(t, "item", n.Name.LocalName)

	n, err = p.Read() // EndDocument
	require.NoError(t, err)
	require.Equal(t, event.EndDocument, n.Type)
}

func TestEncoderNamespaceDeclaration(t *testing.T) {
	var buf bytes.Buffer
	e := New(&buf)

	require.NoError(t, e.WriteStartElement(nil, "root", "urn:example:ns"))
	require.NoError(t, e.WriteEndDocument())

	p := parser.New(bytes.NewReader(buf.Bytes()))

	_, err := p.Read() // StartDocument
	require.NoError(t, err)

	n, err := p.Read() // root
	require.NoError(t, err)
	require.Equal(t, "root", n.Name.LocalName)
	require.Equal(t, "urn:example:ns", n.Name.NamespaceURI)
}

func TestEncoderCommentInPrologAndEpilog(t *testing.T) {
	var buf bytes.Buffer
	e := New(&buf)

	require.NoError(t, e.WriteComment("before"))
	require.NoError(t, e.WriteStartElement(nil, "root", ""))
	require.NoError(t, e.WriteEndElement())
	require.NoError(t, e.WriteComment("after"))
	require.NoError(t, e.WriteEndDocument())

	p := parser.New(bytes.NewReader(buf.Bytes()))

	_, err := p.Read() // StartDocument
	require.NoError(t, err)

	n, err := p.Read() // comment "before"
	require.NoError(t, err)
	require.Equal(t, event.Comment, n.Type)
	require.Equal(t, "before", n.Value)

	n, err = p.Read() // root
	require.NoError(t, err)
	require.Equal(t, "root", n.Name.LocalName)

	n, err = p.Read() // EndElement root
	require.NoError(t, err)
	require.Equal(t, event.EndElement, n.Type)

	n, err = p.Read() // comment "after"
	require.NoError(t, err)
	require.Equal(t, event.Comment, n.Type)
	require.Equal(t, "after", n.Value)

	n, err = p.Read() // EndDocument
	require.NoError(t, err)
	require.Equal(t, event.EndDocument, n.Type)
}

func TestEncoderInvalidStateAfterEndDocumentRejectsFurtherWrites(t *testing.T) {
	var buf bytes.Buffer
	e := New(&buf)

	require.NoError(t, e.WriteStartElement(nil, "root", ""))
	require.NoError(t, e.WriteEndDocument())

	err := e.WriteStartElement(nil, "again", "")
	require.Error(t, err)
}

func TestEncoderDocType(t *testing.T) {
	var buf bytes.Buffer
	e := New(&buf)

	require.NoError(t, e.WriteStartDocument(""))
	require.NoError(t, e.WriteDocType("-//example//DTD//EN", "example.dtd"))
	require.NoError(t, e.WriteStartElement(nil, "root", ""))
	require.NoError(t, e.WriteEndDocument())

	p := parser.New(bytes.NewReader(buf.Bytes()))

	_, err := p.Read() // StartDocument
	require.NoError(t, err)

	n, err := p.Read() // DocType
	require.NoError(t, err)
	require.Equal(t, event.DocTypeDecl, n.Type)
	require.Equal(t, "-//example//DTD//EN", n.PublicID)
	require.Equal(t, "example.dtd", n.SystemID)

	n, err = p.Read() // root
	require.NoError(t, err)
	require.Equal(t, "root", n.Name.LocalName)
}
