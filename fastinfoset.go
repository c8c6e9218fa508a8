// Package fastinfoset provides a Fast Infoset (ITU-T X.891 | ISO/IEC
// 24824-1) binary XML codec.
//
// Fast Infoset is a binary representation of the XML Information Set,
// designed to be faster to parse and more compact on the wire than
// textual XML while round-tripping the same infoset. This package
// implements both directions of the codec: parsing a Fast Infoset
// octet stream into a stream of infoset events, and encoding a stream
// of writer calls into a conformant Fast Infoset document.
//
// # Basic Usage
//
// Parsing a document:
//
//	import "github.com/LiquidTechnologies/fast-infoset"
//
//	p := fastinfoset.NewParser(r)
//	for {
//	    node, err := p.Read()
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    // inspect node.Type, node.Name, node.Value, node.Attributes...
//	}
//
// Encoding a document:
//
//	e := fastinfoset.NewEncoder(w)
//	e.WriteStartDocument("")
//	e.WriteStartElement(nil, "root", "")
//	e.WriteCharacterChunk("hello")
//	e.WriteEndElement()
//	e.WriteEndDocument()
//
// # Package Structure
//
// This package is a convenience layer over parser and encoder,
// re-exporting their constructors and the shared vocabulary, alphabet,
// and algorithm registry types a caller typically needs to wire a
// parser and an encoder to a common initial vocabulary. For low-level
// control over the wire codec, header framing, or the event model, use
// the parser, encoder, vocab, alphabet, algorithm, and event packages
// directly.
package fastinfoset

import (
	"io"

	"github.com/LiquidTechnologies/fast-infoset/algorithm"
	"github.com/LiquidTechnologies/fast-infoset/alphabet"
	"github.com/LiquidTechnologies/fast-infoset/encoder"
	"github.com/LiquidTechnologies/fast-infoset/parser"
	"github.com/LiquidTechnologies/fast-infoset/vocab"
)

// NewParser creates a parser reading a Fast Infoset octet stream from r.
//
// Parameters:
//   - r: the source of the encoded document.
//   - opts: optional configuration (see parser.Option).
//
// Returns:
//   - *parser.Parser: the created parser, ready for Read.
//
// Available options:
//   - parser.WithBlockSize(n)
//   - parser.WithVocabulary(v)
//   - parser.WithAlphabetRegistry(r)
//   - parser.WithAlgorithmRegistry(r)
//   - parser.WithExtendedAlgorithmFactory(f)
func NewParser(r io.Reader, opts ...parser.Option) *parser.Parser {
	return parser.New(r, opts...)
}

// NewEncoder creates an encoder writing a Fast Infoset octet stream to w.
//
// Parameters:
//   - w: the destination for the encoded document.
//   - opts: optional configuration (see encoder.Option).
//
// Returns:
//   - *encoder.Encoder: the created encoder, ready for WriteStartDocument.
//
// Available options:
//   - encoder.WithBlockSize(n)
//   - encoder.WithVocabulary(v)
//   - encoder.WithAlphabetRegistry(r)
//   - encoder.WithAlgorithmRegistry(r)
//   - encoder.WithPreferUTF16(v)
//   - encoder.WithVersion(v)
//   - encoder.WithStandalone(v)
//   - encoder.WithCharacterEncodingScheme(s)
//   - encoder.WithAdditionalData(data, kind)
//   - encoder.WithInitialVocabulary(externalURI, extendedAlphabets, extendedAlgorithmURIs)
func NewEncoder(w io.Writer, opts ...encoder.Option) *encoder.Encoder {
	return encoder.New(w, opts...)
}

// NewSharedVocabulary creates a vocabulary pre-seeded with the default
// tables, suitable for passing to both a parser and an encoder via
// parser.WithVocabulary/encoder.WithVocabulary so the two sides resolve
// the same index references to the same strings and names.
//
// Use this when encoding and later parsing documents within the same
// process against an externally agreed initial vocabulary, rather than
// relying on each document carrying its own initial-vocabulary header
// component.
func NewSharedVocabulary() *vocab.Vocabulary {
	return vocab.New()
}

// NewAlphabetRegistry creates an empty restricted alphabet registry,
// suitable for registering application-specific alphabets before
// passing it to both parser.WithAlphabetRegistry and
// encoder.WithAlphabetRegistry.
func NewAlphabetRegistry() *alphabet.Registry {
	return alphabet.NewRegistry()
}

// NewAlgorithmRegistry creates an algorithm registry pre-populated with
// the built-in encoding algorithms (hex, base64, fixed-width integers,
// float, double, boolean, UUID, CDATA), suitable for registering
// extended algorithms before passing it to both
// parser.WithAlgorithmRegistry and encoder.WithAlgorithmRegistry.
func NewAlgorithmRegistry() *algorithm.Registry {
	return algorithm.NewRegistry()
}
