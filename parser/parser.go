// Package parser implements the Fast Infoset parser state machine from
// spec §4.5: document framing, the depth-0/element/attribute/content
// dispatch, and the one-deep pending-close latch that lets a double
// terminator close two nesting levels across two Read calls without
// re-reading input.
//
// The header/body split (the unexported decodeHeader, run by the first
// Read, then one item per later Read) mirrors the
// teacher's blob.NumericDecoder / blob.TextDecoder constructor shape:
// parse the fixed framing once, then decode items one at a time against
// the parsed state.
package parser

import (
	"io"

	"github.com/LiquidTechnologies/fast-infoset/algorithm"
	"github.com/LiquidTechnologies/fast-infoset/alphabet"
	"github.com/LiquidTechnologies/fast-infoset/bitio"
	"github.com/LiquidTechnologies/fast-infoset/compress"
	"github.com/LiquidTechnologies/fast-infoset/errs"
	"github.com/LiquidTechnologies/fast-infoset/event"
	"github.com/LiquidTechnologies/fast-infoset/format"
	"github.com/LiquidTechnologies/fast-infoset/header"
	"github.com/LiquidTechnologies/fast-infoset/internal/options"
	"github.com/LiquidTechnologies/fast-infoset/nsmgr"
	"github.com/LiquidTechnologies/fast-infoset/primitive"
	"github.com/LiquidTechnologies/fast-infoset/qname"
	"github.com/LiquidTechnologies/fast-infoset/vocab"
	"github.com/LiquidTechnologies/fast-infoset/wire"
)

// Parser decodes a Fast Infoset byte stream into a sequence of node
// events. It is not safe for concurrent use (spec §5).
type Parser struct {
	r          *bitio.Reader
	vocabulary *vocab.Vocabulary
	alphabets  *alphabet.Registry
	algorithms *algorithm.Registry
	find       vocab.ExtendedAlgorithmFactory
	cursor     *event.Cursor

	frame                   header.Frame
	frameRead               bool
	externalVocabularyURI   string
	additionalData          []byte
	characterEncodingScheme string
	standalone              *bool
	version                 string

	elemStack    []qname.QName
	depth        int
	pendingClose int
	done         bool
}

// New creates a Parser reading from src.
func New(src io.Reader, opts ...Option) *Parser {
	cfg := defaultConfig()
	_ = options.Apply(cfg, opts...)

	return &Parser{
		r:          bitio.NewReader(src, cfg.blockSize),
		vocabulary: cfg.vocabulary,
		alphabets:  cfg.alphabets,
		algorithms: cfg.algorithms,
		find:       cfg.findAlgorithm,
		cursor:     event.NewCursor(),
	}
}

// Vocabulary returns the tables this parser has accumulated so far.
func (p *Parser) Vocabulary() *vocab.Vocabulary { return p.vocabulary }

// Cursor returns the read-side accessor cursor positioned on the most
// recently returned event (spec §4.8).
func (p *Parser) Cursor() *event.Cursor { return p.cursor }

// AdditionalData returns the decompressed "additional data" document
// component, if the stream carried one.
func (p *Parser) AdditionalData() []byte { return p.additionalData }

// Declaration is the document's framing metadata: the plaintext XML
// declaration text (empty if none preceded the magic header), the
// character encoding scheme name, the recorded XML version, the
// standalone flag (nil if absent), and the external vocabulary URI a
// referenced initial-vocabulary block named (empty if none).
type Declaration struct {
	Text                    string
	CharacterEncodingScheme string
	Version                 string
	Standalone              *bool
	ExternalVocabularyURI   string
}

// Declaration reports the document's framing metadata decoded by the
// first Read call.
func (p *Parser) Declaration() Declaration {
	return Declaration{
		Text:                    p.frame.Declaration,
		CharacterEncodingScheme: p.characterEncodingScheme,
		Version:                 p.version,
		Standalone:              p.standalone,
		ExternalVocabularyURI:   p.externalVocabularyURI,
	}
}

// Read decodes and returns the next node event. It returns io.EOF once
// the document's EndDocument event has already been delivered.
func (p *Parser) Read() (event.Node, error) {
	if p.done {
		return event.Node{}, io.EOF
	}

	if !p.frameRead {
		if err := p.decodeHeader(); err != nil {
			return event.Node{}, err
		}

		p.frameRead = true
		node := event.Node{Type: event.StartDocument}
		p.cursor.Set(node)

		return node, nil
	}

	if p.pendingClose > 0 {
		p.pendingClose--
		return p.closeElement()
	}

	return p.readNext()
}

// decodeHeader parses the document's framing and optional components
// (spec §4.5 items 1-3), seeding p.vocabulary/p.alphabets/p.algorithms in
// place.
func (p *Parser) decodeHeader() error {
	frame, err := header.ReadFrame(p.r)
	if err != nil {
		return err
	}

	p.frame = frame
	opts := frame.Options

	if opts.HasAdditionalData() {
		if err := p.decodeAdditionalData(); err != nil {
			return err
		}
	}

	if opts.HasInitialVocabulary() {
		result, err := vocab.ReadInitialVocabulary(p.r, p.vocabulary, p.alphabets, p.algorithms, p.find)
		if err != nil {
			return err
		}

		p.externalVocabularyURI = result.ExternalVocabularyURI
	}

	if opts.HasNotations() {
		if err := p.skipNotations(); err != nil {
			return err
		}
	}

	if opts.HasUnparsedEntities() {
		if err := p.skipUnparsedEntities(); err != nil {
			return err
		}
	}

	if opts.HasCharacterEncodingScheme() {
		s, err := wire.ReadPlainString(p.r)
		if err != nil {
			return err
		}

		p.characterEncodingScheme = s
	}

	if opts.HasStandalone() {
		b, err := p.r.ReadByte()
		if err != nil {
			return err
		}

		v := b != 0
		p.standalone = &v
	}

	if opts.HasVersion() {
		s, err := wire.ReadPlainString(p.r)
		if err != nil {
			return err
		}

		p.version = s
	}

	return nil
}

func (p *Parser) decodeAdditionalData() error {
	kindByte, err := p.r.ReadByte()
	if err != nil {
		return err
	}

	lenFirst, err := p.r.ReadByte()
	if err != nil {
		return err
	}

	n, err := primitive.DecodeLen(lenFirst, 2, p.r)
	if err != nil {
		return err
	}

	data, err := p.r.ReadBytes(int(n))
	if err != nil {
		return err
	}

	codec, err := compress.CreateCodec(format.CompressionKind(kindByte), "additional data")
	if err != nil {
		return err
	}

	out, err := codec.Decompress(data)
	if err != nil {
		return err
	}

	p.additionalData = out

	return nil
}

// skipNotations and skipUnparsedEntities consume a DTD notations/
// unparsed-entities block without surfacing its contents (spec §4.5 item
// 3 requires these to be skippable; this implementation does not expose
// DTD validation, per SPEC_FULL's parser module note).
func (p *Parser) skipNotations() error {
	return readCount(p.r, func() error {
		if _, err := wire.ReadPlainString(p.r); err != nil { // name
			return err
		}

		flags, err := p.r.ReadByte()
		if err != nil {
			return err
		}

		if flags&0x01 != 0 {
			if _, err := wire.ReadPlainString(p.r); err != nil { // publicID
				return err
			}
		}

		if flags&0x02 != 0 {
			if _, err := wire.ReadPlainString(p.r); err != nil { // systemID
				return err
			}
		}

		return nil
	})
}

func (p *Parser) skipUnparsedEntities() error {
	return readCount(p.r, func() error {
		if _, err := wire.ReadPlainString(p.r); err != nil { // name
			return err
		}

		flags, err := p.r.ReadByte()
		if err != nil {
			return err
		}

		if flags&0x01 != 0 {
			if _, err := wire.ReadPlainString(p.r); err != nil { // publicID
				return err
			}
		}

		if flags&0x02 != 0 {
			if _, err := wire.ReadPlainString(p.r); err != nil { // systemID
				return err
			}
		}

		if _, err := wire.ReadPlainString(p.r); err != nil { // notationName
			return err
		}

		return nil
	})
}

func readCount(r *bitio.Reader, each func() error) error {
	first, err := r.ReadByte()
	if err != nil {
		return err
	}

	n, err := primitive.DecodeInt0(first, r)
	if err != nil {
		return err
	}

	for i := int64(0); i < n; i++ {
		if err := each(); err != nil {
			return err
		}
	}

	return nil
}

// readNext decodes one item from the current dispatch context: document
// children at depth 0, or an open element's content at depth > 0 (spec
// §4.5's depth-0 and text-content dispatch tables).
func (p *Parser) readNext() (event.Node, error) {
	b, err := p.r.ReadByte()
	if err != nil {
		return event.Node{}, err
	}

	switch {
	case wire.IsElementDispatch(b):
		return p.decodeElementOpen(b)
	case b == wire.CharChunk:
		if p.depth == 0 {
			return event.Node{}, errs.ErrInvalidIdentifier
		}
		return p.decodeCharChunk()
	case b == wire.ProcessingInstructionTag:
		return p.decodeProcessingInstruction()
	case b == wire.CommentTag:
		return p.decodeComment()
	case b == wire.EntityRefTag:
		if p.depth == 0 {
			return event.Node{}, errs.ErrInvalidIdentifier
		}
		return p.decodeEntityRef()
	case wire.IsDocType(b):
		if p.depth != 0 {
			return event.Node{}, errs.ErrInvalidIdentifier
		}
		return p.decodeDocType(b)
	case b == wire.Terminator:
		return p.closeCurrent()
	case b == wire.DoubleTerminator:
		return p.closeCurrentDouble()
	default:
		return event.Node{}, errs.ErrInvalidIdentifier
	}
}

func (p *Parser) closeCurrent() (event.Node, error) {
	return p.closeElement()
}

// closeCurrentDouble closes the current scope and latches a second close
// for the next Read call, so a single double-terminator byte can close two
// nesting levels without re-reading input.
func (p *Parser) closeCurrentDouble() (event.Node, error) {
	node, err := p.closeElement()
	if err != nil {
		return event.Node{}, err
	}

	if !p.done {
		p.pendingClose = 1
	}

	return node, nil
}

// closeElement pops the innermost open element and emits its EndElement
// event. An empty stack means the document's root just closed, which is
// the document's own end (spec §4.5's "Terminal bytes" note: the pending-
// close latch's second fire is allowed to be the outer EndDocument).
func (p *Parser) closeElement() (event.Node, error) {
	if len(p.elemStack) == 0 {
		p.done = true
		node := event.Node{Type: event.EndDocument}
		p.cursor.Set(node)

		return node, nil
	}

	name := p.elemStack[len(p.elemStack)-1]
	p.elemStack = p.elemStack[:len(p.elemStack)-1]
	p.depth--

	node := event.Node{Type: event.EndElement, Depth: p.depth, Name: name}
	p.cursor.Set(node)

	return node, nil
}

func (p *Parser) decodeElementOpen(b byte) (event.Node, error) {
	hasAttrs := b&wire.ElementHasAttributes != 0
	hasNSAttrs := b&wire.ElementHasNamespaceAttributes != 0

	var attrs []event.Attribute

	if hasNSAttrs {
		nsAttrs, err := p.decodeNamespaceAttrBlock()
		if err != nil {
			return event.Node{}, err
		}

		attrs = append(attrs, nsAttrs...)
	}

	name, err := wire.DecodeQNameRef(p.r, p.vocabulary.ElementNames, p.vocabulary.PrefixNames, p.vocabulary.NamespaceNames, p.vocabulary.LocalNames)
	if err != nil {
		return event.Node{}, err
	}

	closeImmediately := false

	if hasAttrs {
		regular, closed, err := p.decodeAttributeList()
		if err != nil {
			return event.Node{}, err
		}

		attrs = append(attrs, regular...)
		closeImmediately = closed
	}

	depth := p.depth
	p.elemStack = append(p.elemStack, name)
	p.depth++

	if closeImmediately {
		p.pendingClose = 1
	}

	node := event.Node{Type: event.Element, Depth: depth, Name: name, Attributes: attrs}
	p.cursor.Set(node)

	return node, nil
}

func (p *Parser) decodeNamespaceAttrBlock() ([]event.Attribute, error) {
	var attrs []event.Attribute

	for {
		b, err := p.r.ReadByte()
		if err != nil {
			return nil, err
		}

		if b == wire.Terminator {
			return attrs, nil
		}

		name := qname.New("", nsmgr.ReservedXmlnsURI, "xmlns")

		if b&wire.NamespaceAttrHasPrefix != 0 {
			prefix, err := p.readInternedPlainString(p.vocabulary.PrefixNames)
			if err != nil {
				return nil, err
			}

			name = qname.New("xmlns", nsmgr.ReservedXmlnsURI, prefix)
		}

		uri, err := p.readInternedPlainString(p.vocabulary.NamespaceNames)
		if err != nil {
			return nil, err
		}

		attrs = append(attrs, event.Attribute{Name: name, Value: uri})
	}
}

// readInternedPlainString reads a namespace-attribute-block field (always
// a plain string, never alphabet/algorithm-encoded per spec §4.7) and
// interns it into tbl, mirroring wire's unexported writeInternedString/
// readInternedString pairing that this package cannot call directly.
func (p *Parser) readInternedPlainString(tbl *vocab.StringTable) (string, error) {
	s, err := wire.ReadPlainString(p.r)
	if err != nil {
		return "", err
	}

	tbl.Intern(s)

	return s, nil
}

func (p *Parser) decodeAttributeList() (attrs []event.Attribute, closedElement bool, err error) {
	for {
		b, err := p.r.ReadByte()
		if err != nil {
			return nil, false, err
		}

		if b == wire.Terminator {
			return attrs, false, nil
		}
		if b == wire.DoubleTerminator {
			return attrs, true, nil
		}

		if err := p.r.Rewind(1); err != nil {
			return nil, false, err
		}

		name, err := wire.DecodeQNameRef(p.r, p.vocabulary.AttributeNames, p.vocabulary.PrefixNames, p.vocabulary.NamespaceNames, p.vocabulary.LocalNames)
		if err != nil {
			return nil, false, err
		}

		val, err := wire.DecodeStringRefDetailed(p.r, p.vocabulary.AttributeValues, p.alphabets, p.algorithms)
		if err != nil {
			return nil, false, err
		}

		attrs = append(attrs, event.Attribute{Name: name, Value: val.Value})
	}
}

func (p *Parser) decodeCharChunk() (event.Node, error) {
	res, err := wire.DecodeStringRefDetailed(p.r, p.vocabulary.ContentChunks, p.alphabets, p.algorithms)
	if err != nil {
		return event.Node{}, err
	}

	nodeType := event.Text
	if res.Kind == wire.EncKindAlgorithm && res.TableIndex == algorithm.IndexCDATA {
		nodeType = event.CDATA
	}

	node := event.Node{Type: nodeType, Depth: p.depth, Value: res.Value}
	p.cursor.Set(node)

	return node, nil
}

func (p *Parser) decodeProcessingInstruction() (event.Node, error) {
	target, err := wire.DecodeStringRef(p.r, p.vocabulary.OtherNCNames, p.alphabets, p.algorithms)
	if err != nil {
		return event.Node{}, err
	}

	content, err := wire.DecodeStringRef(p.r, p.vocabulary.OtherStrings, p.alphabets, p.algorithms)
	if err != nil {
		return event.Node{}, err
	}

	node := event.Node{Type: event.ProcessingInstruction, Depth: p.depth, Name: qname.New("", "", target), Value: content}
	p.cursor.Set(node)

	return node, nil
}

func (p *Parser) decodeComment() (event.Node, error) {
	content, err := wire.DecodeStringRef(p.r, p.vocabulary.OtherStrings, p.alphabets, p.algorithms)
	if err != nil {
		return event.Node{}, err
	}

	node := event.Node{Type: event.Comment, Depth: p.depth, Value: content}
	p.cursor.Set(node)

	return node, nil
}

func (p *Parser) decodeEntityRef() (event.Node, error) {
	name, err := wire.DecodeStringRef(p.r, p.vocabulary.OtherNCNames, p.alphabets, p.algorithms)
	if err != nil {
		return event.Node{}, err
	}

	node := event.Node{Type: event.EntityRef, Depth: p.depth, Name: qname.New("", "", name)}
	p.cursor.Set(node)

	return node, nil
}

func (p *Parser) decodeDocType(b byte) (event.Node, error) {
	var publicID, systemID string
	var err error

	if b&wire.DocTypeHasPublicID != 0 {
		publicID, err = wire.ReadPlainString(p.r)
		if err != nil {
			return event.Node{}, err
		}
	}

	if b&wire.DocTypeHasSystemID != 0 {
		systemID, err = wire.ReadPlainString(p.r)
		if err != nil {
			return event.Node{}, err
		}
	}

	node := event.Node{Type: event.DocTypeDecl, Depth: p.depth, PublicID: publicID, SystemID: systemID}
	p.cursor.Set(node)

	return node, nil
}
