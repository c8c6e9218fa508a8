// Package encoder implements the Fast Infoset encoder state machine: the
// mirror image of package parser, accepting the same ordered sequence of
// write calls an XML producer would make and serializing them to the wire
// format parser.Parser reads back (spec §4.6).
package encoder

import (
	"io"

	"github.com/LiquidTechnologies/fast-infoset/algorithm"
	"github.com/LiquidTechnologies/fast-infoset/alphabet"
	"github.com/LiquidTechnologies/fast-infoset/bitio"
	"github.com/LiquidTechnologies/fast-infoset/compress"
	"github.com/LiquidTechnologies/fast-infoset/errs"
	"github.com/LiquidTechnologies/fast-infoset/header"
	"github.com/LiquidTechnologies/fast-infoset/internal/options"
	"github.com/LiquidTechnologies/fast-infoset/nsmgr"
	"github.com/LiquidTechnologies/fast-infoset/primitive"
	"github.com/LiquidTechnologies/fast-infoset/qname"
	"github.com/LiquidTechnologies/fast-infoset/vocab"
	"github.com/LiquidTechnologies/fast-infoset/wire"
)

// state is one position in the encoder's state table (spec §4.6).
type state int

const (
	stateStart state = iota
	stateProlog
	stateElement
	stateAttribute
	stateContent
	stateEpilog
	stateClosed
	stateError
)

// pending collapses the "is an element-closing terminator deferred, and
// can it still merge with the next one" bookkeeping into a single value,
// per spec §9's redesign guidance, rather than the three separate booleans
// a literal reading of §4.6 would suggest.
type pending int

const (
	pendingNone pending = iota
	pendingSingle
)

// attrValueKind discriminates how a buffered attribute's value was
// supplied, so the encoder can pick the right wire.EncodeStringRef* call
// when the owning element is finally flushed.
type attrValueKind int

const (
	avPlain attrValueKind = iota
	avAlgorithm
	avAlphabet
)

type pendingAttr struct {
	name     qname.QName
	kind     attrValueKind
	text     string
	tableIdx int
}

type nsBinding struct {
	prefix string
	uri    string
}

// pendingElement buffers an open element's namespace attributes, name,
// and attribute list until the first event that forces it onto the wire:
// a content write, a child element start, or the element's own end (spec
// §4.6's "element buffering" rule).
type pendingElement struct {
	name     qname.QName
	nsAttrs  []nsBinding
	nsPushed bool
	attrs    []pendingAttr
}

// Encoder writes a single Fast Infoset document to an underlying
// io.Writer, enforcing the state table spec §4.6 defines over the method
// calls below. An Encoder is not safe for concurrent use; each document
// gets its own Encoder the same way each document gets its own
// parser.Parser (spec §5).
type Encoder struct {
	w          *bitio.Writer
	vocabulary *vocab.Vocabulary
	alphabets  *alphabet.Registry
	algorithms *algorithm.Registry
	ns         *nsmgr.Manager
	cfg        *config

	state       state
	pending     pending
	pendingElem *pendingElement
	curAttr     *pendingAttr

	elemStack []qname.QName
	depth     int
}

// New constructs an Encoder writing to dst. The document is not started
// until the first write call; WriteStartDocument may be called explicitly
// to supply a declaration, or left to happen implicitly on the first
// content-producing call.
func New(dst io.Writer, opts ...Option) *Encoder {
	cfg := defaultConfig()
	_ = options.Apply(cfg, opts...)

	return &Encoder{
		w:          bitio.NewWriter(dst, cfg.blockSize),
		vocabulary: cfg.vocabulary,
		alphabets:  cfg.alphabets,
		algorithms: cfg.algorithms,
		ns:         nsmgr.New(),
		cfg:        cfg,
		state:      stateStart,
	}
}

// Vocabulary returns the vocabulary this encoder is building up, so a
// caller can persist it and seed a later document with WithVocabulary.
func (e *Encoder) Vocabulary() *vocab.Vocabulary { return e.vocabulary }

// fail moves the encoder into its terminal error state and returns err,
// matching every other method's error-return shape so callers can write
// `return e.fail(err)`.
func (e *Encoder) fail(err error) error {
	e.state = stateError
	return err
}

// WriteStartDocument opens the document, optionally emitting decl as the
// plaintext XML declaration prefix (must be one of header.Declarations;
// pass "" to omit it). Calling any content-producing method before
// WriteStartDocument starts the document implicitly with an empty
// declaration.
func (e *Encoder) WriteStartDocument(decl string) error {
	if e.state != stateStart {
		return e.fail(errs.ErrInvalidState)
	}

	if err := e.writeHeader(decl); err != nil {
		return e.fail(err)
	}

	e.state = stateProlog
	return nil
}

func (e *Encoder) writeHeader(decl string) error {
	var opts header.Options
	if len(e.cfg.additional) > 0 {
		opts.WithAdditionalData()
	}
	if e.cfg.writeVocab {
		opts.WithInitialVocabulary()
	}
	if e.cfg.ces != "" {
		opts.WithCharacterEncodingScheme()
	}
	if e.cfg.standalone != nil {
		opts.WithStandalone()
	}
	if e.cfg.version != "" {
		opts.WithVersion()
	}

	if err := header.WriteFrame(e.w, decl, opts); err != nil {
		return err
	}

	if len(e.cfg.additional) > 0 {
		if err := e.writeAdditionalData(); err != nil {
			return err
		}
	}

	if e.cfg.writeVocab {
		if err := vocab.WriteInitialVocabulary(e.w, e.vocabulary, e.cfg.extAlphabets, e.cfg.extAlgoURIs, e.cfg.externalURI); err != nil {
			return err
		}
	}

	if e.cfg.ces != "" {
		if err := wire.WritePlainString(e.w, e.cfg.ces); err != nil {
			return err
		}
	}

	if e.cfg.standalone != nil {
		b := byte(0)
		if *e.cfg.standalone {
			b = 1
		}
		if err := e.w.WriteByte(b); err != nil {
			return err
		}
	}

	if e.cfg.version != "" {
		if err := wire.WritePlainString(e.w, e.cfg.version); err != nil {
			return err
		}
	}

	return nil
}

func (e *Encoder) writeAdditionalData() error {
	codec, err := compress.CreateCodec(e.cfg.additionalCK, "additional data")
	if err != nil {
		return err
	}

	payload, err := codec.Compress(e.cfg.additional)
	if err != nil {
		return err
	}

	if err := e.w.WriteByte(byte(e.cfg.additionalCK)); err != nil {
		return err
	}

	enc, err := primitive.EncodeLen(0, 2, int64(len(payload)))
	if err != nil {
		return err
	}

	if err := e.w.WriteBytes(enc); err != nil {
		return err
	}

	return e.w.WriteBytes(payload)
}

// commitPending writes a deferred element-closing terminator as a plain
// Terminator byte, clearing the latch: spec §4.6's rule that any write
// other than a second consecutive close must flush what the previous
// close deferred before proceeding.
func (e *Encoder) commitPending() error {
	if e.pending == pendingSingle {
		if err := e.w.WriteByte(wire.Terminator); err != nil {
			return err
		}
		e.pending = pendingNone
	}
	return nil
}

// beginChildContent flushes whatever stands between the encoder and a
// position where content (text, CDATA, encoded data, a child element) may
// be written: the pending element's own start tag if it hasn't hit the
// wire yet, or a deferred sibling terminator otherwise.
func (e *Encoder) beginChildContent() error {
	switch e.state {
	case stateElement:
		if err := e.flushPendingElement(); err != nil {
			return err
		}
	case stateContent:
		if err := e.commitPending(); err != nil {
			return err
		}
	default:
		return errs.ErrInvalidState
	}
	e.state = stateContent
	return nil
}

// beginMiscContent is beginChildContent's counterpart for comment and
// processing-instruction nodes, which spec §4.8 also allows in the
// prolog and epilog (outside the root element).
func (e *Encoder) beginMiscContent() error {
	if e.state == stateStart {
		if err := e.WriteStartDocument(""); err != nil {
			return err
		}
	}

	switch e.state {
	case stateElement:
		if err := e.flushPendingElement(); err != nil {
			return err
		}
		e.state = stateContent
	case stateContent, stateProlog, stateEpilog:
		if err := e.commitPending(); err != nil {
			return err
		}
	default:
		return errs.ErrInvalidState
	}
	return nil
}

// flushPendingElement puts a buffered element's namespace-attribute
// block, qualified name, and attribute list on the wire, in that order
// (spec §4.6), then opens it for content: pushes it onto elemStack and
// enters stateContent. Called the first time anything other than another
// buffered attribute follows WriteStartElement.
func (e *Encoder) flushPendingElement() error {
	if e.pendingElem == nil {
		return nil
	}

	if err := e.commitPending(); err != nil {
		return err
	}

	pe := e.pendingElem
	e.pendingElem = nil

	dispatch := byte(0x00)
	if len(pe.attrs) > 0 {
		dispatch |= wire.ElementHasAttributes
	}
	if pe.nsPushed {
		dispatch |= wire.ElementHasNamespaceAttributes
	}

	if err := e.w.WriteByte(dispatch); err != nil {
		return err
	}

	if pe.nsPushed {
		if err := e.writeNamespaceAttrBlock(pe.nsAttrs); err != nil {
			return err
		}
	}

	if err := wire.EncodeQNameRef(e.w, e.vocabulary.ElementNames, e.vocabulary.PrefixNames, e.vocabulary.NamespaceNames, e.vocabulary.LocalNames, pe.name); err != nil {
		return err
	}

	if len(pe.attrs) > 0 {
		if err := e.writeAttributeList(pe.attrs); err != nil {
			return err
		}
		if err := e.w.WriteByte(wire.Terminator); err != nil {
			return err
		}
	}

	e.elemStack = append(e.elemStack, pe.name)
	e.depth++
	e.state = stateContent

	return nil
}

func (e *Encoder) writeNamespaceAttrBlock(bindings []nsBinding) error {
	for _, nb := range bindings {
		flags := byte(0)
		if nb.prefix != "" {
			flags |= wire.NamespaceAttrHasPrefix
		}
		if err := e.w.WriteByte(flags); err != nil {
			return err
		}
		if nb.prefix != "" {
			if err := wire.WritePlainString(e.w, nb.prefix); err != nil {
				return err
			}
			e.vocabulary.PrefixNames.Intern(nb.prefix)
		}
		if err := wire.WritePlainString(e.w, nb.uri); err != nil {
			return err
		}
		e.vocabulary.NamespaceNames.Intern(nb.uri)
	}
	return e.w.WriteByte(wire.Terminator)
}

func (e *Encoder) writeAttributeList(attrs []pendingAttr) error {
	for _, a := range attrs {
		if err := wire.EncodeQNameRef(e.w, e.vocabulary.AttributeNames, e.vocabulary.PrefixNames, e.vocabulary.NamespaceNames, e.vocabulary.LocalNames, a.name); err != nil {
			return err
		}
		if err := e.writeAttrValue(a); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) writeAttrValue(a pendingAttr) error {
	switch a.kind {
	case avAlgorithm:
		return wire.EncodeStringRefAlgorithm(e.w, e.vocabulary.AttributeValues, e.algorithms, a.tableIdx, a.text)
	case avAlphabet:
		return wire.EncodeStringRefAlphabet(e.w, e.vocabulary.AttributeValues, e.alphabets, a.tableIdx, a.text)
	default:
		return wire.EncodeStringRef(e.w, e.vocabulary.AttributeValues, a.text)
	}
}

// WriteStartElement opens an element named local in namespace ns
// (namespace may be ""), using prefix if given: when that prefix is not
// already bound to ns in scope, a new binding for it is declared on this
// element, shadowing any outer binding. The element is only buffered, not yet on the
// wire, until a content write, a child start, or WriteEndElement forces
// it out (spec §4.6).
func (e *Encoder) WriteStartElement(prefix *string, local, ns string) error {
	switch e.state {
	case stateError, stateClosed, stateAttribute, stateEpilog:
		return e.fail(errs.ErrInvalidState)
	case stateStart:
		if err := e.WriteStartDocument(""); err != nil {
			return err
		}
	}

	if e.pendingElem != nil {
		if err := e.flushPendingElement(); err != nil {
			return e.fail(err)
		}
	} else if err := e.commitPending(); err != nil {
		return e.fail(err)
	}

	e.ns.OpenElement()

	resolved, pushed, err := e.ns.Declare(prefix, ns)
	if err != nil {
		e.ns.CloseElement()
		return e.fail(err)
	}

	pe := &pendingElement{name: qname.New(resolved, ns, local)}
	if pushed {
		pe.nsPushed = true
		pe.nsAttrs = append(pe.nsAttrs, nsBinding{prefix: resolved, uri: ns})
	}

	e.pendingElem = pe
	e.state = stateElement
	return nil
}

// WriteStartAttribute begins an attribute on the currently pending
// element. A previously open attribute is ended automatically (spec
// §4.6's convenience-transition rule).
func (e *Encoder) WriteStartAttribute(prefix *string, local, ns string) error {
	if e.pendingElem == nil {
		return e.fail(errs.ErrInvalidState)
	}

	if e.curAttr != nil {
		if err := e.WriteEndAttribute(); err != nil {
			return err
		}
	}

	var resolved string
	if ns != "" {
		if prefix != nil && *prefix != "" {
			_, pushed, err := e.ns.Declare(prefix, ns)
			if err != nil {
				return e.fail(err)
			}
			if pushed {
				e.pendingElem.nsPushed = true
				e.pendingElem.nsAttrs = append(e.pendingElem.nsAttrs, nsBinding{prefix: *prefix, uri: ns})
			}
			resolved = *prefix
		} else {
			p, pushed, err := e.ns.ResolveAttributePrefix(ns)
			if err != nil {
				return e.fail(err)
			}
			if pushed {
				e.pendingElem.nsPushed = true
				e.pendingElem.nsAttrs = append(e.pendingElem.nsAttrs, nsBinding{prefix: p, uri: ns})
			}
			resolved = p
		}
	}

	e.curAttr = &pendingAttr{name: qname.New(resolved, ns, local)}
	e.state = stateAttribute
	return nil
}

// WriteEndAttribute closes the currently open attribute, appending it to
// the pending element's buffered attribute list.
func (e *Encoder) WriteEndAttribute() error {
	if e.curAttr == nil {
		return e.fail(errs.ErrInvalidState)
	}

	e.pendingElem.attrs = append(e.pendingElem.attrs, *e.curAttr)
	e.curAttr = nil
	e.state = stateElement
	return nil
}

// WriteString supplies the value of the attribute currently open between
// WriteStartAttribute and WriteEndAttribute.
func (e *Encoder) WriteString(s string) error {
	if e.curAttr == nil {
		return e.fail(errs.ErrInvalidState)
	}
	e.curAttr.kind = avPlain
	e.curAttr.text = s
	return nil
}

// WriteEncodedData supplies text to be written through the encoding
// algorithm registered at algoIndex (1-10 built in, or an extended index
// from an algorithm.Registry this Encoder was configured with). Valid for
// the currently open attribute value, or as a content chunk otherwise.
func (e *Encoder) WriteEncodedData(algoIndex int, s string) error {
	if e.state == stateAttribute {
		e.curAttr.kind = avAlgorithm
		e.curAttr.tableIdx = algoIndex
		e.curAttr.text = s
		return nil
	}

	if err := e.beginChildContent(); err != nil {
		return e.fail(err)
	}
	if err := e.w.WriteByte(wire.CharChunk); err != nil {
		return e.fail(err)
	}
	return wire.EncodeStringRefAlgorithm(e.w, e.vocabulary.ContentChunks, e.algorithms, algoIndex, s)
}

// WriteBase64 is a convenience for WriteEncodedData(algorithm.IndexBase64,
// ...): s is the base64 text form of the data (spec's base64 algorithm
// decodes this text to the bytes actually put on the wire).
func (e *Encoder) WriteBase64(s string) error {
	return e.WriteEncodedData(algorithm.IndexBase64, s)
}

// WriteAlphabetString writes s as a literal encoded with the restricted
// alphabet registered at tableIndex against this Encoder's alphabet
// registry. Valid only as content (spec §4.5 does not define an
// attribute-value alphabet form).
func (e *Encoder) WriteAlphabetString(tableIndex int, s string) error {
	if err := e.beginChildContent(); err != nil {
		return e.fail(err)
	}
	if err := e.w.WriteByte(wire.CharChunk); err != nil {
		return e.fail(err)
	}
	return wire.EncodeStringRefAlphabet(e.w, e.vocabulary.ContentChunks, e.alphabets, tableIndex, s)
}

// WriteCharacterChunk writes s as a plain content character chunk.
func (e *Encoder) WriteCharacterChunk(s string) error {
	if err := e.beginChildContent(); err != nil {
		return e.fail(err)
	}
	if err := e.w.WriteByte(wire.CharChunk); err != nil {
		return e.fail(err)
	}
	if e.cfg.preferUTF16 && s != "" {
		if _, ok := e.vocabulary.ContentChunks.Lookup(s); !ok {
			return wire.EncodeStringRefUTF16(e.w, e.vocabulary.ContentChunks, s)
		}
	}
	return wire.EncodeStringRef(e.w, e.vocabulary.ContentChunks, s)
}

// WriteCData writes s as a content chunk through the built-in CDATA
// encoding algorithm, so the parser reports it back as event.CDATA rather
// than event.Text.
func (e *Encoder) WriteCData(s string) error {
	if e.state == stateAttribute {
		return e.fail(errs.ErrInvalidState)
	}
	if err := e.beginChildContent(); err != nil {
		return e.fail(err)
	}
	if err := e.w.WriteByte(wire.CharChunk); err != nil {
		return e.fail(err)
	}
	return wire.EncodeStringRefAlgorithm(e.w, e.vocabulary.ContentChunks, e.algorithms, algorithm.IndexCDATA, s)
}

// WriteComment writes s as a Comment node; valid anywhere outside an
// open attribute, including the prolog and epilog.
func (e *Encoder) WriteComment(s string) error {
	if err := e.beginMiscContent(); err != nil {
		return e.fail(err)
	}
	if err := e.w.WriteByte(wire.CommentTag); err != nil {
		return e.fail(err)
	}
	return wire.EncodeStringRef(e.w, e.vocabulary.OtherStrings, s)
}

// WriteProcessingInstruction writes a ProcessingInstruction node with the
// given target and content.
func (e *Encoder) WriteProcessingInstruction(target, content string) error {
	if err := e.beginMiscContent(); err != nil {
		return e.fail(err)
	}
	if err := e.w.WriteByte(wire.ProcessingInstructionTag); err != nil {
		return e.fail(err)
	}
	if err := wire.EncodeStringRef(e.w, e.vocabulary.OtherNCNames, target); err != nil {
		return e.fail(err)
	}
	return wire.EncodeStringRef(e.w, e.vocabulary.OtherStrings, content)
}

// WriteEntityRef writes an EntityRef node naming an unexpanded entity.
func (e *Encoder) WriteEntityRef(name string) error {
	if err := e.beginChildContent(); err != nil {
		return e.fail(err)
	}
	if err := e.w.WriteByte(wire.EntityRefTag); err != nil {
		return e.fail(err)
	}
	return wire.EncodeStringRef(e.w, e.vocabulary.OtherNCNames, name)
}

// WriteDocType writes a DocTypeDecl node naming the document's external
// subset; publicID or systemID may be empty but not both: passing both
// empty fails with errs.ErrUnsupportedFeature. No internal subset can be
// written.
func (e *Encoder) WriteDocType(publicID, systemID string) error {
	if e.state != stateProlog {
		return e.fail(errs.ErrInvalidState)
	}
	if publicID == "" && systemID == "" {
		return e.fail(errs.ErrUnsupportedFeature)
	}

	if err := e.commitPending(); err != nil {
		return e.fail(err)
	}

	dispatch := byte(wire.DocTypeBase)
	if systemID != "" {
		dispatch |= wire.DocTypeHasSystemID
	}
	if publicID != "" {
		dispatch |= wire.DocTypeHasPublicID
	}

	if err := e.w.WriteByte(dispatch); err != nil {
		return e.fail(err)
	}
	if publicID != "" {
		if err := wire.WritePlainString(e.w, publicID); err != nil {
			return e.fail(err)
		}
	}
	if systemID != "" {
		if err := wire.WritePlainString(e.w, systemID); err != nil {
			return e.fail(err)
		}
	}
	return nil
}

// closeOpenElement closes the innermost open element, whether or not it
// was ever flushed to the wire: an unflushed element with no attributes
// closes with a bare qname and takes the usual single/double terminator
// path, one with attributes closes its attribute list and itself in one
// DoubleTerminator byte (spec §6's merged-terminator optimization), and
// an already-flushed element just takes the usual terminator path.
func (e *Encoder) closeOpenElement() error {
	if e.pendingElem != nil {
		return e.closeEmptyPendingElement()
	}

	if len(e.elemStack) == 0 {
		return errs.ErrInvalidState
	}

	e.elemStack = e.elemStack[:len(e.elemStack)-1]
	e.depth--
	e.ns.CloseElement()

	return e.deferOrMergeClose()
}

func (e *Encoder) closeEmptyPendingElement() error {
	pe := e.pendingElem
	e.pendingElem = nil

	if len(pe.attrs) == 0 {
		if err := e.commitPending(); err != nil {
			return err
		}

		dispatch := byte(0x00)
		if pe.nsPushed {
			dispatch |= wire.ElementHasNamespaceAttributes
		}
		if err := e.w.WriteByte(dispatch); err != nil {
			return err
		}
		if pe.nsPushed {
			if err := e.writeNamespaceAttrBlock(pe.nsAttrs); err != nil {
				return err
			}
		}
		if err := wire.EncodeQNameRef(e.w, e.vocabulary.ElementNames, e.vocabulary.PrefixNames, e.vocabulary.NamespaceNames, e.vocabulary.LocalNames, pe.name); err != nil {
			return err
		}

		e.ns.CloseElement()
		return e.deferOrMergeClose()
	}

	if err := e.commitPending(); err != nil {
		return err
	}

	dispatch := byte(wire.ElementHasAttributes)
	if pe.nsPushed {
		dispatch |= wire.ElementHasNamespaceAttributes
	}
	if err := e.w.WriteByte(dispatch); err != nil {
		return err
	}
	if pe.nsPushed {
		if err := e.writeNamespaceAttrBlock(pe.nsAttrs); err != nil {
			return err
		}
	}
	if err := wire.EncodeQNameRef(e.w, e.vocabulary.ElementNames, e.vocabulary.PrefixNames, e.vocabulary.NamespaceNames, e.vocabulary.LocalNames, pe.name); err != nil {
		return err
	}
	if err := e.writeAttributeList(pe.attrs); err != nil {
		return err
	}
	if err := e.w.WriteByte(wire.DoubleTerminator); err != nil {
		return err
	}

	e.ns.CloseElement()
	return nil
}

// deferOrMergeClose implements spec §4.6's terminator rule: a second
// consecutive close merges with the one still deferred into a single
// DoubleTerminator byte; otherwise this close's own terminator is
// deferred, eligible to merge with whatever closes next.
func (e *Encoder) deferOrMergeClose() error {
	if e.pending == pendingSingle {
		if err := e.w.WriteByte(wire.DoubleTerminator); err != nil {
			return err
		}
		e.pending = pendingNone
		return nil
	}
	e.pending = pendingSingle
	return nil
}

// WriteEndElement closes the innermost open element.
func (e *Encoder) WriteEndElement() error {
	switch e.state {
	case stateError, stateClosed, stateStart, stateProlog, stateEpilog, stateAttribute:
		return e.fail(errs.ErrInvalidState)
	}

	if err := e.closeOpenElement(); err != nil {
		return e.fail(err)
	}

	if e.depth > 0 {
		e.state = stateContent
	} else {
		e.state = stateEpilog
	}
	return nil
}

// WriteEndDocument closes every still-open element, then the document
// itself, and flushes the underlying writer. Calling it before
// WriteStartDocument starts an empty document first (spec §4.6's
// convenience-transition rule).
func (e *Encoder) WriteEndDocument() error {
	if e.state == stateClosed || e.state == stateError {
		return e.fail(errs.ErrInvalidState)
	}
	if e.state == stateStart {
		if err := e.WriteStartDocument(""); err != nil {
			return err
		}
	}
	if e.state == stateAttribute {
		return e.fail(errs.ErrInvalidState)
	}

	for e.pendingElem != nil || e.depth > 0 {
		if err := e.closeOpenElement(); err != nil {
			return e.fail(err)
		}
	}

	var final byte = wire.Terminator
	if e.pending == pendingSingle {
		final = wire.DoubleTerminator
	}
	if err := e.w.WriteByte(final); err != nil {
		return e.fail(err)
	}
	e.pending = pendingNone
	e.state = stateClosed

	return e.w.Flush()
}

// Flush forces any buffered bytes out to the underlying writer without
// ending the document.
func (e *Encoder) Flush() error {
	return e.w.Flush()
}

// Close releases the Encoder's underlying writer resources. It is legal
// from every state, including stateError, matching spec §4.6's "only
// close is legal from Error".
func (e *Encoder) Close() error {
	return e.w.Close()
}
