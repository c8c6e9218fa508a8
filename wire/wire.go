// Package wire implements the per-item octet layout the parser and encoder
// share: the dispatch-byte ranges spec §4.5 assigns to each child-node
// kind, and the two composite fields — qualified-name-or-index and
// non-identifying-string-or-index — that spec.md's prose leaves
// underspecified once checked against the primitive package's exact
// escape/selector bit math (see DESIGN.md's Open Questions entry for the
// two fields). Every byte value spec.md does pin down exactly (the magic,
// the terminators, and the PI/comment/DTD/entity-ref/char-chunk dispatch
// ranges) is reproduced here unchanged; the two composite fields use a
// dedicated marker-byte scheme of original design that reuses primitive's
// own encodings for their index form.
package wire

import (
	"github.com/LiquidTechnologies/fast-infoset/algorithm"
	"github.com/LiquidTechnologies/fast-infoset/alphabet"
	"github.com/LiquidTechnologies/fast-infoset/bitio"
	"github.com/LiquidTechnologies/fast-infoset/errs"
	"github.com/LiquidTechnologies/fast-infoset/primitive"
	"github.com/LiquidTechnologies/fast-infoset/qname"
	"github.com/LiquidTechnologies/fast-infoset/vocab"
	"golang.org/x/text/encoding/unicode"
)

// Dispatch-byte ranges and fixed values spec §4.5 and §6 give explicitly.
const (
	// Terminator closes the current element's child list (or the document,
	// at depth 0).
	Terminator = 0xF0
	// DoubleTerminator closes the current element and its parent in one
	// octet.
	DoubleTerminator = 0xFF

	// ElementMax is the highest dispatch byte reserved for element start
	// events; bytes 0x00-0x7F dispatch to Element.
	ElementMax = 0x7F
	// ElementHasAttributes is set when an element-start dispatch byte is
	// followed by a regular attribute list.
	ElementHasAttributes = 0x40
	// ElementHasNamespaceAttributes is set when an element-start dispatch
	// byte is followed by a namespace-attribute block.
	ElementHasNamespaceAttributes = 0x20

	// CharChunk dispatches to a content character chunk (non-identifying
	// string, spec §4.5's "0x80≤b<0xC0" character-chunk range; this codec
	// uses exactly 0x80 and leaves 0x81-0xBF unused).
	CharChunk = 0x80

	// DocTypeBase is the low end of the DocTypeDecl dispatch range
	// (0xC4-0xC7); bit0 of the dispatch byte is hasSystemID, bit1 is
	// hasPublicID.
	DocTypeBase        = 0xC4
	DocTypeHasSystemID = 0x01
	DocTypeHasPublicID = 0x02

	// EntityRefTag dispatches to an EntityRef node.
	EntityRefTag = 0xC8

	// ProcessingInstructionTag dispatches to a ProcessingInstruction node.
	ProcessingInstructionTag = 0xE1
	// CommentTag dispatches to a Comment node.
	CommentTag = 0xE2
)

// NamespaceAttrHasPrefix marks a namespace-attribute block entry as
// carrying an explicit prefix (absent means the default-namespace
// declaration).
const NamespaceAttrHasPrefix = 0x40

// Flag bits within a qualified-name-or-index literal-form marker byte
// (0x80 itself is the literal-vs-index flag tested separately).
const (
	qnamePrefixPresent    = 0x40
	qnameNamespacePresent = 0x20
)

// IsElementDispatch reports whether b is a child-element dispatch byte.
func IsElementDispatch(b byte) bool { return b <= ElementMax }

// IsDocType reports whether b falls in the DocTypeDecl dispatch range.
func IsDocType(b byte) bool { return b >= DocTypeBase && b <= DocTypeBase+0x03 }

// --- plain literal strings (prefix/namespace/localName: always NCName/Name
// grammar, never alphabet- or algorithm-encoded) ---

// WritePlainString writes a length-prefixed UTF-8 string with no
// vocabulary/index machinery: the document-level strings (declaration
// text aside) that carry no dictionary semantics of their own, e.g. a
// DocTypeDecl's public/system identifiers, the character encoding scheme
// name, or a notation/unparsed-entity name.
func WritePlainString(w *bitio.Writer, s string) error { return writePlainString(w, s) }

// ReadPlainString reads a string written by WritePlainString.
func ReadPlainString(r *bitio.Reader) (string, error) { return readPlainString(r) }

func writePlainString(w *bitio.Writer, s string) error {
	data := []byte(s)

	head, err := primitive.EncodeLen(0, 2, int64(len(data)))
	if err != nil {
		return err
	}

	if err := w.WriteBytes(head); err != nil {
		return err
	}

	return w.WriteBytes(data)
}

func readPlainString(r *bitio.Reader) (string, error) {
	first, err := r.ReadByte()
	if err != nil {
		return "", err
	}

	n, err := primitive.DecodeLen(first, 2, r)
	if err != nil {
		return "", err
	}

	data, err := r.ReadBytes(int(n))
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func writeInternedString(w *bitio.Writer, tbl *vocab.StringTable, s string) error {
	if err := writePlainString(w, s); err != nil {
		return err
	}

	tbl.Intern(s)

	return nil
}

func readInternedString(r *bitio.Reader, tbl *vocab.StringTable) (string, error) {
	s, err := readPlainString(r)
	if err != nil {
		return "", err
	}

	tbl.Intern(s)

	return s, nil
}

// --- qualified-name-or-index ---

// EncodeQNameRef writes q against table: an index reference if q is
// already present, otherwise a literal form that interns q's prefix,
// namespace, and local name into prefixNames/namespaceNames/localNames
// and adds q itself to table for future references.
func EncodeQNameRef(w *bitio.Writer, table *vocab.QNameTable, prefixNames, namespaceNames, localNames *vocab.StringTable, q qname.QName) error {
	if q.Prefix != "" && q.NamespaceURI == "" {
		return errs.ErrInvalidQName
	}

	if idx, ok := table.Lookup(q); ok {
		enc, err := primitive.EncodeInt(0, 2, int64(idx))
		if err != nil {
			return err
		}

		return w.WriteBytes(enc)
	}

	marker := byte(0x80)
	if q.Prefix != "" {
		marker |= qnamePrefixPresent
	}
	if q.NamespaceURI != "" {
		marker |= qnameNamespacePresent
	}

	if err := w.WriteByte(marker); err != nil {
		return err
	}

	if q.Prefix != "" {
		if err := writeInternedString(w, prefixNames, q.Prefix); err != nil {
			return err
		}
	}

	if q.NamespaceURI != "" {
		if err := writeInternedString(w, namespaceNames, q.NamespaceURI); err != nil {
			return err
		}
	}

	if err := writeInternedString(w, localNames, q.LocalName); err != nil {
		return err
	}

	table.Intern(q)

	return nil
}

// DecodeQNameRef reads a qualified-name-or-index field written by
// EncodeQNameRef.
func DecodeQNameRef(r *bitio.Reader, table *vocab.QNameTable, prefixNames, namespaceNames, localNames *vocab.StringTable) (qname.QName, error) {
	marker, err := r.ReadByte()
	if err != nil {
		return qname.QName{}, err
	}

	if marker&0x80 == 0 {
		idx, err := primitive.DecodeInt(marker, 2, r)
		if err != nil {
			return qname.QName{}, err
		}

		return table.Get(int32(idx))
	}

	prefixPresent := marker&qnamePrefixPresent != 0
	namespacePresent := marker&qnameNamespacePresent != 0

	if prefixPresent && !namespacePresent {
		return qname.QName{}, errs.ErrInvalidQName
	}

	var prefix, ns string

	if prefixPresent {
		prefix, err = readInternedString(r, prefixNames)
		if err != nil {
			return qname.QName{}, err
		}
	}

	if namespacePresent {
		ns, err = readInternedString(r, namespaceNames)
		if err != nil {
			return qname.QName{}, err
		}
	}

	local, err := readInternedString(r, localNames)
	if err != nil {
		return qname.QName{}, err
	}

	q := qname.New(prefix, ns, local)
	table.Intern(q)

	return q, nil
}

// Encoding-info kinds for the literal form of a non-identifying string.
const (
	EncKindNone      = 0
	EncKindUTF16BE   = 1
	EncKindAlphabet  = 2
	EncKindAlgorithm = 3
)

const (
	stringLiteralAddToTable      = 0x40
	stringLiteralHasEncodingInfo = 0x20
)

// LiteralStringTableThreshold is the length (spec §4.6's "length >= a
// threshold (60 characters)") at or above which a literal non-identifying
// string is written without inserting it into the vocabulary table: long
// strings are unlikely to repeat, so the insertion cost isn't worth
// paying.
const LiteralStringTableThreshold = 60

var utf16be = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// EncodeStringRef writes s against table as a non-identifying-string-or-
// index field: an index reference when s is already interned (or the
// empty-string sentinel when s == ""), otherwise a literal UTF-8 form,
// added to table unless s is at least LiteralStringTableThreshold
// characters long.
func EncodeStringRef(w *bitio.Writer, table *vocab.StringTable, s string) error {
	if s == "" {
		enc, err := primitive.EncodeInt0(0, 0)
		if err != nil {
			return err
		}

		return w.WriteBytes(enc)
	}

	if idx, ok := table.Lookup(s); ok {
		enc, err := primitive.EncodeInt0(0, int64(idx))
		if err != nil {
			return err
		}

		return w.WriteBytes(enc)
	}

	return encodeStringLiteralPayload(w, table, s, EncKindNone, 0, []byte(s), belowTableThreshold(s))
}

// EncodeStringRefAlphabet writes s as a literal string encoded with the
// restricted alphabet registered at tableIndex (1, 2, or >= 16).
func EncodeStringRefAlphabet(w *bitio.Writer, table *vocab.StringTable, registry *alphabet.Registry, tableIndex int, s string) error {
	a, err := registry.Lookup(tableIndex)
	if err != nil {
		return err
	}

	payload, err := a.Encode(s)
	if err != nil {
		return err
	}

	return encodeStringLiteralPayload(w, table, s, EncKindAlphabet, tableIndex, payload, belowTableThreshold(s))
}

// EncodeStringRefAlgorithm writes s as a literal string encoded with the
// encoding algorithm registered at tableIndex (1..10 built-in, or an
// extended index 32..255).
func EncodeStringRefAlgorithm(w *bitio.Writer, table *vocab.StringTable, registry *algorithm.Registry, tableIndex int, s string) error {
	a, err := registry.Lookup(tableIndex)
	if err != nil {
		return err
	}

	payload, err := a.ToWire(s)
	if err != nil {
		return err
	}

	return encodeStringLiteralPayload(w, table, s, EncKindAlgorithm, tableIndex, payload, belowTableThreshold(s))
}

// EncodeStringRefUTF16 writes s as a literal string encoded UTF-16BE.
func EncodeStringRefUTF16(w *bitio.Writer, table *vocab.StringTable, s string) error {
	payload, err := utf16be.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return err
	}

	return encodeStringLiteralPayload(w, table, s, EncKindUTF16BE, 0, payload, belowTableThreshold(s))
}

func belowTableThreshold(s string) bool {
	return len([]rune(s)) < LiteralStringTableThreshold
}

func encodeStringLiteralPayload(w *bitio.Writer, table *vocab.StringTable, s string, kind, tableIndex int, payload []byte, addToTable bool) error {
	marker := byte(0x80)
	if addToTable {
		marker |= stringLiteralAddToTable
	}
	if kind != EncKindNone {
		marker |= stringLiteralHasEncodingInfo
	}

	if err := w.WriteByte(marker); err != nil {
		return err
	}

	if kind != EncKindNone {
		if err := w.WriteByte(byte(kind)); err != nil {
			return err
		}

		if kind == EncKindAlphabet || kind == EncKindAlgorithm {
			if err := w.WriteByte(byte(tableIndex - 1)); err != nil {
				return err
			}
		}
	}

	lenBytes, err := primitive.EncodeLen(0, 2, int64(len(payload)))
	if err != nil {
		return err
	}

	if err := w.WriteBytes(lenBytes); err != nil {
		return err
	}

	if err := w.WriteBytes(payload); err != nil {
		return err
	}

	if addToTable {
		table.Intern(s)
	}

	return nil
}

// StringRefResult is the full decoded detail of a non-identifying-
// string-or-index field: the resolved string plus the encoding-info kind
// and table index used, when the field carried a literal encoded form.
// Parser uses Kind/TableIndex to tell a CDATA content chunk (Kind ==
// EncKindAlgorithm, TableIndex == algorithm.IndexCDATA) apart from plain
// Text.
type StringRefResult struct {
	Value      string
	Kind       int
	TableIndex int
}

// DecodeStringRef reads a non-identifying-string-or-index field written by
// Encode{StringRef,StringRefAlphabet,StringRefAlgorithm,StringRefUTF16},
// resolving alphabet/algorithm payloads against alphabets/algorithms, and
// discarding the encoding-info detail. Use DecodeStringRefDetailed when the
// caller needs to distinguish encoding kinds (e.g. CDATA detection).
func DecodeStringRef(r *bitio.Reader, table *vocab.StringTable, alphabets *alphabet.Registry, algorithms *algorithm.Registry) (string, error) {
	res, err := DecodeStringRefDetailed(r, table, alphabets, algorithms)
	if err != nil {
		return "", err
	}

	return res.Value, nil
}

// DecodeStringRefDetailed is DecodeStringRef plus the encoding-info kind
// and table index, when a literal form with encoding info was read (Kind
// is EncKindNone, the zero value, for index references, the empty-string
// sentinel, and plain UTF-8 literals).
func DecodeStringRefDetailed(r *bitio.Reader, table *vocab.StringTable, alphabets *alphabet.Registry, algorithms *algorithm.Registry) (StringRefResult, error) {
	marker, err := r.ReadByte()
	if err != nil {
		return StringRefResult{}, err
	}

	if marker&0x80 == 0 {
		idx, err := primitive.DecodeInt0(marker, r)
		if err != nil {
			return StringRefResult{}, err
		}

		if idx == 0 {
			return StringRefResult{}, nil
		}

		s, err := table.Get(int32(idx))

		return StringRefResult{Value: s}, err
	}

	addToTable := marker&stringLiteralAddToTable != 0
	hasEncodingInfo := marker&stringLiteralHasEncodingInfo != 0

	kind := EncKindNone
	tableIndex := 0

	if hasEncodingInfo {
		kindByte, err := r.ReadByte()
		if err != nil {
			return StringRefResult{}, err
		}
		kind = int(kindByte)

		if kind == EncKindAlphabet || kind == EncKindAlgorithm {
			idxByte, err := r.ReadByte()
			if err != nil {
				return StringRefResult{}, err
			}
			tableIndex = int(idxByte) + 1
		}
	}

	lenFirst, err := r.ReadByte()
	if err != nil {
		return StringRefResult{}, err
	}

	n, err := primitive.DecodeLen(lenFirst, 2, r)
	if err != nil {
		return StringRefResult{}, err
	}

	payload, err := r.ReadBytes(int(n))
	if err != nil {
		return StringRefResult{}, err
	}

	s, err := decodePayload(kind, tableIndex, payload, alphabets, algorithms)
	if err != nil {
		return StringRefResult{}, err
	}

	if addToTable {
		table.Intern(s)
	}

	return StringRefResult{Value: s, Kind: kind, TableIndex: tableIndex}, nil
}

func decodePayload(kind, tableIndex int, payload []byte, alphabets *alphabet.Registry, algorithms *algorithm.Registry) (string, error) {
	switch kind {
	case EncKindNone:
		return string(payload), nil
	case EncKindUTF16BE:
		out, err := utf16be.NewDecoder().Bytes(payload)
		if err != nil {
			return "", err
		}
		return string(out), nil
	case EncKindAlphabet:
		a, err := alphabets.Lookup(tableIndex)
		if err != nil {
			return "", err
		}
		return a.Decode(payload)
	case EncKindAlgorithm:
		a, err := algorithms.Lookup(tableIndex)
		if err != nil {
			return "", err
		}
		return a.ToString(payload)
	default:
		return "", errs.ErrUnsupportedFeature
	}
}
