// Package header implements Fast Infoset document framing (spec §4.5
// items 1-3, §6): the optional plaintext XML declaration, the 4-byte magic
// `E0 00 00 01`, and the options byte that announces which optional
// document components follow.
//
// This replaces the teacher's fixed 32-byte NumericHeader/NumericFlag pair
// (section/numeric_header.go, section/numeric_flag.go): Fast Infoset framing
// is variable-length rather than a fixed struct, but the bit-accessor idiom
// (HasX/WithX/WithoutX over a packed byte) carries over directly.
package header

import (
	"bytes"

	"github.com/LiquidTechnologies/fast-infoset/bitio"
	"github.com/LiquidTechnologies/fast-infoset/errs"
)

// Magic is the 4-byte Fast Infoset signature that must open every document,
// whether or not a plaintext XML declaration precedes it (spec §4.5 item 2,
// §6).
var Magic = [4]byte{0xE0, 0x00, 0x00, 0x01}

// Declarations lists the nine plaintext XML declaration prefixes spec §6
// allows immediately before the magic header. A document either opens with
// one of these exact strings or begins with Magic directly.
var Declarations = []string{
	"<?xml encoding='finf'?>",
	"<?xml encoding='finf' standalone='yes'?>",
	"<?xml encoding='finf' standalone='no'?>",
	"<?xml version='1.0' encoding='finf'?>",
	"<?xml version='1.0' encoding='finf' standalone='yes'?>",
	"<?xml version='1.0' encoding='finf' standalone='no'?>",
	"<?xml version='1.1' encoding='finf'?>",
	"<?xml version='1.1' encoding='finf' standalone='yes'?>",
	"<?xml version='1.1' encoding='finf' standalone='no'?>",
}

// Options is the one-byte field following the magic header. Each set bit
// announces that an optional document component follows, processed in the
// fixed order spec §4.5 item 3 lists. Only the top 7 bits are assigned; the
// low bit is padding and must be 0 (spec §4.5 item 3: "For each set bit (MSB
// padding)...").
type Options byte

const (
	// FlagAdditionalData announces an application-defined opaque blob,
	// which the parser decodes and keeps without interpreting it.
	FlagAdditionalData Options = 1 << 7
	// FlagInitialVocabulary announces an external-vocabulary block selecting
	// which of the document's vocabulary tables come pre-populated.
	FlagInitialVocabulary Options = 1 << 6
	// FlagNotations announces a DTD notations block.
	FlagNotations Options = 1 << 5
	// FlagUnparsedEntities announces a DTD unparsed-entities block.
	FlagUnparsedEntities Options = 1 << 4
	// FlagCharacterEncodingScheme announces a recorded source character
	// encoding scheme string (diagnostic only; the wire is always UTF-8/
	// UTF-16BE per string, independent of this value).
	FlagCharacterEncodingScheme Options = 1 << 3
	// FlagStandalone announces a recorded standalone-document declaration.
	FlagStandalone Options = 1 << 2
	// FlagVersion announces a recorded XML version string.
	FlagVersion Options = 1 << 1
)

// HasAdditionalData reports whether the additional-data component is present.
func (o Options) HasAdditionalData() bool { return o&FlagAdditionalData != 0 }

// WithAdditionalData sets the additional-data bit.
func (o *Options) WithAdditionalData() { *o |= FlagAdditionalData }

// WithoutAdditionalData clears the additional-data bit.
func (o *Options) WithoutAdditionalData() { *o &^= FlagAdditionalData }

// HasInitialVocabulary reports whether an initial-vocabulary block follows.
func (o Options) HasInitialVocabulary() bool { return o&FlagInitialVocabulary != 0 }

// WithInitialVocabulary sets the initial-vocabulary bit.
func (o *Options) WithInitialVocabulary() { *o |= FlagInitialVocabulary }

// WithoutInitialVocabulary clears the initial-vocabulary bit.
func (o *Options) WithoutInitialVocabulary() { *o &^= FlagInitialVocabulary }

// HasNotations reports whether a notations block follows.
func (o Options) HasNotations() bool { return o&FlagNotations != 0 }

// WithNotations sets the notations bit.
func (o *Options) WithNotations() { *o |= FlagNotations }

// WithoutNotations clears the notations bit.
func (o *Options) WithoutNotations() { *o &^= FlagNotations }

// HasUnparsedEntities reports whether an unparsed-entities block follows.
func (o Options) HasUnparsedEntities() bool { return o&FlagUnparsedEntities != 0 }

// WithUnparsedEntities sets the unparsed-entities bit.
func (o *Options) WithUnparsedEntities() { *o |= FlagUnparsedEntities }

// WithoutUnparsedEntities clears the unparsed-entities bit.
func (o *Options) WithoutUnparsedEntities() { *o &^= FlagUnparsedEntities }

// HasCharacterEncodingScheme reports whether a character encoding scheme
// string follows.
func (o Options) HasCharacterEncodingScheme() bool { return o&FlagCharacterEncodingScheme != 0 }

// WithCharacterEncodingScheme sets the character-encoding-scheme bit.
func (o *Options) WithCharacterEncodingScheme() { *o |= FlagCharacterEncodingScheme }

// WithoutCharacterEncodingScheme clears the character-encoding-scheme bit.
func (o *Options) WithoutCharacterEncodingScheme() { *o &^= FlagCharacterEncodingScheme }

// HasStandalone reports whether a standalone-document flag follows.
func (o Options) HasStandalone() bool { return o&FlagStandalone != 0 }

// WithStandalone sets the standalone bit.
func (o *Options) WithStandalone() { *o |= FlagStandalone }

// WithoutStandalone clears the standalone bit.
func (o *Options) WithoutStandalone() { *o &^= FlagStandalone }

// HasVersion reports whether an XML version string follows.
func (o Options) HasVersion() bool { return o&FlagVersion != 0 }

// WithVersion sets the version bit.
func (o *Options) WithVersion() { *o |= FlagVersion }

// WithoutVersion clears the version bit.
func (o *Options) WithoutVersion() { *o &^= FlagVersion }

// Frame is the parsed result of a document's leading bytes: the optional
// declaration text (empty if absent) and the options byte that follows the
// magic header.
type Frame struct {
	Declaration string
	Options     Options
}

// ReadFrame consumes the optional plaintext declaration, the magic header,
// and the options byte from r, in that order (spec §4.5 items 1-3).
func ReadFrame(r *bitio.Reader) (Frame, error) {
	decl, err := readDeclaration(r)
	if err != nil {
		return Frame{}, err
	}

	if err := verifyMagic(r); err != nil {
		return Frame{}, err
	}

	optByte, err := r.ReadByte()
	if err != nil {
		return Frame{}, err
	}

	return Frame{Declaration: decl, Options: Options(optByte)}, nil
}

// readDeclaration peeks the first byte. If it is Magic's leading byte, no
// declaration is present and the byte is rewound for verifyMagic to consume.
// Otherwise it reads up to the "?>" that ends every allowed declaration and
// matches the result against Declarations exactly.
func readDeclaration(r *bitio.Reader) (string, error) {
	first, err := r.ReadByte()
	if err != nil {
		return "", err
	}

	if first == Magic[0] {
		if err := r.Rewind(1); err != nil {
			return "", err
		}

		return "", nil
	}

	buf := []byte{first}
	for !bytes.HasSuffix(buf, []byte("?>")) {
		b, err := r.ReadByte()
		if err != nil {
			return "", err
		}

		buf = append(buf, b)

		if len(buf) > 128 {
			return "", errs.ErrInvalidDeclaration
		}
	}

	text := string(buf)
	for _, d := range Declarations {
		if d == text {
			return text, nil
		}
	}

	return "", errs.ErrInvalidDeclaration
}

func verifyMagic(r *bitio.Reader) error {
	got, err := r.ReadBytes(4)
	if err != nil {
		return err
	}

	if !bytes.Equal(got, Magic[:]) {
		return errs.ErrInvalidMagic
	}

	return nil
}

// WriteFrame emits decl (if non-empty, must be one of Declarations), the
// magic header, and opts, in that order.
func WriteFrame(w *bitio.Writer, decl string, opts Options) error {
	if decl != "" {
		found := false
		for _, d := range Declarations {
			if d == decl {
				found = true
				break
			}
		}

		if !found {
			return errs.ErrInvalidDeclaration
		}

		if err := w.WriteBytes([]byte(decl)); err != nil {
			return err
		}
	}

	if err := w.WriteBytes(Magic[:]); err != nil {
		return err
	}

	return w.WriteByte(byte(opts))
}
