package vocab

import (
	"github.com/LiquidTechnologies/fast-infoset/algorithm"
	"github.com/LiquidTechnologies/fast-infoset/alphabet"
	"github.com/LiquidTechnologies/fast-infoset/bitio"
	"github.com/LiquidTechnologies/fast-infoset/primitive"
	"github.com/LiquidTechnologies/fast-infoset/qname"
)

// InitialVocabOptions is the two-byte field spec §4.5 item 3 describes as
// "two option bytes selecting sub-components" of an initial-vocabulary
// document component. Each bit announces that the corresponding
// sub-component follows in the fixed order the accessors below are
// declared in.
//
// The original X.891 bit assignment for this field is one of the places
// spec.md cannot be reconciled byte-exactly (see DESIGN.md's Open
// Questions entry on wire/wire.go); this type uses a dedicated,
// internally consistent bit layout of original design, mirroring
// header.Options's accessor shape.
type InitialVocabOptions uint16

const (
	ivExternalVocabulary      InitialVocabOptions = 1 << 15
	ivRestrictedAlphabets     InitialVocabOptions = 1 << 14
	ivEncodingAlgorithms      InitialVocabOptions = 1 << 13
	ivPrefixes                InitialVocabOptions = 1 << 12
	ivNamespaceNames          InitialVocabOptions = 1 << 11
	ivLocalNames              InitialVocabOptions = 1 << 10
	ivOtherNCNames            InitialVocabOptions = 1 << 9
	ivOtherURIs               InitialVocabOptions = 1 << 8
	ivAttributeValues         InitialVocabOptions = 1 << 7
	ivContentCharacterChunks  InitialVocabOptions = 1 << 6
	ivOtherStrings            InitialVocabOptions = 1 << 5
	ivElementNameSurrogates   InitialVocabOptions = 1 << 4
	ivAttributeNameSurrogates InitialVocabOptions = 1 << 3
)

func (o InitialVocabOptions) has(f InitialVocabOptions) bool { return o&f != 0 }

// ExtendedAlgorithmFactory builds the Algorithm implementation a parser
// should bind to an extended encoding-algorithm URI found in an
// initial-vocabulary block. Callers supply one via parser/encoder options
// for every URI they expect to see; unrecognized URIs fall back to an
// opaque passthrough so index assignment still round-trips.
type ExtendedAlgorithmFactory func(uri string) (algorithm.Algorithm, bool)

// opaqueAlgorithm treats wire bytes and string form as the same raw bytes,
// used only when no factory recognizes an extended algorithm's URI.
type opaqueAlgorithm struct{}

func (opaqueAlgorithm) ToWire(s string) ([]byte, error)      { return []byte(s), nil }
func (opaqueAlgorithm) ToString(data []byte) (string, error) { return string(data), nil }

// InitialVocabularyResult carries the sub-components of an initial-
// vocabulary block that have no home on *Vocabulary itself.
type InitialVocabularyResult struct {
	ExternalVocabularyURI string
}

// ReadInitialVocabulary consumes an initial-vocabulary document component
// from r, seeding v's tables and alphabets/algorithms in place (spec §4.5
// item 3, second bullet). findAlgorithm resolves extended encoding-
// algorithm URIs to implementations; pass nil to always fall back to the
// opaque passthrough.
func ReadInitialVocabulary(r *bitio.Reader, v *Vocabulary, alphabets *alphabet.Registry, algorithms *algorithm.Registry, findAlgorithm ExtendedAlgorithmFactory) (InitialVocabularyResult, error) {
	head, err := r.ReadBytes(2)
	if err != nil {
		return InitialVocabularyResult{}, err
	}

	opts := InitialVocabOptions(uint16(head[0])<<8 | uint16(head[1]))

	var result InitialVocabularyResult

	if opts.has(ivExternalVocabulary) {
		uri, err := readPlainString(r)
		if err != nil {
			return InitialVocabularyResult{}, err
		}

		result.ExternalVocabularyURI = uri
	}

	if opts.has(ivRestrictedAlphabets) {
		if err := readCount(r, func() error {
			chars, err := readPlainString(r)
			if err != nil {
				return err
			}

			alphabets.Register(alphabet.New([]rune(chars)))

			return nil
		}); err != nil {
			return InitialVocabularyResult{}, err
		}
	}

	if opts.has(ivEncodingAlgorithms) {
		if err := readCount(r, func() error {
			uri, err := readPlainString(r)
			if err != nil {
				return err
			}

			impl, ok := algorithm.Algorithm(nil), false
			if findAlgorithm != nil {
				impl, ok = findAlgorithm(uri)
			}
			if !ok {
				impl = opaqueAlgorithm{}
			}

			_, err = algorithms.Register(uri, impl)

			return err
		}); err != nil {
			return InitialVocabularyResult{}, err
		}
	}

	if opts.has(ivPrefixes) {
		if err := readStringsInto(r, v.PrefixNames); err != nil {
			return InitialVocabularyResult{}, err
		}
	}

	if opts.has(ivNamespaceNames) {
		if err := readStringsInto(r, v.NamespaceNames); err != nil {
			return InitialVocabularyResult{}, err
		}
	}

	if opts.has(ivLocalNames) {
		if err := readStringsInto(r, v.LocalNames); err != nil {
			return InitialVocabularyResult{}, err
		}
	}

	if opts.has(ivOtherNCNames) {
		if err := readStringsInto(r, v.OtherNCNames); err != nil {
			return InitialVocabularyResult{}, err
		}
	}

	if opts.has(ivOtherURIs) {
		// "Other URIs" have no dedicated table of their own (spec §3 lists
		// nine tables, none named for this); it shares namespaceNames, the
		// only table whose domain is also "a URI", per the Open Question
		// decision in DESIGN.md to round-trip this sub-component rather
		// than drop it.
		if err := readStringsInto(r, v.NamespaceNames); err != nil {
			return InitialVocabularyResult{}, err
		}
	}

	if opts.has(ivAttributeValues) {
		if err := readStringsInto(r, v.AttributeValues); err != nil {
			return InitialVocabularyResult{}, err
		}
	}

	if opts.has(ivContentCharacterChunks) {
		if err := readStringsInto(r, v.ContentChunks); err != nil {
			return InitialVocabularyResult{}, err
		}
	}

	if opts.has(ivOtherStrings) {
		if err := readStringsInto(r, v.OtherStrings); err != nil {
			return InitialVocabularyResult{}, err
		}
	}

	if opts.has(ivElementNameSurrogates) {
		if err := readQNamesInto(r, v.ElementNames); err != nil {
			return InitialVocabularyResult{}, err
		}
	}

	if opts.has(ivAttributeNameSurrogates) {
		if err := readQNamesInto(r, v.AttributeNames); err != nil {
			return InitialVocabularyResult{}, err
		}
	}

	return result, nil
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

func readStringsInto(r *bitio.Reader, tbl *StringTable) error {
	return readCount(r, func() error {
		s, err := readPlainString(r)
		if err != nil {
			return err
		}

		tbl.Intern(s)

		return nil
	})
}

func readQNamesInto(r *bitio.Reader, tbl *QNameTable) error {
	return readCount(r, func() error {
		flags, err := r.ReadByte()
		if err != nil {
			return err
		}

		var prefix, ns string

		if flags&0x02 != 0 {
			prefix, err = readPlainString(r)
			if err != nil {
				return err
			}
		}

		if flags&0x01 != 0 {
			ns, err = readPlainString(r)
			if err != nil {
				return err
			}
		}

		local, err := readPlainString(r)
		if err != nil {
			return err
		}

		tbl.Intern(qname.New(prefix, ns, local))

		return nil
	})
}

// WriteInitialVocabulary emits v's tables (and, optionally, alphabets'/
// algorithms' registered extensions) as an initial-vocabulary document
// component, writing only the sub-components whose table is non-empty
// (or whose registry has entries). algorithmURIs supplies the URI each
// extended algorithm was registered under, in the same order
// algorithms.Register assigned indices; pass nil to omit the encoding-
// algorithms sub-component.
func WriteInitialVocabulary(w *bitio.Writer, v *Vocabulary, alphabets []string, algorithmURIs []string, externalVocabularyURI string) error {
	opts := InitialVocabOptions(0)

	if externalVocabularyURI != "" {
		opts |= ivExternalVocabulary
	}
	if len(alphabets) > 0 {
		opts |= ivRestrictedAlphabets
	}
	if len(algorithmURIs) > 0 {
		opts |= ivEncodingAlgorithms
	}
	if v.PrefixNames.Len() > 0 {
		opts |= ivPrefixes
	}
	if v.NamespaceNames.Len() > 0 {
		opts |= ivNamespaceNames
	}
	if v.LocalNames.Len() > 0 {
		opts |= ivLocalNames
	}
	if v.OtherNCNames.Len() > 0 {
		opts |= ivOtherNCNames
	}
	if v.AttributeValues.Len() > 0 {
		opts |= ivAttributeValues
	}
	if v.ContentChunks.Len() > 0 {
		opts |= ivContentCharacterChunks
	}
	if v.OtherStrings.Len() > 0 {
		opts |= ivOtherStrings
	}
	if v.ElementNames.Len() > 0 {
		opts |= ivElementNameSurrogates
	}
	if v.AttributeNames.Len() > 0 {
		opts |= ivAttributeNameSurrogates
	}

	if err := w.WriteBytes([]byte{byte(opts >> 8), byte(opts)}); err != nil {
		return err
	}

	if externalVocabularyURI != "" {
		if err := writePlainString(w, externalVocabularyURI); err != nil {
			return err
		}
	}

	if len(alphabets) > 0 {
		if err := writeCount(w, len(alphabets), func(i int) error {
			return writePlainString(w, alphabets[i])
		}); err != nil {
			return err
		}
	}

	if len(algorithmURIs) > 0 {
		if err := writeCount(w, len(algorithmURIs), func(i int) error {
			return writePlainString(w, algorithmURIs[i])
		}); err != nil {
			return err
		}
	}

	if v.PrefixNames.Len() > 0 {
		if err := writeStringsFrom(w, v.PrefixNames); err != nil {
			return err
		}
	}
	if v.NamespaceNames.Len() > 0 {
		if err := writeStringsFrom(w, v.NamespaceNames); err != nil {
			return err
		}
	}
	if v.LocalNames.Len() > 0 {
		if err := writeStringsFrom(w, v.LocalNames); err != nil {
			return err
		}
	}
	if v.OtherNCNames.Len() > 0 {
		if err := writeStringsFrom(w, v.OtherNCNames); err != nil {
			return err
		}
	}
	if v.AttributeValues.Len() > 0 {
		if err := writeStringsFrom(w, v.AttributeValues); err != nil {
			return err
		}
	}
	if v.ContentChunks.Len() > 0 {
		if err := writeStringsFrom(w, v.ContentChunks); err != nil {
			return err
		}
	}
	if v.OtherStrings.Len() > 0 {
		if err := writeStringsFrom(w, v.OtherStrings); err != nil {
			return err
		}
	}
	if v.ElementNames.Len() > 0 {
		if err := writeQNamesFrom(w, v.ElementNames); err != nil {
			return err
		}
	}
	if v.AttributeNames.Len() > 0 {
		if err := writeQNamesFrom(w, v.AttributeNames); err != nil {
			return err
		}
	}

	return nil
}

func writeCount(w *bitio.Writer, n int, each func(i int) error) error {
	enc, err := primitive.EncodeInt0(0, int64(n))
	if err != nil {
		return err
	}

	if err := w.WriteBytes(enc); err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		if err := each(i); err != nil {
			return err
		}
	}

	return nil
}

func writeStringsFrom(w *bitio.Writer, tbl *StringTable) error {
	entries := tbl.Entries()

	return writeCount(w, len(entries), func(i int) error {
		return writePlainString(w, entries[i])
	})
}

func writeQNamesFrom(w *bitio.Writer, tbl *QNameTable) error {
	entries := tbl.Entries()

	return writeCount(w, len(entries), func(i int) error {
		q := entries[i]

		flags := byte(0)
		if q.Prefix != "" {
			flags |= 0x02
		}
		if q.NamespaceURI != "" {
			flags |= 0x01
		}

		if err := w.WriteByte(flags); err != nil {
			return err
		}

		if q.Prefix != "" {
			if err := writePlainString(w, q.Prefix); err != nil {
				return err
			}
		}

		if q.NamespaceURI != "" {
			if err := writePlainString(w, q.NamespaceURI); err != nil {
				return err
			}
		}

		return writePlainString(w, q.LocalName)
	})
}

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
