// Package errs collects the sentinel errors used across the codec.
//
// Every error a caller can observe from parser, encoder, vocab, alphabet,
// algorithm, or header is one of these values (or wraps one with
// fmt.Errorf("...: %w", ...) for position/context). Callers should compare
// with errors.Is against the sentinel rather than parsing messages.
package errs

import "errors"

var (
	// ErrMalformedHeader covers structural problems in the document header
	// that don't fit a more specific kind below.
	ErrMalformedHeader = errors.New("fastinfoset: malformed header")
	// ErrInvalidMagic is returned when the 4-byte magic does not match E0 00 00 01.
	ErrInvalidMagic = errors.New("fastinfoset: invalid magic header")
	// ErrInvalidDeclaration is returned when a plaintext XML declaration prefix
	// does not match one of the nine allowed templates.
	ErrInvalidDeclaration = errors.New("fastinfoset: invalid plaintext XML declaration")

	// ErrInvalidIdentifier is returned when the parser reads a leading octet
	// whose discriminator bits don't match any known item kind in context.
	ErrInvalidIdentifier = errors.New("fastinfoset: invalid identifier bits")

	// ErrInvalidLengthEncoding is returned when an octet-length discriminator
	// falls outside the ranges defined in spec §4.2.
	ErrInvalidLengthEncoding = errors.New("fastinfoset: invalid length encoding")
	// ErrInvalidIntegerEncoding is returned when an integer discriminator
	// falls outside the ranges defined in spec §4.2.
	ErrInvalidIntegerEncoding = errors.New("fastinfoset: invalid integer encoding")

	// ErrUnexpectedEOF is returned when the input buffer is exhausted mid-item.
	ErrUnexpectedEOF = errors.New("fastinfoset: unexpected end of stream")

	// ErrInvalidQName is returned when a literal QName carries a prefix
	// without a namespace.
	ErrInvalidQName = errors.New("fastinfoset: qname has prefix without namespace")

	// ErrInvalidRestrictedAlphabet is returned when restricted-alphabet data
	// decodes to a character code outside the alphabet. Alphabet definitions
	// themselves are not validated.
	ErrInvalidRestrictedAlphabet = errors.New("fastinfoset: invalid restricted alphabet")
	// ErrCharacterNotInAlphabet is returned when encoding a string containing
	// a character outside the selected restricted alphabet.
	ErrCharacterNotInAlphabet = errors.New("fastinfoset: character not in restricted alphabet")

	// ErrUnknownEncodingAlgorithm is returned when a table index or URI does
	// not resolve to a registered encoding algorithm.
	ErrUnknownEncodingAlgorithm = errors.New("fastinfoset: unknown encoding algorithm")
	// ErrUnknownRestrictedAlphabet is returned when a table index does not
	// resolve to a registered restricted alphabet.
	ErrUnknownRestrictedAlphabet = errors.New("fastinfoset: unknown restricted alphabet")

	// ErrVocabularyIndexOutOfBounds is returned when a decoded index exceeds
	// the number of entries a vocabulary table currently holds.
	ErrVocabularyIndexOutOfBounds = errors.New("fastinfoset: vocabulary index out of bounds")
	// ErrVocabularyTableFull names the condition of a table at its 2^20 entry
	// ceiling. No code path in this module returns it: an insert into a full
	// table is dropped silently and the value is still emitted literally
	// (spec §3).
	ErrVocabularyTableFull = errors.New("fastinfoset: vocabulary table is full")

	// ErrUndefinedNamespaceForPrefix is returned when writeStartElement is
	// given a prefix with no namespace and no existing binding resolves it.
	ErrUndefinedNamespaceForPrefix = errors.New("fastinfoset: undefined namespace for prefix")
	// ErrReservedNamespace is returned when the caller tries to bind the
	// reserved xmlns namespace to a foreign URI.
	ErrReservedNamespace = errors.New("fastinfoset: cannot rebind reserved namespace")

	// ErrInvalidState is returned when an encoder operation is not permitted
	// in the encoder's current state (spec §4.6 state table).
	ErrInvalidState = errors.New("fastinfoset: operation not permitted in current encoder state")

	// ErrUnsupportedFeature is returned for features the codec deliberately
	// does not implement (e.g. a DocTypeDecl with neither a public nor a
	// system identifier, or a literal string in an unknown encoding kind).
	ErrUnsupportedFeature = errors.New("fastinfoset: unsupported feature")

	// ErrIoError wraps a failure from the underlying stream. Use
	// fmt.Errorf("...: %w", errs.ErrIoError) style wrapping is avoided in
	// favor of wrapping the originating error directly; this sentinel exists
	// for callers that want to classify the failure as I/O regardless of the
	// underlying cause.
	ErrIoError = errors.New("fastinfoset: io error")
)
