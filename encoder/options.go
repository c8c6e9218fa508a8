package encoder

import (
	"github.com/LiquidTechnologies/fast-infoset/algorithm"
	"github.com/LiquidTechnologies/fast-infoset/alphabet"
	"github.com/LiquidTechnologies/fast-infoset/format"
	"github.com/LiquidTechnologies/fast-infoset/internal/options"
	"github.com/LiquidTechnologies/fast-infoset/vocab"
)

// DefaultBlockSize is the write-buffer granularity used when no
// WithBlockSize option is given, matching parser.DefaultBlockSize.
const DefaultBlockSize = 16 * 1024

// config holds Encoder construction settings, built up by functional
// Options in the teacher's generic internal/options style.
type config struct {
	blockSize    int
	vocabulary   *vocab.Vocabulary
	alphabets    *alphabet.Registry
	algorithms   *algorithm.Registry
	preferUTF16  bool
	version      string
	standalone   *bool
	ces          string
	additional   []byte
	additionalCK format.CompressionKind
	writeVocab   bool
	externalURI  string
	extAlphabets []string
	extAlgoURIs  []string
}

func defaultConfig() *config {
	return &config{
		blockSize:    DefaultBlockSize,
		vocabulary:   vocab.New(),
		alphabets:    alphabet.NewRegistry(),
		algorithms:   algorithm.NewRegistry(),
		additionalCK: format.CompressionNone,
	}
}

// Option configures an Encoder at construction time.
type Option = options.Option[*config]

// WithBlockSize overrides the write buffer's flush granularity.
func WithBlockSize(n int) Option {
	return options.NoError(func(c *config) { c.blockSize = n })
}

// WithVocabulary seeds the encoder with an externally supplied vocabulary.
// The encoder uses v itself, not a copy: every entry it adds while
// encoding is added to v.
func WithVocabulary(v *vocab.Vocabulary) Option {
	return options.NoError(func(c *config) { c.vocabulary = v })
}

// WithAlphabetRegistry overrides the registry consulted by
// Encoder.WriteAlphabetString.
func WithAlphabetRegistry(r *alphabet.Registry) Option {
	return options.NoError(func(c *config) { c.alphabets = r })
}

// WithAlgorithmRegistry overrides the registry consulted by
// Encoder.WriteEncodedData/WriteBase64/WriteCData.
func WithAlgorithmRegistry(r *algorithm.Registry) Option {
	return options.NoError(func(c *config) { c.algorithms = r })
}

// WithPreferUTF16 selects UTF-16BE instead of UTF-8 for the literal
// character chunks Encoder.WriteCharacterChunk writes; a chunk already in
// the content table is still written as an index. Other strings stay UTF-8.
func WithPreferUTF16(v bool) Option {
	return options.NoError(func(c *config) { c.preferUTF16 = v })
}

// WithVersion records an XML version string in the document header.
func WithVersion(v string) Option {
	return options.NoError(func(c *config) { c.version = v })
}

// WithStandalone records a standalone-document flag in the document
// header.
func WithStandalone(v bool) Option {
	return options.NoError(func(c *config) { c.standalone = &v })
}

// WithCharacterEncodingScheme records a diagnostic source-encoding name in
// the document header; it never changes the wire's own UTF-8/UTF-16BE
// choice.
func WithCharacterEncodingScheme(s string) Option {
	return options.NoError(func(c *config) { c.ces = s })
}

// WithAdditionalData embeds an application-defined opaque blob in the
// document header, compressed with kind before being written.
func WithAdditionalData(data []byte, kind format.CompressionKind) Option {
	return options.NoError(func(c *config) {
		c.additional = data
		c.additionalCK = kind
	})
}

// WithInitialVocabulary emits the encoder's seeded vocabulary as the
// document's initial-vocabulary header component. extendedAlphabets and
// extendedAlgorithmURIs name any extended restricted alphabets/encoding
// algorithms the document relies on, in registration order; externalURI
// optionally names an external vocabulary to layer the document's tables
// on top of.
func WithInitialVocabulary(externalURI string, extendedAlphabets, extendedAlgorithmURIs []string) Option {
	return options.NoError(func(c *config) {
		c.writeVocab = true
		c.externalURI = externalURI
		c.extAlphabets = extendedAlphabets
		c.extAlgoURIs = extendedAlgorithmURIs
	})
}
