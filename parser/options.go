package parser

import (
	"github.com/LiquidTechnologies/fast-infoset/algorithm"
	"github.com/LiquidTechnologies/fast-infoset/alphabet"
	"github.com/LiquidTechnologies/fast-infoset/internal/options"
	"github.com/LiquidTechnologies/fast-infoset/vocab"
)

// DefaultBlockSize is the read-buffer granularity used when no
// WithBlockSize option is given: 16 KiB, the teacher's blob-buffer
// default, clamped up to bitio.MinBlockSize regardless.
const DefaultBlockSize = 16 * 1024

// config holds Parser construction settings, built up by functional
// Options in the teacher's generic internal/options style.
type config struct {
	blockSize     int
	vocabulary    *vocab.Vocabulary
	alphabets     *alphabet.Registry
	algorithms    *algorithm.Registry
	findAlgorithm vocab.ExtendedAlgorithmFactory
}

func defaultConfig() *config {
	return &config{
		blockSize:  DefaultBlockSize,
		vocabulary: vocab.New(),
		alphabets:  alphabet.NewRegistry(),
		algorithms: algorithm.NewRegistry(),
	}
}

// Option configures a Parser at construction time.
type Option = options.Option[*config]

// WithBlockSize overrides the read buffer's refill granularity.
func WithBlockSize(n int) Option {
	return options.NoError(func(c *config) { c.blockSize = n })
}

// WithVocabulary seeds the parser with an externally supplied vocabulary.
// The parser uses v itself, not a copy: every entry it adds while
// decoding is added to v.
func WithVocabulary(v *vocab.Vocabulary) Option {
	return options.NoError(func(c *config) { c.vocabulary = v })
}

// WithAlphabetRegistry overrides the registry used to resolve extended
// restricted alphabets found in an initial-vocabulary block.
func WithAlphabetRegistry(r *alphabet.Registry) Option {
	return options.NoError(func(c *config) { c.alphabets = r })
}

// WithAlgorithmRegistry overrides the registry used to resolve extended
// encoding algorithms by table index.
func WithAlgorithmRegistry(r *algorithm.Registry) Option {
	return options.NoError(func(c *config) { c.algorithms = r })
}

// WithExtendedAlgorithmFactory supplies implementations for extended
// encoding-algorithm URIs an initial-vocabulary block may list; URIs with
// no matching implementation fall back to an opaque passthrough.
func WithExtendedAlgorithmFactory(f vocab.ExtendedAlgorithmFactory) Option {
	return options.NoError(func(c *config) { c.findAlgorithm = f })
}
