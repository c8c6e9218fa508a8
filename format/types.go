// Package format defines small shared enums used across the codec so that
// wire-level numeric tags have a single typed home instead of being passed
// around as bare bytes.
package format

// CompressionKind identifies the compression codec applied to an "additional
// data" block (spec §4.5 item 3, first bullet) before it is embedded in a
// Fast Infoset document. Additional data is opaque to the parser/encoder;
// the kind byte only tells the compress package which codec to invert.
type CompressionKind uint8

const (
	CompressionNone CompressionKind = 0x1 // CompressionNone applies no compression.
	CompressionZstd CompressionKind = 0x2 // CompressionZstd applies Zstandard compression.
	CompressionS2   CompressionKind = 0x3 // CompressionS2 applies S2 (Snappy-family) compression.
	CompressionLZ4  CompressionKind = 0x4 // CompressionLZ4 applies LZ4 compression.
)

func (c CompressionKind) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
