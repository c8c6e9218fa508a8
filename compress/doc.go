// Package compress provides the optional compression codecs for Fast
// Infoset "additional data" document components.
//
// Fast Infoset lets an encoder embed an opaque, application-defined byte
// blob as the first optional document component (spec §4.5 item 3, first
// bullet). The parser decompresses it and exposes the resulting bytes;
// neither side interprets its contents. For large
// blobs, compressing them before they enter the stream is worthwhile, so
// this package offers the same codec choices the rest of the pack's
// ecosystem favors:
//
//   - None: no compression, zero overhead
//   - Zstd: best ratio, moderate speed (pure-Go via klauspost/compress on
//     default builds, cgo via valyala/gozstd when built with the cgo tag)
//   - S2: Snappy-family, fast with good ratio (klauspost/compress/s2)
//   - LZ4: very fast decompression (pierrec/lz4/v4)
//
// A 1-byte format.CompressionKind prefix identifies which codec produced a
// given additional-data block so the parser can invert it without external
// configuration.
package compress
