// Package bitio implements the block-buffered byte stream wrappers spec
// §4.1 requires: a read side with one-way rewind within the current block,
// and a write side that buffers writes before flushing to the underlying
// sink. Despite the package name, Fast Infoset's framing is byte-oriented
// almost everywhere — the handful of genuinely sub-byte operations (the
// restricted-alphabet codec) live in the alphabet package and use their own
// bit cursor.
//
// The Writer's block buffer is the teacher's growable byte buffer
// (internal/pool.ByteBuffer), reset after every flush; the Reader keeps
// its current block in a plain byte slice.
package bitio

import (
	"io"

	"github.com/LiquidTechnologies/fast-infoset/errs"
)

// MinBlockSize is the floor spec §4.1 imposes on the read/write block size.
const MinBlockSize = 4096

// Reader drains bytes from an underlying io.Reader in fixed-size blocks,
// exposing readByte/readBytes and a one-block-deep rewind.
//
// Reader is not safe for concurrent use (spec §5: single-producer,
// single-consumer per stream).
type Reader struct {
	src        io.Reader
	buf        []byte
	blockStart int64 // stream offset the current block began at, for diagnostics only
	pos        int   // read cursor within buf
	fill       int   // number of valid bytes currently in buf
	blockSize  int
}

// NewReader creates a Reader over src using blockSize as the refill
// granularity, clamped up to MinBlockSize.
func NewReader(src io.Reader, blockSize int) *Reader {
	if blockSize < MinBlockSize {
		blockSize = MinBlockSize
	}

	return &Reader{
		src:       src,
		buf:       make([]byte, blockSize),
		blockSize: blockSize,
	}
}

// refill reads the next block from the underlying source, replacing the
// current buffer contents and resetting the rewind cursor.
func (r *Reader) refill() error {
	r.blockStart += int64(r.fill)
	n, err := io.ReadAtLeast(r.src, r.buf, 1)
	if n == 0 {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return errs.ErrUnexpectedEOF
		}

		return err
	}

	r.pos = 0
	r.fill = n

	return nil
}

// ReadByte reads a single byte, refilling from the underlying source as
// needed. Returns errs.ErrUnexpectedEOF when the source is exhausted.
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= r.fill {
		if err := r.refill(); err != nil {
			return 0, err
		}
	}

	b := r.buf[r.pos]
	r.pos++

	return b, nil
}

// ReadBytes reads exactly n bytes, blocking (refilling) until all n are
// delivered or the source fails.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}

	out := make([]byte, 0, n)
	for len(out) < n {
		if r.pos >= r.fill {
			if err := r.refill(); err != nil {
				return nil, err
			}
		}

		take := n - len(out)
		if avail := r.fill - r.pos; take > avail {
			take = avail
		}

		out = append(out, r.buf[r.pos:r.pos+take]...)
		r.pos += take
	}

	return out, nil
}

// Rewind moves the read cursor back by n bytes within the current block.
// n must not exceed the number of bytes already consumed from this block;
// spec §4.1 explicitly scopes rewind to "within the current block" — the
// codec never needs to rewind across a refill boundary.
func (r *Reader) Rewind(n int) error {
	if n < 0 || n > r.pos {
		return errs.ErrMalformedHeader
	}

	r.pos -= n

	return nil
}
