package bitio

import (
	"io"

	"github.com/LiquidTechnologies/fast-infoset/internal/pool"
)

// Writer buffers writes in fixed-size blocks before flushing to an
// underlying io.Writer. Close flushes and, if the underlying writer
// implements io.Closer, closes it.
//
// Writer is not safe for concurrent use (spec §5).
type Writer struct {
	dst       io.Writer
	buf       *pool.ByteBuffer
	blockSize int
}

// NewWriter creates a Writer over dst using blockSize as the flush
// threshold, clamped up to MinBlockSize.
func NewWriter(dst io.Writer, blockSize int) *Writer {
	if blockSize < MinBlockSize {
		blockSize = MinBlockSize
	}

	return &Writer{
		dst:       dst,
		buf:       pool.NewByteBuffer(blockSize),
		blockSize: blockSize,
	}
}

// WriteByte appends a single byte, flushing the block first if full.
func (w *Writer) WriteByte(b byte) error {
	if w.buf.Len() >= w.blockSize {
		if err := w.Flush(); err != nil {
			return err
		}
	}

	w.buf.MustWriteByte(b)

	return nil
}

// WriteBytes appends data, flushing whenever the buffer reaches the block
// threshold. Large writes bypass buffering and go straight to the sink
// after any pending buffered bytes are flushed.
func (w *Writer) WriteBytes(data []byte) error {
	if len(data) >= w.blockSize {
		if err := w.Flush(); err != nil {
			return err
		}

		_, err := w.dst.Write(data)

		return err
	}

	w.buf.MustWrite(data)
	if w.buf.Len() >= w.blockSize {
		return w.Flush()
	}

	return nil
}

// Flush writes any buffered bytes to the underlying sink.
func (w *Writer) Flush() error {
	if w.buf.Len() == 0 {
		return nil
	}

	_, err := w.buf.WriteTo(w.dst)
	w.buf.Reset()

	return err
}

// Close flushes remaining buffered bytes and closes the underlying writer
// if it implements io.Closer.
func (w *Writer) Close() error {
	if err := w.Flush(); err != nil {
		return err
	}

	if c, ok := w.dst.(io.Closer); ok {
		return c.Close()
	}

	return nil
}
