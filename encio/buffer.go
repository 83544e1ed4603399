package encio

import (
	"io"
)

// Buffer is an unbounded byte sink and source.
// In-memory flow controls drain ByteBuffers into it, and refill them from it.
type Buffer struct {
	buff []byte
	off  int
}

// Read implements io.Reader. It returns io.EOF once everything written has been read.
func (b *Buffer) Read(buff []byte) (int, error) {
	if len(buff) > 0 && b.Len() == 0 {
		return 0, io.EOF
	}
	n := copy(buff, b.buff[b.off:])
	b.off += n
	return n, nil
}

// Write implements io.Writer. It never fails.
func (b *Buffer) Write(buff []byte) (int, error) {
	if b.off > 0 && b.off == len(b.buff) {
		b.Reset()
	}
	b.buff = append(b.buff, buff...)
	return len(buff), nil
}

// Len returns the length of the unread portion of the buffer.
func (b *Buffer) Len() int {
	return len(b.buff) - b.off
}

// Bytes returns the unread portion of the buffer.
// It is only valid until the next call to Write.
func (b *Buffer) Bytes() []byte {
	return b.buff[b.off:]
}

// Reset empties the buffer, keeping its allocation.
func (b *Buffer) Reset() {
	b.buff = b.buff[:0]
	b.off = 0
}
