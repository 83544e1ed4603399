// Package serialtest provides in-memory flow controls for testing Serializable implementations.
package serialtest

import (
	"fmt"
	"io"

	"github.com/stewi1014/pvdata/bytebuf"
	"github.com/stewi1014/pvdata/encio"
	"github.com/stewi1014/pvdata/serial"
)

// NewDrain returns a Drain flushing buf into memory.
func NewDrain(buf *bytebuf.ByteBuffer) *Drain {
	d := &Drain{buf: buf}
	d.flusher = serial.NewFlusher(buf, &d.Out)
	return d
}

// Drain is a SerializableControl that collects everything flushed from a buffer.
type Drain struct {
	Out encio.Buffer

	// Flushes counts calls to FlushSerializeBuffer, including those made by EnsureBuffer.
	Flushes int

	buf     *bytebuf.ByteBuffer
	flusher *serial.Flusher
}

// FlushSerializeBuffer implements serial.SerializableControl.
func (d *Drain) FlushSerializeBuffer() error {
	d.Flushes++
	return d.flusher.FlushSerializeBuffer()
}

// EnsureBuffer implements serial.SerializableControl.
func (d *Drain) EnsureBuffer(n int) error {
	if d.buf.Remaining() >= n {
		return nil
	}
	return d.FlushSerializeBuffer()
}

// Bytes flushes what is left in the buffer and returns everything drained so far.
func (d *Drain) Bytes() ([]byte, error) {
	if err := d.flusher.FlushSerializeBuffer(); err != nil {
		return nil, err
	}
	return d.Out.Bytes(), nil
}

// NewFeed returns a Feed that hands data to buf at most chunk bytes per request.
// buf is emptied and left ready for reading.
func NewFeed(buf *bytebuf.ByteBuffer, data []byte, chunk int) *Feed {
	if chunk < 1 {
		panic(fmt.Sprintf("chunk size %v is not positive", chunk))
	}
	buf.Clear().Flip()
	f := &Feed{
		buf:   buf,
		chunk: chunk,
	}
	f.src.Write(data)
	return f
}

// Feed is a DeserializableControl that refills a buffer from a byte slice in fixed size chunks.
type Feed struct {
	// Requests counts calls to EnsureData that had to add data.
	Requests int

	buf   *bytebuf.ByteBuffer
	src   encio.Buffer
	chunk int
}

// EnsureData implements serial.DeserializableControl.
func (f *Feed) EnsureData(n int) error {
	if n > f.buf.Size() {
		n = f.buf.Size()
	}
	if f.buf.Remaining() >= n {
		return nil
	}

	f.Requests++
	f.buf.Compact()
	for f.buf.Position() < n {
		if f.src.Len() == 0 {
			f.buf.Flip()
			return encio.NewIOError(io.ErrUnexpectedEOF, f, fmt.Sprintf("want %v bytes but only have %v", n, f.buf.Remaining()), 0)
		}

		c := f.chunk
		if c > f.src.Len() {
			c = f.src.Len()
		}
		if free := f.buf.Remaining(); c > free {
			c = free
		}
		if err := encio.Read(f.buf.Bytes()[:c], &f.src); err != nil {
			return err
		}
		if err := f.buf.SetPosition(f.buf.Position() + c); err != nil {
			return err
		}
	}
	f.buf.Flip()
	return nil
}

// Left returns the number of bytes not yet handed to the buffer.
func (f *Feed) Left() int {
	return f.src.Len()
}
