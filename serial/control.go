package serial

import (
	"io"

	"github.com/pkg/errors"

	"github.com/stewi1014/pvdata/bytebuf"
	"github.com/stewi1014/pvdata/encio"
)

// NewFlusher returns a SerializableControl that drains buf into w.
func NewFlusher(buf *bytebuf.ByteBuffer, w io.Writer) *Flusher {
	return &Flusher{
		buf: buf,
		w:   w,
	}
}

// Flusher drains a ByteBuffer into an io.Writer.
type Flusher struct {
	buf     *bytebuf.ByteBuffer
	w       io.Writer
	written int64
}

// FlushSerializeBuffer implements SerializableControl.
// The buffer is cleared even if the write fails.
func (f *Flusher) FlushSerializeBuffer() error {
	f.buf.Flip()
	n := f.buf.Remaining()
	err := encio.Write(f.buf.Bytes(), f.w)
	f.buf.Clear()
	if err != nil {
		return errors.Wrapf(err, "flushing %d bytes", n)
	}
	f.written += int64(n)
	return nil
}

// EnsureBuffer implements SerializableControl.
func (f *Flusher) EnsureBuffer(n int) error {
	if f.buf.Remaining() >= n {
		return nil
	}
	return f.FlushSerializeBuffer()
}

// Written returns the number of bytes written to the io.Writer.
func (f *Flusher) Written() int64 {
	return f.written
}

// NewFiller returns a DeserializableControl that refills buf from r.
// buf is emptied and left ready for reading.
func NewFiller(buf *bytebuf.ByteBuffer, r io.Reader) *Filler {
	buf.Clear().Flip()
	return &Filler{
		buf: buf,
		r:   r,
	}
}

// Filler refills a ByteBuffer from an io.Reader.
// It reads as much as the reader gives it, so bytes past the current value stay buffered for the next one.
type Filler struct {
	buf  *bytebuf.ByteBuffer
	r    io.Reader
	read int64
}

// EnsureData implements DeserializableControl.
func (f *Filler) EnsureData(n int) error {
	if n > f.buf.Size() {
		n = f.buf.Size()
	}

	have := f.buf.Remaining()
	if have >= n {
		return nil
	}

	f.buf.Compact()
	got, err := encio.ReadAtLeast(f.buf.Bytes(), n-have, f.r)
	f.read += int64(got)

	if perr := f.buf.SetPosition(have + got); perr != nil {
		return perr
	}
	f.buf.Flip()

	if err != nil {
		return errors.Wrapf(err, "need %d bytes, have %d", n, have+got)
	}
	return nil
}

// BytesRead returns the number of bytes read from the io.Reader.
func (f *Filler) BytesRead() int64 {
	return f.read
}
