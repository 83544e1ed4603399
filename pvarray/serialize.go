package pvarray

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/stewi1014/pvdata/bytebuf"
	"github.com/stewi1014/pvdata/encio"
	"github.com/stewi1014/pvdata/serial"
)

// Serialize writes the whole array to buf, flushing through ctl whenever buf fills up.
func (a *Array[T]) Serialize(buf *bytebuf.ByteBuffer, ctl serial.SerializableControl) error {
	return a.SerializeRange(buf, ctl, 0, a.length)
}

// SerializeRange writes count elements starting at offset.
// offset is clamped to [0, Length()], and count to what is left after offset; a negative count means everything after offset.
//
// The encoding is the element count, as written by serial.WriteSize, followed by the elements in order.
func (a *Array[T]) SerializeRange(buf *bytebuf.ByteBuffer, ctl serial.SerializableControl, offset, count int) error {
	length := a.length

	if offset < 0 {
		offset = 0
	} else if offset > length {
		offset = length
	}
	if count < 0 {
		count = length
	}
	if left := length - offset; count > left {
		count = left
	}

	if err := serial.WriteSize(count, buf, ctl); err != nil {
		return errors.WithMessagef(err, "%s: writing size", a.name)
	}

	width := a.codec.width
	end := offset + count
	for i := offset; ; {
		n := buf.Remaining() / width
		if n > end-i {
			n = end - i
		}

		if err := a.codec.putAll(buf, a.value[i:i+n]); err != nil {
			return err
		}
		i += n

		if i >= end {
			return nil
		}

		if err := ctl.FlushSerializeBuffer(); err != nil {
			return errors.WithMessagef(err, "%s: flushing after element %d of %d", a.name, i-offset, count)
		}
		if buf.Remaining() < width {
			return encio.NewError(
				encio.ErrBufferOverflow,
				fmt.Sprintf("%s: %d bytes of room after flush, need %d", a.name, buf.Remaining(), width),
				0,
			)
		}
	}
}

// Deserialize reads an array written by Serialize, asking ctl for more data whenever buf runs dry.
// The array grows to fit, and its length becomes the decoded count.
//
// Null arrays are not supported, and return an error wrapping encio.ErrUnsupported.
// An immutable array, or one whose capacity is fixed too small, reports the problem and skips the encoded elements,
// leaving its contents alone and the stream positioned after the array.
func (a *Array[T]) Deserialize(buf *bytebuf.ByteBuffer, ctl serial.DeserializableControl) error {
	size, err := serial.ReadSize(buf, ctl)
	if err != nil {
		return errors.WithMessagef(err, "%s: reading size", a.name)
	}

	width := a.codec.width
	switch {
	case size == serial.NullSize:
		return encio.NewError(encio.ErrUnsupported, a.name+": null arrays", 0)
	case uint64(size)*uint64(width) > uint64(encio.TooBig):
		return encio.NewError(
			encio.ErrMalformed,
			fmt.Sprintf("%s: array of length %v (%v bytes) is too big", a.name, size, size*width),
			0,
		)
	}

	if a.immutable {
		a.message("field is immutable", encio.ErrorMessage)
		return a.skip(buf, ctl, size)
	}
	if size > len(a.value) {
		a.SetCapacity(size)
		if size > len(a.value) {
			return a.skip(buf, ctl, size)
		}
	}

	err = a.stream(buf, ctl, size, func(i, n int) error {
		return a.codec.getAll(buf, a.value[i:i+n])
	})
	if err != nil {
		return err
	}

	a.length = size
	a.postPut()
	return nil
}

// skip consumes size encoded elements without storing them.
func (a *Array[T]) skip(buf *bytebuf.ByteBuffer, ctl serial.DeserializableControl, size int) error {
	return a.stream(buf, ctl, size, func(i, n int) error {
		return buf.SetPosition(buf.Position() + n*a.codec.width)
	})
}

// stream calls read for each run of elements available in buf until size elements have been consumed,
// refilling buf through ctl in between.
func (a *Array[T]) stream(buf *bytebuf.ByteBuffer, ctl serial.DeserializableControl, size int, read func(i, n int) error) error {
	width := a.codec.width
	for i := 0; ; {
		n := buf.Remaining() / width
		if n > size-i {
			n = size - i
		}

		if err := read(i, n); err != nil {
			return err
		}
		i += n

		if i >= size {
			return nil
		}

		if err := ctl.EnsureData(width); err != nil {
			return errors.WithMessagef(err, "%s: reading element %d of %d", a.name, i, size)
		}
		if buf.Remaining() < width {
			return encio.NewError(
				encio.ErrBufferUnderflow,
				fmt.Sprintf("%s: %d bytes available after refill, need %d", a.name, buf.Remaining(), width),
				0,
			)
		}
	}
}

var _ serial.Serializable = (*Array[int8])(nil)
