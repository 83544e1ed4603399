// Package serial defines the flow-control contract used to stream values through a fixed size ByteBuffer,
// and the size encoding that prefixes every serialized array.
//
// A value larger than the buffer is written as a sequence of fill/drain cycles.
// When the buffer is full the writer calls FlushSerializeBuffer, which drains it to the transport and clears it.
// When the buffer runs dry the reader calls EnsureData, which refills it from the transport.
// Both calls block until the transport has made room or data, and any error they return aborts the operation.
package serial

import (
	"fmt"

	"github.com/stewi1014/pvdata/bytebuf"
	"github.com/stewi1014/pvdata/encio"
)

// SerializableControl is the flow-control collaborator for writes.
type SerializableControl interface {
	// FlushSerializeBuffer drains the written region of the buffer and clears it for more writes.
	FlushSerializeBuffer() error

	// EnsureBuffer flushes if fewer than n bytes of room remain.
	EnsureBuffer(n int) error
}

// DeserializableControl is the flow-control collaborator for reads.
type DeserializableControl interface {
	// EnsureData returns once at least n unread bytes, or as many as the buffer can hold, are available.
	EnsureData(n int) error
}

// Serializable is implemented by values that can be streamed through a ByteBuffer.
type Serializable interface {
	Serialize(buf *bytebuf.ByteBuffer, ctl SerializableControl) error
	Deserialize(buf *bytebuf.ByteBuffer, ctl DeserializableControl) error
}

const (
	// NullSize is the size written for a value that is not present.
	NullSize = -1

	nullMarker  = 0xff
	largeMarker = 0xfe

	// MaxSizeLen is the most bytes WriteSize will write.
	MaxSizeLen = 5
)

// WriteSize writes size to buf, flushing first if the encoded size might not fit.
//
// Sizes below 254 are a single unsigned byte, larger sizes are 0xfe followed by an int32 in buf's byte order,
// and NullSize is the single byte 0xff.
func WriteSize(size int, buf *bytebuf.ByteBuffer, ctl SerializableControl) error {
	if size < NullSize || int64(size) > 1<<31-1 {
		return encio.NewError(encio.ErrBadArgument, fmt.Sprintf("cannot encode size %v", size), 0)
	}

	if err := ctl.EnsureBuffer(MaxSizeLen); err != nil {
		return err
	}

	switch {
	case size == NullSize:
		return buf.PutByte(-1)
	case size < largeMarker:
		return buf.PutByte(int8(uint8(size)))
	default:
		if buf.Remaining() < MaxSizeLen {
			// Check up front so a failed write doesn't leave a lone marker behind.
			return encio.NewError(encio.ErrBufferOverflow, fmt.Sprintf("need %v bytes, %v remaining", MaxSizeLen, buf.Remaining()), 0)
		}
		if err := buf.PutByte(int8(-2)); err != nil {
			return err
		}
		return buf.PutInt(int32(size))
	}
}

// ReadSize reads a size written by WriteSize, asking ctl for more data as needed.
// It returns NullSize if the encoded value was null.
func ReadSize(buf *bytebuf.ByteBuffer, ctl DeserializableControl) (int, error) {
	if err := ctl.EnsureData(1); err != nil {
		return 0, err
	}

	b, err := buf.GetByte()
	if err != nil {
		return 0, err
	}

	switch uint8(b) {
	case nullMarker:
		return NullSize, nil
	case largeMarker:
		if err := ctl.EnsureData(4); err != nil {
			return 0, err
		}
		size, err := buf.GetInt()
		if err != nil {
			return 0, err
		}
		if size < 0 {
			return 0, encio.NewError(encio.ErrMalformed, fmt.Sprintf("negative size %v", size), 0)
		}
		return int(size), nil
	default:
		return int(uint8(b)), nil
	}
}
