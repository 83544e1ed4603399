// Package bytebuf provides ByteBuffer, a fixed size byte buffer with a read/write cursor,
// an explicit limit and a configurable byte order.
//
// A ByteBuffer is either being written to, or read from.
// Clear readies it for writing over the whole buffer, Flip readies what was written for reading,
// and Rewind reads it again.
//
//	buf, _ := bytebuf.New(64, bytebuf.BigEndian)
//	buf.PutInt(7)
//	buf.Flip()
//	n, _ := buf.GetInt() // 7
//
// Every get and put checks the remaining room before touching the buffer,
// so a failed call leaves the position where it was.
package bytebuf

import (
	"encoding/binary"
	"fmt"
	"math"
	"unsafe"

	"github.com/stewi1014/pvdata/encio"
)

// ByteOrder is the order multi-byte values are encoded in.
type ByteOrder int

const (
	// BigEndian is network byte order.
	BigEndian ByteOrder = iota
	// LittleEndian is the order used by x86 and most ARM machines.
	LittleEndian
)

// NativeOrder is the byte order of the machine we're running on.
var NativeOrder = func() ByteOrder {
	i := uint16(1)
	if *(*byte)(unsafe.Pointer(&i)) == 1 {
		return LittleEndian
	}
	return BigEndian
}()

// ParseByteOrder parses "big", "little" or "native".
func ParseByteOrder(s string) (ByteOrder, error) {
	switch s {
	case "big", "big-endian", "network":
		return BigEndian, nil
	case "little", "little-endian":
		return LittleEndian, nil
	case "native", "":
		return NativeOrder, nil
	default:
		return 0, encio.NewError(encio.ErrInvalidByteOrder, fmt.Sprintf("unknown byte order %q", s), 0)
	}
}

func (o ByteOrder) String() string {
	switch o {
	case BigEndian:
		return "big"
	case LittleEndian:
		return "little"
	default:
		return fmt.Sprintf("ByteOrder(%d)", int(o))
	}
}

// Valid returns true if o is BigEndian or LittleEndian.
func (o ByteOrder) Valid() bool {
	return o == BigEndian || o == LittleEndian
}

// binary returns the encoding/binary equivalent of o.
// Encoding in the non-native order gives the same bytes as reversing the native representation.
func (o ByteOrder) binary() binary.ByteOrder {
	if o == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// New returns a new ByteBuffer of size bytes, ready for writing.
func New(size int, order ByteOrder) (*ByteBuffer, error) {
	if size < 0 {
		return nil, encio.NewError(encio.ErrNegativeSize, fmt.Sprintf("size %v", size), 0)
	}
	if !order.Valid() {
		return nil, encio.NewError(encio.ErrInvalidByteOrder, order.String(), 0)
	}

	return &ByteBuffer{
		buff:   make([]byte, size),
		limit:  size,
		order:  order,
		endian: order.binary(),
	}, nil
}

// ByteBuffer is a fixed size buffer with a cursor.
// 0 <= Position() <= Limit() <= Size() always holds.
//
// It is not safe for concurrent use.
type ByteBuffer struct {
	buff     []byte
	position int
	limit    int
	order    ByteOrder
	endian   binary.ByteOrder
}

// Size returns the total size of the buffer.
func (b *ByteBuffer) Size() int {
	return len(b.buff)
}

// Position returns the offset of the next read or write.
func (b *ByteBuffer) Position() int {
	return b.position
}

// SetPosition moves the cursor. It must not pass the limit.
func (b *ByteBuffer) SetPosition(position int) error {
	if position < 0 || position > b.limit {
		return encio.NewError(encio.ErrBadArgument, fmt.Sprintf("position %v outside of [0, %v]", position, b.limit), 0)
	}
	b.position = position
	return nil
}

// Limit returns the exclusive end of the valid region.
func (b *ByteBuffer) Limit() int {
	return b.limit
}

// SetLimit sets the end of the valid region.
// If the position is past the new limit, it is moved back to it.
func (b *ByteBuffer) SetLimit(limit int) error {
	if limit < 0 || limit > len(b.buff) {
		return encio.NewError(encio.ErrBadArgument, fmt.Sprintf("limit %v outside of [0, %v]", limit, len(b.buff)), 0)
	}
	b.limit = limit
	if b.position > limit {
		b.position = limit
	}
	return nil
}

// Order returns the buffer's byte order.
func (b *ByteBuffer) Order() ByteOrder {
	return b.order
}

// Remaining returns the number of bytes between the position and the limit.
func (b *ByteBuffer) Remaining() int {
	return b.limit - b.position
}

// HasRemaining returns true if there is anything between the position and the limit.
func (b *ByteBuffer) HasRemaining() bool {
	return b.position < b.limit
}

// Clear readies the buffer for writing over its whole size.
func (b *ByteBuffer) Clear() *ByteBuffer {
	b.position = 0
	b.limit = len(b.buff)
	return b
}

// Flip readies what has been written for reading.
func (b *ByteBuffer) Flip() *ByteBuffer {
	b.limit = b.position
	b.position = 0
	return b
}

// Rewind moves the position back to the start, leaving the limit alone.
func (b *ByteBuffer) Rewind() *ByteBuffer {
	b.position = 0
	return b
}

// Compact moves the unread bytes to the start of the buffer and readies it for writing after them.
func (b *ByteBuffer) Compact() *ByteBuffer {
	n := copy(b.buff, b.buff[b.position:b.limit])
	b.position = n
	b.limit = len(b.buff)
	return b
}

// Bytes returns the region between the position and the limit without copying.
// It is only valid until the buffer is next modified.
func (b *ByteBuffer) Bytes() []byte {
	return b.buff[b.position:b.limit]
}

// next returns the next n bytes and advances the position,
// or returns err if fewer than n bytes remain.
func (b *ByteBuffer) next(n int, err error) ([]byte, error) {
	if b.limit-b.position < n {
		return nil, encio.NewError(err, fmt.Sprintf("need %v bytes, %v remaining", n, b.limit-b.position), 2)
	}
	p := b.buff[b.position : b.position+n]
	b.position += n
	return p, nil
}

func (b *ByteBuffer) get(n int) ([]byte, error) {
	return b.next(n, encio.ErrBufferUnderflow)
}

func (b *ByteBuffer) put(n int) ([]byte, error) {
	return b.next(n, encio.ErrBufferOverflow)
}

// GetBoolean reads a bool. Any non-zero byte is true.
func (b *ByteBuffer) GetBoolean() (bool, error) {
	p, err := b.get(1)
	if err != nil {
		return false, err
	}
	return p[0] != 0, nil
}

// PutBoolean writes a bool as a single 0 or 1 byte.
func (b *ByteBuffer) PutBoolean(v bool) error {
	p, err := b.put(1)
	if err != nil {
		return err
	}
	if v {
		p[0] = 1
	} else {
		p[0] = 0
	}
	return nil
}

// GetByte reads an int8.
func (b *ByteBuffer) GetByte() (int8, error) {
	p, err := b.get(1)
	if err != nil {
		return 0, err
	}
	return int8(p[0]), nil
}

// PutByte writes an int8.
func (b *ByteBuffer) PutByte(v int8) error {
	p, err := b.put(1)
	if err != nil {
		return err
	}
	p[0] = byte(v)
	return nil
}

// GetShort reads an int16.
func (b *ByteBuffer) GetShort() (int16, error) {
	p, err := b.get(2)
	if err != nil {
		return 0, err
	}
	return int16(b.endian.Uint16(p)), nil
}

// PutShort writes an int16.
func (b *ByteBuffer) PutShort(v int16) error {
	p, err := b.put(2)
	if err != nil {
		return err
	}
	b.endian.PutUint16(p, uint16(v))
	return nil
}

// GetInt reads an int32.
func (b *ByteBuffer) GetInt() (int32, error) {
	p, err := b.get(4)
	if err != nil {
		return 0, err
	}
	return int32(b.endian.Uint32(p)), nil
}

// PutInt writes an int32.
func (b *ByteBuffer) PutInt(v int32) error {
	p, err := b.put(4)
	if err != nil {
		return err
	}
	b.endian.PutUint32(p, uint32(v))
	return nil
}

// GetLong reads an int64.
func (b *ByteBuffer) GetLong() (int64, error) {
	p, err := b.get(8)
	if err != nil {
		return 0, err
	}
	return int64(b.endian.Uint64(p)), nil
}

// PutLong writes an int64.
func (b *ByteBuffer) PutLong(v int64) error {
	p, err := b.put(8)
	if err != nil {
		return err
	}
	b.endian.PutUint64(p, uint64(v))
	return nil
}

// GetFloat reads an IEEE 754 float32.
func (b *ByteBuffer) GetFloat() (float32, error) {
	p, err := b.get(4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(b.endian.Uint32(p)), nil
}

// PutFloat writes an IEEE 754 float32.
func (b *ByteBuffer) PutFloat(v float32) error {
	p, err := b.put(4)
	if err != nil {
		return err
	}
	b.endian.PutUint32(p, math.Float32bits(v))
	return nil
}

// GetDouble reads an IEEE 754 float64.
func (b *ByteBuffer) GetDouble() (float64, error) {
	p, err := b.get(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(b.endian.Uint64(p)), nil
}

// PutDouble writes an IEEE 754 float64.
func (b *ByteBuffer) PutDouble(v float64) error {
	p, err := b.put(8)
	if err != nil {
		return err
	}
	b.endian.PutUint64(p, math.Float64bits(v))
	return nil
}

// GetBytes copies exactly count bytes into dst[offset:].
func (b *ByteBuffer) GetBytes(dst []byte, offset, count int) error {
	if count < 0 || offset < 0 || offset+count > len(dst) {
		return encio.NewError(encio.ErrBadArgument, fmt.Sprintf("cannot get %v bytes into [%v:] of %v byte slice", count, offset, len(dst)), 0)
	}
	p, err := b.get(count)
	if err != nil {
		return err
	}
	copy(dst[offset:], p)
	return nil
}

// PutBytes copies exactly count bytes from src[offset:].
func (b *ByteBuffer) PutBytes(src []byte, offset, count int) error {
	if count < 0 || offset < 0 || offset+count > len(src) {
		return encio.NewError(encio.ErrBadArgument, fmt.Sprintf("cannot put %v bytes from [%v:] of %v byte slice", count, offset, len(src)), 0)
	}
	p, err := b.put(count)
	if err != nil {
		return err
	}
	copy(p, src[offset:offset+count])
	return nil
}
