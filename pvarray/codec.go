package pvarray

import (
	"fmt"
	"reflect"
	"unsafe"

	"golang.org/x/exp/constraints"

	"github.com/stewi1014/pvdata/bytebuf"
	"github.com/stewi1014/pvdata/encio"
)

// Scalar is the set of element types an Array can hold.
// Named types are allowed; they are encoded as their underlying type.
type Scalar interface {
	~bool | ~int8 | ~int16 | ~int32 | ~int64 | constraints.Float
}

// MaxWidth is the widest element encoding in bytes.
// Buffers streaming arrays must be at least this big.
const MaxWidth = 8

// codec encodes a single element type.
type codec[T Scalar] struct {
	width int

	// raw is set when an element's memory is its wire encoding,
	// so slices of elements can be copied to and from the buffer in bulk.
	raw bool

	put func(buf *bytebuf.ByteBuffer, v T) error
	get func(buf *bytebuf.ByteBuffer) (T, error)
}

// newCodec returns the codec for T's underlying kind.
// Conversions go through unsafe.Pointer, as T may be a named type.
func newCodec[T Scalar]() codec[T] {
	var zero T
	switch kind := reflect.TypeOf(zero).Kind(); kind {
	case reflect.Bool:
		// Not raw; any non-zero byte decodes as true, and a Go bool must be 0 or 1.
		return codec[T]{
			width: 1,
			put: func(buf *bytebuf.ByteBuffer, v T) error {
				return buf.PutBoolean(*(*bool)(unsafe.Pointer(&v)))
			},
			get: func(buf *bytebuf.ByteBuffer) (T, error) {
				v, err := buf.GetBoolean()
				return *(*T)(unsafe.Pointer(&v)), err
			},
		}
	case reflect.Int8:
		return codec[T]{
			width: 1,
			raw:   true,
			put: func(buf *bytebuf.ByteBuffer, v T) error {
				return buf.PutByte(*(*int8)(unsafe.Pointer(&v)))
			},
			get: func(buf *bytebuf.ByteBuffer) (T, error) {
				v, err := buf.GetByte()
				return *(*T)(unsafe.Pointer(&v)), err
			},
		}
	case reflect.Int16:
		return codec[T]{
			width: 2,
			put: func(buf *bytebuf.ByteBuffer, v T) error {
				return buf.PutShort(*(*int16)(unsafe.Pointer(&v)))
			},
			get: func(buf *bytebuf.ByteBuffer) (T, error) {
				v, err := buf.GetShort()
				return *(*T)(unsafe.Pointer(&v)), err
			},
		}
	case reflect.Int32:
		return codec[T]{
			width: 4,
			put: func(buf *bytebuf.ByteBuffer, v T) error {
				return buf.PutInt(*(*int32)(unsafe.Pointer(&v)))
			},
			get: func(buf *bytebuf.ByteBuffer) (T, error) {
				v, err := buf.GetInt()
				return *(*T)(unsafe.Pointer(&v)), err
			},
		}
	case reflect.Int64:
		return codec[T]{
			width: 8,
			put: func(buf *bytebuf.ByteBuffer, v T) error {
				return buf.PutLong(*(*int64)(unsafe.Pointer(&v)))
			},
			get: func(buf *bytebuf.ByteBuffer) (T, error) {
				v, err := buf.GetLong()
				return *(*T)(unsafe.Pointer(&v)), err
			},
		}
	case reflect.Float32:
		return codec[T]{
			width: 4,
			put: func(buf *bytebuf.ByteBuffer, v T) error {
				return buf.PutFloat(*(*float32)(unsafe.Pointer(&v)))
			},
			get: func(buf *bytebuf.ByteBuffer) (T, error) {
				v, err := buf.GetFloat()
				return *(*T)(unsafe.Pointer(&v)), err
			},
		}
	case reflect.Float64:
		return codec[T]{
			width: 8,
			put: func(buf *bytebuf.ByteBuffer, v T) error {
				return buf.PutDouble(*(*float64)(unsafe.Pointer(&v)))
			},
			get: func(buf *bytebuf.ByteBuffer) (T, error) {
				v, err := buf.GetDouble()
				return *(*T)(unsafe.Pointer(&v)), err
			},
		}
	default:
		panic(encio.NewError(encio.ErrBadArgument, fmt.Sprintf("%v is not a scalar kind", kind), 0))
	}
}

// putAll writes all of s to buf. buf must have room for it.
func (c *codec[T]) putAll(buf *bytebuf.ByteBuffer, s []T) error {
	if c.raw {
		b := rawBytes(s)
		return buf.PutBytes(b, 0, len(b))
	}
	for _, v := range s {
		if err := c.put(buf, v); err != nil {
			return err
		}
	}
	return nil
}

// getAll fills s from buf. buf must hold enough bytes.
func (c *codec[T]) getAll(buf *bytebuf.ByteBuffer, s []T) (err error) {
	if c.raw {
		b := rawBytes(s)
		return buf.GetBytes(b, 0, len(b))
	}
	for i := range s {
		if s[i], err = c.get(buf); err != nil {
			return err
		}
	}
	return nil
}

// rawBytes returns the memory backing s as bytes. Only valid for single byte element types.
func rawBytes[T Scalar](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), len(s))
}
