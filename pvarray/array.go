// Package pvarray provides Array, a growable array of scalars that streams to and from a ByteBuffer.
//
// An Array tracks its capacity (allocated elements) and length (meaningful elements) separately.
// Writes past the length grow the array, unless its capacity has been fixed.
//
// Structural problems, like a truncated stream or an unsupported encoding, are returned as errors.
// Policy problems, like writing to an immutable array, are reported to the array's encio.Requester
// and the write becomes a no-op, so code walking many fields can carry on past one it may not touch.
//
// Arrays are not safe for concurrent use; callers serialize access to them.
package pvarray

import (
	"fmt"
	"math"
	"strings"
	"unsafe"

	"github.com/stewi1014/pvdata/encio"
)

// New returns an empty, mutable Array of T named name.
func New[T Scalar](name string) *Array[T] {
	return &Array[T]{
		name:            name,
		value:           make([]T, 0),
		capacityMutable: true,
		requester:       encio.DefaultRequester,
		codec:           newCodec[T](),
	}
}

// Array is a growable array of T.
// len(value) is the capacity.
type Array[T Scalar] struct {
	name   string
	value  []T
	length int

	immutable       bool
	capacityMutable bool

	requester   encio.Requester
	postHandler PostHandler

	codec codec[T]
}

// Name returns the field name given to New.
func (a *Array[T]) Name() string {
	return a.name
}

// Length returns the number of meaningful elements.
func (a *Array[T]) Length() int {
	return a.length
}

// Capacity returns the number of allocated elements.
func (a *Array[T]) Capacity() int {
	return len(a.value)
}

// IsImmutable returns true if the array refuses all changes.
func (a *Array[T]) IsImmutable() bool {
	return a.immutable
}

// SetImmutable makes the array immutable. There is no way back.
// An immutable array's capacity is also fixed.
func (a *Array[T]) SetImmutable() {
	a.immutable = true
	a.capacityMutable = false
}

// IsCapacityMutable returns true if the capacity may change.
func (a *Array[T]) IsCapacityMutable() bool {
	return a.capacityMutable
}

// SetCapacityMutable sets whether the capacity may change.
func (a *Array[T]) SetCapacityMutable(mutable bool) {
	if mutable && a.immutable {
		a.message("field is immutable", encio.ErrorMessage)
		return
	}
	a.capacityMutable = mutable
}

// SetRequester sets where soft failures are reported. nil restores encio.DefaultRequester.
func (a *Array[T]) SetRequester(r encio.Requester) {
	if r == nil {
		r = encio.DefaultRequester
	}
	a.requester = r
}

// SetPostHandler sets the handler notified after each successful Put or Deserialize.
func (a *Array[T]) SetPostHandler(h PostHandler) {
	a.postHandler = h
}

func (a *Array[T]) message(msg string, messageType encio.MessageType) {
	a.requester.Message(a.name+" "+msg, messageType)
}

func (a *Array[T]) postPut() {
	if a.postHandler != nil {
		a.postHandler.PostPut()
	}
}

// SetCapacity reallocates the array to hold capacity elements, keeping as many existing elements as fit.
// Arrays with a fixed capacity report the attempt and are left alone.
func (a *Array[T]) SetCapacity(capacity int) {
	if len(a.value) == capacity {
		return
	}
	if a.immutable {
		a.message("field is immutable", encio.ErrorMessage)
		return
	}
	if !a.capacityMutable {
		a.message("not capacityMutable", encio.ErrorMessage)
		return
	}
	if capacity < 0 {
		a.message(fmt.Sprintf("negative capacity %v", capacity), encio.ErrorMessage)
		return
	}

	length := a.length
	if length > capacity {
		length = capacity
	}

	value := make([]T, capacity)
	copy(value, a.value[:length])
	a.value = value
	a.length = length
}

// SetLength sets the number of meaningful elements, growing the capacity if needed and allowed.
// If the capacity cannot grow, the length is clamped to it.
func (a *Array[T]) SetLength(length int) {
	if a.immutable {
		a.message("field is immutable", encio.ErrorMessage)
		return
	}
	if length == a.length {
		return
	}
	if length < 0 {
		a.message(fmt.Sprintf("negative length %v", length), encio.ErrorMessage)
		return
	}
	if length > len(a.value) {
		a.SetCapacity(length)
	}
	if length > len(a.value) {
		length = len(a.value)
	}
	a.length = length
}

// Get returns up to length elements starting at offset, and how many there are.
// The returned slice shares memory with the array and is only valid until the array is next changed.
func (a *Array[T]) Get(offset, length int) ([]T, int) {
	if offset < 0 {
		return nil, 0
	}
	n := length
	if n > a.length-offset {
		n = a.length - offset
	}
	if n <= 0 {
		return nil, 0
	}
	return a.value[offset : offset+n], n
}

// Put copies length elements from from[fromOffset:] into the array at offset, growing it if needed.
// It returns the number of elements written, which is less than length if the capacity is fixed.
//
// Immutable arrays report the attempt and return 0.
// Putting the array's own backing slice does nothing and returns length.
func (a *Array[T]) Put(offset, length int, from []T, fromOffset int) int {
	if a.immutable {
		a.message("field is immutable", encio.ErrorMessage)
		return 0
	}
	if length < 1 {
		return 0
	}
	if cap(a.value) > 0 && unsafe.SliceData(from) == unsafe.SliceData(a.value) {
		return length
	}
	if offset < 0 || fromOffset < 0 || fromOffset > len(from) || length > len(from)-fromOffset {
		panic(encio.NewError(
			encio.ErrBadArgument,
			fmt.Sprintf("cannot put %v elements from [%v:] of %v at offset %v", length, fromOffset, len(from), offset),
			0,
		))
	}

	newLength := a.length
	if offset > a.length-length {
		if offset > math.MaxInt-length {
			panic(encio.NewError(
				encio.ErrBadArgument,
				fmt.Sprintf("cannot put %v elements at offset %v", length, offset),
				0,
			))
		}
		newLength = offset + length
		if newLength > len(a.value) {
			a.SetCapacity(newLength)
			newLength = len(a.value)
			length = newLength - offset
			if length <= 0 {
				return 0
			}
		}
	}

	copy(a.value[offset:offset+length], from[fromOffset:fromOffset+length])
	if newLength > a.length {
		a.length = newLength
	}
	a.postPut()
	return length
}

// ShareData hands value to the array without copying.
// The array's capacity becomes capacity and its length becomes length; the previous backing slice is dropped.
// The caller must not use value afterwards.
//
// Immutable arrays report the attempt and are left alone.
// It panics if capacity is larger than cap(value), or length is outside [0, capacity].
func (a *Array[T]) ShareData(value []T, capacity, length int) {
	if a.immutable {
		a.message("field is immutable", encio.ErrorMessage)
		return
	}
	if capacity < 0 || capacity > cap(value) || length < 0 || length > capacity {
		panic(encio.NewError(
			encio.ErrBadArgument,
			fmt.Sprintf("cannot share %v element slice with capacity %v and length %v", cap(value), capacity, length),
			0,
		))
	}
	a.value = value[:capacity]
	a.length = length
}

// String returns the array as name[length/capacity]{v0,v1,...}.
func (a *Array[T]) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s[%d/%d]{", a.name, a.length, len(a.value))
	for i, v := range a.value[:a.length] {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprint(&sb, v)
	}
	sb.WriteByte('}')
	return sb.String()
}
