package encio

import (
	"errors"
	"fmt"
	"runtime"
)

// Error handling in pvdata distinguishes two kinds of failure.
// Structural failures, such as reading past a buffer's limit or decoding a size this library does not support,
// are returned as errors and abort the operation. They are wrapped in one of two types; IOError and Error.
// IOError errors indicate a bad io.Reader/io.Writer or a flow-control collaborator that could not make progress,
// and the caller should stop using it. Error errors indicate a programming or protocol error on the caller's side.
//
// Policy failures, such as writing to an immutable array, are never returned as errors.
// They are reported through a Requester and the operation becomes a no-op.
//
// Errors can be checked with
//
//	var encErr encio.Error
//	var ioErr encio.IOError
//	if errors.As(err, &encErr) {
//		//handle encoding error
//	} else if errors.As(err, &ioErr) {
//		//handle io error
//	}
//
// or, for a specific kind,
//
//	errors.Is(err, encio.ErrBufferUnderflow)
//
// These errors will be wrapped by IOError or Error.
var (
	// ErrBufferOverflow is returned when a write needs more room than remains before the buffer's limit.
	ErrBufferOverflow = errors.New("buffer overflow")

	// ErrBufferUnderflow is returned when a read needs more bytes than remain before the buffer's limit.
	ErrBufferUnderflow = errors.New("buffer underflow")

	// ErrNegativeSize is returned when a buffer is created with a negative size.
	ErrNegativeSize = errors.New("negative size")

	// ErrInvalidByteOrder is returned when a byte order is neither big nor little endian.
	ErrInvalidByteOrder = errors.New("invalid byte order")

	// ErrUnsupported is returned when the read data is well formed but describes something this library cannot represent,
	// i.e. a null array.
	ErrUnsupported = errors.New("not supported")

	// ErrMalformed is returned when the read data is impossible to decode.
	ErrMalformed = errors.New("malformed")

	// ErrBadArgument is returned when a caller passes an argument outside of its valid range.
	ErrBadArgument = errors.New("bad argument")
)

// NewIOError returns an IOError wrapping err with the given message.
// err is typically the error returned from the io.Reader/io.Writer, or another error describing why the reader isn't operating correctly.
// rw is the reader, writer or control that failed, and is only used for its type name.
// If message is empty, it is filled with the name of the calling function, skipping skip functions.
func NewIOError(err error, rw interface{}, message string, skip int) error {
	if err == nil {
		return NewError(errors.New("unknown error"), "trying to create new IOError", 0)
	}
	if message == "" {
		message = "in " + GetCaller(skip+1)
	}
	if rw != nil {
		message = fmt.Sprintf("%T: %v", rw, message)
	}

	return IOError{
		Err:     err,
		Message: message,
	}
}

// IOError is returned when io errors occur, or when a flow-control collaborator fails.
type IOError struct {
	Err     error
	Message string
}

// Error implements error
func (e IOError) Error() string {
	if e.Message != "" {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// Unwrap implements errors's Unwrap()
func (e IOError) Unwrap() error {
	return e.Err
}

// NewError returns an Error wrapping err with message and the name of the calling function, skipping skip functions.
func NewError(err error, message string, skip int) error {
	return Error{
		Err:     err,
		Message: message,
		Caller:  GetCaller(skip + 1),
	}
}

// Error is returned when a structural rule of a buffer or encoding is broken.
type Error struct {
	Err     error
	Message string
	Caller  string
}

// Error implements error
func (e Error) Error() (str string) {
	if e.Caller != "" {
		str = e.Caller + ": "
	}

	str += e.Err.Error()

	if e.Message != "" {
		str += " (" + e.Message + ")"
	}

	return str
}

// Unwrap implements errors's Unwrap()
func (e Error) Unwrap() error {
	return e.Err
}

// GetCaller returns the name of the calling function, skipping skip functions.
// i.e. 0 writes the calling function, 1 the function calling that etc...
func GetCaller(skip int) string {
	pcs := make([]uintptr, 1)
	n := runtime.Callers(2+skip, pcs)
	if n != 1 {
		return "Unknown Function"
	}

	frames := runtime.CallersFrames(pcs)
	frame, _ := frames.Next()
	return frame.Function
}
