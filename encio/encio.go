// Package encio provides io methods relevant to encoding, the error types used across pvdata,
// and the report channel used for soft policy violations.
package encio

import (
	"errors"
	"fmt"
	"io"
)

var (
	// TooBig is a byte count used for simple sanity checking before allocation with sizes decoded from buffers.
	// ErrMalformed is returned if a decoded array would exceed this.
	//
	// By default it is 32MB on 32bit machines, and 128MB on 64bit machines.
	// Feel free to change it.
	TooBig = uintptr(1 << (25 + ((^uint(0) >> 32) & 2)))
)

// ReadAtLeast reads from r into buff until at least min bytes have been read, returning the number of bytes read.
// It is like io.ReadAtLeast, but wraps failures in IOError and tolerates readers that return data alongside io.EOF.
func ReadAtLeast(buff []byte, min int, r io.Reader) (int, error) {
	if min > len(buff) {
		return 0, NewError(ErrBadArgument, fmt.Sprintf("want %v bytes but buffer is only %v bytes", min, len(buff)), 1)
	}

	var end int
	for end < min {
		n, err := r.Read(buff[end:])
		end += n

		switch {
		case end > len(buff):
			return 0, NewIOError(
				errors.New("bad io.Reader implementation"),
				r,
				fmt.Sprintf("reported %v bytes read, but buffer is only %v bytes", end, len(buff)),
				1,
			)
		case end >= min:
			return end, nil
		case errors.Is(err, io.EOF):
			return end, NewIOError(
				io.ErrUnexpectedEOF,
				r,
				fmt.Sprintf("want %v bytes but only got %v", min, end),
				1,
			)
		case err != nil:
			return end, NewIOError(err, r, fmt.Sprintf("want %v bytes but only got %v", min, end), 1)
		case n == 0:
			return end, NewIOError(
				io.ErrNoProgress,
				r,
				fmt.Sprintf("want %v bytes but only got %v", min, end),
				1,
			)
		}
	}
	return end, nil
}

// Read fills buff from r. Running out of data part way is io.ErrUnexpectedEOF, wrapped in IOError.
func Read(buff []byte, r io.Reader) error {
	_, err := ReadAtLeast(buff, len(buff), r)
	return err
}

// Write writes to w from buff, handling errors of io.Writer with as little overhead as possible.
// In an ideal write, only a single int equality check is performed. It returns any error from Write().
func Write(buff []byte, w io.Writer) error {
	n, err := w.Write(buff)
	if n == len(buff) {
		if err != nil {
			return NewIOError(err, w, "", 1)
		}
		return nil
	}

	end := n
	for end < len(buff) && err == nil && n > 0 {
		Warnings.Warn().
			Str("writer", fmt.Sprintf("%T", w)).
			Int("given", len(buff)-(end-n)).
			Int("written", n).
			Msg("bad io.Writer implementation; it wrote short yet returned no error. Will call it again")
		n, err = w.Write(buff[end:])
		end += n
	}

	if end != len(buff) {
		switch {
		case end > len(buff):
			return NewIOError(
				errors.New("bad io.Writer implementation"),
				w,
				fmt.Sprintf("Write() reported %v bytes written, but was only given %v bytes", end, len(buff)),
				1,
			)
		case err == nil:
			return NewIOError(
				io.ErrShortWrite,
				w,
				fmt.Sprintf("want %v bytes but only wrote %v bytes", len(buff), end),
				1,
			)
		default:
			return NewIOError(
				err,
				w,
				fmt.Sprintf("want %v bytes but wrote %v bytes", len(buff), end),
				1,
			)
		}
	}
	return nil
}
