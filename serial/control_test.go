package serial_test

import (
	"bytes"
	"errors"
	"io"
	"math/rand"
	"testing"
	"testing/iotest"

	"github.com/maxatome/go-testdeep/td"

	"github.com/stewi1014/pvdata/bytebuf"
	"github.com/stewi1014/pvdata/encio"
	"github.com/stewi1014/pvdata/serial"
)

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestFlusher(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	send := make([]byte, 1000)
	rng.Read(send)

	buf := newBuffer(t, 64, bytebuf.BigEndian)
	out := new(bytes.Buffer)
	flusher := serial.NewFlusher(buf, out)

	for i := 0; i < len(send); {
		if !buf.HasRemaining() {
			if err := flusher.FlushSerializeBuffer(); err != nil {
				t.Fatal(err)
			}
		}
		n := buf.Remaining()
		if n > len(send)-i {
			n = len(send) - i
		}
		if err := buf.PutBytes(send, i, n); err != nil {
			t.Fatal(err)
		}
		i += n
	}
	if err := flusher.FlushSerializeBuffer(); err != nil {
		t.Fatal(err)
	}

	td.Cmp(t, out.Bytes(), send)
	td.Cmp(t, flusher.Written(), int64(len(send)))
	td.Cmp(t, buf.Position(), 0)
	td.Cmp(t, buf.Remaining(), buf.Size())
}

func TestFlusherEnsureBuffer(t *testing.T) {
	buf := newBuffer(t, 8, bytebuf.BigEndian)
	out := new(bytes.Buffer)
	flusher := serial.NewFlusher(buf, out)

	if err := buf.PutInt(1); err != nil {
		t.Fatal(err)
	}
	if err := flusher.EnsureBuffer(4); err != nil {
		t.Fatal(err)
	}
	td.Cmp(t, out.Len(), 0)

	if err := flusher.EnsureBuffer(5); err != nil {
		t.Fatal(err)
	}
	td.Cmp(t, out.Bytes(), []byte{0, 0, 0, 1})
}

func TestFlusherError(t *testing.T) {
	buf := newBuffer(t, 8, bytebuf.BigEndian)
	flusher := serial.NewFlusher(buf, failWriter{})

	if err := buf.PutInt(1); err != nil {
		t.Fatal(err)
	}

	err := flusher.FlushSerializeBuffer()
	var ioErr encio.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("wanted IOError, got %v", err)
	}
	td.Cmp(t, buf.Position(), 0)
}

func TestFiller(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	send := make([]byte, 1000)
	rng.Read(send)

	testCases := []struct {
		desc   string
		reader func() io.Reader
	}{
		{desc: "Whole reader", reader: func() io.Reader { return bytes.NewReader(send) }},
		{desc: "One byte at a time", reader: func() io.Reader { return iotest.OneByteReader(bytes.NewReader(send)) }},
		{desc: "Data with EOF", reader: func() io.Reader { return iotest.DataErrReader(bytes.NewReader(send)) }},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			buf := newBuffer(t, 64, bytebuf.LittleEndian)
			filler := serial.NewFiller(buf, tC.reader())

			got := make([]byte, len(send))
			for i := 0; i < len(send); {
				if err := filler.EnsureData(1); err != nil {
					t.Fatal(err)
				}
				n := buf.Remaining()
				if err := buf.GetBytes(got, i, n); err != nil {
					t.Fatal(err)
				}
				i += n
			}

			td.Cmp(t, got, send)
			td.Cmp(t, filler.BytesRead(), int64(len(send)))
		})
	}
}

func TestFillerKeepsUnread(t *testing.T) {
	buf := newBuffer(t, 8, bytebuf.BigEndian)
	filler := serial.NewFiller(buf, iotest.OneByteReader(bytes.NewReader([]byte{1, 2, 3, 4, 5, 6})))

	if err := filler.EnsureData(2); err != nil {
		t.Fatal(err)
	}
	if _, err := buf.GetByte(); err != nil {
		t.Fatal(err)
	}

	if err := filler.EnsureData(4); err != nil {
		t.Fatal(err)
	}
	v, err := buf.GetInt()
	if err != nil {
		t.Fatal(err)
	}
	td.Cmp(t, v, int32(0x02030405))
}

func TestFillerEOF(t *testing.T) {
	buf := newBuffer(t, 8, bytebuf.BigEndian)
	filler := serial.NewFiller(buf, bytes.NewReader([]byte{1, 2}))

	err := filler.EnsureData(4)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("wanted io.ErrUnexpectedEOF, got %v", err)
	}

	// What did arrive is still readable.
	td.Cmp(t, buf.Bytes(), []byte{1, 2})
}
