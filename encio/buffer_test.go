package encio_test

import (
	"io"
	"math/rand"
	"testing"

	"github.com/maxatome/go-testdeep/td"

	"github.com/stewi1014/pvdata/encio"
)

func TestBuffer(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	var buff encio.Buffer
	var sent []byte

	for i := 0; i < 50; i++ {
		b := randomBytes(rng, 300)
		sent = append(sent, b...)
		if _, err := buff.Write(b); err != nil {
			t.Fatal(err)
		}

		// Read some back so the buffer has to slide.
		read := make([]byte, rng.Intn(len(b)))
		n, err := buff.Read(read)
		if err != nil {
			t.Fatal(err)
		}
		td.Cmp(t, read[:n], sent[:n])
		sent = sent[n:]
	}

	td.Cmp(t, buff.Bytes(), sent)
	td.Cmp(t, buff.Len(), len(sent))

	buff.Reset()
	if _, err := buff.Read(make([]byte, 1)); err != io.EOF {
		t.Fatalf("wanted io.EOF from empty buffer, got %v", err)
	}

	// Reading nothing from an empty buffer is not an error.
	n, err := buff.Read(nil)
	td.CmpNoError(t, err)
	td.Cmp(t, n, 0)
}
