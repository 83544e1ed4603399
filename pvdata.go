// Package pvdata streams typed array values through fixed size transport buffers.
//
// Values implement serial.Serializable; pvarray provides growable arrays of each scalar type.
// An Encoder serializes values into a ByteBuffer and flushes it to an io.Writer whenever it fills up,
// and a Decoder refills a ByteBuffer from an io.Reader as values are deserialized from it,
// so a value may be much larger than the buffer.
//
// pvdata/bytebuf provides the cursor based ByteBuffer.
//
// pvdata/serial provides the flow-control contract and size encoding.
//
// pvdata/encio provides io helpers, error types and the report channel for soft failures.
package pvdata

import (
	"io"

	"github.com/stewi1014/pvdata/bytebuf"
	"github.com/stewi1014/pvdata/serial"
)

// NewEncoder returns an Encoder writing to w. A nil config uses DefaultConfig.
func NewEncoder(w io.Writer, config *Config) (*Encoder, error) {
	config = config.copyAndFill()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	buf, err := config.NewBuffer()
	if err != nil {
		return nil, err
	}
	if config.Metrics {
		RegisterMetrics()
	}

	return &Encoder{
		buf:     buf,
		flusher: serial.NewFlusher(buf, w),
	}, nil
}

// Encoder writes Serializable values to an io.Writer.
// It is not safe for concurrent use.
type Encoder struct {
	buf     *bytebuf.ByteBuffer
	flusher *serial.Flusher
}

// Encode serializes v and flushes it to the writer.
func (e *Encoder) Encode(v serial.Serializable) error {
	written := e.flusher.Written()
	err := e.encode(v)
	recordStream(directionEncode, e.flusher.Written()-written, err)
	return err
}

func (e *Encoder) encode(v serial.Serializable) error {
	if err := v.Serialize(e.buf, e.flusher); err != nil {
		e.buf.Clear()
		return err
	}
	return e.flusher.FlushSerializeBuffer()
}

// Written returns the number of bytes written so far.
func (e *Encoder) Written() int64 {
	return e.flusher.Written()
}

// NewDecoder returns a Decoder reading from r. A nil config uses DefaultConfig.
func NewDecoder(r io.Reader, config *Config) (*Decoder, error) {
	config = config.copyAndFill()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	buf, err := config.NewBuffer()
	if err != nil {
		return nil, err
	}
	if config.Metrics {
		RegisterMetrics()
	}

	return &Decoder{
		buf:    buf,
		filler: serial.NewFiller(buf, r),
	}, nil
}

// Decoder reads Serializable values from an io.Reader.
// Bytes read past the end of one value are kept for the next call to Decode.
// It is not safe for concurrent use.
type Decoder struct {
	buf    *bytebuf.ByteBuffer
	filler *serial.Filler
}

// Decode deserializes the next value into v.
func (d *Decoder) Decode(v serial.Serializable) error {
	read := d.filler.BytesRead()
	err := v.Deserialize(d.buf, d.filler)
	recordStream(directionDecode, d.filler.BytesRead()-read, err)
	return err
}

// Buffered returns the number of bytes read but not yet decoded.
func (d *Decoder) Buffered() int {
	return d.buf.Remaining()
}
