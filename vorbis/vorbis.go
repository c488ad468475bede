package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/pipelined/patch"
)

// Decoder is a source playing an ogg vorbis stream. Packets are decoded on
// demand straight into float samples. The caller owns the wrapped reader
// and closes it after the stream finished.
type Decoder struct {
	patch.UID
	format patch.Format
	reader floatReader
	done   bool
	err    error
}

// floatReader is the stream drained by the decoder. It is the part of
// oggvorbis.Reader the decoder needs, kept as an interface so the fill
// logic is testable without ogg fixtures.
type floatReader interface {
	Read([]float32) (int, error)
}

// NewDecoder opens an ogg vorbis stream as a source.
func NewDecoder(r io.Reader) (*Decoder, error) {
	or, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("decode ogg: %w", err)
	}
	format := patch.Format{
		Channels:   or.Channels(),
		SampleRate: or.SampleRate(),
	}
	if format.Channels != 1 && format.Channels != 2 {
		return nil, fmt.Errorf("unsupported channel count %v", format.Channels)
	}
	return &Decoder{
		UID:    patch.NewUID(),
		format: format,
		reader: or,
	}, nil
}

// Format returns the decoded format.
func (d *Decoder) Format() patch.Format {
	return d.format
}

// Err returns the stream error that cut the decode short, if any. A failed
// stream finishes like a completed one, errors are reported here.
func (d *Decoder) Err() error {
	return d.err
}

// Read decodes samples into the buffer. It returns Good while full buffers
// are served and Finished on the tail of the stream.
func (d *Decoder) Read(buf []float32) patch.ReadResult {
	d.format.Frames(buf)
	if d.done {
		return patch.ReadResult{State: patch.Finished, N: 0}
	}
	total := 0
	for total < len(buf) {
		n, err := d.reader.Read(buf[total:])
		total += n
		if err != nil {
			d.done = true
			if err != io.EOF {
				d.err = err
			}
			break
		}
	}
	if total == len(buf) {
		return patch.ReadResult{State: patch.Good, N: total}
	}
	return patch.ReadResult{State: patch.Finished, N: total}
}
