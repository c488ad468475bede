package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/pipelined/patch"
	"github.com/stretchr/testify/assert"
)

// chunkReader serves its data in short reads and then fails with err, or
// io.EOF when err is nil.
type chunkReader struct {
	data  []float32
	chunk int
	err   error
	pos   int
}

func (r *chunkReader) Read(p []float32) (int, error) {
	if r.pos == len(r.data) {
		if r.err != nil {
			return 0, r.err
		}
		return 0, io.EOF
	}
	n := len(p)
	if r.chunk > 0 && n > r.chunk {
		n = r.chunk
	}
	n = copy(p[:n], r.data[r.pos:])
	r.pos += n
	return n, nil
}

func TestDecoderFillsFromShortReads(t *testing.T) {
	d := &Decoder{
		format: patch.Format{Channels: 1, SampleRate: 48000},
		reader: &chunkReader{
			data:  []float32{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8},
			chunk: 3,
		},
	}

	buf := make([]float32, 6)
	res := d.Read(buf)
	assert.Equal(t, patch.Good, res.State)
	assert.Equal(t, 6, res.N)
	assert.Equal(t, []float32{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}, buf)

	res = d.Read(buf)
	assert.Equal(t, patch.Finished, res.State)
	assert.Equal(t, 2, res.N)
	assert.Equal(t, []float32{0.7, 0.8}, buf[:2])

	res = d.Read(buf)
	assert.Equal(t, patch.Finished, res.State)
	assert.Equal(t, 0, res.N)
	assert.Nil(t, d.Err())
}

func TestDecoderStreamError(t *testing.T) {
	errBroken := errors.New("stream broken")
	d := &Decoder{
		format: patch.Format{Channels: 2, SampleRate: 44100},
		reader: &chunkReader{
			data: []float32{0.1, 0.2, 0.3, 0.4},
			err:  errBroken,
		},
	}

	buf := make([]float32, 8)
	res := d.Read(buf)
	assert.Equal(t, patch.Finished, res.State)
	assert.Equal(t, 4, res.N)
	assert.Equal(t, errBroken, d.Err())

	res = d.Read(buf)
	assert.Equal(t, patch.Finished, res.State)
	assert.Equal(t, 0, res.N)
}

func TestNewDecoderInvalidStream(t *testing.T) {
	_, err := NewDecoder(bytes.NewReader([]byte("this is not an ogg stream")))
	assert.NotNil(t, err)

	_, err = NewDecoder(bytes.NewReader(nil))
	assert.NotNil(t, err)
}

func TestDecoderPanicsOnMisalignedBuffer(t *testing.T) {
	d := &Decoder{
		format: patch.Format{Channels: 2, SampleRate: 44100},
		reader: &chunkReader{},
	}
	assert.Panics(t, func() {
		d.Read(make([]float32, 7))
	})
}
