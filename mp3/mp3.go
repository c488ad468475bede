package mp3

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/hajimehoshi/go-mp3"
	"github.com/viert/lame"

	"github.com/pipelined/patch"
)

type (
	// Decoder is a source playing an mp3 stream. Frames are decoded on
	// demand, the decoded output is always stereo 16-bit. The caller owns
	// the wrapped reader and closes it after the stream finished.
	Decoder struct {
		patch.UID
		format patch.Format
		reader io.Reader
		bytes  []byte
		done   bool
		err    error
	}

	// Sink renders a source to an mp3 file.
	Sink struct {
		patch.UID
		format patch.Format
		f      *os.File
		wr     *lame.LameWriter
		once   sync.Once
	}
)

// NewDecoder opens an mp3 stream as a source.
func NewDecoder(r io.Reader) (*Decoder, error) {
	d, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("decode mp3: %w", err)
	}
	return &Decoder{
		UID:    patch.NewUID(),
		format: patch.Format{Channels: 2, SampleRate: d.SampleRate()},
		reader: d,
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
	if cap(d.bytes) < len(buf)*2 {
		d.bytes = make([]byte, len(buf)*2)
	}
	b := d.bytes[:len(buf)*2]
	n, err := io.ReadFull(d.reader, b)
	samples := n / 2
	for i := 0; i < samples; i++ {
		v := int16(binary.LittleEndian.Uint16(b[i*2:]))
		buf[i] = float32(v) / (1 << 15)
	}
	if err != nil {
		d.done = true
		if err != io.EOF && err != io.ErrUnexpectedEOF {
			d.err = err
		}
		return patch.ReadResult{State: patch.Finished, N: samples}
	}
	return patch.ReadResult{State: patch.Good, N: samples}
}

// NewSink creates an mp3 sink writing to path. Bit rate is in kbps,
// quality is the lame preset within [0, 9], lower is better.
func NewSink(path string, format patch.Format, bitRate, quality int) (*Sink, error) {
	patch.MustSupport(format)
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	s := Sink{
		UID:    patch.NewUID(),
		format: format,
		f:      f,
		wr:     lame.NewWriter(f),
	}
	s.wr.Encoder.SetBitrate(bitRate)
	s.wr.Encoder.SetQuality(quality)
	s.wr.Encoder.SetNumChannels(format.Channels)
	s.wr.Encoder.SetInSamplerate(format.SampleRate)
	if format.Channels == 1 {
		s.wr.Encoder.SetMode(lame.MONO)
	} else {
		s.wr.Encoder.SetMode(lame.JOINT_STEREO)
	}
	s.wr.Encoder.SetVBR(lame.VBR_RH)
	s.wr.Encoder.InitParams()
	return &s, nil
}

// Render pulls the source until it finishes and encodes everything it
// produces. Buffer size is in frames. The source format must match the
// sink format. A sink renders once.
func (s *Sink) Render(src patch.Source, bufferSize int) error {
	if err := patch.SingleUse(&s.once); err != nil {
		return err
	}
	if f := src.Format(); f != s.format {
		panic(fmt.Sprintf("patch: source format %v does not match sink format %v", f, s.format))
	}
	buf := make([]float32, bufferSize*s.format.Channels)
	chunk := new(bytes.Buffer)
	for {
		res := src.Read(buf)
		if res.N > 0 {
			chunk.Reset()
			for _, v := range buf[:res.N] {
				if err := binary.Write(chunk, binary.LittleEndian, int16(v*0x7fff)); err != nil {
					s.f.Close()
					return err
				}
			}
			if _, err := s.wr.Write(chunk.Bytes()); err != nil {
				s.f.Close()
				return fmt.Errorf("encode mp3: %w", err)
			}
		}
		if res.State == patch.Finished {
			break
		}
	}
	if err := s.wr.Close(); err != nil {
		s.f.Close()
		return err
	}
	return s.f.Close()
}
