package wav

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/pipelined/patch"
)

type (
	// Decoder is a source playing a wav file. The whole file is decoded
	// and converted to float samples at construction, so reads are plain
	// copies and stay allocation-free.
	Decoder struct {
		patch.UID
		format patch.Format
		data   []float32
		pos    int
	}

	// Sink renders a source to a wav file.
	Sink struct {
		patch.UID
		path     string
		bitDepth int
		once     sync.Once
	}
)

// audio format tag for PCM wav files.
const audioFormatPCM = 1

// ErrInvalidFile is returned when the reader holds no valid wav stream.
var ErrInvalidFile = errors.New("wav file is not valid")

// ErrUnsupportedBitDepth is returned when a bit depth is not supported.
var ErrUnsupportedBitDepth = errors.New("unsupported bit depth")

// NewDecoder decodes a wav stream into a new source. Integer PCM depths of
// 8, 16, 24 and 32 bits are supported, mono and stereo only.
func NewDecoder(r io.ReadSeeker) (*Decoder, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return nil, ErrInvalidFile
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	format := patch.Format{
		Channels:   buf.Format.NumChannels,
		SampleRate: buf.Format.SampleRate,
	}
	if format.Channels != 1 && format.Channels != 2 {
		return nil, fmt.Errorf("unsupported channel count %v", format.Channels)
	}
	scale, ok := sampleScale(buf.SourceBitDepth)
	if !ok {
		return nil, ErrUnsupportedBitDepth
	}
	offset := 0
	if buf.SourceBitDepth == 8 {
		// 8-bit wav samples are unsigned
		offset = 128
	}
	data := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		data[i] = float32(v-offset) / scale
	}
	return &Decoder{
		UID:    patch.NewUID(),
		format: format,
		data:   data,
	}, nil
}

// DecodeFile decodes the wav file into a new source. The file is closed
// before returning.
func DecodeFile(path string) (*Decoder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return NewDecoder(f)
}

// Format returns the decoded format.
func (d *Decoder) Format() patch.Format {
	return d.format
}

// Duration returns the length of the decoded stream.
func (d *Decoder) Duration() time.Duration {
	return patch.DurationOf(d.format.SampleRate, int64(len(d.data)/d.format.Channels))
}

// Read copies decoded samples into the buffer. It returns Good while full
// buffers are served and Finished on the tail of the file.
func (d *Decoder) Read(buf []float32) patch.ReadResult {
	d.format.Frames(buf)
	if d.pos == len(d.data) {
		return patch.ReadResult{State: patch.Finished, N: 0}
	}
	n := copy(buf, d.data[d.pos:])
	d.pos += n
	if n == len(buf) {
		return patch.ReadResult{State: patch.Good, N: n}
	}
	return patch.ReadResult{State: patch.Finished, N: n}
}

// NewSink creates a wav sink writing to path. Only 16 and 32 bit depths
// are supported.
func NewSink(path string, bitDepth int) (*Sink, error) {
	if bitDepth != 16 && bitDepth != 32 {
		return nil, ErrUnsupportedBitDepth
	}
	return &Sink{
		UID:      patch.NewUID(),
		path:     path,
		bitDepth: bitDepth,
	}, nil
}

// Render pulls the source until it finishes and encodes everything it
// produces. Buffer size is in frames. A sink renders once.
func (s *Sink) Render(src patch.Source, bufferSize int) error {
	if err := patch.SingleUse(&s.once); err != nil {
		return err
	}
	format := src.Format()
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	e := wav.NewEncoder(f, format.SampleRate, s.bitDepth, format.Channels, audioFormatPCM)
	multiplier := float64(int(1)<<(s.bitDepth-1) - 1)
	buf := make([]float32, bufferSize*format.Channels)
	ib := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: format.Channels,
			SampleRate:  format.SampleRate,
		},
		SourceBitDepth: s.bitDepth,
		Data:           make([]int, 0, len(buf)),
	}
	for {
		res := src.Read(buf)
		if res.N > 0 {
			ib.Data = ib.Data[:0]
			for _, v := range buf[:res.N] {
				ib.Data = append(ib.Data, int(float64(v)*multiplier))
			}
			if err := e.Write(ib); err != nil {
				f.Close()
				return fmt.Errorf("encode wav: %w", err)
			}
		}
		if res.State == patch.Finished {
			break
		}
	}
	if err := e.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// sampleScale returns the divisor converting an integer sample of the
// depth into [-1, 1].
func sampleScale(bitDepth int) (float32, bool) {
	switch bitDepth {
	case 8:
		return 1 << 7, true
	case 16:
		return 1 << 15, true
	case 24:
		return 1 << 23, true
	case 32:
		return 1 << 31, true
	default:
		return 0, false
	}
}
