package mock

import (
	"os"

	"github.com/pipelined/patch"
)

// SkipPortaudio reports whether tests that open sound devices should be
// skipped. Set PATCH_DEVICE_TESTS to run them.
var SkipPortaudio = os.Getenv("PATCH_DEVICE_TESTS") == ""

// Source generates deterministic samples for tests. It produces a fixed
// number of frames of a waveform and then finishes, optionally serving
// them in chunks to force underruns.
type Source struct {
	format patch.Format
	wave   func(frame, channel int) float32
	total  int
	chunk  int
	pos    int
}

// NewSource returns a source producing total frames of the waveform. A
// negative total makes the source endless. Chunk caps the frames served by
// a single read, zero means no cap.
func NewSource(format patch.Format, total, chunk int, wave func(frame, channel int) float32) *Source {
	patch.MustSupport(format)
	return &Source{
		format: format,
		wave:   wave,
		total:  total,
		chunk:  chunk,
	}
}

// Constant returns a source producing total frames of one value on all
// channels.
func Constant(format patch.Format, total int, value float32) *Source {
	return NewSource(format, total, 0, func(int, int) float32 {
		return value
	})
}

// Format returns the generated format.
func (s *Source) Format() patch.Format {
	return s.format
}

// Pos returns the count of frames produced so far.
func (s *Source) Pos() int {
	return s.pos
}

// Read fills the buffer with the waveform. It returns Good when the whole
// buffer was served, Finished when the frame budget ran out and Underrun
// when the chunk cap cut the read short.
func (s *Source) Read(buf []float32) patch.ReadResult {
	frames := s.format.Frames(buf)
	want := frames
	if s.total >= 0 {
		if remaining := s.total - s.pos; remaining < want {
			want = remaining
		}
	}
	if s.chunk > 0 && want > s.chunk {
		want = s.chunk
	}
	channels := s.format.Channels
	for i := 0; i < want; i++ {
		for c := 0; c < channels; c++ {
			buf[i*channels+c] = s.wave(s.pos+i, c)
		}
	}
	s.pos += want
	n := want * channels
	switch {
	case want == frames:
		return patch.ReadResult{State: patch.Good, N: n}
	case s.total >= 0 && s.pos == s.total:
		return patch.ReadResult{State: patch.Finished, N: n}
	default:
		return patch.ReadResult{State: patch.Underrun, N: n}
	}
}
