package effect

import (
	"math"

	"github.com/pipelined/patch"
)

type (
	// LowPass is a single-pole filter that attenuates frequencies above
	// the cutoff. Filter state carries over between reads, so the stream
	// stays continuous across buffer boundaries.
	LowPass struct {
		src    patch.Source
		format patch.Format
		rc     float64
		prev   [2]float32
	}

	// HighPass is a single-pole filter that attenuates frequencies below
	// the cutoff.
	HighPass struct {
		src     patch.Source
		format  patch.Format
		rc      float64
		prevIn  [2]float32
		prevOut [2]float32
	}
)

// NewLowPass wraps the source with a low-pass filter. Cutoff is in Hz.
func NewLowPass(src patch.Source, cutoff float64) *LowPass {
	format := src.Format()
	patch.MustSupport(format)
	return &LowPass{
		src:    src,
		format: format,
		rc:     timeConstant(cutoff),
	}
}

// Format returns the format adopted from the wrapped source.
func (f *LowPass) Format() patch.Format {
	return f.format
}

// SetCutoff changes the cutoff frequency. When the filter is shared, call
// it through the wrapper's With.
func (f *LowPass) SetCutoff(cutoff float64) {
	f.rc = timeConstant(cutoff)
}

// Cutoff returns the cutoff frequency in Hz.
func (f *LowPass) Cutoff() float64 {
	return 1 / (2 * math.Pi * f.rc)
}

// Read pulls from the wrapped source and smooths the received samples in
// place. An empty read is returned untouched.
func (f *LowPass) Read(buf []float32) patch.ReadResult {
	res := f.src.Read(buf)
	if res.N == 0 {
		return res
	}
	dt := 1 / float64(f.format.SampleRate)
	a := float32(dt / (f.rc + dt))
	channels := f.format.Channels
	for c := 0; c < channels; c++ {
		prev := f.prev[c]
		for i := c; i < res.N; i += channels {
			prev += a * (buf[i] - prev)
			buf[i] = prev
		}
		f.prev[c] = prev
	}
	return res
}

// NewHighPass wraps the source with a high-pass filter. Cutoff is in Hz.
func NewHighPass(src patch.Source, cutoff float64) *HighPass {
	format := src.Format()
	patch.MustSupport(format)
	return &HighPass{
		src:    src,
		format: format,
		rc:     timeConstant(cutoff),
	}
}

// Format returns the format adopted from the wrapped source.
func (f *HighPass) Format() patch.Format {
	return f.format
}

// SetCutoff changes the cutoff frequency. When the filter is shared, call
// it through the wrapper's With.
func (f *HighPass) SetCutoff(cutoff float64) {
	f.rc = timeConstant(cutoff)
}

// Cutoff returns the cutoff frequency in Hz.
func (f *HighPass) Cutoff() float64 {
	return 1 / (2 * math.Pi * f.rc)
}

// Read pulls from the wrapped source and filters the received samples in
// place. An empty read is returned untouched.
func (f *HighPass) Read(buf []float32) patch.ReadResult {
	res := f.src.Read(buf)
	if res.N == 0 {
		return res
	}
	dt := 1 / float64(f.format.SampleRate)
	a := float32(f.rc / (f.rc + dt))
	channels := f.format.Channels
	for c := 0; c < channels; c++ {
		in := f.prevIn[c]
		out := f.prevOut[c]
		for i := c; i < res.N; i += channels {
			cur := buf[i]
			out = a * (out + cur - in)
			in = cur
			buf[i] = out
		}
		f.prevIn[c] = in
		f.prevOut[c] = out
	}
	return res
}

// timeConstant converts a cutoff frequency to the filter RC constant.
func timeConstant(cutoff float64) float64 {
	return 1 / (2 * math.Pi * cutoff)
}
