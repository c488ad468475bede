package generator

import (
	"math"
	"math/rand"

	"github.com/pipelined/patch"
)

type (
	// Sine generates a sine wave. Phase carries over between reads, so the
	// wave is continuous across buffer boundaries.
	Sine struct {
		format    patch.Format
		frequency float64
		amplitude float64
		phase     float64
	}

	// Noise generates uniform white noise.
	Noise struct {
		format    patch.Format
		amplitude float64
		rand      *rand.Rand
	}
)

// NewSine returns a sine wave source. Frequency is in Hz, amplitude is the
// peak sample value.
func NewSine(format patch.Format, frequency, amplitude float64) *Sine {
	patch.MustSupport(format)
	return &Sine{
		format:    format,
		frequency: frequency,
		amplitude: amplitude,
	}
}

// Format returns the generated format.
func (g *Sine) Format() patch.Format {
	return g.format
}

// Read fills the whole buffer, each frame holds one wave value replicated
// across its channels. Generators never run dry.
func (g *Sine) Read(buf []float32) patch.ReadResult {
	frames := g.format.Frames(buf)
	channels := g.format.Channels
	inc := 2 * math.Pi * g.frequency / float64(g.format.SampleRate)
	for i := 0; i < frames; i++ {
		v := float32(g.amplitude * math.Sin(g.phase))
		for c := 0; c < channels; c++ {
			buf[i*channels+c] = v
		}
		g.phase += inc
	}
	g.phase = math.Mod(g.phase, 2*math.Pi)
	return patch.ReadResult{State: patch.Good, N: len(buf)}
}

// NewNoise returns a white noise source. Amplitude is the peak sample
// value.
func NewNoise(format patch.Format, amplitude float64) *Noise {
	patch.MustSupport(format)
	return &Noise{
		format:    format,
		amplitude: amplitude,
		rand:      rand.New(rand.NewSource(rand.Int63())),
	}
}

// Format returns the generated format.
func (g *Noise) Format() patch.Format {
	return g.format
}

// Read fills the whole buffer, each frame holds one noise value replicated
// across its channels.
func (g *Noise) Read(buf []float32) patch.ReadResult {
	frames := g.format.Frames(buf)
	channels := g.format.Channels
	for i := 0; i < frames; i++ {
		v := float32(g.amplitude * (2*g.rand.Float64() - 1))
		for c := 0; c < channels; c++ {
			buf[i*channels+c] = v
		}
	}
	return patch.ReadResult{State: patch.Good, N: len(buf)}
}
