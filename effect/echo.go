package effect

import (
	"math"
	"time"

	"github.com/pipelined/patch"
)

// Echo mixes a decaying copy of the stream back into itself after a fixed
// delay. The delay line keeps feeding back, so each period repeats the
// previous one scaled by the decay.
type Echo struct {
	src    patch.Source
	format patch.Format
	decay  float32
	ring   []float32
	pos    int
}

// NewEcho wraps the source with an echo. Delay sets the time before the
// first repetition, decay scales every repetition and usually stays within
// [0, 1]. A zero delay passes the stream through untouched.
func NewEcho(src patch.Source, delay time.Duration, decay float32) *Echo {
	format := src.Format()
	patch.MustSupport(format)
	frames := int(math.Ceil(delay.Seconds() * float64(format.SampleRate)))
	var ring []float32
	if frames > 0 {
		ring = make([]float32, frames*format.Channels)
	}
	return &Echo{
		src:    src,
		format: format,
		decay:  decay,
		ring:   ring,
	}
}

// Format returns the format adopted from the wrapped source.
func (e *Echo) Format() patch.Format {
	return e.format
}

// Read pulls from the wrapped source and folds the delay line into the
// received samples.
func (e *Echo) Read(buf []float32) patch.ReadResult {
	res := e.src.Read(buf)
	if len(e.ring) == 0 {
		return res
	}
	for i := 0; i < res.N; i++ {
		v := e.ring[e.pos]*e.decay + buf[i]
		e.ring[e.pos] = v
		buf[i] = v
		e.pos++
		if e.pos == len(e.ring) {
			e.pos = 0
		}
	}
	return res
}
