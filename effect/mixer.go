package effect

import (
	"fmt"

	"github.com/pipelined/patch"
)

type (
	// Mixer sums same-format sources into one stream. An empty mixer
	// produces silence, so a graph stays playable while tracks come and
	// go. The mixer itself never finishes: sources are removed with the
	// key returned by Add, not by their stream state.
	Mixer struct {
		format  patch.Format
		gain    float32
		hasGain bool
		lastKey MixerKey
		entries []mixerEntry
		index   map[MixerKey]int
		scratch []float32
	}

	// MixerKey identifies a source added to a mixer. Keys are never
	// reused, the zero key matches nothing.
	MixerKey uint64

	// MixerOption configures a mixer.
	MixerOption func(*Mixer)

	mixerEntry struct {
		key MixerKey
		src patch.Source
	}
)

// WithGain sets a gain applied to the mixed stream, e.g. 1/n when n equally
// loud sources are expected.
func WithGain(gain float32) MixerOption {
	return func(m *Mixer) {
		m.gain = gain
		m.hasGain = true
	}
}

// NewMixer creates a mixer producing the given format.
func NewMixer(format patch.Format, options ...MixerOption) *Mixer {
	patch.MustSupport(format)
	m := &Mixer{
		format: format,
		index:  make(map[MixerKey]int),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Format returns the mixer output format.
func (m *Mixer) Format() patch.Format {
	return m.format
}

// Len returns the count of currently mixed sources.
func (m *Mixer) Len() int {
	return len(m.entries)
}

// Add registers a source and returns the key to remove it with. The source
// format must match the mixer format. When the mixer is shared, call it
// through the wrapper's With.
func (m *Mixer) Add(src patch.Source) MixerKey {
	if f := src.Format(); f != m.format {
		panic(fmt.Sprintf("patch: source format %v does not match mixer format %v", f, m.format))
	}
	m.lastKey++
	key := m.lastKey
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, mixerEntry{key: key, src: src})
	return key
}

// Remove drops the source added under the key. Removing a key twice or a
// key that was never issued is a no-op.
func (m *Mixer) Remove(key MixerKey) {
	i, ok := m.index[key]
	if !ok {
		return
	}
	delete(m.index, key)
	last := len(m.entries) - 1
	if i != last {
		m.entries[i] = m.entries[last]
		m.index[m.entries[i].key] = i
	}
	m.entries[last] = mixerEntry{}
	m.entries = m.entries[:last]
}

// Read sums all sources into the buffer. The sample count is the largest
// count any single source produced, sources that came up short contribute
// silence to the tail. The state is Good for a full buffer and Underrun
// otherwise, a mixer never reports Finished.
func (m *Mixer) Read(buf []float32) patch.ReadResult {
	m.format.Frames(buf)
	if len(m.entries) == 0 {
		patch.Silence(buf)
		return patch.ReadResult{State: patch.Good, N: len(buf)}
	}
	res := m.entries[0].src.Read(buf)
	written := res.N
	patch.Silence(buf[written:])
	if len(m.entries) > 1 {
		if cap(m.scratch) < len(buf) {
			m.scratch = make([]float32, len(buf))
		}
		scratch := m.scratch[:len(buf)]
		for _, e := range m.entries[1:] {
			r := e.src.Read(scratch)
			for i, v := range scratch[:r.N] {
				buf[i] += v
			}
			if r.N > written {
				written = r.N
			}
		}
	}
	if m.hasGain {
		for i := range buf {
			buf[i] *= m.gain
		}
	}
	if written == len(buf) {
		return patch.ReadResult{State: patch.Good, N: written}
	}
	return patch.ReadResult{State: patch.Underrun, N: written}
}
