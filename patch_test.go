package patch_test

import (
	"sync"
	"testing"
	"time"

	"github.com/pipelined/patch"
	"github.com/stretchr/testify/assert"
)

func TestFrames(t *testing.T) {
	var tests = []struct {
		format patch.Format
		buffer int
		frames int
	}{
		{
			format: patch.Format{Channels: 1, SampleRate: 44100},
			buffer: 512,
			frames: 512,
		},
		{
			format: patch.Format{Channels: 2, SampleRate: 44100},
			buffer: 512,
			frames: 256,
		},
		{
			format: patch.Format{Channels: 2, SampleRate: 44100},
			buffer: 0,
			frames: 0,
		},
	}
	for _, test := range tests {
		assert.Equal(t, test.frames, test.format.Frames(make([]float32, test.buffer)))
	}

	assert.Panics(t, func() {
		patch.Format{Channels: 2, SampleRate: 44100}.Frames(make([]float32, 7))
	})
}

func TestMustSupport(t *testing.T) {
	assert.NotPanics(t, func() {
		patch.MustSupport(patch.Format{Channels: 1, SampleRate: 8000})
		patch.MustSupport(patch.Format{Channels: 2, SampleRate: 44100})
	})
	assert.Panics(t, func() {
		patch.MustSupport(patch.Format{Channels: 0, SampleRate: 44100})
	})
	assert.Panics(t, func() {
		patch.MustSupport(patch.Format{Channels: 3, SampleRate: 44100})
	})
	assert.Panics(t, func() {
		patch.MustSupport(patch.Format{Channels: 2, SampleRate: 0})
	})
}

func TestFormatString(t *testing.T) {
	assert.Equal(t, "2ch 44100Hz", patch.Format{Channels: 2, SampleRate: 44100}.String())
}

func TestStreamStateString(t *testing.T) {
	var tests = []struct {
		state    patch.StreamState
		expected string
	}{
		{state: patch.Good, expected: "good"},
		{state: patch.Underrun, expected: "underrun"},
		{state: patch.Finished, expected: "finished"},
		{state: patch.StreamState(42), expected: "unknown"},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, test.state.String())
	}
}

func TestSilence(t *testing.T) {
	buf := make([]float32, 16)
	for i := range buf {
		buf[i] = 1
	}
	patch.Silence(buf)
	for i := range buf {
		assert.Zero(t, buf[i])
	}
}

func TestDuration(t *testing.T) {
	var tests = []struct {
		sampleRate int
		frames     int64
		expected   time.Duration
	}{
		{
			sampleRate: 44100,
			frames:     44100,
			expected:   1 * time.Second,
		},
		{
			sampleRate: 44100,
			frames:     22050,
			expected:   500 * time.Millisecond,
		},
		{
			sampleRate: 44100,
			frames:     50,
			expected:   1133786 * time.Nanosecond,
		},
	}
	for _, c := range tests {
		assert.Equal(t, c.expected, patch.DurationOf(c.sampleRate, c.frames))
	}
}

func TestSingleUse(t *testing.T) {
	var once sync.Once
	err := patch.SingleUse(&once)
	assert.Nil(t, err)
	err = patch.SingleUse(&once)
	assert.Equal(t, patch.ErrSingleUseReused, err)
}

func TestUID(t *testing.T) {
	id1 := patch.NewUID()
	id2 := patch.NewUID()
	assert.NotEmpty(t, id1.ID())
	assert.NotEqual(t, id1.ID(), id2.ID())
}
