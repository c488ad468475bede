package patch

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/xid"
)

// Format describes a stream of interleaved float32 samples. Two formats
// describe the same stream layout when both fields are equal.
type Format struct {
	Channels   int
	SampleRate int
}

// MustSupport panics when the format cannot flow through graph nodes.
// Only mono and stereo streams with a positive sample rate are supported.
func MustSupport(f Format) {
	if f.Channels != 1 && f.Channels != 2 {
		panic(fmt.Sprintf("patch: unsupported channel count %v", f.Channels))
	}
	if f.SampleRate <= 0 {
		panic(fmt.Sprintf("patch: unsupported sample rate %v", f.SampleRate))
	}
}

// Frames returns the number of frames in the buffer. It panics when the
// buffer length is not a multiple of the channel count.
func (f Format) Frames(buf []float32) int {
	if len(buf)%f.Channels != 0 {
		panic(fmt.Sprintf("patch: buffer length %v is not a multiple of %v channels", len(buf), f.Channels))
	}
	return len(buf) / f.Channels
}

func (f Format) String() string {
	return fmt.Sprintf("%vch %vHz", f.Channels, f.SampleRate)
}

// StreamState describes what a read produced.
type StreamState int

const (
	// Good means the buffer was filled completely.
	Good StreamState = iota
	// Underrun means the source ran out of data for now.
	Underrun
	// Finished means the stream ended and will never produce data again.
	Finished
)

func (s StreamState) String() string {
	switch s {
	case Good:
		return "good"
	case Underrun:
		return "underrun"
	case Finished:
		return "finished"
	}
	return "unknown"
}

// ReadResult reports the outcome of a single read. N is the count of valid
// samples placed at the front of the buffer. For Good reads N always equals
// the buffer length.
type ReadResult struct {
	State StreamState
	N     int
}

// Source is a node of a processing graph: a stream of interleaved samples
// consumed in caller-sized chunks. Read fills the front of the buffer and
// reports how much of it is valid:
//
//	Good - the buffer was filled completely;
//	Underrun - the source ran out of data, more may arrive later;
//	Finished - the stream ended for good.
//
// The buffer length must be a multiple of the format's channel count.
// Samples past the reported count are left as is, the caller silences them
// if it needs a full buffer. A source never blocks waiting for data and
// never returns errors: running dry is a stream state, not a failure.
// Contract violations, like a misaligned buffer or a format mismatch
// between nodes, cause a panic.
type Source interface {
	Format() Format
	Read(buf []float32) ReadResult
}

// Silence fills the buffer with zero samples.
func Silence(buf []float32) {
	for i := range buf {
		buf[i] = 0
	}
}

// DurationOf returns time duration of frames at the given sample rate.
func DurationOf(sampleRate int, frames int64) time.Duration {
	return time.Duration(float64(frames) / float64(sampleRate) * float64(time.Second))
}

// Logger is a global interface for patch loggers.
type Logger interface {
	Debug(...interface{})
	Info(...interface{})
	Warn(...interface{})
}

// UID is a unique component identifier.
type UID struct {
	value string
}

// NewUID returns a new unique identifier.
func NewUID() UID {
	return UID{value: xid.New().String()}
}

// ID returns the unique identifier value.
func (id UID) ID() string {
	return id.value
}

// ErrSingleUseReused is returned when a single-use component is used twice.
var ErrSingleUseReused = errors.New("single-use component reused")

// SingleUse guards a component that cannot be used more than once.
func SingleUse(once *sync.Once) error {
	err := ErrSingleUseReused
	once.Do(func() {
		err = nil
	})
	return err
}
