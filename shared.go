package patch

import "sync"

// Shared serializes access to a source that is consumed from more than one
// goroutine, typically a graph read by a hardware callback and reconfigured
// from the program's own goroutines. It implements Source itself, so any
// node can consume a shared source the same way it consumes a plain one.
//
// The lock covers the whole node for the duration of a call. Reads must not
// be reentrant: a source reached twice on one pull path would deadlock on
// its own lock, so a shared node may appear at multiple points of a graph
// but the graph itself must stay acyclic.
type Shared struct {
	m   sync.Mutex
	src Source
}

// Share wraps the source for concurrent use. Sharing an already shared
// source returns the same wrapper.
func Share(src Source) *Shared {
	if s, ok := src.(*Shared); ok {
		return s
	}
	return &Shared{src: src}
}

// Format returns the format of the wrapped source.
func (s *Shared) Format() Format {
	s.m.Lock()
	defer s.m.Unlock()
	return s.src.Format()
}

// Read locks the wrapped source for the duration of a single pull.
func (s *Shared) Read(buf []float32) ReadResult {
	s.m.Lock()
	defer s.m.Unlock()
	return s.src.Read(buf)
}

// With runs fn on the wrapped source while holding the lock. It is the way
// to reconfigure a node that some other goroutine is reading, like changing
// a filter cutoff or mixer membership during playback.
func (s *Shared) With(fn func(Source)) {
	s.m.Lock()
	defer s.m.Unlock()
	fn(s.src)
}
