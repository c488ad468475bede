package portaudio

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/pipelined/patch"
)

const defaultFramesPerBuffer = 1024

type (
	// Output plays a graph on the default playback device. The device
	// callback pulls the configured source once per period and plays
	// silence while no source is set or past what a source produced.
	Output struct {
		patch.UID
		format patch.Format
		stream *portaudio.Stream
		log    patch.Logger

		m   sync.Mutex
		src *patch.Shared
	}

	// Input captures the default capture device. Captured periods are
	// buffered in a ring drained by the sources it hands out.
	Input struct {
		patch.UID
		format patch.Format
		stream *portaudio.Stream
		log    patch.Logger
		ring   *ring
	}

	// Option configures a device.
	Option func(*config)

	config struct {
		framesPerBuffer int
		log             patch.Logger
	}
)

// WithFramesPerBuffer sets the device period length in frames.
func WithFramesPerBuffer(frames int) Option {
	return func(c *config) {
		c.framesPerBuffer = frames
	}
}

// WithLogger sets the device logger. If this option is not provided,
// silent logger is used.
func WithLogger(l patch.Logger) Option {
	return func(c *config) {
		c.log = l
	}
}

func defaultConfig() config {
	return config{
		framesPerBuffer: defaultFramesPerBuffer,
		log:             silentLogger{},
	}
}

// NewOutput opens the default playback device for the format. The device
// plays silence until a source is set and a stream is started.
func NewOutput(format patch.Format, options ...Option) (*Output, error) {
	patch.MustSupport(format)
	c := defaultConfig()
	for _, option := range options {
		option(&c)
	}
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	o := &Output{
		UID:    patch.NewUID(),
		format: format,
		log:    c.log,
	}
	stream, err := portaudio.OpenDefaultStream(0, format.Channels, float64(format.SampleRate), c.framesPerBuffer, o.callback)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}
	o.stream = stream
	return o, nil
}

// SetSource points the device at the root of a graph. The source must be
// shared, it is read from a device goroutine. Its format must match the
// device format.
func (o *Output) SetSource(src *patch.Shared) {
	if f := src.Format(); f != o.format {
		panic(fmt.Sprintf("patch: source format %v does not match device format %v", f, o.format))
	}
	o.m.Lock()
	o.src = src
	o.m.Unlock()
}

// callback serves one device period, it is the only latency-sensitive path
// of a graph.
func (o *Output) callback(out []float32) {
	o.m.Lock()
	src := o.src
	o.m.Unlock()
	if src == nil {
		patch.Silence(out)
		return
	}
	res := src.Read(out)
	if res.State == patch.Underrun {
		o.log.Warn("output ", o.ID(), " underrun: got ", res.N, " of ", len(out), " samples")
	}
	patch.Silence(out[res.N:])
}

// Start starts playback.
func (o *Output) Start() error {
	o.log.Debug("output ", o.ID(), " start")
	return o.stream.Start()
}

// Stop pauses playback draining what the device already buffered. The
// graph stays intact and can be started again.
func (o *Output) Stop() error {
	o.log.Debug("output ", o.ID(), " stop")
	return o.stream.Stop()
}

// Close releases the device.
func (o *Output) Close() error {
	o.log.Debug("output ", o.ID(), " close")
	err := o.stream.Close()
	terr := portaudio.Terminate()
	if err != nil {
		return err
	}
	return terr
}

// NewInput opens the default capture device for the format.
func NewInput(format patch.Format, options ...Option) (*Input, error) {
	patch.MustSupport(format)
	c := defaultConfig()
	for _, option := range options {
		option(&c)
	}
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	in := &Input{
		UID:    patch.NewUID(),
		format: format,
		log:    c.log,
		ring:   &ring{},
	}
	stream, err := portaudio.OpenDefaultStream(format.Channels, 0, float64(format.SampleRate), c.framesPerBuffer, in.callback)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}
	in.stream = stream
	return in, nil
}

// Source returns the captured stream. It underruns when read faster than
// the device captures. All sources handed out by one input drain the same
// ring.
func (in *Input) Source() *patch.Shared {
	return patch.Share(&capture{format: in.format, ring: in.ring})
}

// callback stores one captured device period.
func (in *Input) callback(buf []float32) {
	in.ring.push(buf)
}

// Start starts capturing.
func (in *Input) Start() error {
	in.log.Debug("input ", in.ID(), " start")
	return in.stream.Start()
}

// Stop pauses capturing. Samples already in the ring stay readable.
func (in *Input) Stop() error {
	in.log.Debug("input ", in.ID(), " stop")
	return in.stream.Stop()
}

// Close releases the device.
func (in *Input) Close() error {
	in.log.Debug("input ", in.ID(), " close")
	err := in.stream.Close()
	terr := portaudio.Terminate()
	if err != nil {
		return err
	}
	return terr
}

// capture drains the input ring as a source.
type capture struct {
	format patch.Format
	ring   *ring
}

func (c *capture) Format() patch.Format {
	return c.format
}

func (c *capture) Read(buf []float32) patch.ReadResult {
	c.format.Frames(buf)
	n := c.ring.pop(buf)
	if n == len(buf) {
		return patch.ReadResult{State: patch.Good, N: n}
	}
	return patch.ReadResult{State: patch.Underrun, N: n}
}

// ring buffers captured samples between the device callback and graph
// reads. The lock is scoped to the copy itself, neither side holds it
// while doing anything else.
type ring struct {
	m       sync.Mutex
	samples []float32
	pos     int
}

func (r *ring) push(in []float32) {
	r.m.Lock()
	if r.pos > 0 {
		n := copy(r.samples, r.samples[r.pos:])
		r.samples = r.samples[:n]
		r.pos = 0
	}
	r.samples = append(r.samples, in...)
	r.m.Unlock()
}

func (r *ring) pop(out []float32) int {
	r.m.Lock()
	n := copy(out, r.samples[r.pos:])
	r.pos += n
	r.m.Unlock()
	return n
}

type silentLogger struct{}

func (silentLogger) Debug(args ...interface{}) {}

func (silentLogger) Info(args ...interface{}) {}

func (silentLogger) Warn(args ...interface{}) {}
