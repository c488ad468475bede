package example

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pipelined/patch"
)

func check(err error) {
	if err != nil {
		panic(err)
	}
}

func outPath(name string) string {
	return filepath.Join(os.TempDir(), name)
}

// clip serves a fixed duration of a source and then finishes. Generators
// never finish on their own, offline renders end them with a clip.
type clip struct {
	src    patch.Source
	frames int
	pos    int
}

func clipped(src patch.Source, d time.Duration) *clip {
	format := src.Format()
	return &clip{
		src:    src,
		frames: int(d.Seconds() * float64(format.SampleRate)),
	}
}

func (c *clip) Format() patch.Format {
	return c.src.Format()
}

func (c *clip) Read(buf []float32) patch.ReadResult {
	format := c.src.Format()
	want := format.Frames(buf)
	if remaining := c.frames - c.pos; remaining < want {
		want = remaining
	}
	if want == 0 {
		return patch.ReadResult{State: patch.Finished, N: 0}
	}
	res := c.src.Read(buf[:want*format.Channels])
	c.pos += res.N / format.Channels
	if res.State != patch.Finished && c.pos == c.frames {
		res.State = patch.Finished
	}
	return res
}
