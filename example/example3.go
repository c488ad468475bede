package example

import (
	"time"

	"github.com/pipelined/patch"
	"github.com/pipelined/patch/effect"
	"github.com/pipelined/patch/log"
	"github.com/pipelined/patch/portaudio"
)

// Example 3:
//		Capture the default input device
//		Echo the captured stream
//		Play it on the default output device
func three() {
	format := patch.Format{Channels: 2, SampleRate: 44100}

	logger := log.GetLogger()
	in, err := portaudio.NewInput(format, portaudio.WithFramesPerBuffer(512), portaudio.WithLogger(logger))
	check(err)
	defer in.Close()

	out, err := portaudio.NewOutput(format, portaudio.WithFramesPerBuffer(512), portaudio.WithLogger(logger))
	check(err)
	defer out.Close()

	echo := effect.NewEcho(in.Source(), 300*time.Millisecond, 0.35)
	out.SetSource(patch.Share(echo))

	check(in.Start())
	check(out.Start())
	time.Sleep(3 * time.Second)
	check(out.Stop())
	check(in.Stop())
}
