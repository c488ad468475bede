package example

import (
	"time"

	"github.com/pipelined/patch"
	"github.com/pipelined/patch/effect"
	"github.com/pipelined/patch/generator"
	"github.com/pipelined/patch/wav"
)

// Example 1:
//		Mix two generated waves
//		Filter and echo the mix
//		Save the result into a .wav file
func one() {
	format := patch.Format{Channels: 2, SampleRate: 44100}

	mixer := effect.NewMixer(format, effect.WithGain(0.5))
	mixer.Add(generator.NewSine(format, 261.63, 0.6))
	mixer.Add(generator.NewSine(format, 329.63, 0.6))

	lowPass := effect.NewLowPass(mixer, 3000)
	echo := effect.NewEcho(lowPass, 250*time.Millisecond, 0.4)

	sink, err := wav.NewSink(outPath("patch-example1.wav"), 16)
	check(err)
	err = sink.Render(clipped(echo, 2*time.Second), 512)
	check(err)
}
