package example

import (
	"time"

	"github.com/pipelined/patch"
	"github.com/pipelined/patch/effect"
	"github.com/pipelined/patch/generator"
	"github.com/pipelined/patch/log"
	"github.com/pipelined/patch/portaudio"
	"github.com/pipelined/patch/wav"
)

// Example 2:
//		Save a generated wave into a .wav file
//		Play the file with portaudio
//		Sweep the filter cutoff while playing
func two() {
	format := patch.Format{Channels: 2, SampleRate: 44100}

	path := outPath("patch-example2.wav")
	sink, err := wav.NewSink(path, 16)
	check(err)
	err = sink.Render(clipped(generator.NewNoise(format, 0.3), 2*time.Second), 512)
	check(err)

	decoder, err := wav.DecodeFile(path)
	check(err)
	filter := patch.Share(effect.NewLowPass(decoder, 8000))

	out, err := portaudio.NewOutput(format, portaudio.WithLogger(log.GetLogger()))
	check(err)
	defer out.Close()

	out.SetSource(filter)
	check(out.Start())

	for cutoff := 4000.0; cutoff > 400; cutoff /= 2 {
		time.Sleep(400 * time.Millisecond)
		filter.With(func(src patch.Source) {
			src.(*effect.LowPass).SetCutoff(cutoff)
		})
	}
	check(out.Stop())
}
