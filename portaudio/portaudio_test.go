// +build portaudio

package portaudio_test

import (
	"testing"
	"time"

	"github.com/pipelined/patch"
	"github.com/pipelined/patch/generator"
	"github.com/pipelined/patch/portaudio"
	"github.com/stretchr/testify/assert"
)

var format = patch.Format{Channels: 2, SampleRate: 44100}

func TestOutput(t *testing.T) {
	out, err := portaudio.NewOutput(format)
	assert.Nil(t, err)

	out.SetSource(patch.Share(generator.NewSine(format, 440, 0.2)))
	err = out.Start()
	assert.Nil(t, err)
	time.Sleep(500 * time.Millisecond)

	err = out.Stop()
	assert.Nil(t, err)
	err = out.Close()
	assert.Nil(t, err)
}

func TestOutputPlaysSilenceWithoutSource(t *testing.T) {
	out, err := portaudio.NewOutput(format)
	assert.Nil(t, err)

	err = out.Start()
	assert.Nil(t, err)
	time.Sleep(100 * time.Millisecond)

	err = out.Close()
	assert.Nil(t, err)
}

func TestInput(t *testing.T) {
	in, err := portaudio.NewInput(format, portaudio.WithFramesPerBuffer(512))
	assert.Nil(t, err)

	src := in.Source()
	assert.Equal(t, format, src.Format())

	err = in.Start()
	assert.Nil(t, err)
	time.Sleep(200 * time.Millisecond)

	// the device captured by now, a period-sized read must be served whole
	buf := make([]float32, 512*format.Channels)
	res := src.Read(buf)
	assert.Equal(t, patch.Good, res.State)
	assert.Equal(t, len(buf), res.N)

	err = in.Stop()
	assert.Nil(t, err)
	err = in.Close()
	assert.Nil(t, err)
}

func TestOutputPanicsOnFormatMismatch(t *testing.T) {
	out, err := portaudio.NewOutput(format)
	assert.Nil(t, err)
	defer out.Close()

	mono := patch.Format{Channels: 1, SampleRate: 44100}
	assert.Panics(t, func() {
		out.SetSource(patch.Share(generator.NewSine(mono, 440, 0.2)))
	})
}
