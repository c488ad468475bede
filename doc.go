/*
Package patch assembles pull-based audio processing graphs for real-time
playback.

Concept

A graph is built from sources: leaves produce samples, inner nodes wrap
other sources and transform what they read. There is no scheduler and no
pipeline state, the whole graph is driven by whoever reads the root. In a
typical program that reader is a sound card callback:

	decoder, err := wav.DecodeFile("track.wav")
	lowpass := effect.NewLowPass(decoder, 500)
	echo := effect.NewEcho(lowpass, 250*time.Millisecond, 0.5)

	out, err := portaudio.NewOutput(echo.Format())
	out.SetSource(patch.Share(echo))
	err = out.Start()

Reads are synchronous and allocation-free, so a pull of the root completes
within the latency budget of the device period that triggered it.

Contract

Every node implements Source. Read fills the front of the caller's buffer
and reports one of three states: Good for a full buffer, Underrun when data
ran dry, Finished when the stream ended for good. Running dry is a state,
not an error, there is nothing to retry and nobody to blame. Errors exist
only at construction time, where files are opened and devices acquired.
Misusing the contract itself, like mixing formats in one graph or passing
a buffer that is not a multiple of the channel count, is a programming
mistake and panics.

Sharing

A source consumed from more than one goroutine is wrapped with Share. The
wrapper locks the node for the duration of a call, which keeps a hardware
callback and the program's own goroutines from tearing one node's state.
Reconfiguration during playback goes through the same lock:

	shared := patch.Share(lowpass)
	out.SetSource(shared)
	shared.With(func(src patch.Source) {
		src.(*effect.LowPass).SetCutoff(2000)
	})

Packages

Subpackages provide the nodes: generator holds signal sources, effect holds
filters, echo and the mixer, wav, mp3 and vorbis decode files and render
graphs back to them, portaudio talks to playback and capture devices, mock
generates deterministic streams for tests.
*/
package patch
