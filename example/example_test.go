package example

import (
	"testing"

	"github.com/pipelined/patch/mock"
)

func TestOne(t *testing.T) {
	one()
}

func TestTwo(t *testing.T) {
	if mock.SkipPortaudio {
		t.Skip("Skip example.TestTwo")
	}
	two()
}

func TestThree(t *testing.T) {
	if mock.SkipPortaudio {
		t.Skip("Skip example.TestThree")
	}
	three()
}
