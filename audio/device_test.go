package audio

import (
	"os"
	"testing"

	"github.com/gordonklaus/portaudio"
)

func TestMain(m *testing.M) {
	portaudio.Initialize()
	defer portaudio.Terminate()

	os.Exit(m.Run())
}

func TestDevices(t *testing.T) {
	out, err := Devices()
	if err != nil {
		t.Fatal(err)
	}
	t.Log(out)
}
