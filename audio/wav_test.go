package audio

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestEncodeWAVHeader(t *testing.T) {
	win := Window{Samples: []float32{0, 0.5, -0.5, 1, -1}, SampleRate: 44100}
	bs, err := EncodeWAV(win)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(bs[0:4], []byte("RIFF")) || !bytes.Equal(bs[8:12], []byte("WAVE")) {
		t.Fatal("not a RIFF/WAVE file")
	}
	if rate := binary.LittleEndian.Uint32(bs[24:28]); rate != 44100 {
		t.Fatal("sample rate not encoded, got", rate)
	}
	if ch := binary.LittleEndian.Uint16(bs[22:24]); ch != 1 {
		t.Fatal("expected mono, got", ch)
	}
	if bits := binary.LittleEndian.Uint16(bs[34:36]); bits != 16 {
		t.Fatal("expected 16-bit, got", bits)
	}
}

func TestEncodeWAVClamps(t *testing.T) {
	win := Window{Samples: []float32{2.0, -2.0}, SampleRate: 8000}
	bs, err := EncodeWAV(win)
	if err != nil {
		t.Fatal(err)
	}

	// Last 4 bytes are the two samples; overdriven input must clamp instead
	// of wrapping.
	data := bs[len(bs)-4:]
	hi := int16(binary.LittleEndian.Uint16(data[0:2]))
	lo := int16(binary.LittleEndian.Uint16(data[2:4]))
	if hi != 32767 {
		t.Fatal("positive clip not clamped:", hi)
	}
	if lo != -32767 {
		t.Fatal("negative clip not clamped:", lo)
	}
}
