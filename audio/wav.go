package audio

import (
	"fmt"
	"io"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// EncodeWAV encodes a window as a mono 16-bit PCM WAV file, the format the
// recognition service accepts.
func EncodeWAV(win Window) ([]byte, error) {
	ws := &memWriteSeeker{}
	enc := wav.NewEncoder(ws, win.SampleRate, 16, 1, 1)

	buf := &gaudio.IntBuffer{
		Format:         &gaudio.Format{NumChannels: 1, SampleRate: win.SampleRate},
		Data:           make([]int, len(win.Samples)),
		SourceBitDepth: 16,
	}
	for i, s := range win.Samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		buf.Data[i] = int(s * 32767)
	}

	if err := enc.Write(buf); err != nil {
		return nil, fmt.Errorf("wav encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("wav finalize: %w", err)
	}
	return ws.buf, nil
}

// memWriteSeeker is the minimal in-memory io.WriteSeeker the wav encoder
// needs to backpatch chunk sizes in the header.
type memWriteSeeker struct {
	buf []byte
	pos int
}

func (m *memWriteSeeker) Write(p []byte) (int, error) {
	if need := m.pos + len(p); need > len(m.buf) {
		grown := make([]byte, need)
		copy(grown, m.buf)
		m.buf = grown
	}
	copy(m.buf[m.pos:], p)
	m.pos += len(p)
	return len(p), nil
}

func (m *memWriteSeeker) Seek(offset int64, whence int) (int64, error) {
	var next int
	switch whence {
	case io.SeekStart:
		next = int(offset)
	case io.SeekCurrent:
		next = m.pos + int(offset)
	case io.SeekEnd:
		next = len(m.buf) + int(offset)
	default:
		return 0, fmt.Errorf("wav encode: bad seek whence %d", whence)
	}
	if next < 0 {
		return 0, fmt.Errorf("wav encode: seek before start")
	}
	m.pos = next
	return int64(next), nil
}
