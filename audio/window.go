package audio

import (
	"context"
	"time"

	"github.com/ellsworth/tunescope/audio/util"
)

// Window is a fixed-duration run of samples ready for submission to the
// recognition service. Immutable once returned from the Windower.
type Window struct {
	Samples    []float32
	SampleRate int
}

// Duration returns the wall-clock span the window covers.
func (w Window) Duration() time.Duration {
	if w.SampleRate == 0 {
		return 0
	}
	return time.Duration(float64(len(w.Samples)) / float64(w.SampleRate) * float64(time.Second))
}

// Windower accumulates capture blocks into fixed-duration windows. The device
// may deliver arbitrarily short blocks; they are concatenated until the
// target duration is reached.
type Windower struct {
	frames     <-chan []float32
	ring       *util.RingBuffer
	size       int
	filled     int
	sampleRate int
}

// NewWindower returns a Windower that emits windows of the given duration.
func NewWindower(frames <-chan []float32, sampleRate int, dur time.Duration) *Windower {
	size := int(float64(sampleRate) * dur.Seconds())
	return &Windower{
		frames:     frames,
		ring:       util.NewRingBuffer(size),
		size:       size,
		sampleRate: sampleRate,
	}
}

// Next blocks until one full window has been buffered and returns it.
// Returns ErrSourceClosed if the capture source shut down, or ctx.Err on
// cancellation.
func (w *Windower) Next(ctx context.Context) (Window, error) {
	for w.filled < w.size {
		select {
		case <-ctx.Done():
			return Window{}, ctx.Err()
		case block, ok := <-w.frames:
			if !ok {
				return Window{}, ErrSourceClosed
			}
			for len(block) > 0 {
				n := len(block)
				if n > w.size {
					n = w.size
				}
				w.ring.Push(block[:n])
				block = block[n:]
				w.filled += n
			}
		}
	}

	w.filled = 0
	return Window{Samples: w.ring.Get(w.size), SampleRate: w.sampleRate}, nil
}
