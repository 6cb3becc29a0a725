package util

import (
	"sync"
)

// RingBuffer implements a circular buffer over raw float32 samples as they
// arrive from the capture device.
type RingBuffer struct {
	sync.RWMutex
	buf   []float32
	index int
}

// NewRingBuffer creates a new ring buffer with the given size.
func NewRingBuffer(size int) *RingBuffer {
	return &RingBuffer{buf: make([]float32, size)}
}

// Size returns the capacity of the buffer.
func (r *RingBuffer) Size() int {
	return len(r.buf)
}

// Push data onto the ring buffer.
func (r *RingBuffer) Push(data []float32) {
	if len(data) > len(r.buf) {
		panic("cant push data longer than size of buffer")
	}

	r.Lock()
	defer r.Unlock()

	wrap := false
	en := r.index + len(data)
	if en > len(r.buf) {
		en = len(r.buf)
		wrap = true
	}
	copy(r.buf[r.index:en], data)
	if wrap {
		copy(r.buf, data[en-r.index:])
	}

	r.index = (r.index + len(data)) % len(r.buf)
}

// Get the most recent N data points from the buffer. The returned slice is a
// fresh copy and safe to hold onto.
func (r *RingBuffer) Get(size int) []float32 {
	if size > len(r.buf) {
		panic("cant get size greater than size of buffer")
	}

	r.RLock()
	defer r.RUnlock()

	ret := make([]float32, size)

	st := r.index - size
	if st < 0 {
		st += len(r.buf)
		n := copy(ret, r.buf[st:])
		copy(ret[n:], r.buf[:r.index])
	} else {
		copy(ret, r.buf[st:r.index])
	}

	return ret
}
