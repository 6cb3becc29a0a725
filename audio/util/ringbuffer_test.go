package util

import "testing"

func TestRingBuffer(t *testing.T) {
	rb := NewRingBuffer(10)
	rb.Push([]float32{1, 2, 3, 4, 5, 6})
	rb.Push([]float32{7, 8, 9, 10, 11, 12})

	g := rb.Get(10)
	exp := []float32{3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	for i := range g {
		if g[i] != exp[i] {
			t.Fatal(exp, g)
		}
	}

	g = rb.Get(4)
	exp = []float32{9, 10, 11, 12}
	for i := range g {
		if g[i] != exp[i] {
			t.Fatal(exp, g)
		}
	}
}

func TestRingBufferExactWrap(t *testing.T) {
	rb := NewRingBuffer(8)
	rb.Push([]float32{1, 2, 3, 4, 5, 6, 7, 8})
	rb.Push([]float32{9, 10})

	g := rb.Get(8)
	exp := []float32{3, 4, 5, 6, 7, 8, 9, 10}
	for i := range g {
		if g[i] != exp[i] {
			t.Fatal(exp, g)
		}
	}
}
