package audio

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWindowerAccumulatesShortBlocks(t *testing.T) {
	frames := make(chan []float32, 8)
	w := NewWindower(frames, 8, time.Second) // 8-sample window

	frames <- []float32{1, 2, 3}
	frames <- []float32{4, 5}
	frames <- []float32{6, 7, 8}

	win, err := w.Next(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(win.Samples) != 8 {
		t.Fatal("window should hold 8 samples, got", len(win.Samples))
	}
	for i, s := range win.Samples {
		if s != float32(i+1) {
			t.Fatal("samples out of order:", win.Samples)
		}
	}
	if win.Duration() != time.Second {
		t.Fatal("unexpected duration:", win.Duration())
	}
}

func TestWindowerConsecutiveWindows(t *testing.T) {
	frames := make(chan []float32, 8)
	w := NewWindower(frames, 4, time.Second)

	frames <- []float32{1, 2, 3, 4}
	frames <- []float32{5, 6, 7, 8}

	first, err := w.Next(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	second, err := w.Next(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if first.Samples[0] != 1 || second.Samples[0] != 5 {
		t.Fatal("windows overlap:", first.Samples, second.Samples)
	}
}

func TestWindowerSourceClosed(t *testing.T) {
	frames := make(chan []float32)
	close(frames)
	w := NewWindower(frames, 8, time.Second)

	_, err := w.Next(context.Background())
	if !errors.Is(err, ErrSourceClosed) {
		t.Fatal("expected ErrSourceClosed, got", err)
	}
}

func TestWindowerCancel(t *testing.T) {
	frames := make(chan []float32)
	w := NewWindower(frames, 8, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := w.Next(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatal("expected context.Canceled, got", err)
	}
}
