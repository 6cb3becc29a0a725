package recognize

import (
	"context"
	"fmt"
	"image"
	"sync"
	"testing"
	"time"

	"github.com/ellsworth/tunescope/audio"
	"github.com/ellsworth/tunescope/track"
)

// fakeWindows hands out empty windows immediately.
type fakeWindows struct{}

func (fakeWindows) Next(ctx context.Context) (audio.Window, error) {
	if err := ctx.Err(); err != nil {
		return audio.Window{}, err
	}
	return audio.Window{Samples: make([]float32, 8), SampleRate: 8}, nil
}

// scriptClient replays a fixed sequence of outcomes, then blocks until
// cancellation.
type scriptClient struct {
	mu      sync.Mutex
	outs    []func() (*Result, error)
	i       int
	done    chan struct{}
	doneOnc sync.Once
}

func newScriptClient(outs ...func() (*Result, error)) *scriptClient {
	return &scriptClient{outs: outs, done: make(chan struct{})}
}

func (c *scriptClient) Recognize(ctx context.Context, win audio.Window) (*Result, error) {
	c.mu.Lock()
	if c.i >= len(c.outs) {
		c.mu.Unlock()
		c.doneOnc.Do(func() { close(c.done) })
		<-ctx.Done()
		return nil, ctx.Err()
	}
	out := c.outs[c.i]
	c.i++
	c.mu.Unlock()
	return out()
}

func match(title, artist, artURL string) func() (*Result, error) {
	return func() (*Result, error) {
		return &Result{Title: title, Artist: artist, ArtURL: artURL}, nil
	}
}

func noMatch() func() (*Result, error) {
	return func() (*Result, error) { return nil, nil }
}

func svcErr() func() (*Result, error) {
	return func() (*Result, error) { return nil, fmt.Errorf("%w: timeout", ErrService) }
}

type fakeFetcher struct {
	img *image.RGBA
	err error
}

func (f fakeFetcher) Fetch(ctx context.Context, url string) (*image.RGBA, error) {
	return f.img, f.err
}

func runScript(t *testing.T, store *track.Store, client *scriptClient, art Fetcher) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := NewWorker(fakeWindows{}, client, art, store,
		WorkerConfig{Backoff: time.Millisecond, BackoffCap: 4 * time.Millisecond})
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	select {
	case <-client.done:
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not consume the script")
	}
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancellation")
	}
}

func TestWorkerRepeatMatchKeepsVersion(t *testing.T) {
	store := track.NewStore()
	client := newScriptClient(
		match("A", "X", ""),
		match("A", "X", ""),
		match("A", "X", ""),
		match("B", "Y", ""),
	)
	runScript(t, store, client, fakeFetcher{})

	snap := store.Read()
	if snap.Version != 2 {
		t.Fatal("expected exactly 2 track changes, version is", snap.Version)
	}
	if snap.Current.Info.Title != "B" || snap.Current.Info.Artist != "Y" {
		t.Fatal("wrong final track:", snap.Current.Info)
	}
}

func TestWorkerErrorsPreserveDisplayedTrack(t *testing.T) {
	store := track.NewStore()
	client := newScriptClient(
		match("A", "X", ""),
		svcErr(), svcErr(), svcErr(), svcErr(), svcErr(),
	)
	runScript(t, store, client, fakeFetcher{})

	snap := store.Read()
	if snap.Current == nil || snap.Current.Info.Title != "A" {
		t.Fatal("service errors cleared the displayed track")
	}
	if snap.Status != track.StatusError {
		t.Fatal("status should read error, got", snap.Status)
	}
	if snap.Version != 1 {
		t.Fatal("errors must not bump the version, got", snap.Version)
	}
}

func TestWorkerNoMatchPreservesDisplayedTrack(t *testing.T) {
	store := track.NewStore()
	client := newScriptClient(match("A", "X", ""), noMatch(), noMatch())
	runScript(t, store, client, fakeFetcher{})

	snap := store.Read()
	if snap.Current == nil || snap.Current.Info.Title != "A" {
		t.Fatal("no-match cleared the displayed track")
	}
	if snap.Status != track.StatusNoMatch {
		t.Fatal("status should read no-match, got", snap.Status)
	}
}

func TestWorkerPublishesPlaceholderThenArt(t *testing.T) {
	store := track.NewStore()
	cover := image.NewRGBA(image.Rect(0, 0, 8, 8))
	client := newScriptClient(match("A", "X", "http://example.com/a.jpg"))
	runScript(t, store, client, fakeFetcher{img: cover})

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if store.Read().Current.Art == cover {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	snap := store.Read()
	if snap.Current.Art != cover {
		t.Fatal("fetched art never attached")
	}
	if snap.Version != 1 {
		t.Fatal("art arrival must not bump the version")
	}
}

func TestWorkerKeepsPlaceholderOnFetchFailure(t *testing.T) {
	store := track.NewStore()
	client := newScriptClient(match("A", "X", "http://example.com/a.jpg"))
	runScript(t, store, client, fakeFetcher{err: fmt.Errorf("%w: HTTP 404", ErrFetch)})

	snap := store.Read()
	if snap.Current == nil || snap.Current.Art == nil {
		t.Fatal("placeholder art missing after fetch failure")
	}
	if snap.Status != track.StatusRecognized {
		t.Fatal("fetch failure must not change status")
	}
}

func TestWorkerBackoffGrowsAndCaps(t *testing.T) {
	w := NewWorker(fakeWindows{}, nil, nil, track.NewStore(),
		WorkerConfig{Backoff: 2 * time.Second, BackoffCap: 30 * time.Second})

	d := w.cfg.Backoff
	var seq []time.Duration
	for i := 0; i < 6; i++ {
		d = w.nextDelay(d)
		seq = append(seq, d)
	}
	want := []time.Duration{4, 8, 16, 30, 30, 30}
	for i, s := range want {
		if seq[i] != s*time.Second {
			t.Fatal("backoff schedule wrong:", seq)
		}
	}
}
