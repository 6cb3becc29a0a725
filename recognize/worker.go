package recognize

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/golang/glog"

	"github.com/ellsworth/tunescope/audio"
	"github.com/ellsworth/tunescope/track"
)

const placeholderSize = 512

// WindowSource yields capture windows. Implemented by *audio.Windower.
type WindowSource interface {
	Next(ctx context.Context) (audio.Window, error)
}

// WorkerConfig tunes the recognition loop.
type WorkerConfig struct {
	// Backoff is the first retry delay after a service error.
	Backoff time.Duration
	// BackoffCap bounds the exponential growth.
	BackoffCap time.Duration
}

// DefaultWorkerConfig is the standard backoff schedule.
var DefaultWorkerConfig = WorkerConfig{
	Backoff:    2 * time.Second,
	BackoffCap: 30 * time.Second,
}

// Worker runs the capture → recognize → publish cycle on its own cadence,
// measured in seconds, completely decoupled from the render loop. All
// recoverable failures stay inside the loop; only ctx cancellation stops it.
type Worker struct {
	windows WindowSource
	client  Client
	art     Fetcher
	store   *track.Store
	cfg     WorkerConfig
}

// NewWorker wires the loop together.
func NewWorker(windows WindowSource, client Client, art Fetcher, store *track.Store, cfg WorkerConfig) *Worker {
	if cfg.Backoff <= 0 {
		cfg.Backoff = DefaultWorkerConfig.Backoff
	}
	if cfg.BackoffCap <= 0 {
		cfg.BackoffCap = DefaultWorkerConfig.BackoffCap
	}
	return &Worker{windows: windows, client: client, art: art, store: store, cfg: cfg}
}

// Run loops until ctx is cancelled. In-flight requests carry ctx, so
// cancellation aborts them rather than leaving them dangling past shutdown.
func (w *Worker) Run(ctx context.Context) {
	delay := w.cfg.Backoff
	for {
		win, err := w.windows.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("[ERROR] capture: %v", err)
			w.store.PublishStatus(track.StatusError, err.Error())
			if !w.sleep(ctx, delay) {
				return
			}
			delay = w.nextDelay(delay)
			continue
		}

		res, err := w.client.Recognize(ctx, win)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return
			}
			log.Printf("[ERROR] recognition: %v", err)
			w.store.PublishStatus(track.StatusError, err.Error())
			if !w.sleep(ctx, delay) {
				return
			}
			delay = w.nextDelay(delay)

		case res == nil:
			if glog.V(1) {
				glog.Info("no match this cycle")
			}
			w.store.PublishStatus(track.StatusNoMatch, "")
			delay = w.cfg.Backoff

		default:
			delay = w.cfg.Backoff
			w.publish(ctx, res)
		}
	}
}

func (w *Worker) publish(ctx context.Context, res *Result) {
	info := track.Info{
		Title:        res.Title,
		Artist:       res.Artist,
		ArtURL:       res.ArtURL,
		RecognizedAt: time.Now(),
	}

	cur := w.store.Read()
	if cur.Current != nil && cur.Current.Info.Same(info) {
		// Same track again: refresh status only, keep art and version.
		w.store.PublishTrack(info, nil)
		return
	}

	log.Printf("[INFO] recognized %q by %q", info.Title, info.Artist)
	w.store.PublishTrack(info, Placeholder(info, placeholderSize))

	// The cover fetch must not stall the recognition cadence.
	if info.ArtURL != "" {
		go w.fetchArt(ctx, info)
	}
}

func (w *Worker) fetchArt(ctx context.Context, info track.Info) {
	img, err := w.art.Fetch(ctx, info.ArtURL)
	if err != nil {
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return
		}
		log.Printf("[WARNING] keeping placeholder art: %v", err)
		return
	}
	w.store.PublishArt(info, img)
}

func (w *Worker) nextDelay(d time.Duration) time.Duration {
	if d *= 2; d > w.cfg.BackoffCap {
		d = w.cfg.BackoffCap
	}
	return d
}

// sleep waits for d or cancellation; returns false when cancelled.
func (w *Worker) sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
