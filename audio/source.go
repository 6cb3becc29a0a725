package audio

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/golang/glog"
	"github.com/gordonklaus/portaudio"
)

const (
	reopenBackoffStart = 2 * time.Second
	reopenBackoffCap   = 30 * time.Second
)

// Config represents a config that is used to open a new Source.
type Config struct {
	// BlockSize is the number of samples delivered per frame.
	BlockSize int
	// Channels is the number of input channels.
	Channels int
	// SampleRate is the sample rate (Fs).
	SampleRate float64
}

// Source streams fixed-size sample blocks from the default portaudio input
// device. The initial open is synchronous so a missing device surfaces as an
// error at startup; read failures after that are retried with backoff.
type Source struct {
	cfg *Config
	out chan []float32
}

// OpenSource opens the default input device and starts streaming. The
// returned channel is closed when ctx is cancelled.
func OpenSource(ctx context.Context, cfg *Config) (*Source, error) {
	portaudio.Initialize()

	stream, in, err := openStream(cfg)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("%w: %v", ErrCaptureOpen, err)
	}

	s := &Source{cfg: cfg, out: make(chan []float32, 16)}
	go s.run(ctx, stream, in)
	return s, nil
}

// Frames returns the channel of raw sample blocks.
func (s *Source) Frames() <-chan []float32 {
	return s.out
}

func openStream(cfg *Config) (*portaudio.Stream, []float32, error) {
	in := make([]float32, cfg.BlockSize)
	stream, err := portaudio.OpenDefaultStream(
		cfg.Channels, 0, cfg.SampleRate, cfg.BlockSize, in)
	if err != nil {
		return nil, nil, err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return nil, nil, err
	}
	return stream, in, nil
}

func (s *Source) run(ctx context.Context, stream *portaudio.Stream, in []float32) {
	defer close(s.out)
	defer portaudio.Terminate()

	backoff := reopenBackoffStart
	for {
		err := s.pump(ctx, stream, in)
		stream.Close()
		if err == nil {
			return
		}

		log.Printf("[ERROR] %v: %v", ErrCaptureRead, err)
		for {
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			if backoff *= 2; backoff > reopenBackoffCap {
				backoff = reopenBackoffCap
			}

			stream, in, err = openStream(s.cfg)
			if err == nil {
				break
			}
			log.Printf("[ERROR] reopen failed: %v; retrying in %v", err, backoff)
		}
		backoff = reopenBackoffStart
	}
}

// pump reads blocks until ctx is done (returns nil) or the device errors.
func (s *Source) pump(ctx context.Context, stream *portaudio.Stream, in []float32) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if err := stream.Read(); err != nil {
			return err
		}
		if glog.V(3) {
			glog.Infof("captured block of %d samples", len(in))
		}

		// portaudio reuses the bound buffer, so hand out a copy.
		block := make([]float32, len(in))
		copy(block, in)

		select {
		case <-ctx.Done():
			return nil
		case s.out <- block:
		default:
			log.Println("[WARNING] Input buffer overrun! Frame was dropped.")
		}
	}
}
