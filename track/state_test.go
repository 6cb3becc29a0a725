package track

import (
	"fmt"
	"image"
	"sync"
	"testing"
	"time"
)

func info(title, artist string) Info {
	return Info{Title: title, Artist: artist, RecognizedAt: time.Now()}
}

func TestPublishTrackVersioning(t *testing.T) {
	s := NewStore()
	if v := s.Read().Version; v != 0 {
		t.Fatal("fresh store should be at version 0, got", v)
	}

	s.PublishTrack(info("A", "X"), nil)
	if v := s.Read().Version; v != 1 {
		t.Fatal("first track should bump version to 1, got", v)
	}

	// The same track recognized again must not bump the version.
	s.PublishTrack(info("A", "X"), nil)
	s.PublishTrack(info("A", "X"), nil)
	if v := s.Read().Version; v != 1 {
		t.Fatal("repeat match must not bump version, got", v)
	}

	s.PublishTrack(info("B", "Y"), nil)
	snap := s.Read()
	if snap.Version != 2 {
		t.Fatal("new track should bump version to 2, got", snap.Version)
	}
	if snap.Current == nil || snap.Current.Info.Title != "B" {
		t.Fatal("current should be track B")
	}
}

func TestStatusPreservesCurrent(t *testing.T) {
	s := NewStore()
	s.PublishTrack(info("A", "X"), nil)

	s.PublishStatus(StatusNoMatch, "")
	snap := s.Read()
	if snap.Current == nil || snap.Current.Info.Title != "A" {
		t.Fatal("no-match cleared the displayed track")
	}
	if snap.Status != StatusNoMatch {
		t.Fatal("status not updated")
	}

	s.PublishStatus(StatusError, "connection refused")
	snap = s.Read()
	if snap.Current == nil || snap.Current.Info.Title != "A" {
		t.Fatal("error cleared the displayed track")
	}
	if snap.Err != "connection refused" {
		t.Fatal("error message not recorded")
	}
	if snap.Version != 1 {
		t.Fatal("status publishes must not bump version")
	}
}

func TestPublishArt(t *testing.T) {
	s := NewStore()
	s.PublishTrack(info("A", "X"), nil)

	art := image.NewRGBA(image.Rect(0, 0, 4, 4))
	s.PublishArt(info("A", "X"), art)
	if s.Read().Current.Art != art {
		t.Fatal("art not attached")
	}
	if s.Read().Version != 1 {
		t.Fatal("art publish must not bump version")
	}

	// Art for a superseded track is dropped.
	s.PublishTrack(info("B", "Y"), nil)
	stale := image.NewRGBA(image.Rect(0, 0, 2, 2))
	s.PublishArt(info("A", "X"), stale)
	if s.Read().Current.Art == stale {
		t.Fatal("stale art attached to the wrong track")
	}
}

func TestConcurrentReadersNeverTear(t *testing.T) {
	s := NewStore()
	stop := make(chan struct{})
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			s.PublishTrack(info(fmt.Sprintf("T%d", i), fmt.Sprintf("A%d", i)), nil)
			s.PublishStatus(StatusNoMatch, "")
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 10000; i++ {
				snap := s.Read()
				if snap.Status == StatusRecognized && snap.Current == nil {
					t.Error("recognized snapshot with no current track")
					return
				}
				if snap.Current != nil {
					// Title and artist were published together; a torn read
					// would mix generations.
					if snap.Current.Info.Title[1:] != snap.Current.Info.Artist[1:] {
						t.Error("torn snapshot:", snap.Current.Info)
						return
					}
				}
			}
		}()
	}

	time.Sleep(10 * time.Millisecond)
	close(stop)
	wg.Wait()
}
