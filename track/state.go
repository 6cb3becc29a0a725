// Package track holds the shared now-playing state exchanged between the
// recognition worker and the render loop. The state is a single immutable
// snapshot replaced atomically, so the reader never sees a half-written
// update.
package track

import (
	"image"
	"sync/atomic"
	"time"
)

// Status describes the outcome of the most recent recognition cycle.
type Status int

// Recognition cycle outcomes.
const (
	StatusListening Status = iota
	StatusRecognized
	StatusNoMatch
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusListening:
		return "listening"
	case StatusRecognized:
		return "recognized"
	case StatusNoMatch:
		return "no match"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// Info is the metadata returned by a successful recognition.
type Info struct {
	Title        string    `json:"title"`
	Artist       string    `json:"artist"`
	ArtURL       string    `json:"artUrl,omitempty"`
	RecognizedAt time.Time `json:"recognizedAt"`
}

// Same reports whether two results identify the same track.
func (i Info) Same(other Info) bool {
	return i.Title == other.Title && i.Artist == other.Artist
}

// Now is a recognized track together with its display asset.
type Now struct {
	Info Info
	Art  *image.RGBA
}

// Snapshot is one fully-formed state of the display. Snapshots are immutable
// once published.
//
// Version counts track identity changes, not publishes: status updates and
// art arrivals reuse the current version so the render loop only restarts the
// entry animation when a genuinely different track appears.
type Snapshot struct {
	Current *Now
	Status  Status
	Err     string
	Version uint64
}

// Store is the single shared object between the recognition worker and the
// renderer. Publishes replace the whole snapshot; reads return the latest
// pointer. Neither side ever blocks the other.
type Store struct {
	snap atomic.Pointer[Snapshot]
}

// NewStore returns a store in the initial listening state.
func NewStore() *Store {
	s := &Store{}
	s.snap.Store(&Snapshot{Status: StatusListening})
	return s
}

// Read returns the latest snapshot. Callers must not mutate it.
func (s *Store) Read() *Snapshot {
	return s.snap.Load()
}

// PublishStatus records a cycle outcome without touching the displayed track.
// A NoMatch or Error never clears what is already on screen.
func (s *Store) PublishStatus(status Status, errMsg string) {
	for {
		cur := s.snap.Load()
		next := &Snapshot{
			Current: cur.Current,
			Status:  status,
			Err:     errMsg,
			Version: cur.Version,
		}
		if s.snap.CompareAndSwap(cur, next) {
			return
		}
	}
}

// PublishTrack installs a recognized track. If the (title, artist) pair
// matches what is already current, the version is left alone and the existing
// art is kept, so a repeated match does not retrigger the entry animation.
func (s *Store) PublishTrack(info Info, art *image.RGBA) {
	for {
		cur := s.snap.Load()
		next := &Snapshot{Status: StatusRecognized, Version: cur.Version}
		if cur.Current != nil && cur.Current.Info.Same(info) {
			next.Current = &Now{Info: info, Art: cur.Current.Art}
		} else {
			next.Current = &Now{Info: info, Art: art}
			next.Version = cur.Version + 1
		}
		if s.snap.CompareAndSwap(cur, next) {
			return
		}
	}
}

// PublishArt attaches fetched art to the track it was fetched for. If a
// different track has become current in the meantime the art is dropped.
// The version is untouched either way.
func (s *Store) PublishArt(info Info, art *image.RGBA) {
	for {
		cur := s.snap.Load()
		if cur.Current == nil || !cur.Current.Info.Same(info) {
			return
		}
		next := &Snapshot{
			Current: &Now{Info: cur.Current.Info, Art: art},
			Status:  cur.Status,
			Err:     cur.Err,
			Version: cur.Version,
		}
		if s.snap.CompareAndSwap(cur, next) {
			return
		}
	}
}
