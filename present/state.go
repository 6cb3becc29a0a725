// Package present models everything about how the current track is shown:
// the entry fade, long-title scrolling, and the layout toggles for CRT
// output. All motion is driven by elapsed wall-clock time so the animation is
// identical at any frame rate.
package present

import (
	"time"

	"github.com/chewxy/math32"

	"github.com/ellsworth/tunescope/track"
)

// LayoutMode selects how album art is scaled.
type LayoutMode int

// Layout modes. Stretch widens the picture to pre-compensate for the
// horizontal squish a 16:9 signal suffers on a 4:3 CRT.
const (
	LayoutNormal LayoutMode = iota
	LayoutStretch
)

// WindowMode selects windowed vs fullscreen output.
type WindowMode int

// Window modes.
const (
	ModeWindowed WindowMode = iota
	ModeFullscreen
)

// Phase is the per-track animation phase.
type Phase int

// Animation phases. Listening means no track has been recognized yet.
const (
	PhaseListening Phase = iota
	PhaseEntering
	PhaseVisible
)

// State is the per-frame presentation state. It is owned exclusively by the
// render loop.
type State struct {
	FadeOpacity  float32
	ScrollOffset float32
	Layout       LayoutMode
	Window       WindowMode
	Phase        Phase

	lastVersion uint64
}

// NewState returns a presentation state with the given initial toggles.
func NewState(layout LayoutMode, window WindowMode) *State {
	return &State{Layout: layout, Window: window}
}

// Advance moves the animation forward by dt against the latest track
// snapshot. titleWidth and safeWidth are the rendered title width and the
// display's safe text width in pixels; scrolling engages only when the title
// does not fit.
func (s *State) Advance(p *Params, snap *track.Snapshot, dt time.Duration, titleWidth, safeWidth float32) {
	if snap.Version != s.lastVersion {
		s.lastVersion = snap.Version
		if snap.Current != nil {
			s.Phase = PhaseEntering
			s.FadeOpacity = 0
			s.ScrollOffset = 0
		}
	}
	if snap.Current == nil {
		s.Phase = PhaseListening
		s.FadeOpacity = 0
		s.ScrollOffset = 0
		return
	}

	switch s.Phase {
	case PhaseEntering:
		fade := time.Duration(p.FadeInMs * float64(time.Millisecond))
		if fade <= 0 {
			s.FadeOpacity = 1
		} else {
			s.FadeOpacity += float32(dt) / float32(fade)
		}
		if s.FadeOpacity >= 1 {
			s.FadeOpacity = 1
			s.Phase = PhaseVisible
		}
	case PhaseVisible:
		s.advanceScroll(p, dt, titleWidth, safeWidth)
	}
}

// advanceScroll loops the title sideways for as long as the track stays
// current. The cycle period is titleWidth+gap at ScrollSpeed px/s.
func (s *State) advanceScroll(p *Params, dt time.Duration, titleWidth, safeWidth float32) {
	if titleWidth <= safeWidth || p.ScrollSpeed <= 0 {
		s.ScrollOffset = 0
		return
	}
	period := titleWidth + float32(p.ScrollGap)
	s.ScrollOffset += float32(p.ScrollSpeed) * float32(dt.Seconds())
	s.ScrollOffset = math32.Mod(s.ScrollOffset, period)
}

// ToggleStretch flips the CRT stretch compensation. Idempotent per press.
func (s *State) ToggleStretch() {
	if s.Layout == LayoutNormal {
		s.Layout = LayoutStretch
	} else {
		s.Layout = LayoutNormal
	}
}

// ToggleFullscreen flips between windowed and fullscreen output.
func (s *State) ToggleFullscreen() {
	if s.Window == ModeWindowed {
		s.Window = ModeFullscreen
	} else {
		s.Window = ModeWindowed
	}
}
