package main

import (
	"time"

	"github.com/go-gl/glfw/v3.2/glfw"

	"github.com/ellsworth/tunescope/gfx/trackboard"
	"github.com/ellsworth/tunescope/present"
	"github.com/ellsworth/tunescope/track"
)

// renderer connects the shared track and param state to the display engine.
// It owns the presentation state and runs entirely on the render thread.
type renderer struct {
	store  *track.Store
	params *present.ParamStore
	state  *present.State
}

func newRenderer(store *track.Store, params *present.ParamStore,
	layout present.LayoutMode, window present.WindowMode) *renderer {
	return &renderer{
		store:  store,
		params: params,
		state:  present.NewState(layout, window),
	}
}

// attach installs the key bindings and the per-frame callback.
func (r *renderer) attach(b *trackboard.Board) {
	b.Window().OnKey(func(key glfw.Key) {
		switch key {
		case glfw.KeyF:
			r.state.ToggleFullscreen()
			b.Window().SetFullscreen(r.state.Window == present.ModeFullscreen)
		case glfw.KeyS:
			r.state.ToggleStretch()
		case glfw.KeyEscape:
			// Escape leaves fullscreen but never quits.
			if r.state.Window == present.ModeFullscreen {
				r.state.ToggleFullscreen()
				b.Window().SetFullscreen(false)
			}
		case glfw.KeyQ:
			b.Window().Close()
		}
	})

	b.SetRenderFunc(func(b *trackboard.Board, dt time.Duration) {
		r.frame(b, dt)
	})
}

func (r *renderer) frame(b *trackboard.Board, dt time.Duration) {
	p := r.params.Get()
	snap := r.store.Read()

	dispW, _ := b.Window().FramebufferSize()
	safe := present.SafeWidth(p, float32(dispW))
	r.state.Advance(p, snap, dt, b.TitleWidth(), safe)

	f := trackboard.Frame{
		Opacity:      r.state.FadeOpacity,
		ScrollOffset: r.state.ScrollOffset,
		Layout:       r.state.Layout,
		Params:       p,
		StatusLine:   statusLine(snap),
	}
	if snap.Current != nil {
		f.Art = snap.Current.Art
		f.Title = snap.Current.Info.Title
		f.Artist = snap.Current.Info.Artist
	}
	b.Draw(f)
}

// statusLine is shown while nothing is recognized yet, or as a small notice
// when cycles fail with a track already up.
func statusLine(snap *track.Snapshot) string {
	if snap.Current == nil {
		if snap.Status == track.StatusError {
			return "recognition error, retrying"
		}
		return "listening..."
	}
	if snap.Status == track.StatusError {
		return "recognition error, retrying"
	}
	return ""
}
