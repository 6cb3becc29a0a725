package gfx

import (
	"github.com/go-gl/glfw/v3.2/glfw"
)

const (
	openglVersionMajor = 4
	openglVersionMinor = 1
)

// Window represents a wrapped glfw window object.
type Window struct {
	Config     *WindowConfig
	GlfwWindow *glfw.Window

	// windowed geometry saved across fullscreen switches
	restoreX, restoreY int
	restoreW, restoreH int
}

// WindowConfig contains a new window configuration
type WindowConfig struct {
	Width  int
	Height int
	Title  string
}

// NewWindow initializes a new window object with glfw.
func NewWindow(cfg *WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, err
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, openglVersionMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, openglVersionMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	return &Window{Config: cfg, GlfwWindow: window}, nil
}

// SetFullscreen moves the window onto the primary monitor at its native video
// mode, or restores the previous windowed geometry. Applying the current mode
// again is a no-op.
func (w *Window) SetFullscreen(full bool) {
	if full == w.IsFullscreen() {
		return
	}
	if full {
		w.restoreX, w.restoreY = w.GlfwWindow.GetPos()
		w.restoreW, w.restoreH = w.GlfwWindow.GetSize()
		monitor := glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()
		w.GlfwWindow.SetMonitor(monitor, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
	} else {
		w.GlfwWindow.SetMonitor(nil,
			w.restoreX, w.restoreY, w.restoreW, w.restoreH, glfw.DontCare)
	}
	glfw.SwapInterval(1)
}

// IsFullscreen reports whether the window currently owns a monitor.
func (w *Window) IsFullscreen() bool {
	return w.GlfwWindow.GetMonitor() != nil
}

// FramebufferSize returns the drawable size in pixels.
func (w *Window) FramebufferSize() (int, int) {
	return w.GlfwWindow.GetFramebufferSize()
}

// OnKey registers a callback for key presses (not releases or repeats).
func (w *Window) OnKey(handler func(key glfw.Key)) {
	w.GlfwWindow.SetKeyCallback(func(_ *glfw.Window, key glfw.Key,
		_ int, action glfw.Action, _ glfw.ModifierKey) {
		if action == glfw.Press {
			handler(key)
		}
	})
}

// Close requests that the event loop exit.
func (w *Window) Close() {
	w.GlfwWindow.SetShouldClose(true)
}
