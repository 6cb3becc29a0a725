package gfx

import (
	"log"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.2/glfw"
)

// Context is a context for doing opengl graphics
type Context struct {
	Window  *Window
	Program *Program

	uniforms   map[string]int32
	attributes map[string]int32
	textures   []*TextureObject

	done <-chan struct{}
}

// NewContext creates a new opengl context
func NewContext(done <-chan struct{},
	windowConfig *WindowConfig, shaderConfigs []*ShaderConfig) (*Context, error) {
	window, err := NewWindow(windowConfig)
	if err != nil {
		return nil, err
	}

	if err := gl.Init(); err != nil {
		return nil, err
	}
	version := gl.GoStr(gl.GetString(gl.VERSION))
	log.Println("[INFO] OpenGL version", version)

	program, err := NewProgram()
	if err != nil {
		return nil, err
	}
	for _, cfg := range shaderConfigs {
		if err := program.AttachShader(cfg); err != nil {
			return nil, err
		}
	}
	if err := program.Link(); err != nil {
		return nil, err
	}

	uniforms := make(map[string]int32)
	attributes := make(map[string]int32)
	for _, sh := range program.Shaders {
		for uname, uloc := range sh.UniformLocations {
			uniforms[uname] = uloc
		}
		for aname, aloc := range sh.AttributeLocations {
			attributes[aname] = aloc
		}
	}

	return &Context{
		Window:     window,
		Program:    program,
		uniforms:   uniforms,
		attributes: attributes,
		done:       done,
	}, nil
}

// EventLoop clears the framebuffer and executes render in a loop until the
// underlying glfw window tells it to stop or done closes. render receives the
// elapsed wall-clock time since the previous frame. Frames are paced to
// targetFPS on top of vsync so a disabled swap interval cannot spin the CPU.
// Calls glfw.Terminate when finished.
func (c *Context) EventLoop(targetFPS int, render func(*Context, time.Duration)) {

	// OpenGL requires that rendering functions be called from the main thread
	runtime.LockOSThread()

	budget := time.Second / time.Duration(targetFPS)
	last := time.Now()

	for !c.Window.GlfwWindow.ShouldClose() {
		select {
		case <-c.done:
			return
		default:
		}

		now := time.Now()
		dt := now.Sub(last)
		last = now

		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		gl.UseProgram(c.Program.ProgramID)

		render(c, dt)

		glfw.PollEvents()
		c.Window.GlfwWindow.SwapBuffers()

		if spent := time.Since(now); spent < budget {
			time.Sleep(budget - spent)
		}
	}
}

// Terminate ends the glfw session
func (c *Context) Terminate() {
	glfw.Terminate()
}

// GetUniformLocation returns the location of a uniform within the context's program.
func (c *Context) GetUniformLocation(uname string) int32 {
	uloc, ok := c.uniforms[uname]
	if !ok {
		panic("unknown uniform name: " + uname)
	}
	return uloc
}

// GetAttributeLocation returns the location of a vertex attribute within the
// context's program.
func (c *Context) GetAttributeLocation(aname string) uint32 {
	aloc, ok := c.attributes[aname]
	if !ok {
		panic("unknown attribute name: " + aname)
	}
	return uint32(aloc)
}
