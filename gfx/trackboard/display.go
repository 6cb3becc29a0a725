// Package trackboard is the display engine for the now-playing screen. It
// composes album art and track text as textured quads, applying the opacity
// and scroll values computed by the presentation state machine.
package trackboard

import (
	"image"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	ml "github.com/go-gl/mathgl/mgl32"

	"github.com/ellsworth/tunescope/gfx"
	"github.com/ellsworth/tunescope/present"
)

const (
	vertexShaderSource = `
	#version 410
	uniform vec2 offset;
	uniform vec2 scale;
	uniform vec2 uvOffset;
	uniform vec2 uvScale;
	in vec2 vertPos;
	in vec2 texPos;
	out vec2 fragTexPos;
	void main() {
		fragTexPos = texPos * uvScale + uvOffset;
		gl_Position = vec4(vertPos * scale + offset, 0.0, 1.0);
	}`

	fragmentShaderSource = `
	#version 410
	precision highp float;
	uniform sampler2D tex;
	uniform float opacity;
	in vec2 fragTexPos;
	out vec4 frag_color;
	void main() {
		vec4 c = texture(tex, fragTexPos);
		frag_color = vec4(c.rgb, c.a * opacity);
	}`

	titleOutline  = 3
	artistOutline = 2
)

var (
	square = [6]ml.Vec2{
		{-1, 1},
		{-1, -1},
		{1, -1},

		{-1, 1},
		{1, 1},
		{1, -1},
	}
	uvCord = [6]ml.Vec2{
		{0, 0},
		{0, 1},
		{1, 1},

		{0, 0},
		{1, 0},
		{1, 1},
	}
)

// Config is a configuration for creating a new Board.
type Config struct {
	Width  int
	Height int
	Title  string
	FPS    int

	TitlePx  float64
	ArtistPx float64
}

// Frame is everything the board needs to draw one frame.
type Frame struct {
	Art        *image.RGBA
	Title      string
	Artist     string
	StatusLine string

	Opacity      float32
	ScrollOffset float32
	Layout       present.LayoutMode
	Params       *present.Params
}

// Board is the on-screen display engine.
type Board struct {
	Gfx  *gfx.Context
	Done chan struct{}

	quad   *gfx.VertexArrayObject
	art    *gfx.TextureObject
	title  *gfx.TextureObject
	artist *gfx.TextureObject
	status *gfx.TextureObject
	faces  *faceSet

	fps    int
	render func(*Board, time.Duration)

	// cached frame content so textures upload only on change
	lastArt    *image.RGBA
	lastTitle  string
	lastArtist string
	lastStatus string
	titleTextW float32
}

// NewBoard creates the display engine and its GL resources.
func NewBoard(done chan struct{}, cfg *Config) (*Board, error) {
	g, err := gfx.NewContext(done, &gfx.WindowConfig{
		Width: cfg.Width, Height: cfg.Height, Title: cfg.Title,
	}, []*gfx.ShaderConfig{
		{
			Typ:            gfx.VertexShaderType,
			Source:         vertexShaderSource,
			AttributeNames: []string{"vertPos", "texPos"},
			UniformNames:   []string{"offset", "scale", "uvOffset", "uvScale"},
		},
		{
			Typ:          gfx.FragmentShaderType,
			Source:       fragmentShaderSource,
			UniformNames: []string{"tex", "opacity"},
		},
	})
	if err != nil {
		return nil, err
	}
	gl.BindFragDataLocation(g.Program.ProgramID, 0, gl.Str("frag_color\x00"))

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(0, 0, 0, 1)

	vertices := make([]float32, 0, 6*4)
	for i := range square {
		vertices = append(vertices, square[i].X(), square[i].Y(),
			uvCord[i].X(), uvCord[i].Y())
	}
	gl.UseProgram(g.Program.ProgramID)
	quad, err := g.NewVertexArrayObject(&gfx.VAOConfig{
		Vertices:   vertices,
		VertAttr:   "vertPos",
		TexAttr:    "texPos",
		Stride:     4,
		Size:       2,
		GLDrawType: gl.TRIANGLES,
	})
	if err != nil {
		return nil, err
	}

	faces, err := newFaceSet(cfg.TitlePx, cfg.ArtistPx)
	if err != nil {
		return nil, err
	}

	b := &Board{
		Gfx:   g,
		Done:  done,
		quad:  quad,
		faces: faces,
		fps:   cfg.FPS,
	}

	blank := image.NewRGBA(image.Rect(0, 0, 1, 1))
	if b.art, err = g.AddTextureObject(&gfx.TextureConfig{
		Image: blank, UniformName: "tex"}); err != nil {
		return nil, err
	}
	// The title wraps around while scrolling, so it samples with REPEAT.
	if b.title, err = g.AddTextureObject(&gfx.TextureConfig{
		Image: blank, UniformName: "tex", Wrap: gl.REPEAT}); err != nil {
		return nil, err
	}
	if b.artist, err = g.AddTextureObject(&gfx.TextureConfig{
		Image: blank, UniformName: "tex"}); err != nil {
		return nil, err
	}
	if b.status, err = g.AddTextureObject(&gfx.TextureConfig{
		Image: blank, UniformName: "tex"}); err != nil {
		return nil, err
	}

	return b, nil
}

// SetRenderFunc sets the per-frame callback.
func (b *Board) SetRenderFunc(render func(*Board, time.Duration)) {
	b.render = render
}

// Start runs the graphics event loop until quit.
func (b *Board) Start() {
	defer b.Gfx.Terminate()

	b.Gfx.EventLoop(b.fps, func(_ *gfx.Context, dt time.Duration) {
		if b.render != nil {
			b.render(b, dt)
		}
	})
}

// Window exposes the underlying window for input and mode toggles.
func (b *Board) Window() *gfx.Window {
	return b.Gfx.Window
}

// TitleWidth returns the rendered width in pixels of the current title text,
// excluding the scroll gap. Valid after the first Draw of that title.
func (b *Board) TitleWidth() float32 {
	return b.titleTextW
}

// Draw renders one frame.
func (b *Board) Draw(f Frame) {
	fbW, fbH := b.Gfx.Window.FramebufferSize()
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	dispW, dispH := float32(fbW), float32(fbH)

	b.refreshTextures(f)

	if f.Art != nil {
		iw, ih := b.art.Size()
		rect := present.ArtRect(f.Params, f.Layout, dispW, dispH, float32(iw), float32(ih))
		b.drawQuad(b.art, rect, dispW, dispH, 1, ml.Vec2{0, 0}, ml.Vec2{1, 1})
	}

	if f.Title != "" {
		b.drawTitle(f, dispW, dispH)
	}
	if f.Artist != "" {
		w, h := b.artist.Size()
		rect := present.TextRect(dispW, dispH, float32(w), float32(h), dispH*0.12)
		b.drawQuad(b.artist, rect, dispW, dispH, f.Opacity, ml.Vec2{0, 0}, ml.Vec2{1, 1})
	}
	if f.StatusLine != "" {
		w, h := b.status.Size()
		rect := present.TextRect(dispW, dispH, float32(w), float32(h), dispH*0.42)
		b.drawQuad(b.status, rect, dispW, dispH, 0.7, ml.Vec2{0, 0}, ml.Vec2{1, 1})
	}
}

// drawTitle draws the title row, windowed through the safe width with a
// wrap-around uv offset when the text is too wide to fit.
func (b *Board) drawTitle(f Frame, dispW, dispH float32) {
	imgW, imgH := b.title.Size()
	safe := present.SafeWidth(f.Params, dispW)
	dy := -dispH * 0.12

	if b.titleTextW <= safe {
		rect := present.TextRect(dispW, dispH, b.titleTextW, float32(imgH), dy)
		// Trim the baked-in gap off the right edge.
		uvScale := ml.Vec2{b.titleTextW / float32(imgW), 1}
		b.drawQuad(b.title, rect, dispW, dispH, f.Opacity, ml.Vec2{0, 0}, uvScale)
		return
	}

	rect := present.TextRect(dispW, dispH, safe, float32(imgH), dy)
	uvOffset := ml.Vec2{f.ScrollOffset / float32(imgW), 0}
	uvScale := ml.Vec2{safe / float32(imgW), 1}
	b.drawQuad(b.title, rect, dispW, dispH, f.Opacity, uvOffset, uvScale)
}

// refreshTextures re-uploads any texture whose content changed this frame.
func (b *Board) refreshTextures(f Frame) {
	if f.Art != nil && f.Art != b.lastArt {
		b.art.SetImage(f.Art)
		b.lastArt = f.Art
	}
	if f.Title != b.lastTitle {
		gap := titleOutline * 2
		if f.Params != nil {
			gap = int(f.Params.ScrollGap)
		}
		b.titleTextW = float32(textWidth(b.faces.title, f.Title) + 2*titleOutline)
		b.title.SetImage(renderStrip(b.faces.title, f.Title, titleOutline, gap))
		b.lastTitle = f.Title
	}
	if f.Artist != b.lastArtist {
		b.artist.SetImage(renderStrip(b.faces.artist, f.Artist, artistOutline, 0))
		b.lastArtist = f.Artist
	}
	if f.StatusLine != b.lastStatus && f.StatusLine != "" {
		b.status.SetImage(renderStrip(b.faces.status, f.StatusLine, 1, 0))
		b.lastStatus = f.StatusLine
	}
}

// drawQuad draws one textured quad at a pixel rect with the given opacity and
// uv window.
func (b *Board) drawQuad(tex *gfx.TextureObject, rect present.Rect,
	dispW, dispH, opacity float32, uvOffset, uvScale ml.Vec2) {

	cx := (rect.X+rect.W/2)/dispW*2 - 1
	cy := 1 - (rect.Y+rect.H/2)/dispH*2

	gl.Uniform2f(b.Gfx.GetUniformLocation("offset"), cx, cy)
	gl.Uniform2f(b.Gfx.GetUniformLocation("scale"), rect.W/dispW, rect.H/dispH)
	gl.Uniform2f(b.Gfx.GetUniformLocation("uvOffset"), uvOffset.X(), uvOffset.Y())
	gl.Uniform2f(b.Gfx.GetUniformLocation("uvScale"), uvScale.X(), uvScale.Y())
	gl.Uniform1f(b.Gfx.GetUniformLocation("opacity"), opacity)
	tex.Bind()
	b.quad.Draw()
}
