package gfx

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// TextureConfig is a configuration for creating a new TextureObject.
type TextureConfig struct {
	Image       *image.RGBA
	UniformName string
	// Filter is the min/mag filter, gl.LINEAR when zero.
	Filter int32
	// Wrap is the S/T wrap mode, gl.CLAMP_TO_EDGE when zero. Use gl.REPEAT
	// for textures sampled with a moving offset, like the scrolling title.
	Wrap int32
}

// TextureObject owns one GL texture whose backing image can be swapped out
// between frames.
type TextureObject struct {
	texID  uint32
	texLoc int32
	unit   uint32
	image  *image.RGBA
}

// AddTextureObject creates a new TextureObject bound to the next free texture
// unit. Call Update() after mutating the image in place, or SetImage() to
// replace it entirely.
func (c *Context) AddTextureObject(cfg *TextureConfig) (*TextureObject, error) {
	filter := cfg.Filter
	if filter == 0 {
		filter = gl.LINEAR
	}
	wrap := cfg.Wrap
	if wrap == 0 {
		wrap = gl.CLAMP_TO_EDGE
	}

	unit := uint32(len(c.textures))

	var texID uint32
	gl.GenTextures(1, &texID)
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, texID)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)

	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(cfg.Image.Rect.Size().X), int32(cfg.Image.Rect.Size().Y),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(cfg.Image.Pix))

	texLoc := c.GetUniformLocation(cfg.UniformName)

	tex := &TextureObject{
		texID:  texID,
		texLoc: texLoc,
		unit:   unit,
		image:  cfg.Image,
	}
	c.textures = append(c.textures, tex)
	return tex, nil
}

// Bind makes the texture current for the sampler uniform it was created for.
func (t *TextureObject) Bind() {
	gl.ActiveTexture(gl.TEXTURE0 + t.unit)
	gl.BindTexture(gl.TEXTURE_2D, t.texID)
	gl.Uniform1i(t.texLoc, int32(t.unit))
}

// Size returns the dimensions of the backing image in pixels.
func (t *TextureObject) Size() (int, int) {
	return t.image.Rect.Size().X, t.image.Rect.Size().Y
}

// Update re-uploads the backing image after in-place mutation.
func (t *TextureObject) Update() {
	gl.ActiveTexture(gl.TEXTURE0 + t.unit)
	gl.BindTexture(gl.TEXTURE_2D, t.texID)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0,
		int32(t.image.Rect.Size().X), int32(t.image.Rect.Size().Y),
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(t.image.Pix))
}

// SetImage replaces the backing image, reallocating GPU storage when the
// size changed.
func (t *TextureObject) SetImage(img *image.RGBA) {
	sameSize := t.image != nil && t.image.Rect.Size() == img.Rect.Size()
	t.image = img
	if sameSize {
		t.Update()
		return
	}
	gl.ActiveTexture(gl.TEXTURE0 + t.unit)
	gl.BindTexture(gl.TEXTURE_2D, t.texID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(img.Rect.Size().X), int32(img.Rect.Size().Y),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
}
