package gfx

import (
	"errors"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// VertexArrayObject points to a vertex buffer that has already been
// loaded into graphics memory.
type VertexArrayObject struct {
	vaoID      uint32
	length     int32
	glDrawType uint32
}

// VAOConfig represents a configuration for creating a new VAO. Vertices are
// interleaved position/texcoord records: Size position floats followed by two
// texture floats per vertex.
type VAOConfig struct {
	Vertices   []float32
	VertAttr   string
	TexAttr    string
	Stride     int32
	Size       int
	GLDrawType uint32
}

// NewVertexArrayObject creates a VertexArrayObject
func (c *Context) NewVertexArrayObject(cfg *VAOConfig) (*VertexArrayObject, error) {
	if len(cfg.Vertices)%int(cfg.Stride) != 0 {
		return nil, errors.New("invalid length for vertices must be multiple of stride")
	}
	stride := 4 * cfg.Stride

	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(cfg.Vertices), gl.Ptr(cfg.Vertices), gl.STATIC_DRAW)

	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	vattr := c.GetAttributeLocation(cfg.VertAttr)
	gl.EnableVertexAttribArray(vattr)
	gl.VertexAttribPointer(vattr, int32(cfg.Size), gl.FLOAT, false, stride, gl.PtrOffset(0))

	tattr := c.GetAttributeLocation(cfg.TexAttr)
	gl.EnableVertexAttribArray(tattr)
	gl.VertexAttribPointer(tattr, 2, gl.FLOAT, false, stride, gl.PtrOffset(cfg.Size*4))

	gl.BindVertexArray(0)

	return &VertexArrayObject{
		vaoID:      vao,
		length:     int32(len(cfg.Vertices)) / cfg.Stride,
		glDrawType: cfg.GLDrawType,
	}, nil
}

// Draw draws a VertexArrayObject to the current frame buffer. The caller is
// responsible for setting uniforms and binding textures first.
func (v *VertexArrayObject) Draw() {
	gl.BindVertexArray(v.vaoID)
	gl.DrawArrays(v.glDrawType, 0, v.length)
}
