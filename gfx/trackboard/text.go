package trackboard

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// faceSet holds the rasterizer faces for the three text rows.
type faceSet struct {
	title  font.Face
	artist font.Face
	status font.Face
}

func newFaceSet(titlePx, artistPx float64) (*faceSet, error) {
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, err
	}
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}

	title, err := opentype.NewFace(bold, &opentype.FaceOptions{
		Size: titlePx, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, err
	}
	artist, err := opentype.NewFace(regular, &opentype.FaceOptions{
		Size: artistPx, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, err
	}
	status, err := opentype.NewFace(regular, &opentype.FaceOptions{
		Size: artistPx * 0.6, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, err
	}

	return &faceSet{title: title, artist: artist, status: status}, nil
}

// textWidth measures the advance of s in pixels.
func textWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

// renderStrip rasterizes s into a transparent strip, white over a dark
// outline so it stays readable on top of bright album art. pad adds empty
// pixels on the right, which becomes the wrap gap for scrolling titles.
func renderStrip(face font.Face, s string, outline, pad int) *image.RGBA {
	m := face.Metrics()
	w := textWidth(face, s) + 2*outline + pad
	h := m.Height.Ceil() + 2*outline
	if w < 1 {
		w = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))

	drawAt := func(dx, dy int, clr color.Color) {
		d := font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(clr),
			Face: face,
			Dot:  fixed.P(outline+dx, outline+dy+m.Ascent.Ceil()),
		}
		d.DrawString(s)
	}

	// Circular outline pass, then the face on top.
	for dx := -outline; dx <= outline; dx++ {
		for dy := -outline; dy <= outline; dy++ {
			if dx*dx+dy*dy <= outline*outline {
				drawAt(dx, dy, color.Black)
			}
		}
	}
	drawAt(0, 0, color.White)

	return img
}
