package util

import (
	hsluv "github.com/hsluv/hsluv-go"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// ColorMap is a gradient described by sorted keypoints in [0,1].
type ColorMap []struct {
	Col colorful.Color
	Pos float64
}

// GetInterpolatedColorFor returns an HCL blend between the two keypoints
// around t. Relies on the keypoints being sorted by position.
func (g ColorMap) GetInterpolatedColorFor(t float64) colorful.Color {
	for i := 0; i < len(g)-1; i++ {
		c1 := g[i]
		c2 := g[i+1]
		if c1.Pos <= t && t <= c2.Pos {
			t := (t - c1.Pos) / (c2.Pos - c1.Pos)
			return c1.Col.BlendHcl(c2.Col, t).Clamped()
		}
	}
	return g[len(g)-1].Col
}

// NewHueColorMap builds a dark-to-light gradient around a single HSLuv hue.
// HSLuv keeps perceived brightness uniform across hues, so any two tracks get
// placeholder art of comparable intensity.
func NewHueColorMap(hue float64) ColorMap {
	lightness := []float64{8, 22, 38, 52, 30, 12}
	m := make(ColorMap, len(lightness))
	for i, l := range lightness {
		r, g, b := hsluv.HsluvToRGB(hue, 72, l)
		m[i].Col = colorful.Color{R: r, G: g, B: b}
		m[i].Pos = float64(i) / float64(len(lightness)-1)
	}
	return m
}
