package present

import (
	"github.com/chewxy/math32"
)

// Rect is a pixel-space rectangle, origin at the top left of the display.
type Rect struct {
	X, Y, W, H float32
}

// ArtRect fit-scales an image into the display preserving its aspect ratio,
// centered. In stretch mode only the width is widened, matching how the
// original compensated for the CRT squish.
func ArtRect(p *Params, layout LayoutMode, dispW, dispH, imgW, imgH float32) Rect {
	if imgW <= 0 || imgH <= 0 {
		return Rect{}
	}
	scale := math32.Min(dispW/imgW, dispH/imgH)
	w := imgW * scale
	h := imgH * scale
	if layout == LayoutStretch {
		w *= float32(p.StretchFactor)
	}
	return Rect{
		X: (dispW - w) / 2,
		Y: (dispH - h) / 2,
		W: w,
		H: h,
	}
}

// SafeWidth returns the display width usable for text.
func SafeWidth(p *Params, dispW float32) float32 {
	return dispW * float32(p.SafeWidthFrac)
}

// TextRect places a text row of the given size. dy offsets the row from the
// vertical center, negative for the title row, positive for the artist row.
func TextRect(dispW, dispH, textW, textH, dy float32) Rect {
	return Rect{
		X: (dispW - textW) / 2,
		Y: dispH/2 + dy - textH/2,
		W: textW,
		H: textH,
	}
}
