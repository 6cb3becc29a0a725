package recognize

import (
	"hash/fnv"
	"image"
	"image/color"

	"github.com/phrozen/blend"

	"github.com/ellsworth/tunescope/audio/util"
	"github.com/ellsworth/tunescope/track"
)

// Placeholder generates deterministic stand-in art for a track while the real
// cover is still in flight (or never arrives). The hue is derived from the
// (title, artist) pair so each track gets its own color, shaded through a
// vertical gradient with a darkened vignette toward the edges.
func Placeholder(info track.Info, size int) *image.RGBA {
	h := fnv.New32a()
	h.Write([]byte(info.Title))
	h.Write([]byte{0})
	h.Write([]byte(info.Artist))
	hue := float64(h.Sum32() % 360)

	cm := util.NewHueColorMap(hue)
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	center := float64(size-1) / 2
	maxd := center * center * 2
	for y := 0; y < size; y++ {
		r, g, b := cm.GetInterpolatedColorFor(float64(y) / float64(size-1)).RGB255()
		row := color.RGBA{r, g, b, 255}
		for x := 0; x < size; x++ {
			// Darken toward the corners by multiplying against a radial
			// white-to-grey mask.
			dx, dy := float64(x)-center, float64(y)-center
			v := uint8(255 - 96*(dx*dx+dy*dy)/maxd)
			mask := color.RGBA{v, v, v, 255}
			img.Set(x, y, blend.Multiply(row, mask))
		}
	}
	return img
}
