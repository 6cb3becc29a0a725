package present

import "testing"

func TestArtRectFitsAndCenters(t *testing.T) {
	p := DefaultParams

	// Wide display, square image: height-limited.
	r := ArtRect(&p, LayoutNormal, 800, 600, 500, 500)
	if r.W != 600 || r.H != 600 {
		t.Fatal("square art should fill the height:", r)
	}
	if r.X != 100 || r.Y != 0 {
		t.Fatal("art not centered:", r)
	}
}

func TestArtRectStretchWidensOnly(t *testing.T) {
	p := DefaultParams

	normal := ArtRect(&p, LayoutNormal, 800, 600, 500, 500)
	stretched := ArtRect(&p, LayoutStretch, 800, 600, 500, 500)

	if stretched.H != normal.H {
		t.Fatal("stretch must not change the height:", normal.H, stretched.H)
	}
	want := normal.W * float32(p.StretchFactor)
	if stretched.W != want {
		t.Fatal("stretch width off:", stretched.W, "want", want)
	}
	// Still centered after widening.
	if stretched.X != (800-stretched.W)/2 {
		t.Fatal("stretched art not centered:", stretched)
	}
}

func TestArtRectDegenerateImage(t *testing.T) {
	p := DefaultParams
	if r := ArtRect(&p, LayoutNormal, 800, 600, 0, 0); r != (Rect{}) {
		t.Fatal("zero-size image should produce an empty rect:", r)
	}
}

func TestSafeWidth(t *testing.T) {
	p := DefaultParams
	p.SafeWidthFrac = 0.8
	if got := SafeWidth(&p, 1000); got != 800 {
		t.Fatal("safe width:", got)
	}
}
