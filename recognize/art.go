package recognize

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"net/http"
	"time"

	// The service serves covers as JPEG or PNG.
	_ "image/jpeg"
	_ "image/png"
)

// Fetcher retrieves and decodes album art.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*image.RGBA, error)
}

// ArtFetcher fetches covers over HTTP. Failures wrap ErrFetch and the caller
// keeps showing the placeholder.
type ArtFetcher struct {
	http *http.Client
}

// NewArtFetcher returns a fetcher with a bounded per-request timeout.
func NewArtFetcher(timeout time.Duration) *ArtFetcher {
	return &ArtFetcher{http: &http.Client{Timeout: timeout}}
}

// Fetch downloads and decodes the image at url.
func (f *ArtFetcher) Fetch(ctx context.Context, url string) (*image.RGBA, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d", ErrFetch, resp.StatusCode)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrFetch, err)
	}
	return toRGBA(img), nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
