// Package recognize submits capture windows to the external
// song-recognition service and publishes the outcome to the shared track
// state.
package recognize

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ellsworth/tunescope/audio"
)

// Service errors are always recoverable; the worker retries with backoff and
// never clears what is already displayed.
var (
	// ErrService means the recognition call failed or timed out.
	ErrService = errors.New("recognize: service error")

	// ErrFetch means album art could not be retrieved.
	ErrFetch = errors.New("recognize: art fetch failed")
)

// Result is a successful match. A nil *Result from a Client means the service
// answered but recognized nothing.
type Result struct {
	Title  string
	Artist string
	ArtURL string
}

// Client maps one audio window to a match or a no-match.
type Client interface {
	Recognize(ctx context.Context, win audio.Window) (*Result, error)
}

// HTTPClient submits windows as WAV payloads to an HTTP recognition
// endpoint that answers with Shazam-style JSON.
type HTTPClient struct {
	url  string
	http *http.Client
}

// NewHTTPClient returns a client with a bounded per-request timeout.
func NewHTTPClient(url string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		url:  url,
		http: &http.Client{Timeout: timeout},
	}
}

type matchResponse struct {
	Track *struct {
		Title    string `json:"title"`
		Subtitle string `json:"subtitle"`
		Images   struct {
			CoverArt string `json:"coverart"`
		} `json:"images"`
	} `json:"track"`
}

// Recognize posts the window and decodes the response. Network errors,
// timeouts and 5xx answers wrap ErrService.
func (c *HTTPClient) Recognize(ctx context.Context, win audio.Window) (*Result, error) {
	payload, err := audio.EncodeWAV(win)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrService, err)
	}
	req.Header.Set("Content-Type", "audio/wav")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d", ErrService, resp.StatusCode)
	}

	var mr matchResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("%w: bad response: %v", ErrService, err)
	}
	if mr.Track == nil || mr.Track.Title == "" {
		return nil, nil
	}
	return &Result{
		Title:  mr.Track.Title,
		Artist: mr.Track.Subtitle,
		ArtURL: mr.Track.Images.CoverArt,
	}, nil
}
