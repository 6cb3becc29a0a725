package recognize

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ellsworth/tunescope/audio"
)

func testWindow() audio.Window {
	return audio.Window{Samples: make([]float32, 800), SampleRate: 8000}
}

func TestRecognizeMatch(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		if ct := r.Header.Get("Content-Type"); ct != "audio/wav" {
			t.Error("wrong content type:", ct)
		}
		w.Write([]byte(`{"track":{"title":"Blue Monday","subtitle":"New Order",
			"images":{"coverart":"http://example.com/art.jpg"}}}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, 5*time.Second)
	res, err := c.Recognize(context.Background(), testWindow())
	if err != nil {
		t.Fatal(err)
	}
	if res == nil || res.Title != "Blue Monday" || res.Artist != "New Order" {
		t.Fatal("bad result:", res)
	}
	if res.ArtURL != "http://example.com/art.jpg" {
		t.Fatal("art url not decoded:", res.ArtURL)
	}
	if !bytes.Equal(gotBody[0:4], []byte("RIFF")) {
		t.Fatal("payload is not a WAV file")
	}
}

func TestRecognizeNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, 5*time.Second)
	res, err := c.Recognize(context.Background(), testWindow())
	if err != nil {
		t.Fatal(err)
	}
	if res != nil {
		t.Fatal("expected no match, got", res)
	}
}

func TestRecognizeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, 5*time.Second)
	_, err := c.Recognize(context.Background(), testWindow())
	if !errors.Is(err, ErrService) {
		t.Fatal("expected ErrService, got", err)
	}
}

func TestRecognizeNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := NewHTTPClient(srv.URL, time.Second)
	_, err := c.Recognize(context.Background(), testWindow())
	if !errors.Is(err, ErrService) {
		t.Fatal("expected ErrService, got", err)
	}
}
