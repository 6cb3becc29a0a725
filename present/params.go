package present

import (
	"encoding/json"
	"os"
	"sync/atomic"
)

// Params are the tunable presentation parameters. They carry json tags so the
// same struct serves the config file and the graphql params type.
type Params struct {
	FadeInMs      float64 `json:"fadeInMs"`
	ScrollSpeed   float64 `json:"scrollSpeed"`
	ScrollGap     float64 `json:"scrollGap"`
	SafeWidthFrac float64 `json:"safeWidth"`
	StretchFactor float64 `json:"stretchFactor"`
	TitlePx       float64 `json:"titlePx"`
	ArtistPx      float64 `json:"artistPx"`
}

// DefaultParams mirror the tuning of the original display.
var DefaultParams = Params{
	FadeInMs:      400,
	ScrollSpeed:   100,
	ScrollGap:     64,
	SafeWidthFrac: 0.8,
	StretchFactor: 4.0 / 3.0,
	TitlePx:       72,
	ArtistPx:      48,
}

// ParamStore shares Params between the render loop and the api server. The
// render loop reads a snapshot each frame; mutations replace the whole value.
type ParamStore struct {
	p atomic.Pointer[Params]
}

// NewParamStore returns a store seeded with the given params.
func NewParamStore(p Params) *ParamStore {
	s := &ParamStore{}
	s.p.Store(&p)
	return s
}

// Get returns the current params. Callers must not mutate the result.
func (s *ParamStore) Get() *Params {
	return s.p.Load()
}

// Set replaces the current params.
func (s *ParamStore) Set(p Params) {
	s.p.Store(&p)
}

// LoadParams reads params from a JSON config file. A missing file is not an
// error; defaults are returned.
func LoadParams(path string) (Params, error) {
	fp, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultParams, nil
		}
		return DefaultParams, err
	}
	defer fp.Close()

	p := DefaultParams
	if err := json.NewDecoder(fp).Decode(&p); err != nil {
		return DefaultParams, err
	}
	return p, nil
}

// SaveParams writes params to a JSON config file.
func SaveParams(path string, p Params) error {
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fp.Close()
	return json.NewEncoder(fp).Encode(&p)
}
