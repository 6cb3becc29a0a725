package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/gordonklaus/portaudio"

	"github.com/ellsworth/tunescope/api"
	"github.com/ellsworth/tunescope/audio"
	"github.com/ellsworth/tunescope/gfx/trackboard"
	"github.com/ellsworth/tunescope/present"
	"github.com/ellsworth/tunescope/recognize"
	"github.com/ellsworth/tunescope/track"
)

const (
	blockSize = 1024
	frameRate = 60

	serviceTimeout = 10 * time.Second
)

var (
	width      = flag.Int("width", 800, "width of window")
	height     = flag.Int("height", 600, "height of window")
	fullscreen = flag.Bool("fullscreen", false, "start in fullscreen")
	stretch    = flag.Bool("stretch", false, "start with CRT stretch compensation")

	windowSeconds = flag.Float64("window-seconds", 5,
		"seconds of audio per recognition attempt")
	sampleRate = flag.Float64("sample-rate", 44100, "capture sample rate")
	serviceURL = flag.String("service-url", "http://localhost:8090/recognize",
		"recognition service endpoint")
	apiAddr    = flag.String("api-addr", ":8080", "address for the control api, empty to disable")
	configFile = flag.String("config", "tunescope.json", "presentation params file")

	listDevices = flag.Bool("devices", false, "list capture devices and exit")
)

func initGfx(done chan struct{}, params *present.Params) *trackboard.Board {
	runtime.LockOSThread()

	b, err := trackboard.NewBoard(done, &trackboard.Config{
		Width: *width, Height: *height,
		Title:    "tunescope",
		FPS:      frameRate,
		TitlePx:  params.TitlePx,
		ArtistPx: params.ArtistPx,
	})
	if err != nil {
		log.Fatal("error creating display:", err)
	}
	return b
}

func main() {
	flag.Parse()

	if *listDevices {
		portaudio.Initialize()
		defer portaudio.Terminate()
		out, err := audio.Devices()
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(out)
		return
	}

	params, err := present.LoadParams(*configFile)
	if err != nil {
		log.Println("[WARNING] could not load config:", err)
	}
	paramStore := present.NewParamStore(params)

	done := make(chan struct{})
	defer close(done)

	// The graphics have to be the first thing we initialize on macOS; I'm
	// guessing it's because of the syscall that binds it to the main thread.
	board := initGfx(done, &params)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source, err := audio.OpenSource(ctx, &audio.Config{
		BlockSize:  blockSize,
		Channels:   1,
		SampleRate: *sampleRate,
	})
	if err != nil {
		log.Fatal("error opening capture device: ", err)
	}

	windows := audio.NewWindower(source.Frames(), int(*sampleRate),
		time.Duration(*windowSeconds*float64(time.Second)))

	store := track.NewStore()
	worker := recognize.NewWorker(windows,
		recognize.NewHTTPClient(*serviceURL, serviceTimeout),
		recognize.NewArtFetcher(serviceTimeout),
		store, recognize.DefaultWorkerConfig)

	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Run(ctx)
	}()

	if *apiAddr != "" {
		srv, err := api.New(store, paramStore)
		if err != nil {
			log.Fatal("error building api schema:", err)
		}
		go func() {
			if err := srv.ListenAndServe(*apiAddr); err != nil {
				log.Println("[ERROR] api server:", err)
			}
		}()
	}

	layout := present.LayoutNormal
	if *stretch {
		layout = present.LayoutStretch
	}
	winMode := present.ModeWindowed
	if *fullscreen {
		winMode = present.ModeFullscreen
		board.Window().SetFullscreen(true)
	}

	rndr := newRenderer(store, paramStore, layout, winMode)
	rndr.attach(board)

	board.Start()

	// Window closed: stop the worker, then persist any tuning changes.
	cancel()
	select {
	case <-workerDone:
	case <-time.After(2 * time.Second):
		log.Println("[WARNING] recognition worker did not stop in time")
	}
	if err := present.SaveParams(*configFile, *paramStore.Get()); err != nil {
		log.Println("[ERROR] saving config:", err)
	}
}
