package audio

import "errors"

// Capture errors. Open failures are fatal at startup; everything else is
// recoverable and retried with backoff inside the source.
var (
	// ErrCaptureOpen means the input device could not be opened.
	ErrCaptureOpen = errors.New("audio: capture device open failed")

	// ErrCaptureRead means the device stopped delivering samples.
	ErrCaptureRead = errors.New("audio: capture read failed")

	// ErrSourceClosed means the capture source has shut down and no more
	// windows will be produced.
	ErrSourceClosed = errors.New("audio: capture source closed")
)
