package httpserver

import "errors"

var (
	// ErrStart wraps listen and serve failures returned by Run.
	ErrStart = errors.New("http server: start failed")

	// ErrAlreadyRunning is returned when Run is called on a Server that was
	// already started. A Server serves once.
	ErrAlreadyRunning = errors.New("http server: already running")

	// ErrShutdown wraps failures of the graceful shutdown.
	ErrShutdown = errors.New("http server: graceful shutdown failed")
)
