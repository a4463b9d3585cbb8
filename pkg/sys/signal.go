// SPDX-License-Identifier: Apache-2.0

// Package sys handles OS signals so cleanup logic runs on interrupt as well
// as on normal exit paths.
package sys

import (
	"os"
	"os/signal"
	"sync"

	"github.com/joomcode/errorx"
)

// SignalCallback defines the OS signal callback function.
type SignalCallback func(os.Signal)

// ShutdownFunc stops the handler's signal processing goroutine.
type ShutdownFunc func()

// SignalHandler dispatches OS signals to registered callbacks. Only one
// callback may be registered per signal.
type SignalHandler interface {
	// Register registers a callback for the given signal. It returns an
	// error when a callback already exists or the handler was shut down.
	Register(sig os.Signal, cb SignalCallback) error
	// Unregister removes the callback for the given signal.
	Unregister(sig os.Signal)
	// IsActive returns true while the handler is able to process signals.
	IsActive() bool
}

type signalHandler struct {
	mu sync.Mutex

	receiver  chan os.Signal
	callbacks map[os.Signal]SignalCallback

	active bool
	stop   chan struct{}
	done   chan struct{}
}

func (sh *signalHandler) Register(sig os.Signal, cb SignalCallback) error {
	if sig == nil {
		return errorx.IllegalArgument.New("signal cannot be nil")
	}
	if cb == nil {
		return errorx.IllegalArgument.New("callback function cannot be nil")
	}
	if !sh.IsActive() {
		return errorx.IllegalState.New("cannot register a callback for %s since handler is not active", sig)
	}

	sh.mu.Lock()
	defer sh.mu.Unlock()

	if _, ok := sh.callbacks[sig]; ok {
		return errorx.IllegalState.New("callback already exists for %s", sig)
	}

	sh.callbacks[sig] = cb
	signal.Notify(sh.receiver, sig)

	return nil
}

func (sh *signalHandler) Unregister(sig os.Signal) {
	if sig == nil {
		return
	}

	sh.mu.Lock()
	defer sh.mu.Unlock()

	delete(sh.callbacks, sig)
}

func (sh *signalHandler) IsActive() bool {
	sh.mu.Lock()
	defer sh.mu.Unlock()

	return sh.active
}

func (sh *signalHandler) invokeCallback(sig os.Signal) {
	sh.mu.Lock()
	cb, ok := sh.callbacks[sig]
	sh.mu.Unlock()

	if ok {
		cb(sig)
	}
}

func (sh *signalHandler) run() {
	for {
		select {
		case sig := <-sh.receiver:
			sh.invokeCallback(sig)
		case <-sh.stop:
			signal.Stop(sh.receiver)
			close(sh.done)
			return
		}
	}
}

func (sh *signalHandler) shutdown() {
	sh.mu.Lock()
	if !sh.active {
		sh.mu.Unlock()
		return
	}
	sh.active = false
	sh.mu.Unlock()

	close(sh.stop)
	<-sh.done
}

// NewSignalHandler returns an active SignalHandler. The caller is expected
// to call the returned ShutdownFunc to stop listening for signals.
func NewSignalHandler() (SignalHandler, ShutdownFunc) {
	sh := &signalHandler{
		callbacks: map[os.Signal]SignalCallback{},
		receiver:  make(chan os.Signal, 1),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
		active:    true,
	}

	go sh.run()

	return sh, sh.shutdown
}
