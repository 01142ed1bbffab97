package async

import (
	"sync"
)

type signalState int

const (
	signalPending signalState = iota
	signalFulfilled
	signalAbandoned
)

// signal is the one-shot completion token of a single Run call.
//
// It has exactly one producer (the submitted unit) and one consumer (the
// waiter). The producer calls fulfill once the block has exited; the
// consumer either observes done() or calls abandon() after giving up.
// Whichever of fulfill and abandon comes first decides the outcome.
type signal struct {
	mu    sync.Mutex
	state signalState
	ch    chan struct{}
	panic *PanicError
}

func newSignal() *signal {
	return &signal{ch: make(chan struct{})}
}

// done is closed when the signal is fulfilled.
func (s *signal) done() <-chan struct{} {
	return s.ch
}

// fulfill marks the block as finished, recording p if it panicked.
// Returns true if the waiter had already abandoned the signal.
// Calls after the first are ignored.
func (s *signal) fulfill(p *PanicError) (late bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case signalPending:
		s.state = signalFulfilled
		s.panic = p
		close(s.ch)
		return false
	case signalAbandoned:
		return true
	default:
		return false
	}
}

// abandon records that the waiter stopped waiting.
// Returns false if the signal was fulfilled first, in which case the caller
// must treat the block as completed.
func (s *signal) abandon() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != signalPending {
		return false
	}
	s.state = signalAbandoned
	return true
}

// panicked returns the recorded panic, if any. Valid after done() is closed.
func (s *signal) panicked() *PanicError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.panic
}
