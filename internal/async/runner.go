package async

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout bounds how long Run waits when no timeout is given.
const DefaultTimeout = 5 * time.Second

// Option configures a Run call.
type Option func(*options)

type options struct {
	timeout time.Duration
	logger  *slog.Logger
}

// WithTimeout sets how long Run waits for the block.
// Non-positive values select DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithLogger sets the logger for submission, completion and late-completion
// events. Nil keeps the default, which discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		timeout: DefaultTimeout,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Run submits assertions to q and blocks until the block has returned, the
// timeout elapses, or ctx is done.
//
// Outcomes:
//   - nil: the block returned; its side effects are visible to the caller
//   - *PanicError: the block panicked; the signal was still fulfilled
//   - *TimeoutError: the timeout elapsed first; the block keeps running
//   - ctx.Err() (wrapped): ctx was done first
//   - ErrQueueClosed (wrapped): q rejected the block
//
// Failures the block reports through its own channel (for example t.Errorf
// or testify assertions) are untouched by Run.
//
// Each call creates its own completion signal. A block that finishes after
// Run gave up is logged and otherwise ignored.
func Run(ctx context.Context, q Queue, assertions func(), opts ...Option) error {
	o := newOptions(opts)
	id := uuid.Must(uuid.NewV7()).String()
	logger := o.logger.With("id", id)

	sig := newSignal()
	start := time.Now()

	work := func() {
		var p *PanicError

		// Deferred so Goexit (t.FailNow off the test goroutine) still fulfills.
		defer func() {
			if late := sig.fulfill(p); late {
				if p != nil {
					logger.Error("assertions panicked after waiter gave up",
						"elapsed", time.Since(start),
						"panic", p.Value,
					)
					return
				}
				logger.Warn("assertions completed after waiter gave up",
					"elapsed", time.Since(start),
				)
			}
		}()
		defer func() {
			if r := recover(); r != nil {
				p = &PanicError{ID: id, Value: r, Stack: debug.Stack()}
			}
		}()

		assertions()
	}

	if !q.Submit(work) {
		return fmt.Errorf("run %s: %w", id, ErrQueueClosed)
	}
	logger.Debug("assertions submitted", "timeout", o.timeout)

	timer := time.NewTimer(o.timeout)
	defer timer.Stop()

	select {
	case <-sig.done():
		return completed(logger, sig, start)

	case <-timer.C:
		if !sig.abandon() {
			return completed(logger, sig, start)
		}
		logger.Warn("assertions timed out", "timeout", o.timeout)
		return &TimeoutError{ID: id, Limit: o.timeout, Elapsed: time.Since(start)}

	case <-ctx.Done():
		if !sig.abandon() {
			return completed(logger, sig, start)
		}
		logger.Warn("stopped waiting for assertions", "error", ctx.Err())
		return fmt.Errorf("run %s: %w", id, ctx.Err())
	}
}

// completed reports the outcome of a fulfilled signal.
func completed(logger *slog.Logger, sig *signal, start time.Time) error {
	if p := sig.panicked(); p != nil {
		logger.Debug("assertions panicked", "elapsed", time.Since(start), "panic", p.Value)
		return p
	}
	logger.Debug("assertions completed", "elapsed", time.Since(start))
	return nil
}
