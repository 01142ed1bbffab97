// Package async runs assertion blocks on an execution context and waits,
// with a bound, for them to finish.
//
// # Execution Contexts
//
// A Queue accepts units of work and returns immediately. Three are provided:
//
//   - Go: every unit runs on its own goroutine (never the caller's)
//   - NewSerial: one worker drains a FIFO backlog, like a serial dispatch queue
//   - NewPool: N workers drain one shared backlog
//
// # Waiting
//
// Run submits the block, then blocks the caller until the block returns,
// the timeout elapses, or the context is cancelled:
//
//	err := async.Run(ctx, q, func() {
//	    assert.Equal(t, 2, counter.Load())
//	}, async.WithTimeout(time.Second))
//	if async.IsTimeout(err) {
//	    // the block is still running; nothing cancels it
//	}
//
// A normal return means every side effect of the block happened before Run
// returned. Run is the only synchronization point between the block and the
// caller.
//
// The test may return while a timed-out block is still running. A
// *testing.T panics when logged to after its test completes, so blocks that
// may outlive the wait should report into a report.Recorder and let the test
// Flush it, rather than call t.Errorf directly.
//
// Submitting to a queue whose only worker is the calling goroutine cannot
// complete. Run does not deadlock in that case (the wait is bounded), but it
// always times out. Use Go when in doubt.
package async
