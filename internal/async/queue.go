package async

import "sync"

// Queue is an execution context: it accepts a unit of work for asynchronous
// execution and returns without waiting for it.
//
// Submit returns false if the work was rejected (the queue is closed).
type Queue interface {
	Submit(fn func()) bool
}

// QueueFunc adapts a plain scheduling function to Queue.
// The function must not run fn synchronously on the caller.
type QueueFunc func(fn func())

// Submit calls f(fn).
func (f QueueFunc) Submit(fn func()) bool {
	f(fn)
	return true
}

// Go runs every unit of work on a fresh goroutine.
//
// Thread-safety: Go is stateless and safe for concurrent use.
type Go struct{}

// Submit starts fn on a new goroutine.
func (Go) Submit(fn func()) bool {
	go fn()
	return true
}

// WorkQueue is an unbounded FIFO backlog drained by a fixed set of workers.
//
// With one worker (NewSerial) units run one at a time in submission order.
// With more workers (NewPool) units start in submission order but may run
// concurrently.
//
// Thread-safety: Submit, Len and Close are safe from any goroutine.
type WorkQueue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	work    []func()
	closed  bool
	workers int
	wg      sync.WaitGroup
}

// NewSerial creates a queue with a single worker goroutine.
func NewSerial() *WorkQueue {
	return newWorkQueue(1)
}

// NewPool creates a queue with n worker goroutines. n < 1 is treated as 1.
func NewPool(n int) *WorkQueue {
	if n < 1 {
		n = 1
	}
	return newWorkQueue(n)
}

func newWorkQueue(n int) *WorkQueue {
	q := &WorkQueue{
		work:    make([]func(), 0, 16),
		workers: n,
	}
	q.cond = sync.NewCond(&q.mu)

	q.wg.Add(n)
	for i := 0; i < n; i++ {
		go q.worker()
	}
	return q
}

// Submit appends fn to the backlog.
// Returns false if the queue is closed.
func (q *WorkQueue) Submit(fn func()) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}

	q.work = append(q.work, fn)
	q.cond.Signal()
	return true
}

// Len returns the number of units waiting to start.
func (q *WorkQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.work)
}

// Workers returns the number of worker goroutines.
func (q *WorkQueue) Workers() int {
	return q.workers
}

// Close rejects further submissions, lets the workers drain the backlog,
// and waits for them to exit.
//
// Close must not be called from inside a unit running on q.
func (q *WorkQueue) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		q.cond.Broadcast()
	}
	q.mu.Unlock()

	q.wg.Wait()
}

func (q *WorkQueue) worker() {
	defer q.wg.Done()

	for {
		fn, ok := q.next()
		if !ok {
			return
		}
		fn()
	}
}

// next blocks until a unit is available.
// Returns false once the queue is closed and empty.
func (q *WorkQueue) next() (func(), bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.work) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.work) == 0 {
		return nil, false
	}

	fn := q.work[0]

	// Nil out the slot so the closure can be collected.
	q.work[0] = nil
	if len(q.work) == 1 {
		q.work = q.work[:0]
	} else {
		q.work = q.work[1:]
	}

	return fn, true
}
