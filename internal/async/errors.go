package async

import (
	"errors"
	"fmt"
	"time"
)

// ErrQueueClosed is returned when the queue rejects the assertion block.
var ErrQueueClosed = errors.New("queue rejected assertions: closed")

// TimeoutError is returned when the assertion block did not finish in time.
//
// The block is not cancelled; it may still be running when this is returned.
type TimeoutError struct {
	// ID identifies the Run call in logs.
	ID string

	// Limit is the bound that elapsed.
	Limit time.Duration

	// Elapsed is how long Run actually waited.
	Elapsed time.Duration
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("assertions did not complete within %s", e.Limit)
}

// Timeout reports true, matching the net.Error convention.
func (e *TimeoutError) Timeout() bool {
	return true
}

// PanicError carries a panic recovered from inside an assertion block.
type PanicError struct {
	// ID identifies the Run call in logs.
	ID string

	// Value is the value passed to panic.
	Value any

	// Stack is the stack of the panicking goroutine.
	Stack []byte
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("assertions panicked: %v", e.Value)
}

// Unwrap returns the panic value if it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// IsTimeout returns true if err is or wraps a *TimeoutError.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}

// IsPanic returns true if err is or wraps a *PanicError.
func IsPanic(err error) bool {
	var pe *PanicError
	return errors.As(err, &pe)
}
