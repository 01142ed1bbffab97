package async

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignal_FulfillOnce(t *testing.T) {
	s := newSignal()

	assert.False(t, s.fulfill(nil))
	<-s.done()

	// Second fulfillment is ignored, never a late one.
	assert.False(t, s.fulfill(&PanicError{Value: "ignored"}))
	assert.Nil(t, s.panicked())
	assert.False(t, s.abandon())
}

func TestSignal_AbandonThenFulfill(t *testing.T) {
	s := newSignal()

	assert.True(t, s.abandon())
	assert.True(t, s.fulfill(nil))

	select {
	case <-s.done():
		t.Fatal("abandoned signal must not unblock waiters")
	default:
	}
}

func TestSignal_RecordsPanic(t *testing.T) {
	s := newSignal()
	p := &PanicError{Value: "boom"}

	s.fulfill(p)
	assert.Same(t, p, s.panicked())
}
