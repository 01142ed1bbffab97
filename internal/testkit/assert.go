package testkit

import (
	"context"
	"errors"
	"reflect"
	"runtime"

	"github.com/roach88/testkit/internal/async"
	"github.com/roach88/testkit/internal/report"
)

// harnessReporter is implemented by reporters that distinguish runner
// failures from assertion failures (report.Recorder).
type harnessReporter interface {
	Harness(file string, line int, message string)
}

// AssertOn runs assertions on q and waits for them to finish.
//
// If they do not finish within the timeout (DefaultTimeout unless
// async.WithTimeout is given) one failure is reported on t and AssertOn
// returns false. The test keeps running. Failures reported inside the block
// reach t through whatever the block reports on; a panic inside the block is
// reported on t with its stack.
//
// After a timeout the block keeps running, and the test may return before it
// does. A *testing.T panics if it is logged to after its test completed, so a
// block that may outlive the wait must report into a report.Recorder, which
// the test flushes to t once it knows the block is done (or simply inspects):
//
//	rec := report.NewRecorder()
//	testkit.AssertOn(t, q, func() {
//	    assert.Equal(rec, want, got)
//	})
//	rec.Flush(t)
func AssertOn(t report.Reporter, q async.Queue, assertions func(), opts ...async.Option) bool {
	t.Helper()

	_, file, line, _ := runtime.Caller(1)
	return assertOn(t, file, line, q, assertions, opts)
}

func assertOn(t report.Reporter, file string, line int, q async.Queue, assertions func(), opts []async.Option) bool {
	t.Helper()

	err := async.Run(context.Background(), q, assertions, opts...)
	if err == nil {
		return true
	}

	var pe *async.PanicError
	if errors.As(err, &pe) {
		t.Errorf("%v\n%s", pe, pe.Stack)
		return false
	}

	if hr, ok := t.(harnessReporter); ok {
		hr.Harness(file, line, err.Error())
	} else {
		t.Errorf("%s", err.Error())
	}
	return false
}

// AssertErrorAs reports a failure unless err is, or wraps, an E.
// On a match evaluation is called with the unwrapped error.
func AssertErrorAs[E error](t report.Reporter, err error, evaluation func(E)) bool {
	t.Helper()

	var target E
	if err == nil || !errors.As(err, &target) {
		t.Errorf("error is not a %s: %v", typeName[E](), err)
		return false
	}

	evaluation(target)
	return true
}

// AssertErrorReason is AssertErrorAs followed by a drill into one nested
// failure reason. reason extracts it and returns false if err carries a
// different one; name labels it in the failure message.
//
//	testkit.AssertErrorReason(t, err, "serverTrustEvaluationFailed",
//	    (*client.Error).ServerTrustReason,
//	    func(r client.TrustFailureReason) {
//	        assert.Equal(t, client.NoRequiredEvaluator, r.Kind)
//	    })
func AssertErrorReason[E error, R any](t report.Reporter, err error, name string, reason func(E) (R, bool), evaluation func(R)) bool {
	t.Helper()

	matched := false
	AssertErrorAs(t, err, func(e E) {
		t.Helper()
		r, ok := reason(e)
		if !ok {
			t.Errorf("error is not .%s: %v", name, e)
			return
		}
		matched = true
		evaluation(r)
	})
	return matched
}

func typeName[E any]() string {
	return reflect.TypeOf((*E)(nil)).Elem().String()
}

