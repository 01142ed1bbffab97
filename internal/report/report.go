package report

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// Reporter receives non-fatal test failures.
//
// The method set is the intersection of testing.TB and testify's
// assert.TestingT (plus Helper), so testify assertions can report into any
// Reporter.
type Reporter interface {
	Helper()
	Errorf(format string, args ...interface{})
}

// Source identifies who raised a failure.
type Source string

const (
	// SourceAssertion marks failures raised inside an assertion block.
	SourceAssertion Source = "assertion"

	// SourceHarness marks failures raised by the runner itself (timeouts).
	SourceHarness Source = "harness"
)

// Failure is a single reported failure.
type Failure struct {
	Source  Source `json:"source"`
	Message string `json:"message"`
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"`
}

// String renders the failure the way go test prints t.Errorf output.
func (f Failure) String() string {
	if f.File == "" {
		return f.Message
	}
	return fmt.Sprintf("%s:%d: %s", filepath.Base(f.File), f.Line, f.Message)
}

// skippedPackages are assertion libraries whose frames never locate a failure.
var skippedPackages = []string{
	"github.com/stretchr/testify/",
}

// maxCallerDepth bounds the stack walk in Errorf.
const maxCallerDepth = 50

// Recorder is a Reporter that collects failures instead of failing a test.
//
// Like testing.T, it locates a failure at the first caller that is neither
// marked with Helper nor inside an assertion library.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type Recorder struct {
	mu       sync.Mutex
	failures []Failure
	helpers  map[string]struct{}
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		failures: []Failure{},
		helpers:  make(map[string]struct{}),
	}
}

// Helper marks the calling function as a helper. Its frames are skipped
// when Errorf records a location.
func (r *Recorder) Helper() {
	var pc [1]uintptr
	if runtime.Callers(2, pc[:]) == 0 {
		return
	}
	frame, _ := runtime.CallersFrames(pc[:]).Next()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.helpers == nil {
		r.helpers = make(map[string]struct{})
	}
	r.helpers[frame.Function] = struct{}{}
}

// Errorf records an assertion failure located at the first non-helper caller.
func (r *Recorder) Errorf(format string, args ...interface{}) {
	file, line := r.caller()
	r.add(Failure{
		Source:  SourceAssertion,
		Message: fmt.Sprintf(format, args...),
		File:    file,
		Line:    line,
	})
}

// Harness records a failure raised by the runner at the given location.
func (r *Recorder) Harness(file string, line int, message string) {
	r.add(Failure{
		Source:  SourceHarness,
		Message: message,
		File:    file,
		Line:    line,
	})
}

// caller returns the location of the first frame above Errorf that is not
// a helper. Falls back to the direct caller if every frame is skipped.
func (r *Recorder) caller() (string, int) {
	pcs := make([]uintptr, maxCallerDepth)
	// Skip runtime.Callers, caller and Errorf.
	n := runtime.Callers(3, pcs)
	if n == 0 {
		return "", 0
	}
	frames := runtime.CallersFrames(pcs[:n])

	r.mu.Lock()
	defer r.mu.Unlock()

	var first runtime.Frame
	for {
		frame, more := frames.Next()
		if first.File == "" {
			first = frame
		}
		if strings.HasPrefix(frame.Function, "runtime.") {
			break
		}
		if !r.skip(frame.Function) {
			return frame.File, frame.Line
		}
		if !more {
			break
		}
	}
	return first.File, first.Line
}

// skip reports whether fn is a helper or assertion library frame.
// Callers must hold r.mu.
func (r *Recorder) skip(fn string) bool {
	if _, ok := r.helpers[fn]; ok {
		return true
	}
	for _, pkg := range skippedPackages {
		if strings.HasPrefix(fn, pkg) {
			return true
		}
	}
	return false
}

func (r *Recorder) add(f Failure) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, f)
}

// Failures returns a copy of the recorded failures in report order.
func (r *Recorder) Failures() []Failure {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Failure, len(r.failures))
	copy(out, r.failures)
	return out
}

// BySource returns the recorded failures raised by src.
func (r *Recorder) BySource(src Source) []Failure {
	var out []Failure
	for _, f := range r.Failures() {
		if f.Source == src {
			out = append(out, f)
		}
	}
	return out
}

// Len returns the number of recorded failures.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.failures)
}

// Failed reports whether any failure was recorded.
func (r *Recorder) Failed() bool {
	return r.Len() > 0
}

// Reset discards all recorded failures.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = r.failures[:0]
}

// Flush forwards every recorded failure to dst, then resets the recorder.
// Each failure is forwarded exactly once.
func (r *Recorder) Flush(dst Reporter) {
	dst.Helper()

	r.mu.Lock()
	pending := r.failures
	r.failures = []Failure{}
	r.mu.Unlock()

	for _, f := range pending {
		dst.Errorf("%s", f.String())
	}
}
