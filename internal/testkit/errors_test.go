package testkit

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/testkit/internal/report"
)

// clientError stands in for a client library error with nested reasons.
type clientError struct {
	kind   string
	reason *trustReason
}

type trustReason struct {
	code string
	host string
}

func (e *clientError) Error() string {
	return "request failed: " + e.kind
}

func (e *clientError) serverTrust() (trustReason, bool) {
	if e.reason == nil {
		return trustReason{}, false
	}
	return *e.reason, true
}

type timeoutError interface {
	error
	Timeout() bool
}

func TestAssertErrorAs_MatchesWrapped(t *testing.T) {
	rec := report.NewRecorder()
	err := fmt.Errorf("download: %w", &clientError{kind: "sessionTaskFailed"})

	var got *clientError
	ok := AssertErrorAs(rec, err, func(e *clientError) {
		got = e
	})

	assert.True(t, ok)
	assert.False(t, rec.Failed())
	require.NotNil(t, got)
	assert.Equal(t, "sessionTaskFailed", got.kind)
}

func TestAssertErrorAs_Mismatch(t *testing.T) {
	rec := report.NewRecorder()

	called := false
	ok := AssertErrorAs(rec, errors.New("connection reset"), func(*clientError) {
		called = true
	})

	assert.False(t, ok)
	assert.False(t, called)
	require.Equal(t, 1, rec.Len())
	assert.Equal(t, "error is not a *testkit.clientError: connection reset", rec.Failures()[0].Message)
}

func TestAssertErrorAs_NilError(t *testing.T) {
	rec := report.NewRecorder()

	ok := AssertErrorAs(rec, nil, func(*clientError) {
		t.Fatal("evaluation must not run")
	})

	assert.False(t, ok)
	assert.Equal(t, 1, rec.Len())
}

func TestAssertErrorAs_InterfaceTarget(t *testing.T) {
	rec := report.NewRecorder()
	err := fmt.Errorf("wait: %w", &timeoutStub{})

	ok := AssertErrorAs(rec, err, func(e timeoutError) {
		assert.True(rec, e.Timeout())
	})

	assert.True(t, ok)
	assert.False(t, rec.Failed())
}

type timeoutStub struct{}

func (*timeoutStub) Error() string { return "i/o timeout" }
func (*timeoutStub) Timeout() bool { return true }

func TestAssertErrorReason_Match(t *testing.T) {
	rec := report.NewRecorder()
	err := &clientError{
		kind:   "serverTrustEvaluationFailed",
		reason: &trustReason{code: "noRequiredEvaluator", host: "example.com"},
	}

	ok := AssertErrorReason(rec, err, "serverTrustEvaluationFailed",
		(*clientError).serverTrust,
		func(r trustReason) {
			assert.Equal(rec, "noRequiredEvaluator", r.code)
			assert.Equal(rec, "example.com", r.host)
		})

	assert.True(t, ok)
	assert.False(t, rec.Failed())
}

func TestAssertErrorReason_WrongReason(t *testing.T) {
	rec := report.NewRecorder()
	err := &clientError{kind: "explicitlyCancelled"}

	ok := AssertErrorReason(rec, err, "serverTrustEvaluationFailed",
		(*clientError).serverTrust,
		func(trustReason) {
			t.Fatal("evaluation must not run")
		})

	assert.False(t, ok)
	require.Equal(t, 1, rec.Len())
	assert.Equal(t, "error is not .serverTrustEvaluationFailed: request failed: explicitlyCancelled", rec.Failures()[0].Message)
}

func TestAssertErrorReason_WrongType(t *testing.T) {
	rec := report.NewRecorder()

	ok := AssertErrorReason(rec, errors.New("boom"), "serverTrustEvaluationFailed",
		(*clientError).serverTrust,
		func(trustReason) {})

	assert.False(t, ok)
	// Only the type mismatch is reported, not the reason.
	require.Equal(t, 1, rec.Len())
	assert.Contains(t, rec.Failures()[0].Message, "error is not a *testkit.clientError")
}

func TestErrorAssertions_FailureLocatedInTest(t *testing.T) {
	rec := report.NewRecorder()

	AssertErrorAs(rec, errors.New("x"), func(*clientError) {})
	AssertErrorReason(rec, &clientError{kind: "explicitlyCancelled"}, "serverTrustEvaluationFailed",
		(*clientError).serverTrust, func(trustReason) {})
	AssertErrorReason(rec, errors.New("y"), "serverTrustEvaluationFailed",
		(*clientError).serverTrust, func(trustReason) {})

	failures := rec.Failures()
	require.Len(t, failures, 3)
	for _, f := range failures {
		assert.Equal(t, "errors_test.go", filepath.Base(f.File), f.Message)
	}
}

func TestErrorFailureMessages_Golden(t *testing.T) {
	rec := report.NewRecorder()
	reset := errors.New("connection reset")

	AssertErrorAs(rec, reset, func(*clientError) {})
	AssertErrorAs(rec, nil, func(*clientError) {})
	AssertErrorReason(rec, &clientError{kind: "explicitlyCancelled"}, "serverTrustEvaluationFailed",
		(*clientError).serverTrust, func(trustReason) {})
	AssertErrorAs(rec, reset, func(timeoutError) {})

	var lines []string
	for _, f := range rec.Failures() {
		lines = append(lines, f.Message)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "error_failures", []byte(strings.Join(lines, "\n")+"\n"))
}
