// Package report is the failure channel shared by the assertion runner and
// the assertion blocks it executes.
//
// A *testing.T satisfies Reporter directly. Tests that need to observe
// failures instead of failing (for example, asserting that exactly one
// timeout was reported) pass a Recorder and inspect it afterwards:
//
//	rec := report.NewRecorder()
//	testkit.AssertOn(rec, q, func() {
//	    assert.Equal(rec, 2, 1+1)
//	})
//	require.False(t, rec.Failed())
//
// Recorder is safe for concurrent use, so assertion blocks running on other
// goroutines can report into it while the test goroutine waits.
package report
