// Package testkit is the shared base of the client library's test suites.
//
// It provides:
//   - a test directory that is emptied before each test (SetUp)
//   - lookup of bundled fixture files by name and extension (Bundle)
//   - assertions that unwrap an error to a concrete type and, optionally,
//     to one of its nested failure reasons (AssertErrorAs, AssertErrorReason)
//   - AssertOn, which runs assertions on an execution context and fails the
//     test if they do not finish in time
//
// Suites typically build one Base from the loaded Config:
//
//	var base = testkit.New(testkit.DefaultConfig())
//
//	func TestDownload(t *testing.T) {
//	    dir := base.SetUp(t)
//	    q := async.NewSerial()
//	    defer q.Close()
//
//	    client.Download(base.URL(t, "rainbow", "jpg"), dir, q)
//	    base.AssertOn(t, q, func() {
//	        assert.FileExists(t, filepath.Join(dir, "rainbow.jpg"))
//	    })
//	}
package testkit
