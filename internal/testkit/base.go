package testkit

import (
	"io"
	"log/slog"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/roach88/testkit/internal/async"
	"github.com/roach88/testkit/internal/report"
)

// Base carries the per-suite settings tests share.
type Base struct {
	dir     string
	bundle  Bundle
	timeout time.Duration
	logger  *slog.Logger
}

// BaseOption configures a Base.
type BaseOption func(*Base)

// WithLogger sets the logger passed to the runner. Defaults to discarding.
func WithLogger(l *slog.Logger) BaseOption {
	return func(b *Base) {
		if l != nil {
			b.logger = l
		}
	}
}

// New creates a Base from cfg.
func New(cfg Config, opts ...BaseOption) *Base {
	cfg = cfg.withDefaults()
	b := &Base{
		dir:     cfg.Directory(),
		bundle:  Bundle{Root: cfg.ResourceRoot},
		timeout: cfg.Timeout,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Directory returns the test directory.
func (b *Base) Directory() string {
	return b.dir
}

// Timeout returns the bound used by AssertOn.
func (b *Base) Timeout() time.Duration {
	return b.timeout
}

// Bundle returns the fixture bundle.
func (b *Base) Bundle() Bundle {
	return b.bundle
}

// SetUp empties the test directory, recreating it if needed, and returns it.
// Call it first thing in a test.
func (b *Base) SetUp(t testing.TB) string {
	t.Helper()
	require.NoError(t, ResetDirectory(b.dir), "failed to reset test directory")
	return b.dir
}

// URL returns the path of the bundled fixture name.ext and fails the test
// if it does not exist.
func (b *Base) URL(t testing.TB, name, ext string) string {
	t.Helper()
	path, err := b.bundle.URL(name, ext)
	require.NoError(t, err)
	return path
}

// AssertOn runs assertions on q with the suite timeout. See AssertOn.
func (b *Base) AssertOn(t report.Reporter, q async.Queue, assertions func()) bool {
	t.Helper()

	_, file, line, _ := runtime.Caller(1)
	return assertOn(t, file, line, q, assertions, []async.Option{
		async.WithTimeout(b.timeout),
		async.WithLogger(b.logger),
	})
}
