package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/testkit/internal/async"
)

// ProbeOptions holds flags for the probe command.
type ProbeOptions struct {
	*RootOptions
	Queue   string        // "go" | "serial" | "pool"
	Workers int           // pool size
	Delay   time.Duration // how long the probe block sleeps
	Timeout time.Duration // 0 uses the configured timeout
}

// ValidQueues defines the queue kinds probe can run on.
var ValidQueues = []string{"go", "serial", "pool"}

// ProbeResult is the JSON payload of the probe command.
type ProbeResult struct {
	Queue     string `json:"queue"`
	Workers   int    `json:"workers"`
	Delay     string `json:"delay"`
	Timeout   string `json:"timeout"`
	Completed bool   `json:"completed"`
}

// NewProbeCommand creates the probe command.
func NewProbeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProbeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Run a timed block through the assertion runner",
		Long: `Submit a block that sleeps for --delay to an execution queue and
wait for it the way AssertOn does.

Exit codes:
  0 - Block completed within the timeout
  1 - Timed out
  2 - Command error

Examples:
  testkit probe
  testkit probe --queue serial --delay 2s --timeout 1s
  testkit probe --queue pool --workers 8 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProbe(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Queue, "queue", "go", "queue kind (go|serial|pool)")
	cmd.Flags().IntVar(&opts.Workers, "workers", 4, "worker count for --queue pool")
	cmd.Flags().DurationVar(&opts.Delay, "delay", 100*time.Millisecond, "how long the block runs")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "wait bound (default: configured timeout)")

	return cmd
}

// newQueue builds the queue for kind. The returned release func must only be
// called once the submitted block has finished.
func newQueue(kind string, workers int) (async.Queue, int, func(), error) {
	switch kind {
	case "go":
		return async.Go{}, 0, func() {}, nil
	case "serial":
		wq := async.NewSerial()
		return wq, wq.Workers(), wq.Close, nil
	case "pool":
		wq := async.NewPool(workers)
		return wq, wq.Workers(), wq.Close, nil
	default:
		return nil, 0, nil, fmt.Errorf("invalid queue %q: must be one of %v", kind, ValidQueues)
	}
}

func runProbe(opts *ProbeOptions, cmd *cobra.Command) error {
	out := newFormatter(opts.RootOptions, cmd.OutOrStdout())

	if opts.Delay < 0 {
		err := fmt.Errorf("delay must not be negative, got %s", opts.Delay)
		if ferr := out.Error(CodeInvalidFlags, err.Error(), nil); ferr != nil {
			return ferr
		}
		return WrapExitError(ExitCommandError, "invalid flags", err)
	}
	q, workers, closeQueue, err := newQueue(opts.Queue, opts.Workers)
	if err != nil {
		if ferr := out.Error(CodeInvalidFlags, err.Error(), nil); ferr != nil {
			return ferr
		}
		return WrapExitError(ExitCommandError, "invalid flags", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = opts.Config.Timeout
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	delay := opts.Delay
	runErr := async.Run(ctx, q, func() {
		time.Sleep(delay)
	}, async.WithTimeout(timeout), async.WithLogger(opts.Logger))

	result := ProbeResult{
		Queue:     opts.Queue,
		Workers:   workers,
		Delay:     delay.String(),
		Timeout:   timeout.String(),
		Completed: runErr == nil,
	}

	if runErr == nil {
		closeQueue()
		return out.Success(fmt.Sprintf("✓ completed on %s queue within %s", opts.Queue, timeout), result)
	}

	// The block may still be sleeping on the queue; release the queue once
	// it drains without holding up the exit.
	go closeQueue()

	code := CodeProbeFailed
	if async.IsTimeout(runErr) {
		code = CodeTimeout
	}
	if ferr := out.Error(code, runErr.Error(), result); ferr != nil {
		return ferr
	}
	return WrapExitError(ExitFailure, "probe failed", runErr)
}
