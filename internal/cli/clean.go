package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/testkit/internal/testkit"
)

// CleanOptions holds flags for the clean command.
type CleanOptions struct {
	*RootOptions
	Dir string // overrides the configured test directory
}

// CleanResult is the JSON payload of the clean command.
type CleanResult struct {
	Directory string `json:"directory"`
}

// NewCleanCommand creates the clean command.
func NewCleanCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CleanOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Empty the shared test directory",
		Long: `Remove everything inside the test directory and recreate it.

This is what every test does on setup; run it by hand to reclaim space
after an interrupted test run.

Examples:
  testkit clean
  testkit clean --dir /tmp/org.example.tests
  testkit clean --config testkit.yaml --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Dir, "dir", "", "directory to reset (default: configured test directory)")

	return cmd
}

func runClean(opts *CleanOptions, cmd *cobra.Command) error {
	dir := opts.Config.Directory()
	if opts.Dir != "" {
		dir = opts.Dir
	}

	out := newFormatter(opts.RootOptions, cmd.OutOrStdout())

	if err := testkit.ResetDirectory(dir); err != nil {
		if ferr := out.Error(CodeResetFailed, err.Error(), CleanResult{Directory: dir}); ferr != nil {
			return ferr
		}
		return WrapExitError(ExitCommandError, "failed to reset test directory", err)
	}

	opts.Logger.Debug("test directory reset", "dir", dir)
	return out.Success(fmt.Sprintf("Reset %s", dir), CleanResult{Directory: dir})
}
