package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/testkit/internal/testkit"
)

// ResourceOptions holds flags for the resource command.
type ResourceOptions struct {
	*RootOptions
	Root string // overrides the configured resource root
}

// ResourceResult is the JSON payload of the resource command.
type ResourceResult struct {
	Name      string `json:"name"`
	Extension string `json:"extension,omitempty"`
	Path      string `json:"path"`
}

// NewResourceCommand creates the resource command.
func NewResourceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ResourceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "resource <name> [ext]",
		Short: "Resolve a bundled fixture file",
		Long: `Print the absolute path of a fixture file in the resource bundle.

Exit codes:
  0 - Resource found
  2 - Resource missing or command error

Examples:
  testkit resource rainbow jpg
  testkit resource README
  testkit resource certificate.chain pem --root ./testdata/certs`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ext := ""
			if len(args) == 2 {
				ext = args[1]
			}
			return runResource(opts, args[0], ext, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Root, "root", "", "resource root (default: configured resource_root)")

	return cmd
}

func runResource(opts *ResourceOptions, name, ext string, cmd *cobra.Command) error {
	bundle := testkit.Bundle{Root: opts.Config.ResourceRoot}
	if opts.Root != "" {
		bundle.Root = opts.Root
	}

	out := newFormatter(opts.RootOptions, cmd.OutOrStdout())

	path, err := bundle.URL(name, ext)
	if err != nil {
		if ferr := out.Error(CodeResourceNotFound, err.Error(), nil); ferr != nil {
			return ferr
		}
		return WrapExitError(ExitCommandError, "resource lookup failed", err)
	}

	return out.Success(path, ResourceResult{Name: name, Extension: ext, Path: path})
}
