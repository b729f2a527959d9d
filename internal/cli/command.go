package cli

import (
	"fmt"
	"slices"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/idelchi/fsum/internal/fsum"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// Progress display modes.
const (
	ProgressAuto   = "auto"
	ProgressAlways = "always"
	ProgressNever  = "never"
)

// Command builds the root command.
func (c CLI) Command() *cobra.Command {
	var (
		options  fsum.Options
		progress string
	)

	allowedOutputs := []string{"plain", "json"}
	allowedProgress := []string{ProgressAuto, ProgressAlways, ProgressNever}

	cmd := &cobra.Command{
		Use:   "fsum [flags] [path...]",
		Short: "Sum the size of files and directories, counting every file once",
		Long: heredoc.Doc(`
			fsum reports the total size of the given paths.

			Directories are expanded recursively and symbolic links are followed.
			A file reachable through several hard links or symbolic links is
			counted once. Dangling symbolic links are ignored; other unreadable
			paths are reported on stderr and contribute nothing.

			The total is printed in bytes, followed by one line per binary unit
			(KiB, MiB, GiB, ...) the total reaches.

			Without paths the total is zero.
		`),
		Version:       c.version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(allowedOutputs, options.Output) {
				return fmt.Errorf("invalid output format %q: must be one of %v", options.Output, allowedOutputs)
			}

			if !slices.Contains(allowedProgress, progress) {
				return fmt.Errorf("invalid progress mode %q: must be one of %v", progress, allowedProgress)
			}

			if options.Workers < 1 {
				return fmt.Errorf("invalid worker count %d: must be at least 1", options.Workers)
			}

			options.Paths = args

			return logic(options, progress, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.SortFlags = false

	flags.IntVarP(&options.Workers, "workers", "j", fsum.DefaultWorkers, "Number of concurrent workers")
	flags.StringVar(&options.Engine, "engine", fsum.EngineQueue,
		fmt.Sprintf("Traversal engine: one of %v", fsum.Engines))
	flags.StringArrayVarP(&options.Excludes, "exclude", "e", nil, "Regex pattern of paths to skip (repeatable)")
	flags.StringVarP(&options.Output, "output", "o", "plain", "Output format: plain or json")
	flags.StringVar(&progress, "progress", ProgressAuto, "Progress on stderr: auto, always or never")
	flags.DurationVar(&options.ProgressInterval, "progress-interval", fsum.DefaultProgressInterval,
		"Interval between progress updates")
	flags.BoolVar(&options.Debug, "debug", false, "Enable debug output")

	return cmd
}

// Execute runs the CLI with the process arguments.
func (c CLI) Execute() error {
	return c.Command().Execute()
}
