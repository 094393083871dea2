package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gitdeps/pkg/syncer"
)

// updateOpts holds the command-line flags for the update command.
type updateOpts struct {
	strict bool // exit non-zero when any git operation failed
}

// updateCommand creates the update command, which clones missing libraries
// and updates present ones until no new library appears.
func (c *CLI) updateCommand() *cobra.Command {
	var opts updateOpts

	cmd := &cobra.Command{
		Use:   "update [library-dir] [dependency-file]",
		Short: "Clone and update all declared dependencies",
		Long: `Update clones every declared library that is missing from the library
directory and pulls the ones that are present. Libraries cloned during the
run are scanned for their own dependency lists, and the process repeats
until a pass clones nothing new. Later passes never pull again.

Failed git operations are reported but do not stop the run. Use --strict
to exit with a non-zero status when any of them failed.`,
		Example: `  gitdeps update
  gitdeps update third_party --ignore-pull
  gitdeps update --clean --strict`,
		Args:              pathArgs,
		Annotations:       pathAnnotations(),
		ValidArgsFunction: completePaths,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runUpdate(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.strict, "strict", false, "exit non-zero when any git operation failed")

	return cmd
}

func (c *CLI) runUpdate(cmd *cobra.Command, opts updateOpts) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	logger := loggerFromContext(ctx)

	sy := c.synchronizer()

	var spin *Spinner
	if !c.Config.Policy.Verbose && isTerminal(os.Stderr) {
		spin = newSpinner(ctx, os.Stderr, "Synchronizing dependencies...")
		sy = spinnerSync{Synchronizer: sy, spin: spin}
		logger = spinnerLogger(logger, spin)
		spin.Start()
	}

	resolveOpts := c.Config.ResolveOptions(c.WorkDir)
	resolveOpts.Logger = logger
	driver := syncer.New(sy, logger)

	report, err := driver.Run(ctx, syncer.Options{
		Resolve:    resolveOpts,
		IgnorePull: c.Config.Policy.IgnorePull,
		Clean:      c.Config.Policy.Clean,
	})
	if spin != nil {
		finishSpinner(spin, cmd.ErrOrStderr(), report, err)
	}
	if err != nil {
		return err
	}

	printReport(out, report)
	if opts.strict {
		return report.Err()
	}
	return nil
}

// finishSpinner replaces the spinner with a one-line outcome of the run.
func finishSpinner(s *Spinner, w io.Writer, r *syncer.Report, err error) {
	switch {
	case err != nil && s.Cancelled():
		s.StopWithError(w, "Synchronization interrupted")
	case err != nil:
		s.StopWithError(w, "Synchronization failed")
	case r.Empty:
		s.Stop()
	case r.OK():
		s.StopWithSuccess(w, fmt.Sprintf("Synchronized in %d pass(es)", r.Passes))
	default:
		s.StopWithError(w, fmt.Sprintf("%d operation(s) failed", len(r.Failed)))
	}
}

// printReport prints the outcome of a synchronization run.
func printReport(w io.Writer, r *syncer.Report) {
	if r.Empty {
		printWarning(w, "No dependencies found")
		return
	}

	if r.OK() {
		printSuccess(w, "Dependencies are up to date")
	} else {
		printWarning(w, "Finished with %d failed operation(s)", len(r.Failed))
	}
	printStats(w,
		statCount{len(r.Cloned), "cloned"},
		statCount{len(r.Updated), "updated"},
		statCount{len(r.Reset), "reset"},
		statCount{r.Passes, "passes"},
	)

	for _, lib := range r.Cloned {
		printFile(w, lib.Path)
	}
	for _, f := range r.Failed {
		printError(w, "%s %s failed", f.Op, f.Library.Name)
		printDetail(w, "%v", f.Err)
	}
}
