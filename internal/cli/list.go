package cli

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gitdeps/pkg/deps"
	"github.com/matzehuels/gitdeps/pkg/errors"
	depsio "github.com/matzehuels/gitdeps/pkg/io"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// listOpts holds the command-line flags for the list command.
type listOpts struct {
	format      string // output format: text, json, yaml
	output      string // output file for json/yaml (stdout if empty)
	interactive bool   // browse the listing in a terminal UI
}

// listCommand creates the list command, which resolves the dependency set
// once and prints every library without touching the network.
func (c *CLI) listCommand() *cobra.Command {
	opts := listOpts{format: formatText}

	cmd := &cobra.Command{
		Use:   "list [library-dir] [dependency-file]",
		Short: "List the dependencies declared below a library directory",
		Long: `List resolves the dependency set once and prints, for every library,
its source, ref, and local path. Library directory defaults to ./libraries
and the dependency file name to dependency.txt.`,
		Example: `  gitdeps list
  gitdeps list third_party deps.txt --format json
  gitdeps list --interactive`,
		Args:              pathArgs,
		Annotations:       pathAnnotations(),
		ValidArgsFunction: completePaths,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runList(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", formatText, "output format: text, json, yaml")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write json/yaml output to a file")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse the dependencies interactively")

	return cmd
}

func (c *CLI) runList(cmd *cobra.Command, opts listOpts) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if opts.interactive && !isTerminal(os.Stdout) {
		return errors.New(errors.ErrCodeInvalidInput, "--interactive requires a terminal")
	}

	if err := c.synchronizer().Version(ctx); err != nil {
		return err
	}

	res, ok, err := c.resolve(ctx, cmd)
	if err != nil || !ok {
		return err
	}

	switch {
	case opts.interactive:
		return browse(ctx, depsio.NewListing(res))
	case opts.format == formatText:
		for _, lib := range depsio.NewListing(res).Libraries {
			printLibrary(out, lib)
		}
		return nil
	case opts.format == formatJSON || opts.format == formatYAML:
		if opts.output == "" {
			return depsio.WriteListing(res, out, depsio.Format(opts.format))
		}
		if err := depsio.ExportListing(res, opts.output, depsio.Format(opts.format)); err != nil {
			return err
		}
		printSuccess(out, "Wrote %d dependencies", res.Set.Len())
		printFile(out, opts.output)
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown format %q (want text, json, or yaml)", opts.format)
	}
}

// resolve runs one resolution pass with the effective configuration.
// It reports ok=false, after telling the user on stderr, when there is
// nothing to show.
func (c *CLI) resolve(ctx context.Context, cmd *cobra.Command) (*deps.Resolution, bool, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	opts := c.Config.ResolveOptions(c.WorkDir)
	opts.Logger = logger
	res, err := deps.Resolve(ctx, opts)
	switch {
	case errors.Is(err, errors.ErrCodeNoDependencies):
		printWarning(cmd.ErrOrStderr(), "No dependencies found")
		printDetail(cmd.ErrOrStderr(), "looked in %s and %s", c.Config.LibraryDir, c.WorkDir)
		return res, false, nil
	case errors.Is(err, errors.ErrCodeInvalidLibraryRoot):
		printError(cmd.ErrOrStderr(), "%s", errors.UserMessage(err))
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}

	prog.done("resolved dependencies", "libraries", res.Set.Len(), "files", len(res.Files))
	return res, true, nil
}

// browse runs the interactive library list until the user quits.
func browse(ctx context.Context, listing depsio.Listing) error {
	p := tea.NewProgram(NewLibraryListModel(listing), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
