package cli

import (
	"bytes"
	stderrors "errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gitdeps/pkg/dag"
	"github.com/matzehuels/gitdeps/pkg/errors"
	depsio "github.com/matzehuels/gitdeps/pkg/io"
	"github.com/matzehuels/gitdeps/pkg/render/nodelink"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	format   string // output format: dot, svg, json
	output   string // output file (stdout if empty)
	detailed bool   // include source and ref in node labels
}

// graphCommand creates the graph command, which renders which dependency
// list declares which library.
func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{format: formatDOT}

	cmd := &cobra.Command{
		Use:   "graph [library-dir] [dependency-file]",
		Short: "Render the declaration graph of the library directory",
		Long: `Graph draws an edge from the owner of every dependency list (a library
or the current project) to each library it declares. Rows follow the pass
in which update would clone a library. Cycles are reported as warnings.`,
		Example: `  gitdeps graph > deps.dot
  gitdeps graph --format svg -o deps.svg --detailed`,
		Args:              pathArgs,
		Annotations:       pathAnnotations(),
		ValidArgsFunction: completePaths,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", formatDOT, "output format: dot, svg, json")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include source and ref in node labels")

	return cmd
}

func (c *CLI) runGraph(cmd *cobra.Command, opts graphOpts) error {
	ctx := cmd.Context()

	res, ok, err := c.resolve(ctx, cmd)
	if err != nil || !ok {
		return err
	}

	g := res.Graph()
	var cycle *dag.CycleError
	if stderrors.As(g.Validate(), &cycle) {
		printWarning(cmd.ErrOrStderr(), "Declaration cycle: %s", strings.Join(cycle.Path, " "+iconArrow+" "))
	}

	var buf bytes.Buffer
	switch opts.format {
	case formatDOT:
		buf.WriteString(nodelink.ToDOT(g, nodelink.Options{Detailed: opts.detailed}))
	case formatSVG:
		svg, err := nodelink.RenderSVG(ctx, nodelink.ToDOT(g, nodelink.Options{Detailed: opts.detailed}))
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "render svg")
		}
		buf.Write(svg)
	case formatJSON:
		if err := depsio.WriteGraphJSON(g, &buf); err != nil {
			return err
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown format %q (want dot, svg, or json)", opts.format)
	}

	if opts.output == "" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(opts.output, buf.Bytes(), 0o644); err != nil {
		return err
	}
	printSuccess(cmd.OutOrStdout(), "Rendered %d libraries, %d edges", g.NodeCount(), g.EdgeCount())
	printFile(cmd.OutOrStdout(), opts.output)
	return nil
}
