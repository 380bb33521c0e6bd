package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/screengod/pkg/errors"
	"github.com/matzehuels/screengod/pkg/pipeline"
)

// diagramOpts holds the command-line flags for the diagram command.
type diagramOpts struct {
	output   string  // output file; its extension picks the format
	screen   string  // canvas geometry, overriding the config
	rects    bool    // draw the resolved rectangles instead of the tree
	detailed bool    // add sizes and geometry to labels
	scale    float64 // PNG scale factor
	noCache  bool    // skip the artifact cache
}

// diagramCommand writes a picture of a layout to a file.
func (c *CLI) diagramCommand() *cobra.Command {
	opts := diagramOpts{output: "layout.svg", scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "diagram <expr>",
		Short: "Draw a layout tree or its rectangles to a file",
		Long: `Draw a layout to a file. The output extension selects the format:
.dot, .svg, .png, .pdf or .json. PNG and PDF need rsvg-convert (librsvg).

By default the layout tree is drawn as a node-link diagram; --rects draws the
rectangles as they would appear on screen.`,
		Example: `  screengod diagram 'h(editor, v(term, logs))' -o tree.svg
  screengod diagram 'h(editor, v(term, logs))' --rects --detailed -o screen.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDiagram(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output file (.dot, .svg, .png, .pdf, .json)")
	cmd.Flags().StringVar(&opts.screen, "screen", "", "screen geometry WIDTHxHEIGHT[+X+Y] (default from config)")
	cmd.Flags().BoolVar(&opts.rects, "rects", false, "draw the resolved rectangles instead of the tree")
	cmd.Flags().BoolVarP(&opts.detailed, "detailed", "d", false, "include sizes and geometry in labels")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "render even if a cached diagram exists")

	return cmd
}

func (c *CLI) runDiagram(ctx context.Context, src string, opts diagramOpts) error {
	format, err := formatFromPath(opts.output)
	if err != nil {
		return err
	}
	screen, err := c.screen(opts.screen)
	if err != nil {
		return err
	}

	view := pipeline.ViewTree
	if opts.rects {
		view = pipeline.ViewRects
	}

	runner := c.newRunner(nil)
	c.attachCache(runner, opts.noCache)

	prog := newProgress(loggerFromContext(ctx))
	res, err := runner.Execute(ctx, pipeline.Options{
		Expr:     src,
		Screen:   screen,
		Formats:  []string{format},
		View:     view,
		Detailed: opts.detailed,
		Scale:    opts.scale,
	})
	if err != nil {
		return describeExprError(src, err)
	}

	if err := os.WriteFile(opts.output, res.Artifacts[format], 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	prog.done("Rendered " + format)
	printSuccess("Wrote %s diagram", view)
	printFile(opts.output)
	return nil
}

// formatFromPath returns the output format named by path's extension.
func formatFromPath(path string) (string, error) {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format == "" {
		return "", errors.New(errors.ErrCodeInvalidInput, "output %q has no extension", path)
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return "", err
	}
	return format, nil
}
