package cli

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/screengod/pkg/composite"
	"github.com/matzehuels/screengod/pkg/pipeline"
	"github.com/matzehuels/screengod/pkg/placement"
	"github.com/matzehuels/screengod/pkg/window"
)

// placeOpts holds the command-line flags for the place command.
type placeOpts struct {
	screen   string   // canvas geometry, overriding the config
	bindings []string // label=selector pairs
	dryRun   bool     // log moves instead of performing them
	jsonOut  bool     // print the placement as JSON
	all      bool     // include containers in the table
	tree     bool     // dump the resolved composite tree
}

// placeCommand resolves a layout and optionally moves windows into it.
func (c *CLI) placeCommand() *cobra.Command {
	var opts placeOpts

	cmd := &cobra.Command{
		Use:   "place <expr>",
		Short: "Resolve a layout and move windows into it",
		Long: `Resolve a layout expression on the screen and print the resulting rectangles.

With --bind, windows are moved into the labeled slots. Selectors:
  click          pick a window with the mouse
  pid:N          first window of a process
  title:TEXT     first window whose title contains TEXT
  id:0x...       a window handle
  N              a window handle if one exists, otherwise a pid`,
		Example: `  screengod place 'h(editor=60%, v@40%(term, logs))'
  screengod place 'h(editor, term)' --bind editor=title:Emacs --bind term=click
  screengod place 'v(top=300px, h@1140px(a, b))' --screen 2560x1440+1920+0 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlace(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.screen, "screen", "", "screen geometry WIDTHxHEIGHT[+X+Y] (default from config)")
	cmd.Flags().StringArrayVarP(&opts.bindings, "bind", "b", nil, "bind a layout label to a window: label=selector (repeatable)")
	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "log window moves instead of performing them")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print the placement as JSON")
	cmd.Flags().BoolVarP(&opts.all, "all", "a", false, "list containers as well as leaves")
	cmd.Flags().BoolVar(&opts.tree, "tree", false, "dump the resolved layout tree before the table")

	return cmd
}

func (c *CLI) runPlace(ctx context.Context, out io.Writer, src string, opts placeOpts) error {
	screen, err := c.screen(opts.screen)
	if err != nil {
		return err
	}
	bindings, err := parseBindings(opts.bindings)
	if err != nil {
		return err
	}

	var mgr window.Manager
	if len(bindings) > 0 {
		if mgr, err = c.newManager(opts.dryRun); err != nil {
			return err
		}
	}
	runner := c.newRunner(mgr)

	res, err := runner.Layout(ctx, pipeline.Options{Expr: src, Screen: screen})
	if err != nil {
		return describeExprError(src, err)
	}

	if opts.tree {
		if err := res.Layout.Tree.Dump(out, res.Layout.Root); err != nil {
			return err
		}
	}
	if opts.jsonOut {
		if err := res.Placement.WriteJSON(out); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(out, placementTable(res.Placement, !opts.all))
	}
	if len(bindings) == 0 {
		return nil
	}

	if err := c.pickClicked(ctx, mgr, res.Placement, bindings); err != nil {
		return err
	}

	prog := newProgress(loggerFromContext(ctx))
	moves, err := runner.Apply(ctx, res.Placement, bindings)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Placed %d windows", len(moves)))

	if !opts.jsonOut {
		fmt.Fprintln(out, movesTable(moves))
		if opts.dryRun {
			printWarning("dry run: no window was moved")
		} else {
			printSuccess("Placed %d windows", len(moves))
		}
	}
	return nil
}

// pickClicked resolves "click" selectors one label at a time so the user
// knows which slot the next click fills. The bindings are rewritten to
// id: selectors.
func (c *CLI) pickClicked(ctx context.Context, mgr window.Manager, p *placement.Placement, bindings map[string]string) error {
	for _, label := range slices.Sorted(maps.Keys(bindings)) {
		if bindings[label] != "click" {
			continue
		}
		if _, ok := p.Find(label); !ok {
			// Apply reports the unknown label.
			continue
		}
		s := newSpinner(ctx, fmt.Sprintf("click the window for %q", label))
		s.Start()
		h, err := window.Resolve(ctx, mgr, "click")
		s.Stop()
		if err != nil {
			return fmt.Errorf("bind %s: %w", label, err)
		}
		printInfo("%s %s %s", label, iconArrow, h)
		bindings[label] = "id:" + h.String()
	}
	return nil
}

// screen returns the canvas from the flag value or the config.
func (c *CLI) screen(flag string) (composite.Rect, error) {
	if flag == "" {
		return c.Config.ScreenRect(), nil
	}
	return parseGeometry(flag)
}
