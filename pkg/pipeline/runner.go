package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/screengod/pkg/cache"
	"github.com/matzehuels/screengod/pkg/errors"
	"github.com/matzehuels/screengod/pkg/expr"
	"github.com/matzehuels/screengod/pkg/observability"
	"github.com/matzehuels/screengod/pkg/placement"
	"github.com/matzehuels/screengod/pkg/window"
)

// Runner executes pipeline stages against a window manager.
// Both CLI and API use it so that layout resolution behaves the same everywhere.
//
// The Runner doesn't store pipeline results; rendered artifacts go to Cache
// when one is set. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Manager     window.Manager
	Logger      *log.Logger
	Concurrency int

	// Cache holds rendered artifacts keyed by placement and render options.
	Cache    cache.Cache
	CacheTTL time.Duration
}

// NewRunner creates a runner for the given window manager.
// If mgr is nil, an empty in-memory manager is used, so Apply fails for
// every selector but Layout and Render work normally.
func NewRunner(mgr window.Manager, logger *log.Logger) *Runner {
	if mgr == nil {
		mgr = window.NewMemory()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Manager:     mgr,
		Logger:      logger,
		Concurrency: window.DefaultConcurrency,
		Cache:       cache.NewNullCache(),
	}
}

// Execute runs layout, then apply (when bindings are given), then render
// (when formats are requested).
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	// Stage 1: Layout
	result, err := r.Layout(ctx, opts)
	if err != nil {
		return nil, err
	}

	// Stage 2: Apply
	if len(opts.Bindings) > 0 {
		applyStart := time.Now()
		moves, err := r.Apply(ctx, result.Placement, opts.Bindings)
		if err != nil {
			return nil, fmt.Errorf("apply: %w", err)
		}
		result.Moves = moves
		result.Stats.ApplyTime = time.Since(applyStart)
	}

	// Stage 3: Render
	if len(opts.Formats) > 0 {
		renderStart := time.Now()
		artifacts, err := r.Render(ctx, result.Placement, opts)
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		result.Artifacts = artifacts
		result.Stats.RenderTime = time.Since(renderStart)

		opts.Logger.Info("rendered outputs",
			"formats", opts.Formats,
			"duration", result.Stats.RenderTime)
	}

	return result, nil
}

// Layout compiles opts.Expr onto opts.Screen and resolves every node.
func (r *Runner) Layout(ctx context.Context, opts Options) (res *Result, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}

	hooks := observability.Layout()
	hooks.OnLayoutStart(ctx, opts.Expr)
	start := time.Now()
	nodes := 0
	defer func() {
		hooks.OnLayoutComplete(ctx, opts.Expr, nodes, time.Since(start), err)
	}()

	l, err := expr.Compile(opts.Expr, opts.Screen)
	if err != nil {
		return nil, err
	}
	p, err := placement.Export(l.Tree, l.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}
	nodes = len(p.Items)

	res = &Result{
		Layout:    l,
		Placement: p,
		Artifacts: make(map[string][]byte),
	}
	res.Stats.NodeCount = nodes
	res.Stats.LeafCount = len(p.Leaves())
	res.Stats.LayoutTime = time.Since(start)

	opts.Logger.Info("resolved layout",
		"nodes", res.Stats.NodeCount,
		"leaves", res.Stats.LeafCount,
		"screen", opts.Screen,
		"duration", res.Stats.LayoutTime)
	return res, nil
}

// Apply resolves each binding's selector and moves the windows into the
// slots of p. Selectors are resolved in label order; "click" selectors
// therefore prompt in a predictable sequence.
func (r *Runner) Apply(ctx context.Context, p *placement.Placement, bindings map[string]string) (moves []window.Move, err error) {
	if err := ValidateBindings(bindings); err != nil {
		return nil, err
	}

	hooks := observability.Layout()
	hooks.OnApplyStart(ctx, len(bindings))
	start := time.Now()
	defer func() {
		hooks.OnApplyComplete(ctx, len(moves), time.Since(start), err)
	}()

	placer := window.NewPlacer(r.Manager,
		window.WithConcurrency(r.Concurrency),
		window.WithLogger(r.Logger))

	for _, label := range slices.Sorted(maps.Keys(bindings)) {
		if _, ok := p.Find(label); !ok {
			return nil, errors.New(errors.ErrCodeWindowNotSet, "label %q is not in the layout", label)
		}
		h, err := window.Resolve(ctx, r.Manager, bindings[label])
		if err != nil {
			return nil, fmt.Errorf("bind %s: %w", label, err)
		}
		r.Logger.Debug("bound window", "label", label, "selector", bindings[label], "handle", h)
		if err := placer.Bind(label, h); err != nil {
			return nil, err
		}
	}

	moves, err = placer.Place(ctx, p)
	if err != nil {
		return nil, err
	}
	r.Logger.Info("placed windows", "count", len(moves), "duration", time.Since(start))
	return moves, nil
}

// Render generates artifacts for p in the formats requested by opts.
// Cached artifacts are reused; only the missing formats are rendered.
func (r *Runner) Render(ctx context.Context, p *placement.Placement, opts Options) (map[string][]byte, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	c := r.Cache
	if c == nil {
		c = cache.NewNullCache()
	}

	var buf bytes.Buffer
	if err := p.WriteJSON(&buf); err != nil {
		return nil, err
	}
	layoutHash := cache.Hash(buf.Bytes())

	keys := make(map[string]string, len(opts.Formats))
	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		key := cache.ArtifactKey(layoutHash, cache.ArtifactOpts{
			Format:   format,
			View:     opts.View,
			Detailed: opts.Detailed,
			Scale:    opts.Scale,
		})
		keys[format] = key
		if data, ok, err := c.Get(ctx, key); err != nil {
			opts.Logger.Warn("cache read failed", "format", format, "error", err)
		} else if ok {
			opts.Logger.Debug("cache hit", "format", format)
			artifacts[format] = data
			continue
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, nil
	}

	fresh := opts
	fresh.Formats = missing
	rendered, err := Render(ctx, p, fresh)
	if err != nil {
		return nil, err
	}
	for format, data := range rendered {
		artifacts[format] = data
		if err := c.Set(ctx, keys[format], data, r.CacheTTL); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "error", err)
		}
	}
	return artifacts, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
