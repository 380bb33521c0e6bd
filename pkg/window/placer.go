package window

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/screengod/pkg/composite"
	"github.com/matzehuels/screengod/pkg/errors"
	"github.com/matzehuels/screengod/pkg/observability"
	"github.com/matzehuels/screengod/pkg/placement"
)

// DefaultConcurrency bounds parallel window moves.
const DefaultConcurrency = 4

// Move is one window placed into one layout slot.
type Move struct {
	Label  string         `json:"label"`
	Handle Handle         `json:"handle"`
	Rect   composite.Rect `json:"rect"`
}

// Placer binds layout labels to windows and moves them into place.
// It is safe for concurrent use.
type Placer struct {
	mgr    Manager
	limit  int
	logger *log.Logger

	mu       sync.Mutex
	bindings map[string]Handle
}

// PlacerOption configures a Placer.
type PlacerOption func(*Placer)

// WithConcurrency sets how many windows are moved at once. Values below 1
// are ignored.
func WithConcurrency(n int) PlacerOption {
	return func(p *Placer) {
		if n >= 1 {
			p.limit = n
		}
	}
}

// WithLogger sets the logger for per-window progress.
func WithLogger(l *log.Logger) PlacerOption {
	return func(p *Placer) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPlacer creates a Placer that moves windows through mgr.
func NewPlacer(mgr Manager, opts ...PlacerOption) *Placer {
	p := &Placer{
		mgr:      mgr,
		limit:    DefaultConcurrency,
		logger:   log.Default(),
		bindings: make(map[string]Handle),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Bind assigns window h to the leaf labelled label, replacing any previous
// window bound to it.
func (p *Placer) Bind(label string, h Handle) error {
	if label == "" {
		return errors.New(errors.ErrCodeInvalidInput, "binding label cannot be empty")
	}
	if err := errors.ValidateLabel(label); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bindings[label] = h
	return nil
}

// Unbind removes the window bound to label and reports whether one was bound.
func (p *Placer) Unbind(label string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.bindings[label]
	delete(p.bindings, label)
	return ok
}

// Binding returns the window bound to label.
func (p *Placer) Binding(label string) (Handle, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	h, ok := p.bindings[label]
	return h, ok
}

// Labels returns the bound labels in sorted order.
func (p *Placer) Labels() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Sorted(maps.Keys(p.bindings))
}

// Plan matches every binding against pl without touching any window.
// A bound label missing from pl fails with WINDOW_NOT_SET; one naming a
// container fails with TYPE_MISMATCH.
func (p *Placer) Plan(pl *placement.Placement) ([]Move, error) {
	var moves []Move
	for _, label := range p.Labels() {
		h, _ := p.Binding(label)
		item, ok := pl.Find(label)
		if !ok {
			return nil, errors.New(errors.ErrCodeWindowNotSet, "window %s is bound to %q, which is not in the layout", h, label)
		}
		if !item.IsLeaf() {
			return nil, errors.New(errors.ErrCodeTypeMismatch, "%q is a container; windows bind to leaves", label)
		}
		moves = append(moves, Move{Label: label, Handle: h, Rect: item.Rect})
	}
	return moves, nil
}

// Place moves every bound window into its slot of pl, at most the configured
// number at a time. The first failure cancels moves not yet started.
func (p *Placer) Place(ctx context.Context, pl *placement.Placement) ([]Move, error) {
	moves, err := p.Plan(pl)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.limit)
	for _, mv := range moves {
		g.Go(func() error {
			start := time.Now()
			err := p.mgr.Move(gctx, mv.Handle, mv.Rect)
			observability.Window().OnMove(gctx, mv.Label, uint64(mv.Handle), time.Since(start), err)
			if err != nil {
				return fmt.Errorf("move %s (%s): %w", mv.Label, mv.Handle, err)
			}
			p.logger.Debug("placed window", "label", mv.Label, "window", mv.Handle, "rect", mv.Rect)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return moves, nil
}

// Close closes every bound window and clears the bindings of those closed.
func (p *Placer) Close(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.limit)
	for _, label := range p.Labels() {
		h, _ := p.Binding(label)
		g.Go(func() error {
			if err := p.mgr.Close(gctx, h); err != nil {
				return fmt.Errorf("close %s (%s): %w", label, h, err)
			}
			p.Unbind(label)
			return nil
		})
	}
	return g.Wait()
}
