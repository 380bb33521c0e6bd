// Package pipeline provides the layout pipeline shared by the CLI and the
// HTTP API.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Layout: Compile an expression onto the screen canvas and resolve every
//     node's rectangle into a [placement.Placement]
//  2. Apply: Resolve window selectors and move the bound windows into their
//     slots
//  3. Render: Produce artifacts (SVG, PNG, PDF, DOT, JSON) of the placement
//
// Each stage can be run independently or as part of [Runner.Execute].
//
// # Usage
//
//	runner := pipeline.NewRunner(window.NewX11(), logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Expr:     "h(editor=60%, v@40%(term, logs))",
//	    Bindings: map[string]string{"editor": "title:Emacs", "term": "click"},
//	})
//
// Run individual stages:
//
//	result, err := runner.Layout(ctx, opts)
//	moves, err := runner.Apply(ctx, result.Placement, opts.Bindings)
//	artifacts, err := runner.Render(ctx, result.Placement, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/screengod/pkg/composite"
	"github.com/matzehuels/screengod/pkg/errors"
	"github.com/matzehuels/screengod/pkg/expr"
	"github.com/matzehuels/screengod/pkg/placement"
	"github.com/matzehuels/screengod/pkg/render"
	"github.com/matzehuels/screengod/pkg/window"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default screen width in pixels.
	DefaultWidth = 1920

	// DefaultHeight is the default screen height in pixels.
	DefaultHeight = 1080

	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = render.FormatSVG
	FormatPNG  = render.FormatPNG
	FormatPDF  = render.FormatPDF
	FormatDOT  = render.FormatDOT
	FormatJSON = render.FormatJSON
)

// Views select what the svg, png and pdf formats show. The dot format
// always shows the tree and json always holds the placement.
const (
	// ViewRects draws the resolved rectangles as they would appear on screen.
	ViewRects = "rects"
	// ViewTree draws the layout tree as a node-link diagram.
	ViewTree = "tree"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// ValidViews is the set of supported views.
var ValidViews = map[string]bool{
	ViewRects: true,
	ViewTree:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Expr   string         `json:"expr"`
	Screen composite.Rect `json:"screen"`

	// Apply options: layout label -> window selector.
	Bindings map[string]string `json:"bindings,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	View     string   `json:"view,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`
	Scale    float64  `json:"scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the compiled expression and its tree.
	Layout *expr.Layout

	// Placement is the resolved geometry of every node.
	Placement *placement.Placement

	// Moves lists the windows moved by the apply stage.
	Moves []window.Move

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	LeafCount  int
	LayoutTime time.Duration
	ApplyTime  time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: svg, png, pdf, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateView checks that a view is valid.
func ValidateView(view string) error {
	if !ValidViews[view] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid view: %q (must be one of: rects, tree)", view)
	}
	return nil
}

// ValidateBindings checks every label and selector of a binding map.
func ValidateBindings(bindings map[string]string) error {
	for label, sel := range bindings {
		if label == "" {
			return errors.New(errors.ErrCodeInvalidInput, "binding label cannot be empty")
		}
		if err := errors.ValidateLabel(label); err != nil {
			return err
		}
		if err := errors.ValidateSelector(sel); err != nil {
			return fmt.Errorf("binding %s: %w", label, err)
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := ValidateBindings(o.Bindings); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLayout checks required fields for layout resolution.
func (o *Options) ValidateForLayout() error {
	if o.Expr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "expr is required")
	}
	o.SetLayoutDefaults()
	if err := errors.ValidateCoordinate("x", o.Screen.X); err != nil {
		return err
	}
	if err := errors.ValidateCoordinate("y", o.Screen.Y); err != nil {
		return err
	}
	if err := errors.ValidateExtent("width", o.Screen.Width); err != nil {
		return err
	}
	return errors.ValidateExtent("height", o.Screen.Height)
}

// SetLayoutDefaults fills in an unset screen and logger.
// A screen with zero width and height means "use the default canvas".
func (o *Options) SetLayoutDefaults() {
	if o.Screen.Width == 0 && o.Screen.Height == 0 {
		o.Screen.Width = DefaultWidth
		o.Screen.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
// No formats means no artifacts; the view defaults to rects.
func (o *Options) SetRenderDefaults() {
	if o.View == "" {
		o.View = ViewRects
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateView(o.View); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}
