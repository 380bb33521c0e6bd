package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/screengod/pkg/cache"
	"github.com/matzehuels/screengod/pkg/composite"
	"github.com/matzehuels/screengod/pkg/errors"
	"github.com/matzehuels/screengod/pkg/observability"
	"github.com/matzehuels/screengod/pkg/window"
)

func quietRunner(mgr window.Manager) *Runner {
	return NewRunner(mgr, log.New(io.Discard))
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"dot", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateView(t *testing.T) {
	tests := []struct {
		view    string
		wantErr bool
	}{
		{"rects", false},
		{"tree", false},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateView(tt.view)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateView(%q) error = %v, wantErr %v", tt.view, err, tt.wantErr)
		}
	}
}

func TestValidateBindings(t *testing.T) {
	tests := []struct {
		name     string
		bindings map[string]string
		wantErr  bool
	}{
		{"nil", nil, false},
		{"valid", map[string]string{"editor": "title:Emacs", "term": "click"}, false},
		{"empty label", map[string]string{"": "click"}, true},
		{"bad label", map[string]string{"a b": "click"}, true},
		{"bad selector", map[string]string{"a": "name:x"}, true},
		{"empty selector", map[string]string{"a": ""}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBindings(tt.bindings)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBindings error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Expr: "h(a)"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Valid options should pass: %v", err)
	}

	if opts.Screen != (composite.Rect{Width: DefaultWidth, Height: DefaultHeight}) {
		t.Errorf("Screen should default to %dx%d, got %v", DefaultWidth, DefaultHeight, opts.Screen)
	}
	if opts.View != ViewRects {
		t.Errorf("View should be %q, got %q", ViewRects, opts.View)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale should be %v, got %v", DefaultScale, opts.Scale)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}
	if len(opts.Formats) != 0 {
		t.Errorf("Formats should stay empty, got %v", opts.Formats)
	}

	// Idempotent
	opts.View = "bogus"
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second call should be a no-op: %v", err)
	}
}

func TestOptionsValidateForLayout(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateForLayout(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Missing expr error = %v", err)
	}

	opts = Options{Expr: "h(a)", Screen: composite.Rect{Width: -1, Height: 10}}
	if err := opts.ValidateForLayout(); !errors.Is(err, errors.ErrCodeInvalidGeometry) {
		t.Errorf("Negative width error = %v", err)
	}

	opts = Options{Expr: "h(a)", Screen: composite.Rect{X: 1 << 40, Width: 10, Height: 10}}
	if err := opts.ValidateForLayout(); !errors.Is(err, errors.ErrCodeInvalidGeometry) {
		t.Errorf("Out of range origin error = %v", err)
	}

	opts = Options{Expr: "h(a)", Screen: composite.Rect{X: 1920, Width: 1280, Height: 1024}}
	if err := opts.ValidateForLayout(); err != nil {
		t.Errorf("Explicit screen should pass: %v", err)
	}
	if opts.Screen.Width != 1280 {
		t.Errorf("Explicit screen overwritten: %v", opts.Screen)
	}
}

func TestRunnerLayout(t *testing.T) {
	r := quietRunner(nil)
	res, err := r.Layout(context.Background(), Options{
		Expr:   "h(editor=60%, v@40%(term, logs))",
		Screen: composite.Rect{X: 1920, Width: 1000, Height: 800},
	})
	if err != nil {
		t.Fatalf("Layout error: %v", err)
	}
	if res.Stats.NodeCount != 5 || res.Stats.LeafCount != 3 {
		t.Errorf("stats = %+v", res.Stats)
	}
	logs, _ := res.Placement.Find("logs")
	if logs.Rect != (composite.Rect{X: 2520, Y: 400, Width: 400, Height: 400}) {
		t.Errorf("logs = %v", logs.Rect)
	}

	_, err = r.Layout(context.Background(), Options{Expr: "h(a=1, b=50%)"})
	if !errors.Is(err, errors.ErrCodeUnitConflict) {
		t.Errorf("unit conflict error = %v", err)
	}
	_, err = r.Layout(context.Background(), Options{Expr: "h(a"})
	if !errors.Is(err, errors.ErrCodeInvalidExpression) {
		t.Errorf("syntax error = %v", err)
	}
}

func TestRunnerApply(t *testing.T) {
	ctx := context.Background()
	mem := window.NewMemory()
	emacs := mem.Open(100, "GNU Emacs", composite.Rect{})
	term := mem.Open(200, "xterm", composite.Rect{})

	r := quietRunner(mem)
	res, err := r.Layout(ctx, Options{Expr: "h(editor, term)", Screen: composite.Rect{Width: 1000, Height: 500}})
	if err != nil {
		t.Fatal(err)
	}

	moves, err := r.Apply(ctx, res.Placement, map[string]string{
		"editor": "title:Emacs",
		"term":   "pid:200",
	})
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if len(moves) != 2 {
		t.Errorf("moves = %+v", moves)
	}
	if got, _ := mem.Geometry(ctx, emacs); got != (composite.Rect{Width: 500, Height: 500}) {
		t.Errorf("emacs at %v", got)
	}
	if got, _ := mem.Geometry(ctx, term); got != (composite.Rect{X: 500, Width: 500, Height: 500}) {
		t.Errorf("term at %v", got)
	}

	t.Run("unknown label", func(t *testing.T) {
		_, err := r.Apply(ctx, res.Placement, map[string]string{"browser": "pid:100"})
		if !errors.Is(err, errors.ErrCodeWindowNotSet) {
			t.Errorf("error = %v", err)
		}
	})
	t.Run("missing window", func(t *testing.T) {
		_, err := r.Apply(ctx, res.Placement, map[string]string{"editor": "title:vim"})
		if !errors.Is(err, errors.ErrCodeWindowNotFound) {
			t.Errorf("error = %v", err)
		}
	})
}

func TestRender(t *testing.T) {
	r := quietRunner(nil)
	res, err := r.Layout(context.Background(), Options{Expr: "v(top, bottom)", Screen: composite.Rect{Width: 200, Height: 100}})
	if err != nil {
		t.Fatal(err)
	}

	artifacts, err := r.Render(context.Background(), res.Placement, Options{
		Formats:  []string{FormatSVG, FormatDOT, FormatJSON},
		Detailed: true,
	})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	if svg := string(artifacts[FormatSVG]); !strings.Contains(svg, ">bottom</text>") || !strings.Contains(svg, "200x50+0+50") {
		t.Errorf("svg = %s", svg)
	}
	if dot := string(artifacts[FormatDOT]); !strings.Contains(dot, `"n0" -> "n2";`) {
		t.Errorf("dot = %s", dot)
	}
	var decoded struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(artifacts[FormatJSON], &decoded); err != nil || len(decoded.Items) != 3 {
		t.Errorf("json = %s (%v)", artifacts[FormatJSON], err)
	}

	if _, err := r.Render(context.Background(), res.Placement, Options{Formats: []string{"gif"}}); err == nil {
		t.Error("unknown format should fail")
	}
}

type recordingHooks struct {
	observability.NoopLayoutHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) OnLayoutStart(_ context.Context, expr string) {
	h.record("layout start " + expr)
}

func (h *recordingHooks) OnLayoutComplete(_ context.Context, _ string, nodes int, _ time.Duration, err error) {
	h.record("layout complete " + strings.Repeat("n", nodes) + " " + errString(err))
}

func (h *recordingHooks) OnApplyComplete(_ context.Context, moved int, _ time.Duration, err error) {
	h.record("apply complete " + strings.Repeat("m", moved) + " " + errString(err))
}

func (h *recordingHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, strings.TrimSpace(e))
}

func errString(err error) string {
	if err == nil {
		return "ok"
	}
	return string(errors.GetCode(err))
}

func TestRenderUsesCache(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := quietRunner(nil)
	r.Cache = fc

	res, err := r.Layout(ctx, Options{Expr: "h(a, b)", Screen: composite.Rect{Width: 100, Height: 50}})
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Formats: []string{FormatDOT}}
	first, err := r.Render(ctx, res.Placement, opts)
	if err != nil {
		t.Fatal(err)
	}

	// Poison the cached entry to prove the second render reads it.
	var buf strings.Builder
	_ = res.Placement.WriteJSON(&buf)
	key := cache.ArtifactKey(cache.Hash([]byte(buf.String())), cache.ArtifactOpts{
		Format: FormatDOT, View: ViewRects, Scale: DefaultScale,
	})
	if data, hit, _ := fc.Get(ctx, key); !hit || string(data) != string(first[FormatDOT]) {
		t.Fatalf("artifact not cached under %s", key)
	}
	_ = fc.Set(ctx, key, []byte("cached"), 0)

	second, err := r.Render(ctx, res.Placement, opts)
	if err != nil {
		t.Fatal(err)
	}
	if string(second[FormatDOT]) != "cached" {
		t.Errorf("second render = %q, want cached bytes", second[FormatDOT])
	}

	// A different option set misses.
	third, _ := r.Render(ctx, res.Placement, Options{Formats: []string{FormatDOT}, Detailed: true})
	if string(third[FormatDOT]) == "cached" {
		t.Error("detailed render reused the plain artifact")
	}
}

func TestExecuteEmitsHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetLayoutHooks(hooks)
	t.Cleanup(observability.Reset)

	mem := window.NewMemory()
	mem.Open(1, "one", composite.Rect{})

	r := quietRunner(mem)
	res, err := r.Execute(context.Background(), Options{
		Expr:     "h(a, b)",
		Bindings: map[string]string{"a": "pid:1"},
		Formats:  []string{FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(res.Moves) != 1 || res.Artifacts[FormatJSON] == nil {
		t.Errorf("result = %+v", res)
	}

	_, _ = r.Layout(context.Background(), Options{Expr: "h(1, 2%)"})

	want := []string{
		"layout start h(a, b)",
		"layout complete nnn ok",
		"apply complete m ok",
		"layout start h(1, 2%)",
		"layout complete  UNIT_CONFLICT",
	}
	if strings.Join(hooks.events, "|") != strings.Join(want, "|") {
		t.Errorf("events = %q\nwant %q", hooks.events, want)
	}
}
