package window

import (
	"bufio"
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/screengod/pkg/composite"
	"github.com/matzehuels/screengod/pkg/errors"
	"github.com/matzehuels/screengod/pkg/observability"
)

// Runner executes external commands.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
	LookPath(name string) (string, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run executes name with args and returns its standard output.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeCommandFailed, err, "%s %s: %s",
			name, strings.Join(args, " "), strings.TrimSpace(errBuf.String()))
	}
	return out.Bytes(), nil
}

// LookPath reports where name is installed.
func (ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Required tools for the X11 manager.
const (
	toolWmctrl  = "wmctrl"
	toolXdotool = "xdotool"
)

// X11 manages windows on an EWMH-compliant X11 window manager through
// wmctrl and xdotool.
type X11 struct {
	runner     Runner
	raise      bool
	attempts   int
	retryDelay time.Duration
}

// X11Option configures an X11 manager.
type X11Option func(*X11)

// WithRunner replaces the command runner, mainly for tests.
func WithRunner(r Runner) X11Option {
	return func(x *X11) { x.runner = r }
}

// WithRaise controls whether moved windows are raised. Default true.
func WithRaise(raise bool) X11Option {
	return func(x *X11) { x.raise = raise }
}

// WithRetry sets how often a failed move is attempted and the initial delay
// between attempts. Default 3 attempts starting at 50ms.
func WithRetry(attempts int, delay time.Duration) X11Option {
	return func(x *X11) {
		x.attempts = attempts
		x.retryDelay = delay
	}
}

// NewX11 creates an X11 manager.
func NewX11(opts ...X11Option) *X11 {
	x := &X11{runner: ExecRunner{}, raise: true, attempts: defaultAttempts, retryDelay: defaultRetryDelay}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Check reports an UNSUPPORTED error naming any missing tool.
func (x *X11) Check() error {
	var missing []string
	for _, tool := range []string{toolWmctrl, toolXdotool} {
		if _, err := x.runner.LookPath(tool); err != nil {
			missing = append(missing, tool)
		}
	}
	if len(missing) > 0 {
		return errors.New(errors.ErrCodeUnsupported,
			"window placement requires %s. Install with:\n  apt install wmctrl xdotool", strings.Join(missing, " and "))
	}
	return nil
}

func (x *X11) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	start := time.Now()
	out, err := x.runner.Run(ctx, name, args...)
	observability.Window().OnCommand(ctx, name, time.Since(start), err)
	return out, err
}

// List returns the windows managed by the window manager, in stacking order.
func (x *X11) List(ctx context.Context) ([]Window, error) {
	out, err := x.run(ctx, toolWmctrl, "-l", "-p")
	if err != nil {
		return nil, err
	}
	return parseWmctrlList(out)
}

// FindByPID returns the first window owned by pid.
func (x *X11) FindByPID(ctx context.Context, pid int) (Handle, error) {
	ws, err := x.List(ctx)
	if err != nil {
		return 0, err
	}
	return findByPID(ws, pid)
}

// FindByTitle returns the first window whose title contains title.
func (x *X11) FindByTitle(ctx context.Context, title string) (Handle, error) {
	ws, err := x.List(ctx)
	if err != nil {
		return 0, err
	}
	return findByTitle(ws, title)
}

// FindByMouseClick blocks until the user clicks a window.
func (x *X11) FindByMouseClick(ctx context.Context) (Handle, error) {
	out, err := x.run(ctx, toolXdotool, "selectwindow")
	if err != nil {
		return 0, err
	}
	return ParseHandle(string(out))
}

// Exists reports whether h is a managed window.
func (x *X11) Exists(ctx context.Context, h Handle) (bool, error) {
	ws, err := x.List(ctx)
	if err != nil {
		return false, err
	}
	_, ok := first(ws, func(w Window) bool { return w.Handle == h })
	return ok, nil
}

// Geometry returns the window's client rectangle.
func (x *X11) Geometry(ctx context.Context, h Handle) (composite.Rect, error) {
	out, err := x.run(ctx, toolXdotool, "getwindowgeometry", "--shell", decimal(h))
	if err != nil {
		return composite.Rect{}, err
	}
	return parseShellGeometry(out)
}

// Move unmaximizes the window, then moves and resizes it to r.
func (x *X11) Move(ctx context.Context, h Handle, r composite.Rect) error {
	if err := validateRect(r); err != nil {
		return err
	}
	// Maximized windows ignore move and resize requests.
	if _, err := x.run(ctx, toolWmctrl, "-i", "-r", h.String(), "-b", "remove,maximized_vert,maximized_horz"); err != nil {
		return err
	}

	id := decimal(h)
	args := []string{
		"windowmove", id, strconv.Itoa(r.X), strconv.Itoa(r.Y),
		"windowsize", id, strconv.Itoa(r.Width), strconv.Itoa(r.Height),
	}
	if x.raise {
		args = append(args, "windowraise", id)
	}
	return retry(ctx, x.attempts, x.retryDelay, func() error {
		_, err := x.run(ctx, toolXdotool, args...)
		return err
	})
}

// Close asks the window manager to close h gracefully.
func (x *X11) Close(ctx context.Context, h Handle) error {
	_, err := x.run(ctx, toolWmctrl, "-i", "-c", h.String())
	return err
}

func decimal(h Handle) string {
	return strconv.FormatUint(uint64(h), 10)
}

// parseWmctrlList parses `wmctrl -l -p` output:
//
//	0x03a00007  0 2345   host Terminal - bash
func parseWmctrlList(out []byte) ([]Window, error) {
	var ws []Window
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		id, rest := nextField(line)
		desktop, rest := nextField(rest)
		pid, rest := nextField(rest)
		_, title := nextField(rest) // host

		h, err := ParseHandle(id)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCommandFailed, err, "parse wmctrl line %q", line)
		}
		d, err := strconv.Atoi(desktop)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCommandFailed, err, "parse wmctrl line %q", line)
		}
		p, err := strconv.Atoi(pid)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCommandFailed, err, "parse wmctrl line %q", line)
		}
		ws = append(ws, Window{Handle: h, Desktop: d, PID: p, Title: title})
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeCommandFailed, err, "read wmctrl output")
	}
	return ws, nil
}

// nextField splits off the first space-separated field and returns the rest
// with leading spaces removed, so titles keep their inner spacing.
func nextField(s string) (field, rest string) {
	s = strings.TrimLeft(s, " \t")
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeft(s[i:], " \t")
}

// parseShellGeometry parses `xdotool getwindowgeometry --shell` output.
func parseShellGeometry(out []byte) (composite.Rect, error) {
	vals := make(map[string]int)
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		key, val, ok := strings.Cut(strings.TrimSpace(line), "=")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(val)
		if err != nil {
			return composite.Rect{}, errors.Wrap(errors.ErrCodeCommandFailed, err, "parse geometry %q", line)
		}
		vals[key] = n
	}
	for _, key := range []string{"X", "Y", "WIDTH", "HEIGHT"} {
		if _, ok := vals[key]; !ok {
			return composite.Rect{}, errors.New(errors.ErrCodeCommandFailed, "geometry output missing %s", key)
		}
	}
	return composite.Rect{X: vals["X"], Y: vals["Y"], Width: vals["WIDTH"], Height: vals["HEIGHT"]}, nil
}
