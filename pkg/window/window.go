package window

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/screengod/pkg/composite"
	"github.com/matzehuels/screengod/pkg/errors"
)

// Handle identifies a top-level window of the host window system.
type Handle uint64

// String formats h as zero-padded hex, the form wmctrl prints.
func (h Handle) String() string {
	return fmt.Sprintf("0x%08x", uint64(h))
}

// ParseHandle accepts decimal ("60817415") or hex ("0x03a00007") handles.
func ParseHandle(s string) (Handle, error) {
	s = strings.TrimSpace(s)
	var (
		v   uint64
		err error
	)
	if digits, ok := strings.CutPrefix(strings.ToLower(s), "0x"); ok {
		v, err = strconv.ParseUint(digits, 16, 64)
	} else {
		v, err = strconv.ParseUint(s, 10, 64)
	}
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid window handle %q", s)
	}
	return Handle(v), nil
}

// Window describes one top-level window.
type Window struct {
	Handle  Handle `json:"handle"`
	PID     int    `json:"pid"`
	Desktop int    `json:"desktop"`
	Title   string `json:"title"`
}

// Manager locates and arranges windows.
//
// Finders return WINDOW_NOT_FOUND when nothing matches. All methods honor
// ctx cancellation.
type Manager interface {
	List(ctx context.Context) ([]Window, error)
	FindByPID(ctx context.Context, pid int) (Handle, error)
	FindByTitle(ctx context.Context, title string) (Handle, error)
	FindByMouseClick(ctx context.Context) (Handle, error)
	Exists(ctx context.Context, h Handle) (bool, error)
	Geometry(ctx context.Context, h Handle) (composite.Rect, error)
	Move(ctx context.Context, h Handle, r composite.Rect) error
	Close(ctx context.Context, h Handle) error
}

// Resolve turns a selector into a window handle.
//
// Selectors:
//   - "click": ask the user to click a window
//   - "pid:<n>": first window owned by process n
//   - "title:<text>": first window whose title contains text
//   - "id:<handle>": an existing window handle
//   - a bare number: an existing handle, otherwise a pid
func Resolve(ctx context.Context, mgr Manager, selector string) (Handle, error) {
	if err := errors.ValidateSelector(selector); err != nil {
		return 0, err
	}

	if selector == "click" {
		return mgr.FindByMouseClick(ctx)
	}
	if v, ok := strings.CutPrefix(selector, "pid:"); ok {
		pid, err := strconv.Atoi(v)
		if err != nil || pid <= 0 {
			return 0, errors.New(errors.ErrCodeInvalidInput, "invalid pid %q", v)
		}
		return mgr.FindByPID(ctx, pid)
	}
	if v, ok := strings.CutPrefix(selector, "title:"); ok {
		return mgr.FindByTitle(ctx, v)
	}
	if v, ok := strings.CutPrefix(selector, "id:"); ok {
		h, err := ParseHandle(v)
		if err != nil {
			return 0, err
		}
		return h, mustExist(ctx, mgr, h)
	}

	h, err := ParseHandle(selector)
	if err != nil {
		return 0, err
	}
	exists, err := mgr.Exists(ctx, h)
	if err != nil {
		return 0, err
	}
	if exists {
		return h, nil
	}
	if strings.HasPrefix(strings.ToLower(selector), "0x") || h > Handle(maxPID) {
		return 0, errors.New(errors.ErrCodeWindowNotFound, "no window %s", h)
	}
	return mgr.FindByPID(ctx, int(h))
}

// maxPID is the largest pid Linux hands out (PID_MAX_LIMIT).
const maxPID = 1 << 22

func mustExist(ctx context.Context, mgr Manager, h Handle) error {
	ok, err := mgr.Exists(ctx, h)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New(errors.ErrCodeWindowNotFound, "no window %s", h)
	}
	return nil
}

// first returns the first window matching fn.
func first(ws []Window, fn func(Window) bool) (Handle, bool) {
	for _, w := range ws {
		if fn(w) {
			return w.Handle, true
		}
	}
	return 0, false
}

func findByPID(ws []Window, pid int) (Handle, error) {
	if pid <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid pid %d", pid)
	}
	h, ok := first(ws, func(w Window) bool { return w.PID == pid })
	if !ok {
		return 0, errors.New(errors.ErrCodeWindowNotFound, "no window for pid %d", pid)
	}
	return h, nil
}

func findByTitle(ws []Window, title string) (Handle, error) {
	if title == "" {
		return 0, errors.New(errors.ErrCodeInvalidInput, "title cannot be empty")
	}
	h, ok := first(ws, func(w Window) bool { return strings.Contains(w.Title, title) })
	if !ok {
		return 0, errors.New(errors.ErrCodeWindowNotFound, "no window titled %q", title)
	}
	return h, nil
}

func validateRect(r composite.Rect) error {
	if err := errors.ValidateExtent("width", r.Width); err != nil {
		return err
	}
	return errors.ValidateExtent("height", r.Height)
}
