package window

import (
	"context"
	"slices"
	"sync"

	"github.com/matzehuels/screengod/pkg/composite"
	"github.com/matzehuels/screengod/pkg/errors"
)

// memoryBase is the first handle Memory hands out, shaped like an X11 id.
const memoryBase Handle = 0x01000001

type memWindow struct {
	Window
	rect composite.Rect
}

// Memory is an in-process window table. It is safe for concurrent use.
type Memory struct {
	mu      sync.Mutex
	windows []*memWindow
	next    Handle
	clicked Handle
}

// NewMemory creates an empty window table.
func NewMemory() *Memory {
	return &Memory{next: memoryBase}
}

// Open adds a window and returns its handle.
func (m *Memory) Open(pid int, title string, r composite.Rect) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := m.next
	m.next++
	m.windows = append(m.windows, &memWindow{
		Window: Window{Handle: h, PID: pid, Title: title},
		rect:   r,
	})
	return h
}

// SetClicked sets the handle FindByMouseClick returns.
func (m *Memory) SetClicked(h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clicked = h
}

func (m *Memory) lookup(h Handle) (*memWindow, error) {
	for _, w := range m.windows {
		if w.Handle == h {
			return w, nil
		}
	}
	return nil, errors.New(errors.ErrCodeWindowNotFound, "no window %s", h)
}

func (m *Memory) List(ctx context.Context) ([]Window, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ws := make([]Window, len(m.windows))
	for i, w := range m.windows {
		ws[i] = w.Window
	}
	return ws, nil
}

func (m *Memory) FindByPID(ctx context.Context, pid int) (Handle, error) {
	ws, err := m.List(ctx)
	if err != nil {
		return 0, err
	}
	return findByPID(ws, pid)
}

func (m *Memory) FindByTitle(ctx context.Context, title string) (Handle, error) {
	ws, err := m.List(ctx)
	if err != nil {
		return 0, err
	}
	return findByTitle(ws, title)
}

func (m *Memory) FindByMouseClick(ctx context.Context) (Handle, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.lookup(m.clicked); err != nil {
		return 0, errors.New(errors.ErrCodeWindowNotFound, "no window selected")
	}
	return m.clicked, nil
}

func (m *Memory) Exists(ctx context.Context, h Handle) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, err := m.lookup(h)
	return err == nil, nil
}

func (m *Memory) Geometry(ctx context.Context, h Handle) (composite.Rect, error) {
	if err := ctx.Err(); err != nil {
		return composite.Rect{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	w, err := m.lookup(h)
	if err != nil {
		return composite.Rect{}, err
	}
	return w.rect, nil
}

func (m *Memory) Move(ctx context.Context, h Handle, r composite.Rect) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateRect(r); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	w, err := m.lookup(h)
	if err != nil {
		return err
	}
	w.rect = r
	return nil
}

func (m *Memory) Close(ctx context.Context, h Handle) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	w, err := m.lookup(h)
	if err != nil {
		return err
	}
	m.windows = slices.DeleteFunc(m.windows, func(x *memWindow) bool { return x == w })
	return nil
}
