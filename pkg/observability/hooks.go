// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about layout resolution, window operations, and HTTP
// requests served by the API.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so library packages never
// import a metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLayoutHooks(&myLayoutHooks{})
//	    observability.SetWindowHooks(&myWindowHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Layout().OnLayoutStart(ctx, expr)
//	// ... compile and resolve ...
//	observability.Layout().OnLayoutComplete(ctx, expr, nodeCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from the layout pipeline.
type LayoutHooks interface {
	// Resolve events: compiling an expression and exporting its geometry.
	OnLayoutStart(ctx context.Context, expr string)
	OnLayoutComplete(ctx context.Context, expr string, nodeCount int, duration time.Duration, err error)

	// Apply events: binding windows and moving them into place.
	OnApplyStart(ctx context.Context, bindings int)
	OnApplyComplete(ctx context.Context, moved int, duration time.Duration, err error)
}

// =============================================================================
// Window Hooks
// =============================================================================

// WindowHooks receives events from window manager operations.
type WindowHooks interface {
	// OnMove records one window being moved into a layout slot.
	OnMove(ctx context.Context, label string, handle uint64, duration time.Duration, err error)

	// OnCommand records an external window tool invocation.
	OnCommand(ctx context.Context, name string, duration time.Duration, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP API server.
type HTTPHooks interface {
	// OnRequest records an incoming HTTP request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records the response sent for a request.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)

	// OnError records a request that failed inside a handler.
	OnError(ctx context.Context, method, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnLayoutStart(context.Context, string)                               {}
func (NoopLayoutHooks) OnLayoutComplete(context.Context, string, int, time.Duration, error) {}
func (NoopLayoutHooks) OnApplyStart(context.Context, int)                                   {}
func (NoopLayoutHooks) OnApplyComplete(context.Context, int, time.Duration, error)          {}

// NoopWindowHooks is a no-op implementation of WindowHooks.
type NoopWindowHooks struct{}

func (NoopWindowHooks) OnMove(context.Context, string, uint64, time.Duration, error) {}
func (NoopWindowHooks) OnCommand(context.Context, string, time.Duration, error)      {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	layoutHooks LayoutHooks = NoopLayoutHooks{}
	windowHooks WindowHooks = NoopWindowHooks{}
	httpHooks   HTTPHooks   = NoopHTTPHooks{}
	hooksMu     sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks.
// This should be called once at application startup before any layout operations.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetWindowHooks registers custom window hooks.
// This should be called once at application startup before any window operations.
func SetWindowHooks(h WindowHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		windowHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before serving requests.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Window returns the registered window hooks.
func Window() WindowHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return windowHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	windowHooks = NoopWindowHooks{}
	httpHooks = NoopHTTPHooks{}
}
