package window

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/screengod/pkg/composite"
)

// DryRun wraps a Manager so that lookups reach the real window system but
// Move and Close are only logged.
type DryRun struct {
	Manager
	logger *log.Logger
}

// NewDryRun wraps mgr. A nil mgr uses an empty Memory table.
func NewDryRun(mgr Manager, logger *log.Logger) *DryRun {
	if mgr == nil {
		mgr = NewMemory()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &DryRun{Manager: mgr, logger: logger}
}

// Move logs the move it would perform.
func (d *DryRun) Move(ctx context.Context, h Handle, r composite.Rect) error {
	if err := validateRect(r); err != nil {
		return err
	}
	d.logger.Info("would move", "window", h, "rect", r)
	return ctx.Err()
}

// Close logs the close it would perform.
func (d *DryRun) Close(ctx context.Context, h Handle) error {
	d.logger.Info("would close", "window", h)
	return ctx.Err()
}
