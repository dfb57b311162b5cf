package picker

import (
	"context"
	"sync"
	"time"

	"github.com/jonesrussell/gopicker/internal/logger"
)

// Default flash appearance.
const (
	DefaultHighlightStyle    = "3px solid #22c55e"
	DefaultHighlightDuration = 600 * time.Millisecond
)

// Highlighter flashes an outline on the picked element. At most one element is
// outlined at a time; Release reverts it immediately.
type Highlighter struct {
	outliner Outliner
	style    string
	duration time.Duration
	log      logger.Interface

	mu     sync.Mutex
	active *Target
	timer  *time.Timer
}

// NewHighlighter creates a Highlighter drawing through outliner.
func NewHighlighter(outliner Outliner, style string, duration time.Duration, log logger.Interface) *Highlighter {
	if style == "" {
		style = DefaultHighlightStyle
	}
	if duration <= 0 {
		duration = DefaultHighlightDuration
	}
	if log == nil {
		log = logger.NewNoOp()
	}
	return &Highlighter{outliner: outliner, style: style, duration: duration, log: log}
}

// Flash outlines t and schedules the revert. Failures are logged only.
func (h *Highlighter) Flash(ctx context.Context, t *Target) {
	if t == nil || t.Handle == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.revertLocked(ctx)

	if err := h.outliner.SetOutline(ctx, t, h.style); err != nil {
		h.log.Warn("Failed to highlight element", "handle", t.Handle, "error", err)
		return
	}
	h.active = t
	// The revert runs after the page event has been handled, so it must not depend
	// on the caller's context.
	revertCtx := context.WithoutCancel(ctx)
	h.timer = time.AfterFunc(h.duration, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if h.active == t {
			h.revertLocked(revertCtx)
		}
	})
}

// Active reports whether an outline is currently applied.
func (h *Highlighter) Active() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.active != nil
}

// Release reverts the active outline, if any, and cancels its timer.
func (h *Highlighter) Release(ctx context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.revertLocked(ctx)
}

func (h *Highlighter) revertLocked(ctx context.Context) {
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
	if h.active == nil {
		return
	}
	t := h.active
	h.active = nil
	if err := h.outliner.RemoveOutline(ctx, t); err != nil {
		h.log.Warn("Failed to revert highlight", "handle", t.Handle, "error", err)
	}
}
