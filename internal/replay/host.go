package replay

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/jonesrussell/gopicker/internal/dom"
	"github.com/jonesrussell/gopicker/internal/logger"
	"github.com/jonesrussell/gopicker/internal/picker"
	"golang.org/x/net/html"
)

// Host is an in-memory page. Clicks land on synthetic coordinates that the host maps
// back to the scripted element.
type Host struct {
	doc *dom.Document
	log logger.Interface

	events chan picker.Event

	mu        sync.Mutex
	changed   chan struct{}
	listeners map[picker.ListenerKind]picker.Listener
	retired   bool
	points    map[point]*html.Node
	overlay   string
	shown     bool
	outlines  map[string]string
	closeOnce sync.Once
}

type point struct {
	x, y float64
}

var _ picker.Host = (*Host)(nil)

// NewHost creates a host for doc with room for bufferSize pending events.
func NewHost(doc *dom.Document, bufferSize int, log logger.Interface) *Host {
	if log == nil {
		log = logger.NewNoOp()
	}
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Host{
		doc:       doc,
		log:       log.WithComponent("replay"),
		events:    make(chan picker.Event, bufferSize),
		changed:   make(chan struct{}),
		listeners: make(map[picker.ListenerKind]picker.Listener),
		points:    make(map[point]*html.Node),
		outlines:  make(map[string]string),
	}
}

// Document returns the page.
func (h *Host) Document() *dom.Document {
	return h.doc
}

// AddEventListener implements picker.ListenerTarget.
func (h *Host) AddEventListener(_ context.Context, l picker.Listener) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.listeners[l.Kind]; ok {
		return fmt.Errorf("%s listener already installed", l.Kind)
	}
	h.listeners[l.Kind] = l
	h.broadcastLocked()
	return nil
}

// RemoveEventListener implements picker.ListenerTarget.
func (h *Host) RemoveEventListener(_ context.Context, l picker.Listener) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.listeners[l.Kind]; !ok {
		return fmt.Errorf("%s listener not installed", l.Kind)
	}
	delete(h.listeners, l.Kind)
	if len(h.listeners) == 0 {
		h.retired = true
	}
	h.broadcastLocked()
	return nil
}

// Listeners returns the installed listener groups.
func (h *Host) Listeners() []picker.Listener {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]picker.Listener, 0, len(h.listeners))
	for _, l := range h.listeners {
		out = append(out, l)
	}
	return out
}

// Events implements picker.ListenerTarget.
func (h *Host) Events() <-chan picker.Event {
	return h.events
}

// ElementFromPoint implements picker.HitTester.
func (h *Host) ElementFromPoint(_ context.Context, x, y float64) (*picker.Target, error) {
	h.mu.Lock()
	n, ok := h.points[point{x, y}]
	h.mu.Unlock()
	if !ok || n == nil {
		return nil, nil
	}
	return &picker.Target{Doc: h.doc, Node: n, Handle: handleFor(n)}, nil
}

// ShowOverlay implements picker.Overlay.
func (h *Host) ShowOverlay(_ context.Context, message string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.overlay = message
	h.shown = true
	h.log.Debug("Overlay", "message", message)
	return nil
}

// HideOverlay implements picker.Overlay.
func (h *Host) HideOverlay(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.overlay = ""
	h.shown = false
	return nil
}

// Overlay returns the current overlay message and whether it is visible.
func (h *Host) Overlay() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.overlay, h.shown
}

// SetOutline implements picker.Outliner.
func (h *Host) SetOutline(_ context.Context, t *picker.Target, style string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.outlines[t.Handle] = style
	return nil
}

// RemoveOutline implements picker.Outliner.
func (h *Host) RemoveOutline(_ context.Context, t *picker.Target) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.outlines, t.Handle)
	return nil
}

// Outlined reports the outline currently drawn on the element behind handle.
func (h *Host) Outlined(handle string) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	style, ok := h.outlines[handle]
	return style, ok
}

// Play delivers script to the page. Each step waits until the page listens for it.
// Steps that arrive after the picker removed its listeners reach the page unobserved
// and are dropped. The event stream is closed when Play returns.
func (h *Host) Play(ctx context.Context, script Script) error {
	defer h.Close()

	for i, step := range script {
		ev, err := h.eventFor(i, step)
		if err != nil {
			return err
		}

		kind := picker.KindKey
		if step.Kind == StepClick {
			kind = picker.KindPick
		}

		delivered, err := h.waitFor(ctx, kind)
		if err != nil {
			return err
		}
		if !delivered {
			h.log.Debug("Step not observed", "step", step.String())
			continue
		}

		select {
		case h.events <- ev:
			h.log.Debug("Step delivered", "step", step.String())
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Close closes the event stream. It is safe to call more than once.
func (h *Host) Close() {
	h.closeOnce.Do(func() {
		close(h.events)
	})
}

// eventFor turns a step into a page event, registering the click target.
func (h *Host) eventFor(i int, step Step) (picker.Event, error) {
	switch step.Kind {
	case StepKey:
		return picker.Event{Type: picker.EventKeyDown, Key: step.Key}, nil
	case StepClick:
		n := h.doc.First(step.Selector)
		if n == nil {
			h.log.Warn("Click selector matches nothing", "selector", step.Selector)
		}
		p := point{x: float64(i + 1), y: float64(i + 1)}
		h.mu.Lock()
		h.points[p] = n
		h.mu.Unlock()
		return picker.Event{Type: picker.EventPointerUp, X: p.x, Y: p.y}, nil
	default:
		return picker.Event{}, fmt.Errorf("%w: %q", ErrUnknownStep, step.Kind)
	}
}

// waitFor blocks until a listener of kind is installed. It returns false once the
// listeners have been removed for good.
func (h *Host) waitFor(ctx context.Context, kind picker.ListenerKind) (bool, error) {
	for {
		h.mu.Lock()
		_, ok := h.listeners[kind]
		retired := h.retired
		changed := h.changed
		h.mu.Unlock()

		switch {
		case ok:
			return true, nil
		case retired:
			return false, nil
		}

		select {
		case <-changed:
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
}

func (h *Host) broadcastLocked() {
	close(h.changed)
	h.changed = make(chan struct{})
}

// handleFor names an element by its child index path.
func handleFor(n *html.Node) string {
	path := dom.PathOf(n)
	parts := make([]string, len(path))
	for i, idx := range path {
		parts[i] = strconv.Itoa(idx)
	}
	return "replay:" + strings.Join(parts, ".")
}
