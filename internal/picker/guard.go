package picker

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ListenerKind says what the page does with an event.
type ListenerKind string

const (
	// KindBlock suppresses the default action and all propagation.
	KindBlock ListenerKind = "block"
	// KindPick suppresses the event and reports it as a pick.
	KindPick ListenerKind = "pick"
	// KindKey reports key presses without suppressing them.
	KindKey ListenerKind = "key"
)

// Listener is one capture-phase listener group.
type Listener struct {
	Kind    ListenerKind `json:"kind"`
	Types   []string     `json:"types"`
	Capture bool         `json:"capture"`
	Passive bool         `json:"passive"`
}

// Event is a pointer or key event reported by the page.
type Event struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Key  string  `json:"key,omitempty"`
}

// ListenerTarget is the document-level event target of a host.
type ListenerTarget interface {
	AddEventListener(ctx context.Context, l Listener) error
	RemoveEventListener(ctx context.Context, l Listener) error
	// Events delivers reported events. The channel is closed when the page goes away.
	Events() <-chan Event
}

// Event types the session reacts to.
const (
	EventPointerUp = "pointerup"
	EventKeyDown   = "keydown"
)

// BlockedEventTypes are the interactions suppressed while picking.
var BlockedEventTypes = []string{"pointerdown", "mousedown", "click", "auxclick", "touchstart"}

// DefaultListeners returns the three listener groups installed by a guard.
func DefaultListeners() []Listener {
	return []Listener{
		{Kind: KindBlock, Types: BlockedEventTypes, Capture: true},
		{Kind: KindPick, Types: []string{EventPointerUp}, Capture: true},
		{Kind: KindKey, Types: []string{EventKeyDown}, Capture: true},
	}
}

// EventGuard installs the picker's listeners and removes exactly those it installed.
type EventGuard struct {
	target    ListenerTarget
	listeners []Listener

	mu        sync.Mutex
	installed []Listener
}

// NewEventGuard creates a guard for target with DefaultListeners.
func NewEventGuard(target ListenerTarget) *EventGuard {
	return &EventGuard{target: target, listeners: DefaultListeners()}
}

// Install adds every listener group. If one fails, those already added are removed.
func (g *EventGuard) Install(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.installed) > 0 {
		return nil
	}
	for _, l := range g.listeners {
		if err := g.target.AddEventListener(ctx, l); err != nil {
			rollbackErr := g.removeLocked(ctx)
			return errors.Join(fmt.Errorf("failed to install %s listener: %w", l.Kind, err), rollbackErr)
		}
		g.installed = append(g.installed, l)
	}
	return nil
}

// Installed reports whether any listener group is in place.
func (g *EventGuard) Installed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.installed) > 0
}

// Remove removes every installed group once. Calling it again is a no-op.
func (g *EventGuard) Remove(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.removeLocked(ctx)
}

func (g *EventGuard) removeLocked(ctx context.Context) error {
	var errs []error
	for i := len(g.installed) - 1; i >= 0; i-- {
		l := g.installed[i]
		if err := g.target.RemoveEventListener(ctx, l); err != nil {
			errs = append(errs, fmt.Errorf("failed to remove %s listener: %w", l.Kind, err))
		}
	}
	g.installed = nil
	return errors.Join(errs...)
}

// Events exposes the target's event stream.
func (g *EventGuard) Events() <-chan Event {
	return g.target.Events()
}
