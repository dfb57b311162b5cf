package picker

//go:generate mockgen -source=host.go -destination=../../testutils/mocks/picker/host.go -package=picker

import (
	"context"

	"github.com/jonesrussell/gopicker/internal/dom"
	"golang.org/x/net/html"
)

// Target is the element under the pointer, resolved against a snapshot of the page.
type Target struct {
	Doc  *dom.Document
	Node *html.Node
	// Handle is the host's reference to the live element, used for highlighting.
	Handle string
}

// HitTester reads the element at viewport coordinates. A nil target with a nil error
// means nothing is under the pointer.
type HitTester interface {
	ElementFromPoint(ctx context.Context, x, y float64) (*Target, error)
}

// Overlay shows instructions on top of the page.
type Overlay interface {
	ShowOverlay(ctx context.Context, message string) error
	HideOverlay(ctx context.Context) error
}

// Outliner draws and removes an outline on a live element. RemoveOutline restores
// whatever outline the element had before.
type Outliner interface {
	SetOutline(ctx context.Context, t *Target, style string) error
	RemoveOutline(ctx context.Context, t *Target) error
}

// Host is a page the picker can run on.
type Host interface {
	ListenerTarget
	HitTester
	Overlay
	Outliner
}

// Presenter delivers results and notices to the user.
type Presenter interface {
	Present(ctx context.Context, cfg Configuration) error
	Notify(ctx context.Context, message string)
}
