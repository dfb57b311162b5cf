package selector

import (
	"github.com/jonesrussell/gopicker/internal/dom"
	"golang.org/x/net/html"
)

// Default row search bounds.
const (
	DefaultMaxDepth   = 16
	DefaultMinMatches = 2
	DefaultMaxMatches = 5000
)

// inlineTags are never accepted as row containers.
var inlineTags = map[string]bool{
	"a":      true,
	"strong": true,
	"span":   true,
	"em":     true,
	"b":      true,
	"i":      true,
}

// RowFinder locates the nearest ancestor of a clicked element whose selector matches a
// plausible number of repeated rows.
type RowFinder struct {
	builder    *Builder
	maxDepth   int
	minMatches int
	maxMatches int
}

// RowOption configures a RowFinder.
type RowOption func(*RowFinder)

// WithMaxDepth bounds the ancestor walk.
func WithMaxDepth(depth int) RowOption {
	return func(f *RowFinder) {
		f.maxDepth = depth
	}
}

// WithMatchRange sets the inclusive match count range a row selector must fall in.
func WithMatchRange(lowest, highest int) RowOption {
	return func(f *RowFinder) {
		f.minMatches = lowest
		f.maxMatches = highest
	}
}

// NewRowFinder creates a RowFinder on top of builder.
func NewRowFinder(builder *Builder, opts ...RowOption) *RowFinder {
	f := &RowFinder{
		builder:    builder,
		maxDepth:   DefaultMaxDepth,
		minMatches: DefaultMinMatches,
		maxMatches: DefaultMaxMatches,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Find walks from n (inclusive) up to maxDepth elements and returns the first selector
// whose match count is within range. Inline tags are skipped.
func (f *RowFinder) Find(doc *dom.Document, n *html.Node) (string, bool) {
	cur := n
	for i := 0; i < f.maxDepth && dom.IsElement(cur); i++ {
		if !inlineTags[dom.Tag(cur)] {
			if sel, ok := f.builder.Build(doc, cur); ok {
				count := doc.Count(sel)
				if count >= f.minMatches && count <= f.maxMatches {
					return sel, true
				}
			}
		}
		cur = dom.ParentElement(cur)
	}
	return "", false
}

// IsInline reports whether tag is one of the text-level tags rows are never built on.
func IsInline(tag string) bool {
	return inlineTags[tag]
}
