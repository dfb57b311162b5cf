package selector

import (
	"strings"

	"github.com/jonesrussell/gopicker/internal/dom"
	"golang.org/x/net/html"
)

// Builder computes minimal selectors for elements of a document.
type Builder struct {
	policy ClassPolicy
	escape dom.Escaper
}

// Option configures a Builder.
type Option func(*Builder)

// WithClassPolicy overrides the class stability thresholds.
func WithClassPolicy(p ClassPolicy) Option {
	return func(b *Builder) {
		b.policy = p
	}
}

// WithEscaper overrides identifier escaping.
func WithEscaper(e dom.Escaper) Option {
	return func(b *Builder) {
		if e != nil {
			b.escape = e
		}
	}
}

// NewBuilder creates a Builder with the default class policy and CSSOM escaping.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		policy: DefaultClassPolicy(),
		escape: dom.EscapeIdent,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Policy returns the class policy in use.
func (b *Builder) Policy() ClassPolicy {
	return b.policy
}

// Escape escapes an identifier with the builder's escaper.
func (b *Builder) Escape(s string) string {
	return b.escape(s)
}

// Build returns a selector identifying n within doc. It returns false for non-element
// nodes. An element with an id yields "#id" without checking uniqueness. Otherwise the
// path from n towards <body> grows one segment at a time and is returned as soon as it
// matches exactly one element; if it never does the full path is returned.
func (b *Builder) Build(doc *dom.Document, n *html.Node) (string, bool) {
	if !dom.IsElement(n) {
		return "", false
	}
	if id := dom.ID(n); id != "" {
		return "#" + b.escape(id), true
	}

	switch dom.Tag(n) {
	case "body", "html":
		return dom.Tag(n), true
	}

	body := doc.Body()
	var parts []string
	for cur := n; dom.IsElement(cur) && cur != body; cur = dom.ParentElement(cur) {
		parts = append([]string{b.Segment(cur)}, parts...)

		candidate := strings.Join(parts, " ")
		if doc.Count(candidate) == 1 {
			return candidate, true
		}
	}
	return strings.Join(parts, " "), true
}

// Segment returns the tag of n followed by its stable classes, e.g. "li.card.featured".
func (b *Builder) Segment(n *html.Node) string {
	var sb strings.Builder
	sb.WriteString(b.escape(dom.Tag(n)))
	for _, c := range b.policy.StableClasses(n) {
		sb.WriteByte('.')
		sb.WriteString(b.escape(c))
	}
	return sb.String()
}
