package picker

import (
	"regexp"
	"strings"

	"github.com/jonesrussell/gopicker/internal/dom"
	"github.com/jonesrussell/gopicker/internal/pattern"
	"golang.org/x/net/html"
)

// Selectors every derivation falls back to.
const (
	fallbackRowSelector  = "body"
	fallbackItemSelector = "a[href]"
)

var headingRe = regexp.MustCompile(`^h[1-6]$`)

// deriveRow picks the row selector for a click: known row patterns, then the repeating
// ancestor, then the parent element, then body.
func (s *Session) deriveRow(doc *dom.Document, clicked *html.Node) (string, string) {
	if m, ok := pattern.First(s.rowRecognizers, pattern.Scope{Doc: doc, Node: clicked}); ok {
		return m.Selector, m.Recognizer
	}
	if sel, ok := s.rows.Find(doc, clicked); ok {
		return sel, "repeating-ancestor"
	}
	if sel, ok := s.builder.Build(doc, dom.ParentElement(clicked)); ok {
		return sel, "parent"
	}
	return fallbackRowSelector, "fallback"
}

// deriveItem picks the item selector, relative to the row the click landed in.
func (s *Session) deriveItem(doc *dom.Document, rowSelector string, clicked *html.Node) (string, string) {
	row := dom.Closest(clicked, func(n *html.Node) bool {
		return dom.Matches(n, rowSelector)
	})
	if row == nil {
		row = doc.Body()
	}

	if m, ok := pattern.First(s.itemRecognizers, pattern.Scope{Doc: doc, Node: row}); ok {
		return m.Selector, m.Recognizer
	}
	if sel, ok := s.titleLink(doc, row); ok {
		return sel, "title-link"
	}

	anchor := dom.Closest(clicked, func(n *html.Node) bool {
		_, hasHref := dom.Attr(n, "href")
		return dom.Tag(n) == "a" && hasHref
	})
	if anchor != nil {
		classes := s.builder.Policy().StableClasses(anchor)
		if len(classes) == 0 {
			return fallbackItemSelector, "link"
		}
		parts := make([]string, 0, len(classes))
		for _, c := range classes {
			parts = append(parts, s.builder.Escape(c))
		}
		return "a." + strings.Join(parts, "."), "link"
	}
	return fallbackItemSelector, "fallback"
}

// titleLink finds the first link in row that reads as the item's title: a link inside
// a heading or a "title" element, or a link that is itself classed as a title.
func (s *Session) titleLink(doc *dom.Document, row *html.Node) (string, bool) {
	if row == nil {
		return "", false
	}
	for _, a := range doc.QueryWithin(row, "a[href]") {
		if isTitled(a) {
			return s.builder.Segment(a), true
		}
		container := dom.Closest(dom.ParentElement(a), func(n *html.Node) bool {
			return n != row && dom.Contains(row, n) && (headingRe.MatchString(dom.Tag(n)) || isTitled(n))
		})
		if container != nil && container != row {
			return s.builder.Segment(container) + " a", true
		}
	}
	return "", false
}

func isTitled(n *html.Node) bool {
	class, _ := dom.Attr(n, "class")
	return strings.Contains(strings.ToLower(class), "title")
}
