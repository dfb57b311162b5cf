package pattern

import (
	"github.com/jonesrussell/gopicker/internal/dom"
	"github.com/jonesrussell/gopicker/internal/selector"
	"golang.org/x/net/html"
)

// landmarkSelector finds navigation landmarks.
const landmarkSelector = `nav, [role="navigation"]`

// minItemLinks is how many links a landmark needs before it looks like a pager.
const minItemLinks = 2

// DefaultCurrentClasses are class tokens that mark the current pagination item.
var DefaultCurrentClasses = []string{"current", "active", "is-active", "is-current", "selected"}

// SegmentedNav recognizes segmented pagination: a navigation landmark whose links
// include one item marked current that is immediately followed by a sibling link.
// The recognized selector targets that sibling link, i.e. the "next" control.
type SegmentedNav struct {
	builder        *selector.Builder
	currentClasses []string
}

// NewSegmentedNav creates the recognizer. currentClasses defaults to DefaultCurrentClasses.
func NewSegmentedNav(builder *selector.Builder, currentClasses ...string) SegmentedNav {
	if len(currentClasses) == 0 {
		currentClasses = DefaultCurrentClasses
	}
	return SegmentedNav{builder: builder, currentClasses: currentClasses}
}

// Name implements Recognizer.
func (s SegmentedNav) Name() string {
	return "segmented-nav"
}

// Recognize implements Recognizer. Scope.Node is ignored; the pattern is document level.
func (s SegmentedNav) Recognize(scope Scope) (string, bool) {
	if scope.Doc == nil {
		return "", false
	}
	for _, nav := range scope.Doc.Query(landmarkSelector) {
		if len(scope.Doc.QueryWithin(nav, "a[href]")) < minItemLinks {
			continue
		}
		if sel, ok := s.recognizeIn(scope.Doc, nav); ok {
			return sel, true
		}
	}
	return "", false
}

func (s SegmentedNav) recognizeIn(doc *dom.Document, nav *html.Node) (string, bool) {
	navSel, ok := s.builder.Build(doc, nav)
	if !ok {
		return "", false
	}

	for _, el := range doc.QueryWithin(nav, "*") {
		marker, isCurrent := s.currentMarker(el)
		if !isCurrent {
			continue
		}

		// A current link wrapped in a list item: the list item is the pager segment.
		item, itemPart := el, marker
		if parent := dom.ParentElement(el); dom.Tag(el) == "a" && dom.Tag(parent) == "li" && dom.Contains(nav, parent) {
			item = parent
			if parentMarker, ok := s.currentMarker(parent); ok {
				itemPart = parentMarker
			} else {
				itemPart = "li:has(" + marker + ")"
			}
		}

		next := dom.NextElementSibling(item)
		if next == nil {
			continue
		}

		nextPart := s.builder.Escape(dom.Tag(next))
		link := next
		if !isLink(next) {
			links := doc.QueryWithin(next, "a[href]")
			if len(links) == 0 {
				continue
			}
			link = links[0]
			nextPart += " a"
		}

		sel := navSel + " " + itemPart + " + " + nextPart
		for _, m := range doc.Query(sel) {
			if m == link {
				return sel, true
			}
		}
	}
	return "", false
}

// currentMarker returns a selector fragment (tag plus the marking attribute or class)
// when el is marked as the current pagination item.
func (s SegmentedNav) currentMarker(el *html.Node) (string, bool) {
	tag := s.builder.Escape(dom.Tag(el))
	if v, ok := dom.Attr(el, "aria-current"); ok && v != "" && v != "false" {
		if isToken(v) {
			return tag + `[aria-current="` + v + `"]`, true
		}
		return tag + `[aria-current]`, true
	}
	for _, c := range s.currentClasses {
		if dom.HasClass(el, c) {
			return tag + "." + s.builder.Escape(c), true
		}
	}
	return "", false
}

func isLink(n *html.Node) bool {
	if dom.Tag(n) != "a" {
		return false
	}
	_, ok := dom.Attr(n, "href")
	return ok
}

func isToken(v string) bool {
	for _, c := range v {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') && c != '-' {
			return false
		}
	}
	return v != ""
}
