// Package pattern holds known-pattern recognizers: small, independently testable
// matchers for markup shapes that are common enough to deserve a fast path ahead of the
// generic selector inference.
package pattern

import (
	"github.com/jonesrussell/gopicker/internal/dom"
	"golang.org/x/net/html"
)

// Scope is what a recognizer looks at: the document and an optional anchor node
// (the clicked element for rows, the row container for items).
type Scope struct {
	Doc  *dom.Document
	Node *html.Node
}

// Recognizer returns a selector when its pattern is present in scope.
type Recognizer interface {
	Name() string
	Recognize(scope Scope) (string, bool)
}

// Relation restricts where a literal selector must match relative to Scope.Node.
type Relation int

const (
	// Anywhere matches if the selector matches anything in the document.
	Anywhere Relation = iota
	// Enclosing requires a match that is Scope.Node or one of its ancestors.
	Enclosing
	// Inside requires a match among the descendants of Scope.Node.
	Inside
)

// Literal recognizes a fixed selector.
type Literal struct {
	Label    string
	Selector string
	Relation Relation
}

// Name implements Recognizer.
func (l Literal) Name() string {
	return l.Label
}

// Recognize implements Recognizer.
func (l Literal) Recognize(scope Scope) (string, bool) {
	if scope.Doc == nil {
		return "", false
	}

	switch l.Relation {
	case Enclosing:
		if scope.Node == nil {
			return "", false
		}
		for _, m := range scope.Doc.Query(l.Selector) {
			if dom.Contains(m, scope.Node) {
				return l.Selector, true
			}
		}
	case Inside:
		if scope.Node == nil {
			return "", false
		}
		if len(scope.Doc.QueryWithin(scope.Node, l.Selector)) > 0 {
			return l.Selector, true
		}
	default:
		if scope.Doc.Exists(l.Selector) {
			return l.Selector, true
		}
	}
	return "", false
}

// Match is the result of running a recognizer list.
type Match struct {
	Recognizer string
	Selector   string
}

// First runs recognizers in order and returns the first hit.
func First(recognizers []Recognizer, scope Scope) (Match, bool) {
	for _, r := range recognizers {
		if sel, ok := r.Recognize(scope); ok {
			return Match{Recognizer: r.Name(), Selector: sel}, true
		}
	}
	return Match{}, false
}

// DefaultRowRecognizers returns the built-in row fast paths.
func DefaultRowRecognizers() []Recognizer {
	return []Recognizer{
		Literal{Label: "block-list-item", Selector: "li.block-list__item", Relation: Enclosing},
	}
}

// DefaultItemRecognizers returns the built-in item fast paths, evaluated inside a row.
func DefaultItemRecognizers() []Recognizer {
	return []Recognizer{
		Literal{Label: "block-list-title-link", Selector: "strong.block-list__title a", Relation: Inside},
	}
}
