// Package dom wraps a parsed HTML page with the queries the selector engine needs:
// match counting, tree walks and resolution of element paths reported by a live browser.
package dom

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// ErrInvalidSelector is returned by Validate for selectors the engine cannot parse.
var ErrInvalidSelector = errors.New("invalid selector")

// Document is a snapshot of a page: its element tree and the URL it was loaded from.
type Document struct {
	doc *goquery.Document
	url *url.URL
}

// NewDocument wraps a goquery document loaded from pageURL.
func NewDocument(doc *goquery.Document, pageURL string) (*Document, error) {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	doc.Url = parsedURL

	return &Document{
		doc: doc,
		url: parsedURL,
	}, nil
}

// Parse reads HTML from r.
func Parse(r io.Reader, pageURL string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return NewDocument(doc, pageURL)
}

// ParseString is Parse for an in-memory page.
func ParseString(markup, pageURL string) (*Document, error) {
	return Parse(strings.NewReader(markup), pageURL)
}

// URL returns the page URL.
func (d *Document) URL() *url.URL {
	return d.url
}

// Path returns the URL path of the page ("/" when empty).
func (d *Document) Path() string {
	if d.url == nil || d.url.Path == "" {
		return "/"
	}
	return d.url.Path
}

// WithPath returns a copy of the document that reports a different URL path.
// The element tree is shared.
func (d *Document) WithPath(path string) *Document {
	u := *d.url
	u.Path = path
	return &Document{doc: d.doc, url: &u}
}

// Root returns the document node.
func (d *Document) Root() *html.Node {
	if len(d.doc.Nodes) == 0 {
		return nil
	}
	return d.doc.Nodes[0]
}

// Element returns the document element (<html>).
func (d *Document) Element() *html.Node {
	for c := d.Root().FirstChild; c != nil; c = c.NextSibling {
		if IsElement(c) {
			return c
		}
	}
	return nil
}

// Body returns the <body> element, or nil.
func (d *Document) Body() *html.Node {
	nodes := d.doc.Find("body").Nodes
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

// Count returns how many elements in the whole document match sel.
// Unparseable selectors match nothing.
func (d *Document) Count(sel string) int {
	return d.doc.Find(sel).Length()
}

// Exists reports whether sel matches at least one element.
func (d *Document) Exists(sel string) bool {
	return d.Count(sel) > 0
}

// Query returns every element matching sel in document order.
func (d *Document) Query(sel string) []*html.Node {
	return d.doc.Find(sel).Nodes
}

// First returns the first element matching sel, or nil.
func (d *Document) First(sel string) *html.Node {
	nodes := d.doc.Find(sel).First().Nodes
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

// QueryWithin returns the descendants of scope matching sel.
func (d *Document) QueryWithin(scope *html.Node, sel string) []*html.Node {
	if scope == nil {
		return nil
	}
	return goquery.NewDocumentFromNode(scope).Find(sel).Nodes
}

// Matches reports whether n itself matches sel.
func Matches(n *html.Node, sel string) bool {
	if !IsElement(n) {
		return false
	}
	compiled, err := cascadia.Compile(sel)
	if err != nil {
		return false
	}
	return compiled.Match(n)
}

// Validate parses sel as a selector group.
func Validate(sel string) error {
	if strings.TrimSpace(sel) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidSelector)
	}
	if _, err := cascadia.ParseGroup(sel); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidSelector, sel, err)
	}
	return nil
}

// NodeAtPath resolves a path of element-child indices starting at the document element.
// An empty path is the document element itself. Out-of-range indices yield nil.
func (d *Document) NodeAtPath(path []int) *html.Node {
	cur := d.Element()
	for _, idx := range path {
		if cur == nil || idx < 0 {
			return nil
		}
		cur = nthElementChild(cur, idx)
	}
	return cur
}

// PathOf is the inverse of NodeAtPath.
func PathOf(n *html.Node) []int {
	var path []int
	for cur := n; cur != nil && cur.Parent != nil && IsElement(cur.Parent); cur = cur.Parent {
		path = append(path, elementIndex(cur))
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func nthElementChild(n *html.Node, idx int) *html.Node {
	i := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !IsElement(c) {
			continue
		}
		if i == idx {
			return c
		}
		i++
	}
	return nil
}

func elementIndex(n *html.Node) int {
	i := 0
	for prev := n.PrevSibling; prev != nil; prev = prev.PrevSibling {
		if IsElement(prev) {
			i++
		}
	}
	return i
}
