package pagination

import (
	"regexp"

	"github.com/jonesrussell/gopicker/internal/dom"
	"github.com/jonesrussell/gopicker/internal/pattern"
	"github.com/jonesrussell/gopicker/internal/selector"
	"golang.org/x/net/html"
)

// loadMoreRe matches the visible text of "load more" style controls.
var loadMoreRe = regexp.MustCompile(`(?i)load|more`)

// Context is everything a rule may look at.
type Context struct {
	Doc *dom.Document
	// Clicked is the element of the second pick; nil when the user skipped it.
	Clicked *html.Node
	Section string
}

// Rule is one named heuristic. Apply must not mutate anything.
type Rule struct {
	Name  string
	Apply func(Context) (Result, bool)
}

// Classifier evaluates rules in priority order; the first hit wins.
type Classifier struct {
	rules []Rule
}

// NewClassifier returns a classifier with the given rules.
func NewClassifier(rules ...Rule) *Classifier {
	return &Classifier{rules: rules}
}

// NewDefaultClassifier returns the standard rule chain: known structural pagers,
// "load more" text, index page links, then the clicked element itself.
func NewDefaultClassifier(builder *selector.Builder, recognizers []pattern.Recognizer) *Classifier {
	if recognizers == nil {
		recognizers = []pattern.Recognizer{pattern.NewSegmentedNav(builder)}
	}
	return NewClassifier(
		KnownPatternRule(recognizers),
		LoadMoreRule(builder),
		IndexPagesRule(),
		FetchPagesRule(builder),
	)
}

// Rules returns the rule chain in priority order.
func (c *Classifier) Rules() []Rule {
	return c.rules
}

// Classify applies the rules. Without a click the result is ModeNone.
func (c *Classifier) Classify(ctx Context) (Result, string) {
	if ctx.Clicked == nil || ctx.Doc == nil {
		return None(), "none"
	}
	for _, r := range c.rules {
		if res, ok := r.Apply(ctx); ok {
			return res, r.Name
		}
	}
	return None(), "none"
}

// None is the result for listings without pagination.
func None() Result {
	return Result{Mode: ModeNone, Selector: ""}
}

// KnownPatternRule classifies a recognized structural pager as a next button.
func KnownPatternRule(recognizers []pattern.Recognizer) Rule {
	return Rule{
		Name: "segmented-nav",
		Apply: func(ctx Context) (Result, bool) {
			m, ok := pattern.First(recognizers, pattern.Scope{Doc: ctx.Doc, Node: ctx.Clicked})
			if !ok {
				return Result{}, false
			}
			return Result{Mode: ModeNextButton, Selector: m.Selector}, true
		},
	}
}

// LoadMoreRule matches clickables whose text mentions "load" or "more".
func LoadMoreRule(builder *selector.Builder) Rule {
	return Rule{
		Name: "load-more",
		Apply: func(ctx Context) (Result, bool) {
			clickable := Clickable(ctx.Clicked)
			if !loadMoreRe.MatchString(dom.Text(clickable)) {
				return Result{}, false
			}
			sel, ok := builder.Build(ctx.Doc, clickable)
			if !ok {
				return Result{}, false
			}
			return Result{Mode: ModeLoadMore, Selector: sel}, true
		},
	}
}

// IndexPagesRule matches pages linking to the section's index URL template. The
// selector is generic in the section, not tied to the clicked link.
func IndexPagesRule() Rule {
	return Rule{
		Name: "index-pages",
		Apply: func(ctx Context) (Result, bool) {
			if ctx.Section == "" {
				return Result{}, false
			}
			sel := IndexSelector(ctx.Section)
			if !ctx.Doc.Exists(sel) {
				return Result{}, false
			}
			return Result{Mode: ModeIndexPages, Selector: sel}, true
		},
	}
}

// FetchPagesRule is the fallback: fetch every page link shaped like the clicked one.
func FetchPagesRule(builder *selector.Builder) Rule {
	return Rule{
		Name: "fetch-pages",
		Apply: func(ctx Context) (Result, bool) {
			sel, ok := builder.Build(ctx.Doc, Clickable(ctx.Clicked))
			if !ok {
				return Result{}, false
			}
			return Result{Mode: ModeFetchPages, Selector: sel}, true
		},
	}
}

// Clickable returns the nearest ancestor-or-self link, button or role=button element,
// or n itself when there is none.
func Clickable(n *html.Node) *html.Node {
	c := dom.Closest(n, func(el *html.Node) bool {
		switch dom.Tag(el) {
		case "a", "button":
			return true
		}
		role, _ := dom.Attr(el, "role")
		return role == "button"
	})
	if c == nil {
		return n
	}
	return c
}
