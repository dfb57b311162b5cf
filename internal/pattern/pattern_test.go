package pattern_test

import (
	"testing"

	"github.com/jonesrussell/gopicker/internal/dom"
	"github.com/jonesrussell/gopicker/internal/pattern"
	"github.com/jonesrussell/gopicker/internal/selector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const blockListHTML = `<html><body>
<ul class="block-list">
  <li class="block-list__item"><strong class="block-list__title"><a href="/Exhibitors/1">Acme</a></strong><p>Hall A</p></li>
  <li class="block-list__item"><strong class="block-list__title"><a href="/Exhibitors/2">Globex</a></strong><p>Hall B</p></li>
</ul>
<footer><p class="legal">(c)</p></footer>
</body></html>`

func parse(t *testing.T, markup string) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString(markup, "https://example.com/")
	require.NoError(t, err)
	return doc
}

func TestLiteral_Enclosing(t *testing.T) {
	doc := parse(t, blockListHTML)
	rows := pattern.DefaultRowRecognizers()

	m, ok := pattern.First(rows, pattern.Scope{Doc: doc, Node: doc.First("li p")})
	require.True(t, ok)
	assert.Equal(t, "li.block-list__item", m.Selector)
	assert.Equal(t, "block-list-item", m.Recognizer)

	_, ok = pattern.First(rows, pattern.Scope{Doc: doc, Node: doc.First("p.legal")})
	assert.False(t, ok, "clicks outside the list do not use the fast path")

	_, ok = pattern.First(rows, pattern.Scope{Doc: doc})
	assert.False(t, ok)
}

func TestLiteral_Inside(t *testing.T) {
	doc := parse(t, blockListHTML)
	items := pattern.DefaultItemRecognizers()

	m, ok := pattern.First(items, pattern.Scope{Doc: doc, Node: doc.First("li.block-list__item")})
	require.True(t, ok)
	assert.Equal(t, "strong.block-list__title a", m.Selector)

	_, ok = pattern.First(items, pattern.Scope{Doc: doc, Node: doc.First("footer")})
	assert.False(t, ok)
}

func TestLiteral_Anywhere(t *testing.T) {
	doc := parse(t, blockListHTML)
	lit := pattern.Literal{Label: "legal", Selector: "p.legal"}

	sel, ok := lit.Recognize(pattern.Scope{Doc: doc})
	require.True(t, ok)
	assert.Equal(t, "p.legal", sel)

	_, ok = lit.Recognize(pattern.Scope{})
	assert.False(t, ok)
}

func TestSegmentedNav(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   string
		ok     bool
	}{
		{
			name: "class marked list item",
			markup: `<nav class="pagination"><ul>
				<li class="pagination__item is-active"><a href="?page=1">1</a></li>
				<li class="pagination__item"><a href="?page=2">2</a></li>
				<li class="pagination__item"><a href="?page=3">3</a></li>
			</ul></nav>`,
			want: "nav.pagination li.is-active + li a",
			ok:   true,
		},
		{
			name: "aria-current link",
			markup: `<nav aria-label="Pagination">
				<a href="/p/1" aria-current="page">1</a><a href="/p/2">2</a>
			</nav>`,
			want: `nav a[aria-current="page"] + a`,
			ok:   true,
		},
		{
			name: "aria-current link inside list item",
			markup: `<div role="navigation" class="pager"><ol>
				<li><a href="/p/1" aria-current="page">1</a></li>
				<li><a href="/p/2">2</a></li>
			</ol></div>`,
			want: `div.pager li:has(a[aria-current="page"]) + li a`,
			ok:   true,
		},
		{
			name: "current item is last",
			markup: `<nav><a href="/p/1">1</a><a href="/p/2" class="current">2</a></nav>`,
			ok:     false,
		},
		{
			name: "aria-current false is not current",
			markup: `<nav><a href="/p/1" aria-current="false">1</a><a href="/p/2">2</a></nav>`,
			ok:     false,
		},
		{
			name:   "no landmark",
			markup: `<div><a href="/p/1" class="current">1</a><a href="/p/2">2</a></div>`,
			ok:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parse(t, "<html><body>"+tt.markup+"</body></html>")
			r := pattern.NewSegmentedNav(selector.NewBuilder())

			sel, ok := r.Recognize(pattern.Scope{Doc: doc})
			require.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			assert.Equal(t, tt.want, sel)
			assert.Equal(t, 1, doc.Count(sel))
			assert.Equal(t, "segmented-nav", r.Name())
		})
	}
}
