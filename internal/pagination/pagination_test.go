package pagination_test

import (
	"testing"

	"github.com/jonesrussell/gopicker/internal/dom"
	"github.com/jonesrussell/gopicker/internal/pagination"
	"github.com/jonesrussell/gopicker/internal/selector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, markup, pageURL string) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString("<html><body>"+markup+"</body></html>", pageURL)
	require.NoError(t, err)
	return doc
}

func TestSectionDetector_Detect(t *testing.T) {
	detector := pagination.NewSectionDetector(nil, "")

	tests := []struct {
		name    string
		pageURL string
		markup  string
		want    string
	}{
		{
			name:    "path segment",
			pageURL: "https://expo.example.com/Exhibitors/List",
			want:    "Exhibitors",
		},
		{
			name:    "path segment is case insensitive and capitalized",
			pageURL: "https://expo.example.com/event/speakers",
			want:    "Speakers",
		},
		{
			name:    "word boundary is required",
			pageURL: "https://expo.example.com/Sponsorship",
			want:    "Exhibitors",
		},
		{
			name:    "index link fallback",
			pageURL: "https://expo.example.com/list",
			markup:  `<a href="/sessions/Index/3">3</a>`,
			want:    "Sessions",
		},
		{
			name:    "default",
			pageURL: "https://expo.example.com/",
			markup:  `<a href="/about">About</a>`,
			want:    "Exhibitors",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parse(t, tt.markup, tt.pageURL)
			assert.Equal(t, tt.want, detector.Detect(doc))
		})
	}
}

func TestSectionDetector_CustomVocabulary(t *testing.T) {
	detector := pagination.NewSectionDetector([]string{"Products"}, "Items")

	assert.Equal(t, "Products", detector.Detect(parse(t, "", "https://shop.example.com/products/all")))
	assert.Equal(t, "Items", detector.Detect(parse(t, "", "https://shop.example.com/Exhibitors")))
}

func TestClassifier_NoClick(t *testing.T) {
	classifier := pagination.NewDefaultClassifier(selector.NewBuilder(), nil)
	doc := parse(t, `<a href="/p/2">Load more</a>`, "https://example.com/")

	res, rule := classifier.Classify(pagination.Context{Doc: doc, Section: "Exhibitors"})
	assert.Equal(t, pagination.None(), res)
	assert.Equal(t, "none", rule)
	assert.Empty(t, res.Selector)
}

func TestClassifier_Rules(t *testing.T) {
	tests := []struct {
		name     string
		markup   string
		pageURL  string
		click    string
		section  string
		wantMode pagination.Mode
		wantSel  string
		wantRule string
	}{
		{
			name:     "index pages",
			pageURL:  "https://expo.example.com/Exhibitors/List",
			markup:   `<div class="pages"><a href="/Exhibitors/Index/1">1</a> <a href="/Exhibitors/Index/2">2</a></div>`,
			click:    `a[href="/Exhibitors/Index/2"]`,
			section:  "Exhibitors",
			wantMode: pagination.ModeIndexPages,
			wantSel:  `a[href*="/Exhibitors/Index/"]`,
			wantRule: "index-pages",
		},
		{
			name:     "load more link",
			pageURL:  "https://expo.example.com/list",
			markup:   `<ul><li>x</li></ul><a class="btn-more" href="#">Load more results</a>`,
			click:    "a.btn-more",
			section:  "Exhibitors",
			wantMode: pagination.ModeLoadMore,
			wantSel:  "a.btn-more",
			wantRule: "load-more",
		},
		{
			name:     "load more resolves to enclosing button",
			pageURL:  "https://expo.example.com/list",
			markup:   `<div class="footer"><button class="cta"><span>Show MORE</span></button></div>`,
			click:    "button span",
			section:  "Exhibitors",
			wantMode: pagination.ModeLoadMore,
			wantSel:  "button.cta",
			wantRule: "load-more",
		},
		{
			name:     "role button counts as clickable",
			pageURL:  "https://expo.example.com/list",
			markup:   `<div role="button" id="loader"><i>Load</i></div>`,
			click:    "#loader i",
			section:  "Exhibitors",
			wantMode: pagination.ModeLoadMore,
			wantSel:  "#loader",
			wantRule: "load-more",
		},
		{
			name:    "segmented nav wins over load more text",
			pageURL: "https://expo.example.com/list",
			markup: `<nav class="pagination"><ul>
				<li class="is-active"><a href="?p=1">1</a></li>
				<li><a href="?p=2">More</a></li>
			</ul></nav>`,
			click:    `a[href="?p=2"]`,
			section:  "Exhibitors",
			wantMode: pagination.ModeNextButton,
			wantSel:  "nav.pagination li.is-active + li a",
			wantRule: "segmented-nav",
		},
		{
			name:     "fetch pages fallback",
			pageURL:  "https://expo.example.com/list",
			markup:   `<div class="pager"><a class="next" href="?page=2">Next</a></div>`,
			click:    "a.next",
			section:  "Exhibitors",
			wantMode: pagination.ModeFetchPages,
			wantSel:  "a.next",
			wantRule: "fetch-pages",
		},
	}

	classifier := pagination.NewDefaultClassifier(selector.NewBuilder(), nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parse(t, tt.markup, tt.pageURL)
			clicked := doc.First(tt.click)
			require.NotNil(t, clicked)

			res, rule := classifier.Classify(pagination.Context{Doc: doc, Clicked: clicked, Section: tt.section})
			assert.Equal(t, tt.wantMode, res.Mode)
			assert.Equal(t, tt.wantSel, res.Selector)
			assert.Equal(t, tt.wantRule, rule)
		})
	}
}

func TestClassifier_RuleOrder(t *testing.T) {
	classifier := pagination.NewDefaultClassifier(selector.NewBuilder(), nil)

	names := make([]string, 0, len(classifier.Rules()))
	for _, r := range classifier.Rules() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"segmented-nav", "load-more", "index-pages", "fetch-pages"}, names)
}

func TestClassifier_CustomRules(t *testing.T) {
	always := pagination.Rule{
		Name: "always-next",
		Apply: func(pagination.Context) (pagination.Result, bool) {
			return pagination.Result{Mode: pagination.ModeNextButton, Selector: ".next"}, true
		},
	}
	classifier := pagination.NewClassifier(always)
	doc := parse(t, `<a class="x">x</a>`, "https://example.com/")

	res, rule := classifier.Classify(pagination.Context{Doc: doc, Clicked: doc.First("a")})
	assert.Equal(t, pagination.Result{Mode: pagination.ModeNextButton, Selector: ".next"}, res)
	assert.Equal(t, "always-next", rule)
}

func TestClickable(t *testing.T) {
	doc := parse(t, `<p><em>plain</em></p><a href="/x"><b>bold</b></a>`, "https://example.com/")

	em := doc.First("em")
	assert.Same(t, em, pagination.Clickable(em))

	b := doc.First("b")
	assert.Same(t, doc.First("a"), pagination.Clickable(b))
}
