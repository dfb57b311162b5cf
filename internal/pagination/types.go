// Package pagination classifies the second pick of a session into a pagination strategy
// and detects the listing's section name.
package pagination

// Mode is the strategy the scraper uses to reach further pages.
type Mode string

const (
	// ModeNone means the listing has a single page.
	ModeNone Mode = "none"
	// ModeIndexPages means every page is linked from an index URL template.
	ModeIndexPages Mode = "indexPages"
	// ModeLoadMore means a "load more" control appends rows in place.
	ModeLoadMore Mode = "loadMore"
	// ModeNextButton means a "next" control leads to the following page.
	ModeNextButton Mode = "nextButton"
	// ModeFetchPages means same-shaped page links are fetched one by one.
	ModeFetchPages Mode = "fetchPages"
)

// Result is the outcome of classification.
type Result struct {
	Mode     Mode   `json:"mode" yaml:"mode"`
	Selector string `json:"selector" yaml:"selector"`
}
