package pagination

import (
	"regexp"
	"strings"

	"github.com/jonesrussell/gopicker/internal/dom"
)

// DefaultSection is used when neither the URL nor the page links name a section.
const DefaultSection = "Exhibitors"

// DefaultSections is the category vocabulary recognized in paths and index links.
var DefaultSections = []string{"Exhibitors", "Speakers", "Sponsors", "Sessions"}

// SectionDetector derives the human readable category of the listing.
type SectionDetector struct {
	fallback string
	pathRe   *regexp.Regexp
	indexRe  *regexp.Regexp
}

// NewSectionDetector builds a detector for vocabulary. Empty arguments use the defaults.
func NewSectionDetector(vocabulary []string, fallback string) *SectionDetector {
	if len(vocabulary) == 0 {
		vocabulary = DefaultSections
	}
	if fallback == "" {
		fallback = DefaultSection
	}

	quoted := make([]string, 0, len(vocabulary))
	for _, v := range vocabulary {
		quoted = append(quoted, regexp.QuoteMeta(v))
	}
	alternation := strings.Join(quoted, "|")

	return &SectionDetector{
		fallback: fallback,
		pathRe:   regexp.MustCompile(`(?i)/(` + alternation + `)\b`),
		indexRe:  regexp.MustCompile(`(?i)/(` + alternation + `)/Index/`),
	}
}

// Detect returns the section for doc: from the URL path first, then from the first
// index link on the page, then the fallback.
func (d *SectionDetector) Detect(doc *dom.Document) string {
	if m := d.pathRe.FindStringSubmatch(doc.Path()); m != nil {
		return capitalize(m[1])
	}

	for _, a := range doc.Query("a[href]") {
		href, _ := dom.Attr(a, "href")
		if m := d.indexRe.FindStringSubmatch(href); m != nil {
			return capitalize(m[1])
		}
	}

	return d.fallback
}

// IndexSelector is the generic link selector for a section's index pages.
func IndexSelector(section string) string {
	return `a[href*="/` + section + `/Index/"]`
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
