// Package selector derives CSS selectors from clicked elements: a minimal selector for a
// single element and the selector of the nearest repeating row that contains it.
package selector

import (
	"unicode/utf8"

	"github.com/jonesrussell/gopicker/internal/dom"
	"golang.org/x/net/html"
)

// Default class stability thresholds.
const (
	DefaultMaxClassLength = 40
	DefaultMaxDigitRun    = 4
	DefaultMaxClasses     = 2
)

// ClassPolicy decides which class tokens are stable enough to appear in a selector.
// Long tokens and tokens with long digit runs look generated (CSS modules, hashes).
type ClassPolicy struct {
	// MaxLength rejects tokens of MaxLength or more characters.
	MaxLength int
	// MaxDigitRun rejects tokens containing MaxDigitRun or more consecutive digits.
	MaxDigitRun int
	// MaxClasses caps how many stable classes are kept per element.
	MaxClasses int
}

// DefaultClassPolicy returns the default thresholds.
func DefaultClassPolicy() ClassPolicy {
	return ClassPolicy{
		MaxLength:   DefaultMaxClassLength,
		MaxDigitRun: DefaultMaxDigitRun,
		MaxClasses:  DefaultMaxClasses,
	}
}

// Stable reports whether a single class token passes the policy.
func (p ClassPolicy) Stable(token string) bool {
	if token == "" {
		return false
	}
	if p.MaxLength > 0 && utf8.RuneCountInString(token) >= p.MaxLength {
		return false
	}
	if p.MaxDigitRun > 0 && longestDigitRun(token) >= p.MaxDigitRun {
		return false
	}
	return true
}

// StableClasses returns the first MaxClasses stable classes of n in document order.
func (p ClassPolicy) StableClasses(n *html.Node) []string {
	var stable []string
	for _, c := range dom.Classes(n) {
		if p.MaxClasses > 0 && len(stable) >= p.MaxClasses {
			break
		}
		if p.Stable(c) {
			stable = append(stable, c)
		}
	}
	return stable
}

func longestDigitRun(s string) int {
	longest, run := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	return longest
}
