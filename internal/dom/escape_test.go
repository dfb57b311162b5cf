package dom_test

import (
	"testing"

	"github.com/jonesrussell/gopicker/internal/dom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeIdent(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "booth-42", want: "booth-42"},
		{name: "leading digit", input: "42", want: `\34 2`},
		{name: "dash then digit", input: "-1a", want: `-\31 a`},
		{name: "lone dash", input: "-", want: `\-`},
		{name: "punctuation", input: "a.b:c", want: `a\.b\:c`},
		{name: "space", input: "a b", want: `a\ b`},
		{name: "control", input: "a\x01", want: `a\1 `},
		{name: "nul", input: "a\x00", want: "a�"},
		{name: "non ascii", input: "café", want: "café"},
		{name: "underscore", input: "__x", want: "__x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dom.EscapeIdent(tt.input))
		})
	}
}

func TestEscapeSimple(t *testing.T) {
	assert.Equal(t, "booth-42", dom.EscapeSimple("booth-42"))
	assert.Equal(t, `a\.b`, dom.EscapeSimple("a.b"))
	assert.Equal(t, `md\:flex`, dom.EscapeSimple("md:flex"))
	assert.Equal(t, `\33 col`, dom.EscapeSimple("3col"))
	assert.Equal(t, `-\32 x`, dom.EscapeSimple("-2x"))
	assert.Equal(t, "col-3", dom.EscapeSimple("col-3"))
}

func TestEscapedIdentifiersMatchOriginal(t *testing.T) {
	doc, err := dom.ParseString(`<div id="42"></div><div class="md:flex w-1/2"></div>`, "https://example.com/")
	require.NoError(t, err)

	assert.Equal(t, 1, doc.Count("#"+dom.EscapeIdent("42")))
	assert.Equal(t, 1, doc.Count("div."+dom.EscapeIdent("md:flex")+"."+dom.EscapeIdent("w-1/2")))
	assert.Equal(t, 1, doc.Count("div."+dom.EscapeSimple("md:flex")))
}

func TestEscapeSimple_LeadingDigitMatchesOriginal(t *testing.T) {
	doc, err := dom.ParseString(`<div class="3col"></div><div class="-2x"></div>`, "https://example.com/")
	require.NoError(t, err)

	assert.Equal(t, 1, doc.Count("div."+dom.EscapeSimple("3col")))
	assert.Equal(t, 1, doc.Count("div."+dom.EscapeSimple("-2x")))
}
