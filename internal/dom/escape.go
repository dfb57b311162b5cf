package dom

import (
	"strconv"
	"strings"
)

// Escaper turns a raw identifier (id or class token) into a selector literal.
type Escaper func(string) string

// EscapeIdent serializes s as a CSS identifier following the CSSOM CSS.escape
// algorithm, so the literal matches exactly the original token.
func EscapeIdent(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))

	for i, c := range runes {
		switch {
		case c == 0:
			b.WriteRune('�')
		case (c >= 0x1 && c <= 0x1F) || c == 0x7F:
			writeHexEscape(&b, c)
		case i == 0 && isDigit(c):
			writeHexEscape(&b, c)
		case i == 1 && isDigit(c) && runes[0] == '-':
			writeHexEscape(&b, c)
		case i == 0 && c == '-' && len(runes) == 1:
			b.WriteString(`\-`)
		case c >= 0x80 || c == '-' || c == '_' || isDigit(c) || isASCIILetter(c):
			b.WriteRune(c)
		default:
			b.WriteByte('\\')
			b.WriteRune(c)
		}
	}
	return b.String()
}

// EscapeSimple backslash-escapes every character outside [A-Za-z0-9_-]. A digit that
// would start the identifier is hex-escaped, since a backslash does not make it legal.
// It is the fallback used where the full CSSOM algorithm is not wanted.
func EscapeSimple(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i, c := range s {
		if isDigit(c) && (i == 0 || (i == 1 && s[0] == '-')) {
			writeHexEscape(&b, c)
			continue
		}
		if c == '-' || c == '_' || isDigit(c) || isASCIILetter(c) {
			b.WriteRune(c)
			continue
		}
		b.WriteByte('\\')
		b.WriteRune(c)
	}
	return b.String()
}

func writeHexEscape(b *strings.Builder, c rune) {
	b.WriteByte('\\')
	b.WriteString(strconv.FormatInt(int64(c), 16))
	b.WriteByte(' ')
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isASCIILetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
