package shared

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeText canonicalizes free text for storage: surrounding whitespace is
// trimmed and every word is title-cased (first letter upper, the rest lower).
//
// Words break on Unicode word boundaries, so an apostrophe stays inside its word:
// "o'brien" becomes "O'brien" and "don't" becomes "Don't".
//
// Applying it to its own output returns the same string.
func NormalizeText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return cases.Title(language.Und).String(s)
}

// FoldText returns the case-folded form of s for case-insensitive comparison.
func FoldText(s string) string {
	return cases.Fold().String(s)
}

// ReadStatus renders the read flag the way listings display it.
func ReadStatus(read bool) string {
	if read {
		return "Read"
	}
	return "Unread"
}
