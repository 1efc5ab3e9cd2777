package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// NormalizeLabel canonicalizes cell text for label matching: NFC composition,
// full-width folding, all whitespace removed, lower-cased.
//
// "합 계", "합계" and "ＴＯＴＡＬ " all normalize to comparable keys.
func NormalizeLabel(s string) string {
	if s == "" {
		return ""
	}
	s = width.Fold.String(norm.NFC.String(s))
	return strings.ToLower(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s))
}
