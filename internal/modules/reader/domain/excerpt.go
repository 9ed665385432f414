package domain

import (
	"strings"
	"unicode"
)

const DefaultExcerptRunes = 600

// NormalizeExcerpt collapses whitespace and cuts the text at the last word
// boundary that fits in maxRunes.
func NormalizeExcerpt(text string, maxRunes int) string {
	text = strings.Join(strings.Fields(text), " ")
	if maxRunes <= 0 {
		maxRunes = DefaultExcerptRunes
	}
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	cut := maxRunes
	for i := maxRunes; i > 0; i-- {
		if unicode.IsSpace(runes[i]) {
			cut = i
			break
		}
	}
	return strings.TrimRightFunc(string(runes[:cut]), unicode.IsSpace)
}
