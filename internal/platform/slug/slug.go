package slug

import (
	"regexp"
	"strings"
)

var nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)

// Make turns a book title into a file-name friendly slug. Apostrophes are
// dropped rather than split so "Ender's Game" becomes "enders-game".
func Make(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = strings.NewReplacer("'", "", "’", "").Replace(s)
	s = nonAlphaNum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "book"
	}
	return s
}
