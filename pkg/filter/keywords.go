package filter

import (
	"strings"

	"golang.org/x/text/cases"
)

// KeywordsPresent reports whether every keyword occurs in msg, ignoring
// case. Blank keywords are skipped, so an empty list matches everything.
func KeywordsPresent(msg string, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}

	folded := fold(msg)
	for _, kw := range keywords {
		k := fold(strings.TrimSpace(kw))
		if k == "" {
			continue
		}
		if !strings.Contains(folded, k) {
			return false
		}
	}
	return true
}

// fold applies Unicode case folding. A Caser keeps internal state, so a
// fresh one is used per call.
func fold(s string) string {
	return cases.Fold().String(s)
}
