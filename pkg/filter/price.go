// Package filter decides which group posts are worth a notification.
package filter

import (
	"regexp"
	"strconv"
)

// priceRe matches a dollar sign followed by whole dollars. Cents and
// thousands separators are not part of the match.
var priceRe = regexp.MustCompile(`\$(\d+)`)

// ExtractPrice returns the first dollar amount in msg. The second return
// value is false when msg contains no amount or the amount does not fit in
// an int.
func ExtractPrice(msg string) (int, bool) {
	m := priceRe.FindStringSubmatch(msg)
	if m == nil {
		return 0, false
	}

	price, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return price, true
}

// InRange reports whether price lies within [lo, hi].
func InRange(price, lo, hi int) bool {
	return price >= lo && price <= hi
}
