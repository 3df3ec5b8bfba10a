// Package phone validates and masks phone numbers in canonical
// international format: "+<countrycode><subscriber>", digits only after
// the plus, no leading zero in the country code position.
package phone

import (
	"regexp"
	"strings"
)

var pattern = regexp.MustCompile(`^\+[1-9]\d{7,14}$`)

// Canonical trims surrounding whitespace and reports whether the result
// is a valid international number.
func Canonical(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	return trimmed, pattern.MatchString(trimmed)
}

// Valid reports whether s (after trimming) is in canonical format.
func Valid(s string) bool {
	_, ok := Canonical(s)
	return ok
}

// Mask hides the middle of a canonical number for display: the plus sign,
// the next three digits and the last two digits stay visible, the rest
// become asterisks. "+254712345678" -> "+254*******78".
func Mask(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 7 {
		return s
	}
	return s[:4] + strings.Repeat("*", len(s)-6) + s[len(s)-2:]
}
