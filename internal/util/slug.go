// Package util provides common utility functions.
package util

import (
	"strings"
	"unicode"
)

// Slugify derives the canonical URL slug for a title: lowercased, with
// runs of whitespace, underscores, slashes, and dashes collapsed to a
// single dash and everything else outside [a-z0-9] dropped. The slug is
// the source of truth for catalog URLs, so "DUNE-MESSIAH" and
// "Dune_Messiah" land on the same record.
func Slugify(input string) string {
	var b strings.Builder
	pendingDash := false

	for _, r := range strings.ToLower(input) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		case r == '-' || r == '_' || r == '/' || unicode.IsSpace(r):
			pendingDash = true
		}
		// Anything else (punctuation, emoji) is dropped without
		// breaking the current word.
	}

	return b.String()
}
