// Package id mints prefixed nanoid identifiers like "book-V1StGXR8_Z5jdHi6B-myT".
// The prefix makes IDs self-describing in logs and key scans; the nanoid part
// is 21 URL-safe characters.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Generate returns a new "<prefix>-<nanoid>" identifier. It only fails when
// the system entropy source does.
func Generate(prefix string) (string, error) {
	suffix, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + suffix, nil
}
