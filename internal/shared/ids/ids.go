// Package ids canonicalizes entity identifiers so every comparison in the
// cart and catalogs uses one string form.
package ids

import (
	"strings"

	"github.com/google/uuid"
)

// Normalize trims surrounding whitespace and rewrites UUIDs (braced, URN or
// upper-case forms included) to the lowercase hyphenated form. Other values
// are returned trimmed.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if id, err := uuid.Parse(trimmed); err == nil {
		return id.String()
	}
	return trimmed
}

// Equal compares two identifiers after normalization.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
