// Package slug derives URL-safe identifiers from posting titles.
package slug

import (
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Generate lowercases the title, collapses every run of non-alphanumeric
// characters into a single hyphen and trims hyphens from both ends. It is
// deterministic and idempotent; it never returns an empty string for a
// non-empty title.
func Generate(title string) string {
	str := strings.ToLower(title)
	str = nonAlphanumeric.ReplaceAllString(str, "-")
	str = strings.Trim(str, "-")

	if str == "" {
		return "job"
	}
	return str
}
