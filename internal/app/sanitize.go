package app

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// sanitizePolicy strips every HTML element from untrusted input. Question
// content and answers are stored as plain text and rendered into HTML later.
var sanitizePolicy = bluemonday.StrictPolicy()

// SanitizeText removes HTML from untrusted input and trims whitespace.
func SanitizeText(s string) string {
	return strings.TrimSpace(sanitizePolicy.Sanitize(s))
}

// SanitizeAll sanitizes a slice of untrusted strings, dropping entries that
// end up empty.
func SanitizeAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if clean := SanitizeText(value); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}
