// Package match provides identifier normalization and fuzzy matching for
// PO numbers and supplier names.
package match

import "strings"

// NormalizeToken canonicalizes an identifier for equality comparison:
// upper-case, all non-alphanumeric characters stripped. Idempotent.
func NormalizeToken(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToUpper(s) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// normalizeForScoring prepares a string for similarity scoring: upper-case,
// whitespace runs collapsed to a single space, separator characters removed.
func normalizeForScoring(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(s))
	lastSpace := false
	for _, r := range s {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if !lastSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			lastSpace = true
		case r == '-' || r == '_' || r == '/' || r == '.':
			lastSpace = false
		default:
			b.WriteRune(r)
			lastSpace = false
		}
	}
	return strings.TrimRight(b.String(), " ")
}
