// Package normalize holds canonicalization rules for identity fields.
// Stored documents keep the user's original casing; the folded forms are
// written to the *_ci columns used for lookups.
package normalize

import "strings"

// Username trims surrounding whitespace. Case is preserved for display.
func Username(s string) string {
	return strings.TrimSpace(s)
}

// Email trims whitespace and lowercases, the conventional email form.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
