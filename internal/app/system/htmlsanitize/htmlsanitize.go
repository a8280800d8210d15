// Package htmlsanitize strips unsafe HTML from user-authored text before
// it is stored. Dungeon descriptions and rating comments pass through here.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var policy = bluemonday.UGCPolicy()

var strict = bluemonday.StrictPolicy()

// Sanitize keeps the user-generated-content subset of HTML (basic
// formatting, links) and removes scripts, event handlers, and
// javascript: URLs.
func Sanitize(s string) string {
	return policy.Sanitize(s)
}

// PlainText strips all markup, leaving only text content. Used for fields
// that are rendered verbatim, like names and tags.
func PlainText(s string) string {
	return strict.Sanitize(s)
}
