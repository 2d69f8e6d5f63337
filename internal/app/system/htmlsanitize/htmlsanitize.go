// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize strips unsafe HTML from operator-entered text.
// Stores run display and description fields through it before writing,
// so nothing downstream has to re-check.
package htmlsanitize

import (
	"github.com/microcosm-cc/bluemonday"
)

var (
	// ugc allows basic formatting (p, strong, em, links, lists) and
	// strips scripts, event handlers, and javascript: URLs.
	ugc = bluemonday.UGCPolicy()

	// strict strips all markup, leaving text content only.
	strict = bluemonday.StrictPolicy()
)

// Sanitize cleans s with the UGC policy, keeping basic formatting.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return ugc.Sanitize(s)
}

// Strip removes all HTML from s, returning plain text. Used for
// single-line fields like names where markup is never legitimate.
func Strip(s string) string {
	if s == "" {
		return ""
	}
	return strict.Sanitize(s)
}
