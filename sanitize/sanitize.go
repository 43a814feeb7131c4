// Package sanitize reduces user-supplied text to trimmed plain text.
// It is applied to message bodies, participant names, and the identity
// header before anything reaches the store.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// Text strips every HTML element from s and trims surrounding whitespace.
// Entities are unescaped afterwards so "&amp;" round-trips back to "&";
// the strict policy leaves no markup for the unescape to resurrect.
func Text(s string) string {
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(s)))
}
