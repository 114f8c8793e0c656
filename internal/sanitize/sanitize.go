// Package sanitize removes markdown artifacts that generative models tend to
// leave in plain-text output, so downstream rendering and prompt embedding
// always work with clean text.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	boldSpanRe    = regexp.MustCompile(`\*\*([^*]*)\*\*`)
	leadingStarRe = regexp.MustCompile(`(?m)^[ \t]*\*+[ \t]?`)
)

// Clean strips markdown asterisk noise from text: bold spans are collapsed to
// their inner text, leading bullet asterisks are removed per line, and any
// stray asterisks are dropped. Clean is idempotent.
func Clean(s string) string {
	s = boldSpanRe.ReplaceAllString(s, "$1")
	s = leadingStarRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "*", "")
	// A second pass guards against spans that only became visible after the
	// first round of stripping.
	if strings.Contains(s, "*") {
		s = boldSpanRe.ReplaceAllString(s, "$1")
		s = strings.ReplaceAll(s, "*", "")
	}
	return s
}
