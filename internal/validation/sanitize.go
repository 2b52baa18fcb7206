// AngelaMos | 2026
// sanitize.go

package validation

import (
	"regexp"
	"strings"
)

var (
	angleBracketsRe = regexp.MustCompile(`[<>]`)
	jsSchemeRe      = regexp.MustCompile(`(?i)javascript:`)
	eventHandlerRe  = regexp.MustCompile(`(?i)on\w+=`)
)

// Sanitize strips markup-significant characters, the javascript: URI scheme
// and inline event-handler fragments from free-text input, then trims
// whitespace. Applied to emails and names before storage or comparison;
// never applied to passwords.
func Sanitize(input string) string {
	s := angleBracketsRe.ReplaceAllString(input, "")
	s = jsSchemeRe.ReplaceAllString(s, "")
	s = eventHandlerRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
