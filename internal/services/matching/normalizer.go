package matching

import (
	"regexp"
	"strings"
)

var (
	refTokenPattern  = regexp.MustCompile(`#\d+`)
	slashDatePattern = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`)
	isoDatePattern   = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
	nonAlnumPattern  = regexp.MustCompile(`[^a-z0-9 ]+`)
	spacePattern     = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes a free-text transaction description for comparison:
// lowercase, reference tokens like "#123456" and calendar dates stripped,
// punctuation dropped, whitespace collapsed. Empty input yields "".
func Normalize(text string) string {
	s := strings.ToLower(text)
	s = refTokenPattern.ReplaceAllString(s, " ")
	s = slashDatePattern.ReplaceAllString(s, " ")
	s = isoDatePattern.ReplaceAllString(s, " ")
	s = nonAlnumPattern.ReplaceAllString(s, " ")
	s = spacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
