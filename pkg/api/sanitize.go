package api

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	scriptBlock   = regexp.MustCompile(`(?is)<script.*?</script>`)
	htmlTag       = regexp.MustCompile(`<[^>]+>`)
)

// SanitizeMessage normalizes a user message before it is forwarded to
// the provider: runs of whitespace collapse to a single space, script
// blocks and HTML tags are stripped. Validation has already bounded the
// length, so no truncation happens here.
func SanitizeMessage(message string) string {
	if message == "" {
		return ""
	}
	message = scriptBlock.ReplaceAllString(message, "")
	message = htmlTag.ReplaceAllString(message, "")
	message = whitespaceRun.ReplaceAllString(strings.TrimSpace(message), " ")
	return message
}
