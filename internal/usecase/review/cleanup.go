package review

import (
	"regexp"
	"strings"
)

var (
	wrapperOpen  = regexp.MustCompile("^```(?:markdown|md)?[ \t]*\n")
	wrapperClose = regexp.MustCompile("\n?```[ \t]*$")
)

// StripMarkdownWrapper removes a code fence wrapping the entire comment.
// Models sometimes return the whole review inside a ```markdown block, which
// GitHub and GitLab then render as one giant code block. Fences inside the
// content are left alone; wrappers are peeled repeatedly in case the model
// nested them.
func StripMarkdownWrapper(text string) string {
	cleaned := strings.TrimSpace(text)
	for wrapperOpen.MatchString(cleaned) {
		cleaned = wrapperOpen.ReplaceAllString(cleaned, "")
		cleaned = wrapperClose.ReplaceAllString(cleaned, "")
		cleaned = strings.TrimSpace(cleaned)
	}
	return cleaned
}
