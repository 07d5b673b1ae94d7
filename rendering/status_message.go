// Package rendering knows about the markup produced by the message renderer.
package rendering

import "strings"

const (
	meCommand = "/me "

	// statusPrefixLen covers the "<p>/me " wrapper of a rendered status message
	// and statusSuffixLen the closing "</p>".
	statusPrefixLen = len("<p>") + len(meCommand)
	statusSuffixLen = len("</p>")
)

// IsStatusMessage reports whether a message is a single-line "/me" message
// that the renderer turned into a single paragraph.
func IsStatusMessage(content, renderedContent string) bool {
	if !strings.HasPrefix(content, meCommand) || strings.Contains(content, "\n") {
		return false
	}
	return strings.HasPrefix(renderedContent, "<p>") && strings.HasSuffix(renderedContent, "</p>")
}

// StatusMessageText strips the paragraph wrapper and the "/me" marker from a
// rendered status message, "<p>/me waves</p>" giving "waves".
// Inputs too short to carry the wrapper give "".
func StatusMessageText(renderedContent string) string {
	if len(renderedContent) < statusPrefixLen+statusSuffixLen {
		return ""
	}
	return renderedContent[statusPrefixLen : len(renderedContent)-statusSuffixLen]
}
