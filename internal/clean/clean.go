// Package clean strips boilerplate from extracted article text.
package clean

import (
	"regexp"
	"strings"
)

var (
	newlineRun = regexp.MustCompile(`\n+`)
	spaceRun   = regexp.MustCompile(` +`)
)

// boilerplate is applied in order; each match runs to the end of its line.
var boilerplate = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(Advertisement|Subscribe|Read More|Continue Reading).*`),
	regexp.MustCompile(`(?i)Share.*?(Facebook|Twitter|LinkedIn).*`),
	regexp.MustCompile(`(?i)Follow us on.*`),
	regexp.MustCompile(`(?i)Also Read:.*`),
	regexp.MustCompile(`(?i)Related:.*`),
	regexp.MustCompile(`(?i)Download.*app.*`),
	regexp.MustCompile(`(?i)Newsletter.*`),
	regexp.MustCompile(`(?i)Cookie.*policy.*`),
}

// Clean collapses newline and space runs, drops share prompts and similar
// calls to action, and trims the result.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	text = newlineRun.ReplaceAllString(text, "\n")
	text = spaceRun.ReplaceAllString(text, " ")
	for _, re := range boilerplate {
		text = re.ReplaceAllString(text, "")
	}
	return strings.TrimSpace(text)
}
