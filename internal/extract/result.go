package extract

import "strings"

// Kind tags the outcome of an extraction.
type Kind int

const (
	// OK means Text holds the extracted body.
	OK Kind = iota
	// NotFetched means the page answered with a non-200 status.
	NotFetched
	// Failed means the fetch or the parse raised an error; Detail says which.
	Failed
	// Empty means the page was fetched but nothing qualified as body text.
	Empty
)

func (k Kind) String() string {
	switch k {
	case OK:
		return "ok"
	case NotFetched:
		return "not_fetched"
	case Failed:
		return "failed"
	case Empty:
		return "empty"
	default:
		return "unknown"
	}
}

// Legacy marker strings, kept for display.
const (
	SentinelNotFetched = "Could not fetch article content"
	SentinelFailed     = "Error extracting content"
	SentinelEmpty      = "Content extraction failed"
)

// Result is what Extract returns instead of an error.
type Result struct {
	Kind   Kind
	Text   string
	Detail string
}

func (r Result) OK() bool { return r.Kind == OK }

// WithText replaces the body text of a successful result. An empty text turns
// the result into Empty.
func (r Result) WithText(text string) Result {
	if r.Kind != OK {
		return r
	}
	if strings.TrimSpace(text) == "" {
		return Result{Kind: Empty}
	}
	r.Text = text
	return r
}

// Sentinel renders the failure marker for a non-OK result, or "" for OK.
func (r Result) Sentinel() string {
	switch r.Kind {
	case NotFetched:
		return SentinelNotFetched
	case Failed:
		return SentinelFailed + ": " + r.Detail
	case Empty:
		return SentinelEmpty
	default:
		return ""
	}
}

// Content returns the body text, or the sentinel when extraction failed.
func (r Result) Content() string {
	if r.Kind == OK {
		return r.Text
	}
	return r.Sentinel()
}

// IsSentinel reports whether s starts with one of the failure markers.
func IsSentinel(s string) bool {
	return strings.HasPrefix(s, SentinelEmpty) ||
		strings.HasPrefix(s, SentinelFailed) ||
		strings.HasPrefix(s, SentinelNotFetched)
}
