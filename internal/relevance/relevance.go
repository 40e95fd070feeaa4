// Package relevance decides whether an article belongs to the tracked domain.
package relevance

import "strings"

// Classifier matches text against a fixed keyword allow-list. Matching is
// case-insensitive substring search, so "zepto" also matches "Zeptonow".
type Classifier struct {
	keywords []string
}

// New lower-cases and de-blanks the keyword list once.
func New(keywords []string) *Classifier {
	kw := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			kw = append(kw, k)
		}
	}
	return &Classifier{keywords: kw}
}

// IsRelevant reports whether title or content mentions any keyword.
func (c *Classifier) IsRelevant(title, content string) bool {
	_, ok := c.Match(title, content)
	return ok
}

// Match returns the first keyword found in "title content".
func (c *Classifier) Match(title, content string) (string, bool) {
	text := strings.ToLower(title + " " + content)
	for _, k := range c.keywords {
		if strings.Contains(text, k) {
			return k, true
		}
	}
	return "", false
}

// Keywords returns the normalised keyword list.
func (c *Classifier) Keywords() []string {
	out := make([]string, len(c.keywords))
	copy(out, c.keywords)
	return out
}
