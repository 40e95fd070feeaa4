// Package dedup drops articles whose titles are near-identical.
package dedup

import (
	"strings"
	"unicode"

	"qcomnews/internal/models"
)

// KeyWords is how many leading title words form the similarity key.
const KeyWords = 6

// Key lower-cases title, removes punctuation and keeps the first KeyWords
// words joined by single spaces.
func Key(title string) string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_' || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, strings.ToLower(title))
	words := strings.Fields(stripped)
	if len(words) > KeyWords {
		words = words[:KeyWords]
	}
	return strings.Join(words, " ")
}

// Dedupe keeps the first article seen for every key, preserving input order.
// It returns the survivors and the number of articles dropped.
func Dedupe(articles []models.Article) ([]models.Article, int) {
	seen := make(map[string]struct{}, len(articles))
	out := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		k := Key(a.Title)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, a)
	}
	return out, len(articles) - len(out)
}
