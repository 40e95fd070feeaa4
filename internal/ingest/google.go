package ingest

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"qcomnews/internal/models"
)

// SearchURL builds the news search feed URL for term.
func SearchURL(endpoint, term string) string {
	return fmt.Sprintf("%s?q=%s&hl=en-IN&gl=IN&ceid=IN:en", strings.TrimRight(endpoint, "?"), url.QueryEscape(term))
}

// searchGoogleNews runs the first MaxTerms search terms through the search
// feed and treats each result like a feed entry.
func (c *Controller) searchGoogleNews(ctx context.Context, cutoff, now time.Time, sum *Summary) ([]models.Article, error) {
	gn := c.AppCfg.GoogleNews
	terms := gn.Terms
	if gn.MaxTerms > 0 && len(terms) > gn.MaxTerms {
		terms = terms[:gn.MaxTerms]
	}
	c.printf("Searching Google News for %s developments...\n", strings.ToLower(c.AppCfg.Category))

	var out []models.Article
	for _, term := range terms {
		u := SearchURL(gn.Endpoint, term)
		c.setPhase(PerFeed, "category=search", "term="+term)
		sum.FeedsAttempted++
		entries, err := c.search.Read(ctx, u)
		if err != nil {
			sum.FeedsFailed++
			c.printf("    Error searching for '%s': %v\n", term, err)
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			continue
		}
		c.setPhase(Filtering, "term="+term, fmt.Sprintf("entries=%d", len(entries)))
		got, err := c.collect(ctx, entries, gn.SourceLabel, cutoff, now, c.searchInterval, sum)
		out = append(out, got...)
		if err != nil {
			return out, err
		}
	}
	return out, nil
}
