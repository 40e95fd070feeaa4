package ingest

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"qcomnews/internal/clean"
	"qcomnews/internal/config"
	"qcomnews/internal/dedup"
	"qcomnews/internal/extract"
	"qcomnews/internal/feed"
	"qcomnews/internal/httpclient"
	"qcomnews/internal/models"
	"qcomnews/internal/relevance"
	"qcomnews/internal/report"
)

// Summary counts what happened during one run.
type Summary struct {
	Days              int
	FeedsAttempted    int
	FeedsFailed       int
	EntriesSeen       int
	OutOfRange        int
	Irrelevant        int
	Rejected          int
	Accepted          int
	DuplicatesDropped int
	Articles          int
	OutputFile        string
}

// Controller drives one batch run: feeds in configuration order, one entry at
// a time, then dedup, report and save.
type Controller struct {
	AppCfg     config.AppConfig
	Reader     *feed.Reader
	Extractor  *extract.Extractor
	Classifier *relevance.Classifier
	Generator  *report.Generator
	Logger     *log.Logger
	Out        io.Writer
	Now        func() time.Time

	search         *feed.Reader
	minInterval    time.Duration
	searchInterval time.Duration
	phase          Phase
}

// NewController wires the pipeline components from appCfg. A nil out means
// stdout.
func NewController(appCfg config.AppConfig, logger *log.Logger, out io.Writer) *Controller {
	if out == nil {
		out = os.Stdout
	}
	client := httpclient.New(appCfg.FetchTimeout(), appCfg.Fetch.UserAgent)
	ex := extract.New(client, extract.ParseEngine(appCfg.Extract.Engine), logger)
	if appCfg.Extract.MinFragmentChars > 0 {
		ex.MinFragmentChars = appCfg.Extract.MinFragmentChars
	}
	if appCfg.Extract.FallbackParagraphs > 0 {
		ex.FallbackParagraphs = appCfg.Extract.FallbackParagraphs
	}

	gn := appCfg.GoogleNews
	searchTimeout := time.Duration(gn.TimeoutSec) * time.Second
	searchClient := httpclient.New(searchTimeout, appCfg.Fetch.UserAgent)

	return &Controller{
		AppCfg:         appCfg,
		Reader:         feed.NewReader(client, appCfg.Fetch.MaxEntriesPerFeed, logger),
		Extractor:      ex,
		Classifier:     relevance.New(appCfg.Keywords),
		Generator:      report.New(appCfg.Report, appCfg.Entities),
		Logger:         logger,
		Out:            out,
		Now:            time.Now,
		search:         feed.NewReader(searchClient, gn.MaxResultsPerTerm, logger),
		minInterval:    appCfg.MinInterval(),
		searchInterval: time.Duration(gn.MinIntervalMs) * time.Millisecond,
	}
}

func (c *Controller) debugf(format string, args ...any) {
	if c.Logger != nil {
		c.Logger.Printf(format, args...)
	}
}

func (c *Controller) printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Controller) setPhase(p Phase, detail ...string) {
	c.phase = p
	if len(detail) > 0 {
		c.debugf("phase=%s %s", p, strings.Join(detail, " "))
		return
	}
	c.debugf("phase=%s", p)
}

// Phase returns the stage the controller last entered.
func (c *Controller) Phase() Phase { return c.phase }

// Run scrapes every configured feed for the last days days and saves a
// report into outputDir. Per-feed failures are logged and skipped; only a
// cancelled context ends the run early.
func (c *Controller) Run(ctx context.Context, days int, outputDir string) (Summary, error) {
	now := c.Now()
	cutoff := now.Add(-time.Duration(days) * 24 * time.Hour)
	category := strings.ToLower(c.AppCfg.Category)
	sum := Summary{Days: days}

	c.printf("Starting %s news scraping...\n", category)
	c.printf("Date: %s\n", now.Format(report.GeneratedLayout))
	c.printf("Looking for %s articles from the last %d days (since %s)\n", category, days, cutoff.Format("2006-01-02"))

	var articles []models.Article
	for _, src := range c.AppCfg.Sources {
		c.printf("Scraping %s sources...\n", src.Category)
		for _, raw := range src.Feeds {
			feedURL := strings.TrimSpace(raw)
			if feedURL == "" {
				continue
			}
			c.setPhase(PerFeed, "category="+src.Category, "feed="+feedURL)
			c.printf("  - %s\n", feedURL)
			sum.FeedsAttempted++

			entries, err := c.Reader.Read(ctx, feedURL)
			if err != nil {
				sum.FeedsFailed++
				c.printf("    Error scraping %s: %v\n", feedURL, err)
				if ctx.Err() != nil {
					return sum, ctx.Err()
				}
				continue
			}

			c.setPhase(Filtering, "feed="+feedURL, fmt.Sprintf("entries=%d", len(entries)))
			got, err := c.collect(ctx, entries, feedURL, cutoff, now, c.minInterval, &sum)
			articles = append(articles, got...)
			if err != nil {
				return sum, err
			}
		}
	}

	if c.AppCfg.GoogleNews.Enabled {
		got, err := c.searchGoogleNews(ctx, cutoff, now, &sum)
		articles = append(articles, got...)
		if err != nil {
			return sum, err
		}
	} else {
		c.printf("Skipping Google News search (redirect URLs don't work for content extraction)\n")
	}

	c.setPhase(Deduplicating, fmt.Sprintf("articles=%d", len(articles)))
	articles, sum.DuplicatesDropped = dedup.Dedupe(articles)
	sum.Articles = len(articles)

	if len(articles) == 0 {
		c.setPhase(Empty)
		c.printf("No relevant %s articles found for the last %d days.\n", category, days)
		c.logSummary(sum)
		return sum, nil
	}
	c.printf("Found %d relevant articles with full content\n", len(articles))

	c.setPhase(Reporting)
	body, err := c.Generator.Generate(articles, days, now)
	if err != nil {
		return sum, err
	}
	path, err := report.Save(outputDir, c.AppCfg.Report.FilePrefix, days, now, body)
	if err != nil {
		// a failed write does not fail the run
		c.printf("Error saving report: %v\n", err)
		c.debugf("report save failed: dir=%s err=%v", outputDir, err)
		c.logSummary(sum)
		return sum, nil
	}
	sum.OutputFile = path
	c.setPhase(Saved, "file="+path)
	c.printf("Report saved to: %s\n", path)
	c.printf("Scraping complete!\n")
	c.printf("Open %s to view the results\n", path)
	c.logSummary(sum)
	return sum, nil
}

// collect filters, extracts and accepts entries one by one, pausing after
// each accepted article.
func (c *Controller) collect(ctx context.Context, entries []models.Entry, sourceLabel string, cutoff, now time.Time, pace time.Duration, sum *Summary) ([]models.Article, error) {
	var out []models.Article
	for _, e := range entries {
		sum.EntriesSeen++
		if !e.InRange(cutoff) {
			sum.OutOfRange++
			continue
		}
		if !c.Classifier.IsRelevant(e.Title, e.Summary) {
			sum.Irrelevant++
			continue
		}

		c.printf("    Extracting: %s...\n", truncate(e.Title, 60))
		res := c.Extractor.Extract(ctx, e.Link)
		if res.OK() {
			res = res.WithText(clean.Clean(res.Text))
		}
		content := res.Content()
		if !Acceptable(content, c.AppCfg.Extract.MinContentChars) {
			sum.Rejected++
			c.debugf("entry rejected: url=%s kind=%s", e.Link, res.Kind)
			c.printf("    Skipped: Content too short or extraction failed\n")
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			continue
		}

		out = append(out, models.Article{
			Title:         e.Title,
			URL:           e.Link,
			Content:       content,
			PublishedDate: models.FormatPublished(e.Published, now),
			SourceURL:     sourceLabel,
			Category:      c.AppCfg.Category,
		})
		sum.Accepted++

		select {
		case <-ctx.Done():
			return out, ctx.Err()
		case <-time.After(pace):
		}
	}
	return out, nil
}

// Acceptable reports whether content is long enough and is not a failure
// marker. minChars <= 0 means 200.
func Acceptable(content string, minChars int) bool {
	if minChars <= 0 {
		minChars = 200
	}
	return utf8.RuneCountInString(content) > minChars && !extract.IsSentinel(content)
}

func (c *Controller) logSummary(s Summary) {
	c.debugf("run done: days=%d feeds=%d failed=%d seen=%d out_of_range=%d irrelevant=%d rejected=%d accepted=%d duplicates=%d articles=%d file=%q",
		s.Days, s.FeedsAttempted, s.FeedsFailed, s.EntriesSeen, s.OutOfRange, s.Irrelevant, s.Rejected, s.Accepted, s.DuplicatesDropped, s.Articles, s.OutputFile)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
