// Package test serves a deterministic quick commerce news site for the demo
// server and the end-to-end tests.
package test

import (
	"fmt"
	"html"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"
)

type demoArticle struct {
	slug    string
	title   string
	age     time.Duration
	summary string
	paras   []string
}

var demoArticles = []demoArticle{
	{
		slug:    "blinkit-funding",
		title:   "Blinkit raises new funding",
		age:     48 * time.Hour,
		summary: "The quick commerce company closed a fresh round.",
		paras: []string{
			"Blinkit has closed a fresh funding round to expand its network of dark stores across India.",
			"The company plans to open two hundred new locations in tier two cities over the next year.",
			"Executives said delivery times in the largest metros now average under ten minutes per order.",
			"Investors expect the segment to keep growing faster than traditional grocery retail for years.",
		},
	},
	{
		slug:    "zepto-pharmacy",
		title:   "Zepto launches ten minute pharmacy delivery",
		age:     24 * time.Hour,
		summary: "Instant delivery of medicines in three cities.",
		paras: []string{
			"Zepto began delivering over the counter medicines in Mumbai, Delhi and Bengaluru this week.",
			"The service runs out of existing dark stores that were refitted with licensed pharmacy counters.",
			"The company said orders are fulfilled in about ten minutes and expects to add more cities soon.",
		},
	},
	{
		slug:    "instamart-network",
		title:   "Swiggy Instamart widens dark store network",
		age:     12 * 24 * time.Hour,
		summary: "Older coverage outside the default window.",
		paras: []string{
			"Swiggy Instamart added more than one hundred dark stores during the previous quarter nationwide.",
			"Management said the expansion focused on residential clusters in the eastern and western suburbs.",
			"The listing documents show capital expenditure on fulfilment centres rose sharply year on year.",
		},
	},
	{
		slug:    "monsoon-session",
		title:   "Monsoon session of parliament begins",
		age:     72 * time.Hour,
		summary: "Lawmakers return to the capital.",
		paras: []string{
			"Lawmakers returned to the capital on Monday as the monsoon session opened with a packed agenda.",
			"Several bills on taxation and labour reform are expected to be tabled before the session closes.",
		},
	},
}

// NewDemoHandler serves:
//
//	/               index page
//	/rss            four items: two relevant and recent, one stale, one off-topic
//	/rss/blinkit    a single recent "Blinkit raises new funding" item
//	/search?q=...   a one-item search feed echoing the query
//	/articles/<slug>
//
// Item dates are computed from now on every request.
func NewDemoHandler(now func() time.Time) http.Handler {
	if now == nil {
		now = time.Now
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/rss", func(w http.ResponseWriter, r *http.Request) {
		writeFeed(w, baseURL(r), now(), demoArticles)
	})
	mux.HandleFunc("/rss/blinkit", func(w http.ResponseWriter, r *http.Request) {
		writeFeed(w, baseURL(r), now(), demoArticles[:1])
	})
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		q := strings.TrimSpace(r.URL.Query().Get("q"))
		if q == "" {
			http.Error(w, "q required", http.StatusBadRequest)
			return
		}
		a := demoArticles[0]
		a.title = q + " latest coverage"
		writeFeed(w, baseURL(r), now(), []demoArticle{a})
	})
	mux.HandleFunc("/articles/", articleHandler)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		homeHandler(w, r)
	})
	return mux
}

// NewDemoServer starts an httptest server backed by NewDemoHandler.
func NewDemoServer(now func() time.Time) *httptest.Server {
	return httptest.NewServer(NewDemoHandler(now))
}

func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s", scheme, r.Host)
}

func writeFeed(w http.ResponseWriter, base string, now time.Time, articles []demoArticle) {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
	b.WriteString(`<rss version="2.0"><channel>` + "\n")
	fmt.Fprintf(&b, "<title>Demo Business Desk</title><link>%s/</link><description>Quick commerce coverage</description>\n", base)
	fmt.Fprintf(&b, "<lastBuildDate>%s</lastBuildDate>\n", now.Format(time.RFC1123Z))
	for _, a := range articles {
		fmt.Fprintf(&b, "<item><title>%s</title><link>%s/articles/%s</link><guid>%s</guid><pubDate>%s</pubDate><description>%s</description></item>\n",
			html.EscapeString(a.title), base, a.slug, a.slug, now.Add(-a.age).Format(time.RFC1123Z), html.EscapeString(a.summary))
	}
	b.WriteString("</channel></rss>\n")
	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Write([]byte(b.String()))
}

func articleHandler(w http.ResponseWriter, r *http.Request) {
	slug := strings.Trim(strings.TrimPrefix(r.URL.Path, "/articles/"), "/")
	for _, a := range demoArticles {
		if a.slug != slug {
			continue
		}
		var b strings.Builder
		fmt.Fprintf(&b, "<!DOCTYPE html>\n<html lang=\"en\"><head><meta charset=\"UTF-8\"><title>%s</title></head><body>\n", html.EscapeString(a.title))
		b.WriteString("<header><nav><a href=\"/\">Demo Business Desk</a></nav></header>\n<article>\n")
		fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(a.title))
		for _, p := range a.paras {
			fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(p))
		}
		b.WriteString("<p>Follow us on Twitter for the latest business news.</p>\n")
		b.WriteString("</article>\n<footer><p>Copyright Demo Business Desk. All rights reserved across every edition.</p></footer>\n</body></html>\n")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(b.String()))
		return
	}
	http.NotFound(w, r)
}

func homeHandler(w http.ResponseWriter, r *http.Request) {
	base := baseURL(r)
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html><head><title>qcomnews demo server</title></head><body>\n")
	b.WriteString("<h1>qcomnews demo server</h1>\n<ul>\n")
	fmt.Fprintf(&b, "<li>Feed: <a href=\"%[1]s/rss\">%[1]s/rss</a></li>\n", base)
	fmt.Fprintf(&b, "<li>Single item feed: <a href=\"%[1]s/rss/blinkit\">%[1]s/rss/blinkit</a></li>\n", base)
	fmt.Fprintf(&b, "<li>Search feed: <code>%s/search?q=term</code></li>\n", base)
	b.WriteString("</ul>\n<p>Point a source in ~/.config/qcomnews/config.yaml at one of the feeds, then run <code>qcomnews run</code>.</p>\n</body></html>\n")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(b.String()))
}
