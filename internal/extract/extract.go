// Package extract locates the readable body text of a fetched article page.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"log"
	neturl "net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	trafilatura "github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"

	"qcomnews/internal/httpclient"
)

// Engine selects how the body text is located once a page has been fetched.
type Engine string

const (
	EngineSelectors   Engine = "selectors"
	EngineTrafilatura Engine = "trafilatura"
	EngineReadability Engine = "readability"
)

// ParseEngine maps a config value to an Engine, defaulting to selectors.
func ParseEngine(s string) Engine {
	switch Engine(strings.ToLower(strings.TrimSpace(s))) {
	case EngineTrafilatura:
		return EngineTrafilatura
	case EngineReadability:
		return EngineReadability
	default:
		return EngineSelectors
	}
}

// noiseSelector lists structural and advertising elements dropped before any
// text is collected.
const noiseSelector = "script, style, nav, header, footer, aside, advertisement, form, button, .ad, .ads, .advertisement"

// contentSelectors is tried in order; the first one matching any element wins.
var contentSelectors = []string{
	"article",
	".article-content",
	".post-content",
	".entry-content",
	".content",
	"main",
	".main",
	".story",
	".article-body",
	".story-body",
	".text-content",
	`[data-module="ArticleBody"]`,
}

// Extractor fetches article pages and isolates their readable body text.
type Extractor struct {
	Client             *httpclient.Client
	Logger             *log.Logger
	Engine             Engine
	MinFragmentChars   int
	FallbackParagraphs int
}

// New constructs an Extractor with the default thresholds (fragments longer
// than 50 characters, 15 fallback paragraphs).
func New(client *httpclient.Client, engine Engine, logger *log.Logger) *Extractor {
	return &Extractor{
		Client:             client,
		Logger:             logger,
		Engine:             engine,
		MinFragmentChars:   50,
		FallbackParagraphs: 15,
	}
}

func (e *Extractor) debugf(format string, args ...any) {
	if e.Logger != nil {
		e.Logger.Printf(format, args...)
	}
}

// Extract fetches url and returns its body text. It never returns an error:
// every failure is folded into the Result kind.
func (e *Extractor) Extract(ctx context.Context, url string) Result {
	if strings.TrimSpace(url) == "" {
		return Result{Kind: Failed, Detail: "empty url"}
	}
	body, err := e.Client.Fetch(ctx, url)
	if err != nil {
		if httpclient.IsStatus(err) {
			e.debugf("article not fetched: url=%s err=%v", url, err)
			return Result{Kind: NotFetched, Detail: err.Error()}
		}
		e.debugf("article fetch failed: url=%s err=%v", url, err)
		return Result{Kind: Failed, Detail: err.Error()}
	}
	return e.ExtractHTML(body, url)
}

// ExtractHTML runs the configured engine over an already fetched page.
func (e *Extractor) ExtractHTML(body []byte, pageURL string) Result {
	var (
		fragments []string
		err       error
	)
	switch e.Engine {
	case EngineTrafilatura:
		fragments, err = e.trafilaturaFragments(body, pageURL)
	case EngineReadability:
		fragments, err = e.readabilityFragments(body, pageURL)
	default:
		fragments, err = e.selectorFragments(body)
	}
	if err != nil {
		e.debugf("article parse failed: url=%s engine=%s err=%v", pageURL, e.Engine, err)
		return Result{Kind: Failed, Detail: err.Error()}
	}
	if len(fragments) == 0 {
		return Result{Kind: Empty}
	}
	return Result{Kind: OK, Text: strings.Join(fragments, "\n\n")}
}

// strategy yields body fragments from a document; matched is false when the
// strategy does not apply to this page.
type strategy func(doc *goquery.Document) (fragments []string, matched bool)

func (e *Extractor) selectorFragments(body []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error parsing HTML: %w", err)
	}
	doc.Find(noiseSelector).Remove()

	chain := make([]strategy, 0, len(contentSelectors))
	for _, sel := range contentSelectors {
		chain = append(chain, e.containerStrategy(sel))
	}
	for _, s := range chain {
		if frags, matched := s(doc); matched {
			if len(frags) > 0 {
				return frags, nil
			}
			break
		}
	}
	frags, _ := e.paragraphFallback(doc)
	return frags, nil
}

// containerStrategy collects paragraph and block text inside the first element
// matching sel. A div that wraps other paragraphs or divs is kept only when its
// own text qualifies; its full text is used then.
func (e *Extractor) containerStrategy(sel string) strategy {
	return func(doc *goquery.Document) ([]string, bool) {
		container := doc.Find(sel).First()
		if container.Length() == 0 {
			return nil, false
		}
		var out []string
		container.Find("p, div").Each(func(_ int, s *goquery.Selection) {
			if goquery.NodeName(s) == "div" && s.Find("p, div").Length() > 0 && !e.qualifies(ownText(s)) {
				return
			}
			if text := nodeText(s); e.qualifies(text) {
				out = append(out, text)
			}
		})
		return out, true
	}
}

// paragraphFallback keeps the first qualifying paragraphs of the whole page.
func (e *Extractor) paragraphFallback(doc *goquery.Document) ([]string, bool) {
	var out []string
	doc.Find("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if e.FallbackParagraphs > 0 && len(out) >= e.FallbackParagraphs {
			return false
		}
		if text := nodeText(s); e.qualifies(text) {
			out = append(out, text)
		}
		return true
	})
	return out, true
}

func (e *Extractor) trafilaturaFragments(body []byte, pageURL string) ([]string, error) {
	res, err := trafilatura.Extract(bytes.NewReader(body), trafilatura.Options{
		OriginalURL:    parseURL(pageURL),
		EnableFallback: true,
		Focus:          trafilatura.Balanced,
	})
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, nil
	}
	return e.splitFragments(res.ContentText), nil
}

func (e *Extractor) readabilityFragments(body []byte, pageURL string) ([]string, error) {
	article, err := readability.FromReader(bytes.NewReader(body), parseURL(pageURL))
	if err != nil {
		return nil, err
	}
	return e.splitFragments(article.TextContent), nil
}

// splitFragments breaks engine output into lines and applies the same length
// filter as the selector chain.
func (e *Extractor) splitFragments(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if e.qualifies(line) {
			out = append(out, line)
		}
	}
	return out
}

func (e *Extractor) qualifies(text string) bool {
	return utf8.RuneCountInString(text) > e.MinFragmentChars
}

func parseURL(raw string) *neturl.URL {
	u, err := neturl.Parse(raw)
	if err != nil {
		return nil
	}
	return u
}

// ownText is nodeText without the text of nested p and div elements.
func ownText(s *goquery.Selection) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch {
			case c.Type == html.TextNode:
				if t := strings.TrimSpace(c.Data); t != "" {
					parts = append(parts, t)
				}
			case c.Type == html.ElementNode && (c.Data == "p" || c.Data == "div"):
			default:
				walk(c)
			}
		}
	}
	for _, n := range s.Nodes {
		walk(n)
	}
	return strings.Join(parts, " ")
}

// nodeText joins the stripped text nodes under s with single spaces.
func nodeText(s *goquery.Selection) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range s.Nodes {
		walk(n)
	}
	return strings.Join(parts, " ")
}
