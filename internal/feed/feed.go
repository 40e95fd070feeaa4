package feed

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/atom"

	"qcomnews/internal/httpclient"
	"qcomnews/internal/models"
)

// Reader fetches syndication feeds and exposes their entries in feed order.
type Reader struct {
	Client     *httpclient.Client
	Logger     *log.Logger
	MaxEntries int
	parser     *gofeed.Parser
}

// NewReader constructs a Reader. maxEntries <= 0 means no cap.
func NewReader(client *httpclient.Client, maxEntries int, logger *log.Logger) *Reader {
	return &Reader{Client: client, Logger: logger, MaxEntries: maxEntries, parser: newParser()}
}

func newParser() *gofeed.Parser {
	p := gofeed.NewParser()
	p.AtomTranslator = &atomTranslator{}
	return p
}

// atomTranslator keeps an entry's publish timestamp unset when the entry only
// carries <updated>.
type atomTranslator struct {
	gofeed.DefaultAtomTranslator
}

func (t *atomTranslator) Translate(feed interface{}) (*gofeed.Feed, error) {
	f, err := t.DefaultAtomTranslator.Translate(feed)
	if err != nil {
		return nil, err
	}
	af, ok := feed.(*atom.Feed)
	if !ok || len(af.Entries) != len(f.Items) {
		return f, nil
	}
	for i, entry := range af.Entries {
		if f.Items[i] == nil || entry == nil {
			continue
		}
		f.Items[i].Published = entry.Published
		f.Items[i].PublishedParsed = entry.PublishedParsed
	}
	return f, nil
}

func (r *Reader) debugf(format string, args ...any) {
	if r.Logger != nil {
		r.Logger.Printf(format, args...)
	}
}

// Read fetches feedURL and returns up to MaxEntries entries.
func (r *Reader) Read(ctx context.Context, feedURL string) ([]models.Entry, error) {
	return r.ReadN(ctx, feedURL, r.MaxEntries)
}

// ReadN is Read with an explicit cap.
func (r *Reader) ReadN(ctx context.Context, feedURL string, limit int) ([]models.Entry, error) {
	body, err := r.Client.Fetch(ctx, feedURL)
	if err != nil {
		r.debugf("feed fetch failed: url=%s err=%v", feedURL, err)
		return nil, err
	}
	entries, err := r.Parse(body, limit)
	if err != nil {
		r.debugf("feed parse failed: url=%s err=%v", feedURL, err)
		return nil, err
	}
	r.debugf("feed parsed: url=%s entries=%d", feedURL, len(entries))
	return entries, nil
}

// Parse decodes a feed document. Entries without a parsed publish timestamp
// keep a nil Published. Summary is the raw description, markup included.
func (r *Reader) Parse(body []byte, limit int) ([]models.Entry, error) {
	parser := r.parser
	if parser == nil {
		parser = newParser()
	}
	f, err := parser.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	out := make([]models.Entry, 0, len(f.Items))
	for _, it := range f.Items {
		if limit > 0 && len(out) >= limit {
			break
		}
		if it == nil {
			continue
		}
		e := models.Entry{
			Title:   strings.TrimSpace(it.Title),
			Link:    strings.TrimSpace(it.Link),
			Summary: it.Description,
		}
		if it.PublishedParsed != nil {
			ts := it.PublishedParsed.UTC()
			e.Published = &ts
		}
		out = append(out, e)
	}
	return out, nil
}
