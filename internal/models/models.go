package models

import "time"

// DateLayout renders dates as "05 March 2024".
const DateLayout = "02 January 2006"

// Entry is one item of a feed before any extraction.
type Entry struct {
	Title     string
	Link      string
	Summary   string
	Published *time.Time
}

// Article is an accepted entry with its cleaned body text.
type Article struct {
	Title         string
	URL           string
	Content       string
	PublishedDate string
	SourceURL     string
	Category      string
}

// FormatPublished renders a feed timestamp in DateLayout, falling back to now
// when the entry carried no usable timestamp.
func FormatPublished(published *time.Time, now time.Time) string {
	if published == nil || published.IsZero() {
		return now.Format(DateLayout)
	}
	return published.UTC().Format(DateLayout)
}

// InRange reports whether the entry is not older than cutoff. Entries without
// a timestamp are always in range.
func (e Entry) InRange(cutoff time.Time) bool {
	if e.Published == nil || e.Published.IsZero() {
		return true
	}
	return !e.Published.Before(cutoff)
}
