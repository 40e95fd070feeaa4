package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"qcomnews/internal/config"
	"qcomnews/internal/models"
)

func newGenerator() *Generator {
	cfg := config.MustDefault()
	return New(cfg.Report, cfg.Entities)
}

func TestGenerate(t *testing.T) {
	now := time.Date(2026, time.October, 16, 9, 5, 7, 0, time.UTC)
	articles := []models.Article{{
		Title:         "Blinkit raises new funding",
		URL:           "https://example.com/blinkit",
		Content:       "Body text about the round.",
		PublishedDate: "14 October 2026",
		SourceURL:     "https://example.com/feed",
		Category:      "Quick Commerce",
	}}

	got, err := newGenerator().Generate(articles, 7, now)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	want := "QUICK COMMERCE INDUSTRY NEWS REPORT\n" +
		strings.Repeat("=", 50) + "\n" +
		"Generated on: 2026-10-16 09:05:07\n" +
		"Timeframe: Last 7 Days\n" +
		"Total articles: 1\n\n" +
		"\n" + strings.Repeat("=", 80) + "\n" +
		"ARTICLE 1\n" +
		strings.Repeat("=", 80) + "\n\n" +
		"TITLE: Blinkit raises new funding\n\n" +
		"SOURCE: https://example.com/feed\n\n" +
		"URL: https://example.com/blinkit\n\n" +
		"PUBLISHED: 14 October 2026\n\n" +
		"FULL CONTENT:\n" +
		strings.Repeat("-", 40) + "\n" +
		"Body text about the round.\n" +
		strings.Repeat("-", 40) + "\n\n" +
		"\n## Companies Mentioned This Period\n\n" +
		"**Quick Commerce Companies:** Blinkit\n\n"
	if got != want {
		t.Errorf("report mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestGenerateNumbersSequentially(t *testing.T) {
	articles := []models.Article{{Title: "a"}, {Title: "b"}, {Title: "c"}}
	got, err := newGenerator().Generate(articles, 3, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	for _, h := range []string{"\nARTICLE 1\n", "\nARTICLE 2\n", "\nARTICLE 3\n"} {
		if !strings.Contains(got, h) {
			t.Errorf("missing %q", strings.TrimSpace(h))
		}
	}
	if !strings.Contains(got, "Total articles: 3\n") {
		t.Errorf("missing article count")
	}
}

func TestTimeframe(t *testing.T) {
	if got := Timeframe(1); got != "Last 1 Day" {
		t.Errorf("Timeframe(1) = %q", got)
	}
	if got := Timeframe(30); got != "Last 30 Days" {
		t.Errorf("Timeframe(30) = %q", got)
	}
}

func TestEntitySummary(t *testing.T) {
	g := newGenerator()
	articles := []models.Article{
		{Title: "Zepto and Swiggy Instamart", Content: "..."},
		{Title: "Markets", Content: "blinkit expands; zepto responds"},
	}
	got := g.EntitySummary(articles)
	want := "\n## Companies Mentioned This Period\n\n**Quick Commerce Companies:** Blinkit, Instamart, Swiggy, Zepto\n\n"
	if got != want {
		t.Errorf("EntitySummary = %q, want %q", got, want)
	}

	none := g.EntitySummary([]models.Article{{Title: "Monsoon", Content: "rain"}})
	if none != "\n## Companies Mentioned This Period\n\nNo major quick commerce companies specifically mentioned.\n\n" {
		t.Errorf("empty summary = %q", none)
	}
}

func TestSaveAndList(t *testing.T) {
	dir := t.TempDir()
	g := newGenerator()
	older := time.Date(2026, time.October, 1, 8, 0, 0, 0, time.Local)
	newer := time.Date(2026, time.October, 16, 9, 30, 15, 0, time.Local)

	body, _ := g.Generate([]models.Article{{Title: "a"}, {Title: "b"}}, 7, newer)
	path, err := Save(dir, "quick_commerce_news", 7, newer, body)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Base(path) != "quick_commerce_news_7days_20261016_093015.txt" {
		t.Errorf("file name = %s", filepath.Base(path))
	}
	b, err := os.ReadFile(path)
	if err != nil || string(b) != body {
		t.Fatalf("saved content mismatch: %v", err)
	}

	body, _ = g.Generate([]models.Article{{Title: "only"}}, 3, older)
	if _, err := Save(dir, "quick_commerce_news", 3, older, body); err != nil {
		t.Fatal(err)
	}
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ARTICLE 1"), 0o644)

	saved, err := ListSaved(dir, "quick_commerce_news")
	if err != nil {
		t.Fatalf("ListSaved: %v", err)
	}
	if len(saved) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(saved))
	}
	if saved[0].Days != 7 || saved[0].Articles != 2 || !saved[0].Generated.Equal(newer) {
		t.Errorf("newest = %+v", saved[0])
	}
	if saved[1].Days != 3 || saved[1].Articles != 1 {
		t.Errorf("oldest = %+v", saved[1])
	}
}

func TestSaveCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	if _, err := Save(dir, "r", 1, time.Now(), "x"); err != nil {
		t.Fatalf("Save into missing dir: %v", err)
	}
}
