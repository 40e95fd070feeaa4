// Package report renders the plain-text news report and writes it to disk.
package report

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/template"
	"time"

	"qcomnews/internal/config"
	"qcomnews/internal/models"
)

const (
	// GeneratedLayout is the header timestamp format.
	GeneratedLayout = "2006-01-02 15:04:05"
	// EntitiesHeading opens the trailing entity section.
	EntitiesHeading = "## Companies Mentioned This Period"
)

var funcs = template.FuncMap{
	"rule": func(ch string, n int) string { return strings.Repeat(ch, n) },
	"inc":  func(i int) int { return i + 1 },
}

var headerTmpl = template.Must(template.New("header").Funcs(funcs).Parse(`{{.Title}}
{{rule "=" 50}}
Generated on: {{.Generated}}
Timeframe: {{.Timeframe}}
Total articles: {{.Total}}

`))

var articlesTmpl = template.Must(template.New("articles").Funcs(funcs).Parse(`{{range $i, $a := .}}
{{rule "=" 80}}
ARTICLE {{inc $i}}
{{rule "=" 80}}

TITLE: {{$a.Title}}

SOURCE: {{$a.SourceURL}}

URL: {{$a.URL}}

PUBLISHED: {{$a.PublishedDate}}

FULL CONTENT:
{{rule "-" 40}}
{{$a.Content}}
{{rule "-" 40}}

{{end}}`))

// Generator renders reports for one configured domain.
type Generator struct {
	Title          string
	EntitiesLabel  string
	NoEntitiesText string
	Entities       []string
}

// New builds a Generator from the report settings and the entity roster.
func New(cfg config.ReportConfig, entities []string) *Generator {
	return &Generator{
		Title:          cfg.Title,
		EntitiesLabel:  cfg.EntitiesLabel,
		NoEntitiesText: cfg.NoEntitiesText,
		Entities:       entities,
	}
}

// Generate renders the header, one numbered section per article and the
// entity summary.
func (g *Generator) Generate(articles []models.Article, days int, now time.Time) (string, error) {
	var buf bytes.Buffer
	header := struct {
		Title     string
		Generated string
		Timeframe string
		Total     int
	}{g.Title, now.Format(GeneratedLayout), Timeframe(days), len(articles)}
	if err := headerTmpl.Execute(&buf, header); err != nil {
		return "", fmt.Errorf("render header: %w", err)
	}
	if err := articlesTmpl.Execute(&buf, articles); err != nil {
		return "", fmt.Errorf("render articles: %w", err)
	}
	buf.WriteString(g.EntitySummary(articles))
	return buf.String(), nil
}

// Timeframe renders the lookback window, e.g. "Last 7 Days" or "Last 1 Day".
func Timeframe(days int) string {
	if days == 1 {
		return "Last 1 Day"
	}
	return fmt.Sprintf("Last %d Days", days)
}

// MentionedEntities returns, sorted, every roster entry that appears in the
// title or content of at least one article.
func (g *Generator) MentionedEntities(articles []models.Article) []string {
	found := make(map[string]struct{})
	for _, a := range articles {
		text := strings.ToLower(a.Title + " " + a.Content)
		for _, e := range g.Entities {
			if strings.Contains(text, strings.ToLower(e)) {
				found[e] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(found))
	for e := range found {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

// EntitySummary renders the trailing entity section.
func (g *Generator) EntitySummary(articles []models.Article) string {
	var b strings.Builder
	b.WriteString("\n" + EntitiesHeading + "\n\n")
	if names := g.MentionedEntities(articles); len(names) > 0 {
		fmt.Fprintf(&b, "**%s:** %s\n\n", g.EntitiesLabel, strings.Join(names, ", "))
	} else {
		b.WriteString(g.NoEntitiesText + "\n\n")
	}
	return b.String()
}
