// Package digest runs the extraction pipeline against a single article URL so
// selector and engine behaviour can be checked by hand.
package digest

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/template"
	"unicode/utf8"

	"qcomnews/internal/clean"
	"qcomnews/internal/config"
	"qcomnews/internal/extract"
	"qcomnews/internal/httpclient"
	"qcomnews/internal/ingest"
	"qcomnews/internal/models"
	"qcomnews/internal/relevance"
	"qcomnews/internal/report"
)

// Digest is what one URL produced.
type Digest struct {
	URL       string
	Engine    extract.Engine
	Kind      extract.Kind
	Content   string
	Chars     int
	Keyword   string
	Relevant  bool
	Accepted  bool
	Companies []string
}

var digestTmpl = template.Must(template.New("digest").Funcs(template.FuncMap{"join": strings.Join}).Parse(`URL: {{.URL}}
Engine: {{.Engine}}
Outcome: {{.Kind}}
Characters: {{.Chars}}
Relevant: {{.Relevant}}{{if .Keyword}} (matched "{{.Keyword}}"){{end}}
Accepted: {{.Accepted}}
Companies: {{if .Companies}}{{join .Companies ", "}}{{else}}none{{end}}

{{.Content}}
`))

// Options tweak a digest run.
type Options struct {
	// Engine overrides extract.engine from the config when set.
	Engine string
	Out    io.Writer
}

// Run fetches url, extracts and cleans its body, classifies it and prints the
// result.
func Run(ctx context.Context, url string, opts Options, loadConfig config.ConfigLoad) error {
	if strings.TrimSpace(url) == "" {
		return fmt.Errorf("url required")
	}
	appCfg, err := loadConfig()
	if err != nil {
		return err
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	engine := appCfg.Extract.Engine
	if strings.TrimSpace(opts.Engine) != "" {
		engine = opts.Engine
	}

	logger := log.New(os.Stderr, "[qcomnews] ", log.LstdFlags)
	client := httpclient.New(appCfg.FetchTimeout(), appCfg.Fetch.UserAgent)
	ex := extract.New(client, extract.ParseEngine(engine), logger)
	if appCfg.Extract.MinFragmentChars > 0 {
		ex.MinFragmentChars = appCfg.Extract.MinFragmentChars
	}
	if appCfg.Extract.FallbackParagraphs > 0 {
		ex.FallbackParagraphs = appCfg.Extract.FallbackParagraphs
	}

	d := Build(ctx, url, ex, relevance.New(appCfg.Keywords), report.New(appCfg.Report, appCfg.Entities), appCfg.Extract.MinContentChars)
	return digestTmpl.Execute(out, d)
}

// Build runs one URL through extractor, cleaner, classifier and the entity
// roster.
func Build(ctx context.Context, url string, ex *extract.Extractor, cls *relevance.Classifier, gen *report.Generator, minChars int) Digest {
	res := ex.Extract(ctx, url)
	if res.OK() {
		res = res.WithText(clean.Clean(res.Text))
	}
	content := res.Content()
	kw, relevant := cls.Match("", content)
	d := Digest{
		URL:      url,
		Engine:   ex.Engine,
		Kind:     res.Kind,
		Content:  content,
		Chars:    utf8.RuneCountInString(content),
		Keyword:  kw,
		Relevant: relevant && res.OK(),
		Accepted: ingest.Acceptable(content, minChars),
	}
	if res.OK() {
		d.Companies = gen.MentionedEntities([]models.Article{{Content: content}})
	}
	return d
}
