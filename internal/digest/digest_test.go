package digest

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"qcomnews/internal/config"
)

const page = `<html><body><article>
	<p>Zepto has opened a new batch of dark stores in Bengaluru to cut delivery times further.</p>
	<p>The startup now runs more than five hundred locations and is targeting profitability this year.</p>
	<p>Analysts said the wider quick commerce market continues to attract heavy investment from funds.</p>
	<p>Follow us on Twitter for more updates from the business desk.</p>
</article></body></html>`

func TestRun(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/story", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	})
	mux.HandleFunc("/gone", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	loader := func() (config.AppConfig, error) { return config.MustDefault(), nil }

	var out bytes.Buffer
	if err := Run(t.Context(), server.URL+"/story", Options{Out: &out}, loader); err != nil {
		t.Fatalf("Run: %v", err)
	}
	s := out.String()
	for _, want := range []string{
		"Engine: selectors\n",
		"Outcome: ok\n",
		"Relevant: true (matched \"quick commerce\")\n",
		"Accepted: true\n",
		"Companies: Zepto\n",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("digest missing %q:\n%s", want, s)
		}
	}
	if strings.Contains(s, "Follow us on") {
		t.Errorf("boilerplate not cleaned:\n%s", s)
	}

	out.Reset()
	if err := Run(t.Context(), server.URL+"/gone", Options{Out: &out}, loader); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "Outcome: not_fetched\n") || !strings.Contains(out.String(), "Could not fetch article content") {
		t.Errorf("unexpected digest for missing page:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Accepted: false\n") {
		t.Errorf("failed page should not be accepted")
	}
}

func TestRunRequiresURL(t *testing.T) {
	loader := func() (config.AppConfig, error) { return config.MustDefault(), nil }
	if err := Run(t.Context(), " ", Options{}, loader); err == nil {
		t.Errorf("expected error for empty url")
	}
}
