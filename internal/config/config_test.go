package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultTables(t *testing.T) {
	ac, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	if err := ac.Validate(); err != nil {
		t.Fatalf("embedded config does not validate: %v", err)
	}
	if ac.Category != "Quick Commerce" {
		t.Errorf("Category = %q", ac.Category)
	}
	if len(ac.Sources) != 2 {
		t.Fatalf("expected 2 source categories, got %d", len(ac.Sources))
	}
	if ac.Sources[0].Category != "Business News" || len(ac.Sources[0].Feeds) != 5 {
		t.Errorf("unexpected first source: %+v", ac.Sources[0])
	}
	if ac.Sources[1].Category != "Startup & Tech News" || len(ac.Sources[1].Feeds) != 4 {
		t.Errorf("unexpected second source: %+v", ac.Sources[1])
	}
	if ac.Fetch.MaxEntriesPerFeed != 25 {
		t.Errorf("MaxEntriesPerFeed = %d, want 25", ac.Fetch.MaxEntriesPerFeed)
	}
	if got := ac.FetchTimeout().Seconds(); got != 15 {
		t.Errorf("FetchTimeout = %vs, want 15s", got)
	}
	if ac.GoogleNews.Enabled {
		t.Errorf("google news search should be off by default")
	}
}

func TestClampDays(t *testing.T) {
	ac := MustDefault()
	tests := []struct {
		in, want int
	}{
		{7, 7},
		{1, 1},
		{30, 30},
		{0, 7},
		{31, 7},
		{-3, 7},
		{14, 14},
	}
	for _, tt := range tests {
		if got := ac.ClampDays(tt.in); got != tt.want {
			t.Errorf("ClampDays(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestMinIntervalFloor(t *testing.T) {
	ac := MustDefault()
	ac.Fetch.MinIntervalMs = 100
	if got := ac.MinInterval().Seconds(); got != 2 {
		t.Errorf("MinInterval = %vs, want 2s floor", got)
	}
	ac.Fetch.MinIntervalMs = 5000
	if got := ac.MinInterval().Seconds(); got != 5 {
		t.Errorf("MinInterval = %vs, want 5s", got)
	}
}

func TestLoadFromOverridesOnlyPresentKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	override := `
keywords:
  - widget
report:
  output_dir: "/tmp/reports"
`
	if err := os.WriteFile(path, []byte(override), 0o644); err != nil {
		t.Fatal(err)
	}
	ac, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if len(ac.Keywords) != 1 || ac.Keywords[0] != "widget" {
		t.Errorf("keywords not replaced: %v", ac.Keywords)
	}
	if ac.Report.OutputDir != "/tmp/reports" {
		t.Errorf("OutputDir = %q", ac.Report.OutputDir)
	}
	if ac.Report.Title != "QUICK COMMERCE INDUSTRY NEWS REPORT" {
		t.Errorf("Title lost its default: %q", ac.Report.Title)
	}
	if len(ac.Entities) == 0 {
		t.Errorf("entities lost their defaults")
	}
}

func TestLoadFromRejectsBadEngine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("extract:\n  engine: magic\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil || !strings.Contains(err.Error(), "magic") {
		t.Fatalf("expected engine validation error, got %v", err)
	}
}

func TestWriteConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	got, err := WriteConfig(path, false)
	if err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	if got != path {
		t.Errorf("path = %q, want %q", got, path)
	}
	if _, err := WriteConfig(path, false); err == nil {
		t.Errorf("expected refusal to overwrite without force")
	}
	if _, err := WriteConfig(path, true); err != nil {
		t.Fatalf("forced WriteConfig: %v", err)
	}
	matches, _ := filepath.Glob(path + ".bak-*")
	if len(matches) != 1 {
		t.Errorf("expected one backup file, found %d", len(matches))
	}
	ac, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if len(ac.Keywords) != len(MustDefault().Keywords) {
		t.Errorf("written config keywords differ from defaults")
	}
}
