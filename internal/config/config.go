package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

type ConfigLoad func() (AppConfig, error)

// AppConfigLoader returns a loader reading the user config file (if any) on top
// of the embedded defaults.
func AppConfigLoader() ConfigLoad {
	return LoadAppConfig
}

// FileConfigLoader returns a loader for an explicit config path. An empty path
// behaves like AppConfigLoader.
func FileConfigLoader(path string) ConfigLoad {
	if strings.TrimSpace(path) == "" {
		return AppConfigLoader()
	}
	return func() (AppConfig, error) {
		return LoadFrom(ExpandPath(path))
	}
}

// Source is one category of feeds, kept in configuration order.
type Source struct {
	Category string   `yaml:"category"`
	Feeds    []string `yaml:"feeds"`
}

type ReportConfig struct {
	Title          string `yaml:"title"`
	FilePrefix     string `yaml:"file_prefix"`
	EntitiesLabel  string `yaml:"entities_label"`
	NoEntitiesText string `yaml:"no_entities_text"`
	OutputDir      string `yaml:"output_dir"`
}

type FetchConfig struct {
	TimeoutSec        int    `yaml:"timeout_sec"`
	UserAgent         string `yaml:"user_agent"`
	MaxEntriesPerFeed int    `yaml:"max_entries_per_feed"`
	MinIntervalMs     int    `yaml:"min_interval_ms"`
}

type ExtractConfig struct {
	Engine             string `yaml:"engine"`
	MinFragmentChars   int    `yaml:"min_fragment_chars"`
	FallbackParagraphs int    `yaml:"fallback_paragraphs"`
	MinContentChars    int    `yaml:"min_content_chars"`
}

type LookbackConfig struct {
	DefaultDays int `yaml:"default_days"`
	MinDays     int `yaml:"min_days"`
	MaxDays     int `yaml:"max_days"`
}

type GoogleNewsConfig struct {
	Enabled           bool     `yaml:"enabled"`
	SourceLabel       string   `yaml:"source_label"`
	Endpoint          string   `yaml:"endpoint"`
	TimeoutSec        int      `yaml:"timeout_sec"`
	MaxTerms          int      `yaml:"max_terms"`
	MaxResultsPerTerm int      `yaml:"max_results_per_term"`
	MinIntervalMs     int      `yaml:"min_interval_ms"`
	Terms             []string `yaml:"terms"`
}

// AppConfig carries every table and policy constant of a run. It is decoded
// once at startup and passed by value afterwards.
type AppConfig struct {
	Category   string           `yaml:"category"`
	Report     ReportConfig     `yaml:"report"`
	Fetch      FetchConfig      `yaml:"fetch"`
	Extract    ExtractConfig    `yaml:"extract"`
	Lookback   LookbackConfig   `yaml:"lookback"`
	Sources    []Source         `yaml:"sources"`
	Keywords   []string         `yaml:"keywords"`
	Entities   []string         `yaml:"entities"`
	GoogleNews GoogleNewsConfig `yaml:"google_news"`
}

// Default decodes the embedded default configuration.
func Default() (AppConfig, error) {
	var ac AppConfig
	if err := yaml.Unmarshal(defaultYAML, &ac); err != nil {
		return AppConfig{}, fmt.Errorf("decode embedded config: %w", err)
	}
	return ac, nil
}

// DefaultYAML returns a copy of the embedded default configuration document.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultYAML))
	copy(out, defaultYAML)
	return out
}

// MustDefault is Default for tests and static initialisation.
func MustDefault() AppConfig {
	ac, err := Default()
	if err != nil {
		panic(err)
	}
	return ac
}

// LoadAppConfig merges ~/.config/qcomnews/config.yaml over the defaults. A
// missing user file is not an error.
func LoadAppConfig() (AppConfig, error) {
	cfgPath, err := DefaultConfigPath()
	if err != nil {
		return Default()
	}
	ac, err := LoadFrom(cfgPath)
	if errors.Is(err, os.ErrNotExist) {
		return Default()
	}
	return ac, err
}

// LoadFrom merges the YAML file at path over the defaults. Keys missing from
// the file keep their default values; lists present in the file replace the
// default lists entirely.
func LoadFrom(path string) (AppConfig, error) {
	ac, err := Default()
	if err != nil {
		return ac, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return ac, err
	}
	if len(strings.TrimSpace(string(b))) == 0 {
		return ac, nil
	}
	if err := yaml.Unmarshal(b, &ac); err != nil {
		return ac, fmt.Errorf("parse %s: %w", path, err)
	}
	return ac, ac.Validate()
}

func (c AppConfig) Validate() error {
	if len(c.Sources) == 0 && !c.GoogleNews.Enabled {
		return errors.New("no sources configured")
	}
	if len(c.Keywords) == 0 {
		return errors.New("keyword list is empty")
	}
	if c.Lookback.MinDays <= 0 || c.Lookback.MaxDays < c.Lookback.MinDays {
		return fmt.Errorf("invalid lookback range [%d, %d]", c.Lookback.MinDays, c.Lookback.MaxDays)
	}
	if c.Lookback.DefaultDays < c.Lookback.MinDays || c.Lookback.DefaultDays > c.Lookback.MaxDays {
		return fmt.Errorf("default lookback %d outside [%d, %d]", c.Lookback.DefaultDays, c.Lookback.MinDays, c.Lookback.MaxDays)
	}
	switch strings.ToLower(strings.TrimSpace(c.Extract.Engine)) {
	case "", "selectors", "trafilatura", "readability":
	default:
		return fmt.Errorf("unknown extract engine %q", c.Extract.Engine)
	}
	return nil
}

// ClampDays applies the lookback rule: anything outside [MinDays, MaxDays]
// falls back to DefaultDays.
func (c AppConfig) ClampDays(days int) int {
	if days >= c.Lookback.MinDays && days <= c.Lookback.MaxDays {
		return days
	}
	return c.Lookback.DefaultDays
}

func (c AppConfig) FetchTimeout() time.Duration {
	if c.Fetch.TimeoutSec <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.Fetch.TimeoutSec) * time.Second
}

// MinInterval is the pause after each accepted article. It never drops below
// two seconds.
func (c AppConfig) MinInterval() time.Duration {
	d := time.Duration(c.Fetch.MinIntervalMs) * time.Millisecond
	if d < 2*time.Second {
		return 2 * time.Second
	}
	return d
}

func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "qcomnews", "config.yaml"), nil
}

// ExpandPath expands leading ~ and environment variables in a filesystem path.
func ExpandPath(p string) string {
	if p == "" {
		return p
	}
	p = os.ExpandEnv(p)
	if strings.HasPrefix(p, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			if p == "~" {
				p = home
			} else if strings.HasPrefix(p, "~/") {
				p = filepath.Join(home, p[2:])
			}
		}
	}
	return p
}
