package list

import (
	"fmt"
	"io"
	"os"
	"strings"

	"qcomnews/internal/config"
	"qcomnews/internal/report"
)

// Run prints the reports saved in dir (or the configured output dir),
// newest first, with their lookback window and article count.
func Run(w io.Writer, dir string, limit int, loadConfig config.ConfigLoad) error {
	if w == nil {
		w = os.Stdout
	}
	appCfg, err := loadConfig()
	if err != nil {
		return err
	}
	if strings.TrimSpace(dir) == "" {
		dir = appCfg.Report.OutputDir
	}
	dir = config.ExpandPath(dir)

	if !dirExists(dir) {
		fmt.Fprintf(w, "Report directory not found at %s\n", dir)
		fmt.Fprintln(w, "Hint: Run 'qcomnews run' to produce a report, or set report.output_dir in ~/.config/qcomnews/config.yaml.")
		return nil
	}

	saved, err := report.ListSaved(dir, appCfg.Report.FilePrefix)
	if err != nil {
		return fmt.Errorf("failed reading reports from %s: %w", dir, err)
	}
	if len(saved) == 0 {
		fmt.Fprintf(w, "No reports found in %s.\n", dir)
		return nil
	}
	if limit > 0 && len(saved) > limit {
		saved = saved[:limit]
	}

	fmt.Fprintf(w, "Found %d reports in %s:\n\n", len(saved), dir)
	for _, s := range saved {
		fmt.Fprintf(w, "File: %s\n", s.Path)
		fmt.Fprintf(w, "Generated: %s\n", s.Generated.Format(report.GeneratedLayout))
		fmt.Fprintf(w, "Timeframe: %s\n", report.Timeframe(s.Days))
		fmt.Fprintf(w, "Articles: %d\n", s.Articles)
		fmt.Fprintln(w, strings.Repeat("-", 80))
	}
	return nil
}

func dirExists(path string) bool {
	if path == "" {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
