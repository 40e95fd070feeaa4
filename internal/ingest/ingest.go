package ingest

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"qcomnews/internal/config"
)

// Options allow overriding config values from CLI flags.
type Options struct {
	Days       int
	LogFile    string
	OutputDir  string
	GoogleNews bool
	// Out receives operator progress lines; nil means stdout.
	Out io.Writer
}

// Run executes a single batch run. Scheduling is delegated to launchd/cron.
func Run(ctx context.Context, opts Options, loadConfig config.ConfigLoad) (Summary, error) {
	logger := log.New(os.Stdout, "[qcomnews] ", log.LstdFlags)
	if logFile := strings.TrimSpace(opts.LogFile); logFile != "" {
		logFile = config.ExpandPath(logFile)
		if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err == nil {
			if f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
				logger.SetOutput(f)
				defer f.Close()
			}
		}
	}

	appCfg, err := loadConfig()
	if err != nil {
		return Summary{}, err
	}
	if opts.GoogleNews {
		appCfg.GoogleNews.Enabled = true
	}
	days := appCfg.ClampDays(opts.Days)
	outputDir := appCfg.Report.OutputDir
	if strings.TrimSpace(opts.OutputDir) != "" {
		outputDir = opts.OutputDir
	}

	c := NewController(appCfg, logger, opts.Out)
	return c.Run(ctx, days, config.ExpandPath(outputDir))
}
