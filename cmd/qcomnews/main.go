package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"qcomnews/internal/config"
	"qcomnews/internal/digest"
	"qcomnews/internal/ingest"
	"qcomnews/internal/launchd"
	"qcomnews/internal/list"
	"qcomnews/internal/version"
)

func runFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "days", Usage: "Number of days to look back (1-30)", Value: 7},
		&cli.StringFlag{Name: "config", Usage: "Path to config file (default ~/.config/qcomnews/config.yaml)"},
		&cli.StringFlag{Name: "log-file", Usage: "Write diagnostic log lines to this file"},
		&cli.StringFlag{Name: "output-dir", Usage: "Directory for the report file (default from config: .)"},
		&cli.BoolFlag{Name: "google-news", Usage: "Also search Google News for the configured terms"},
	}
}

func runAction(ctx context.Context, c *cli.Command) error {
	opts := ingest.Options{
		Days:       c.Int("days"),
		LogFile:    c.String("log-file"),
		OutputDir:  c.String("output-dir"),
		GoogleNews: c.Bool("google-news"),
	}
	_, err := ingest.Run(ctx, opts, config.FileConfigLoader(c.String("config")))
	return err
}

func main() {
	app := &cli.Command{
		Name:   "qcomnews",
		Usage:  "Quick commerce news report",
		Flags:  runFlags(),
		Action: runAction,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Scrape the configured feeds once and save a report",
				Flags:  runFlags(),
				Action: runAction,
			},
			{
				Name:  "digest",
				Usage: "Extract, clean and classify a single article URL",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name:      "content",
						UsageText: "url",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "engine", Usage: "Extraction engine: selectors, trafilatura or readability"},
					&cli.StringFlag{Name: "config", Usage: "Path to config file"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					opts := digest.Options{Engine: c.String("engine")}
					return digest.Run(ctx, c.StringArg("content"), opts, config.FileConfigLoader(c.String("config")))
				},
			},
			{
				Name:  "list",
				Usage: "List saved reports",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "dir", Usage: "Report directory (default from config)"},
					&cli.IntFlag{Name: "limit", Usage: "Show at most this many reports (0 = all)"},
					&cli.StringFlag{Name: "config", Usage: "Path to config file"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return list.Run(os.Stdout, c.String("dir"), c.Int("limit"), config.FileConfigLoader(c.String("config")))
				},
			},
			{
				Name:  "config",
				Usage: "Manage the configuration file",
				Commands: []*cli.Command{
					{
						Name:  "init",
						Usage: "Write the default configuration to ~/.config/qcomnews/config.yaml",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "path", Usage: "Write to this path instead"},
							&cli.BoolFlag{Name: "force", Usage: "Overwrite an existing file (a backup is kept)"},
						},
						Action: func(ctx context.Context, c *cli.Command) error {
							path, err := config.WriteConfig(config.ExpandPath(c.String("path")), c.Bool("force"))
							if err != nil {
								return err
							}
							fmt.Printf("Configuration written to %s\n", path)
							return nil
						},
					},
				},
			},
			{
				Name:  "schedule",
				Usage: "Run the report periodically via launchd (macOS)",
				Commands: []*cli.Command{
					{
						Name:  "install",
						Usage: "Install launchd agent",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "label", Value: launchd.DefaultLabel, Usage: "launchd label"},
							&cli.IntFlag{Name: "interval-hours", Value: 24, Usage: "hours between runs"},
							&cli.IntFlag{Name: "days", Value: 7, Usage: "lookback days for each run"},
							&cli.StringFlag{Name: "output-dir", Usage: "report directory"},
							&cli.StringFlag{Name: "log-file", Usage: "log file path"},
							&cli.StringFlag{Name: "plist", Usage: "custom plist path (default ~/Library/LaunchAgents/<label>.plist)"},
						},
						Action: func(ctx context.Context, c *cli.Command) error {
							exe, _ := os.Executable()
							if strings.TrimSpace(exe) == "" {
								return fmt.Errorf("cannot discover program path")
							}
							wd, _ := os.Getwd()
							opt := launchd.InstallOptions{
								Label:         c.String("label"),
								IntervalHours: c.Int("interval-hours"),
								ProgramPath:   exe,
								ProgramArgs:   launchd.RunArgs(c.Int("days"), config.ExpandPath(c.String("output-dir")), config.ExpandPath(c.String("log-file"))),
								WorkingDir:    wd,
								StdOutPath:    config.ExpandPath(c.String("log-file")),
								StdErrPath:    config.ExpandPath(c.String("log-file")),
								PlistPath:     c.String("plist"),
							}
							path, err := launchd.Install(opt)
							if err != nil {
								return err
							}
							fmt.Printf("launchd agent installed and loaded: %s\n", path)
							return nil
						},
					},
					{
						Name:  "uninstall",
						Usage: "Uninstall launchd agent",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "label", Value: launchd.DefaultLabel, Usage: "launchd label"},
							&cli.StringFlag{Name: "plist", Usage: "path to plist (default ~/Library/LaunchAgents/<label>.plist)"},
						},
						Action: func(ctx context.Context, c *cli.Command) error {
							if err := launchd.Uninstall(c.String("label"), c.String("plist")); err != nil {
								return err
							}
							fmt.Println("launchd agent unloaded and removed")
							return nil
						},
					},
					{
						Name:  "status",
						Usage: "Show whether the launchd agent is loaded",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "label", Value: launchd.DefaultLabel, Usage: "launchd label"},
						},
						Action: func(ctx context.Context, c *cli.Command) error {
							label := c.String("label")
							loaded, state := launchd.Status(label)
							fmt.Printf("%s: loaded=%v (%s)\n", label, loaded, state)
							if path, err := launchd.DefaultAgentPath(label); err == nil {
								if secs, err := launchd.ExtractStartInterval(path); err == nil {
									fmt.Printf("interval: every %d hours\n", secs/3600)
								}
							}
							return nil
						},
					},
				},
			},
			{
				Name:  "version",
				Usage: "Print the version",
				Action: func(ctx context.Context, c *cli.Command) error {
					fmt.Println(version.GetVersion())
					return nil
				},
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
