package launchd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuildPlist(t *testing.T) {
	opt := InstallOptions{
		Label:         DefaultLabel,
		IntervalHours: 12,
		ProgramPath:   "/usr/local/bin/qcomnews",
		ProgramArgs:   RunArgs(7, "/tmp/reports & more", ""),
		StdOutPath:    "/tmp/out.log",
		StdErrPath:    "/tmp/err.log",
	}
	b, err := BuildPlist(opt)
	if err != nil {
		t.Fatalf("BuildPlist: %v", err)
	}
	s := string(b)
	for _, want := range []string{
		"<string>com.qcomnews.report</string>",
		"<string>/usr/local/bin/qcomnews</string>",
		"<string>run</string>",
		"<string>--days</string>",
		"<string>7</string>",
		"<string>/tmp/reports &amp; more</string>",
		"<integer>43200</integer>",
		"<string>/tmp/out.log</string>",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("plist missing %q", want)
		}
	}
	if strings.Contains(s, "KeepAlive") || strings.Contains(s, "RunAtLoad") {
		t.Errorf("one-shot agent must not keep the process alive:\n%s", s)
	}

	path := filepath.Join(t.TempDir(), "agent.plist")
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatal(err)
	}
	secs, err := ExtractStartInterval(path)
	if err != nil || secs != 43200 {
		t.Errorf("ExtractStartInterval = %d, %v", secs, err)
	}
}

func TestBuildPlistValidation(t *testing.T) {
	if _, err := BuildPlist(InstallOptions{ProgramPath: "/bin/x"}); err == nil {
		t.Errorf("expected error without label")
	}
	if _, err := BuildPlist(InstallOptions{Label: "x"}); err == nil {
		t.Errorf("expected error without program path")
	}
	b, err := BuildPlist(InstallOptions{Label: "x", ProgramPath: "/bin/x", StdOutPath: "/tmp/a", StdErrPath: "/tmp/a"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "<integer>86400</integer>") {
		t.Errorf("default interval should be daily")
	}
}

func TestRunArgs(t *testing.T) {
	got := strings.Join(RunArgs(3, "", "/tmp/q.log"), " ")
	if got != "run --days 3 --log-file /tmp/q.log" {
		t.Errorf("RunArgs = %q", got)
	}
}
