// Package launchd registers the report run as a periodic macOS launch agent.
// The agent starts one batch run per interval and exits; nothing stays
// resident.
package launchd

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// DefaultLabel names the agent when no label is given.
const DefaultLabel = "com.qcomnews.report"

// InstallOptions config for creating/loading a launchd agent.
type InstallOptions struct {
	Label         string
	IntervalHours int
	ProgramPath   string   // absolute path to this binary
	ProgramArgs   []string // args after ProgramPath
	WorkingDir    string   // where reports land when no output dir is configured
	StdOutPath    string
	StdErrPath    string
	PlistPath     string // optional custom plist path
}

func DefaultAgentPath(label string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Library", "LaunchAgents", label+".plist"), nil
}

// RunArgs returns the program arguments for a scheduled run.
func RunArgs(days int, outputDir, logFile string) []string {
	args := []string{"run", "--days", strconv.Itoa(days)}
	if strings.TrimSpace(outputDir) != "" {
		args = append(args, "--output-dir", outputDir)
	}
	if strings.TrimSpace(logFile) != "" {
		args = append(args, "--log-file", logFile)
	}
	return args
}

type plistWriter struct {
	buf bytes.Buffer
}

func (w *plistWriter) escape(s string) string {
	var b bytes.Buffer
	xml.EscapeText(&b, []byte(s))
	return b.String()
}

func (w *plistWriter) key(k string) {
	fmt.Fprintf(&w.buf, "    <key>%s</key>\n", k)
}

func (w *plistWriter) str(k, v string) {
	w.key(k)
	fmt.Fprintf(&w.buf, "    <string>%s</string>\n", w.escape(v))
}

// BuildPlist renders an agent that runs the program every IntervalHours.
// Runs are one-shot, so neither RunAtLoad nor KeepAlive is set.
func BuildPlist(opt InstallOptions) ([]byte, error) {
	if opt.Label == "" {
		return nil, errors.New("label required")
	}
	if opt.ProgramPath == "" {
		return nil, errors.New("program path required")
	}
	if opt.IntervalHours <= 0 {
		opt.IntervalHours = 24
	}
	if opt.StdOutPath == "" || opt.StdErrPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			def := filepath.Join(home, "Library", "Logs", "qcomnews", "report.launchd.log")
			if opt.StdOutPath == "" {
				opt.StdOutPath = def
			}
			if opt.StdErrPath == "" {
				opt.StdErrPath = def
			}
		}
	}

	w := &plistWriter{}
	w.buf.WriteString(xml.Header)
	w.buf.WriteString("<!DOCTYPE plist PUBLIC \"-//Apple//DTD PLIST 1.0//EN\" \"http://www.apple.com/DTDs/PropertyList-1.0.dtd\">\n")
	w.buf.WriteString("<plist version=\"1.0\">\n  <dict>\n")
	w.str("Label", opt.Label)
	w.key("ProgramArguments")
	w.buf.WriteString("    <array>\n")
	for _, a := range append([]string{opt.ProgramPath}, opt.ProgramArgs...) {
		fmt.Fprintf(&w.buf, "      <string>%s</string>\n", w.escape(a))
	}
	w.buf.WriteString("    </array>\n")
	w.key("StartInterval")
	fmt.Fprintf(&w.buf, "    <integer>%d</integer>\n", opt.IntervalHours*3600)
	if opt.WorkingDir != "" {
		w.str("WorkingDirectory", opt.WorkingDir)
	}
	w.str("StandardOutPath", opt.StdOutPath)
	w.str("StandardErrorPath", opt.StdErrPath)
	w.buf.WriteString("  </dict>\n</plist>\n")
	return w.buf.Bytes(), nil
}

// Install writes the plist and loads it via launchctl.
func Install(opt InstallOptions) (string, error) {
	if runtime.GOOS != "darwin" {
		return "", errors.New("launchd is only available on macOS")
	}
	plistPath := opt.PlistPath
	if strings.TrimSpace(plistPath) == "" {
		var err error
		plistPath, err = DefaultAgentPath(opt.Label)
		if err != nil {
			return "", err
		}
	}
	if err := os.MkdirAll(filepath.Dir(plistPath), 0o755); err != nil {
		return "", err
	}
	data, err := BuildPlist(opt)
	if err != nil {
		return "", err
	}
	for _, p := range []string{opt.StdOutPath, opt.StdErrPath} {
		if p != "" {
			_ = os.MkdirAll(filepath.Dir(p), 0o755)
		}
	}
	if err := os.WriteFile(plistPath, data, 0o644); err != nil {
		return "", err
	}

	lctl := launchctlPath()
	if lctl == "" {
		return plistPath, errors.New("launchctl not found in /bin, /usr/bin, or PATH")
	}
	domain := fmt.Sprintf("gui/%d", os.Getuid())
	if err := exec.Command(lctl, "bootstrap", domain, plistPath).Run(); err != nil {
		if err2 := exec.Command(lctl, "load", "-w", plistPath).Run(); err2 != nil {
			return plistPath, fmt.Errorf("launchctl bootstrap/load failed: %v / %v", err, err2)
		}
	} else {
		_ = exec.Command(lctl, "enable", domain+"/"+opt.Label).Run()
	}
	return plistPath, nil
}

// Uninstall unloads and removes the plist.
func Uninstall(label string, plistPath string) error {
	if runtime.GOOS != "darwin" {
		return errors.New("launchd is only available on macOS")
	}
	if strings.TrimSpace(plistPath) == "" {
		var err error
		plistPath, err = DefaultAgentPath(label)
		if err != nil {
			return err
		}
	}
	lctl := launchctlPath()
	if lctl == "" {
		return errors.New("launchctl not found")
	}
	domain := fmt.Sprintf("gui/%d", os.Getuid())
	if err := exec.Command(lctl, "bootout", domain, plistPath).Run(); err != nil {
		_ = exec.Command(lctl, "unload", "-w", plistPath).Run()
	}
	if err := os.Remove(plistPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Status returns whether the agent is loaded and a short human string.
func Status(label string) (bool, string) {
	if runtime.GOOS != "darwin" || strings.TrimSpace(label) == "" {
		return false, "unsupported"
	}
	lctl := launchctlPath()
	if lctl == "" {
		return false, "launchctl not found"
	}
	domain := fmt.Sprintf("gui/%d", os.Getuid())
	out, err := exec.Command(lctl, "print", domain+"/"+label).CombinedOutput()
	if err != nil {
		return false, "not loaded"
	}
	state := "loaded"
	for _, ln := range strings.Split(string(out), "\n") {
		if strings.Contains(ln, "state = ") {
			state = strings.TrimSpace(ln)
			break
		}
	}
	return true, state
}

func launchctlPath() string {
	for _, c := range []string{"/bin/launchctl", "/usr/bin/launchctl"} {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	if p, err := exec.LookPath("launchctl"); err == nil {
		return p
	}
	return ""
}

// ExtractStartInterval best-effort parse of StartInterval seconds from a plist file.
func ExtractStartInterval(plistPath string) (int, error) {
	b, err := os.ReadFile(plistPath)
	if err != nil {
		return 0, err
	}
	s := string(b)
	i := strings.Index(s, "<key>StartInterval</key>")
	if i < 0 {
		return 0, errors.New("StartInterval not found")
	}
	sub := s[i:]
	open := strings.Index(sub, "<integer>")
	end := strings.Index(sub, "</integer>")
	if open < 0 || end < 0 || end <= open+9 {
		return 0, errors.New("invalid integer tag")
	}
	return strconv.Atoi(strings.TrimSpace(sub[open+9 : end]))
}
