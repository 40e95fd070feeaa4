package report

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// StampLayout is the run timestamp embedded in report file names.
const StampLayout = "20060102_150405"

// FileName returns "<prefix>_<days>days_<stamp>.txt".
func FileName(prefix string, days int, now time.Time) string {
	return fmt.Sprintf("%s_%ddays_%s.txt", prefix, days, now.Format(StampLayout))
}

// Save writes body to dir under FileName and returns the path written.
func Save(dir, prefix string, days int, now time.Time, body string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, FileName(prefix, days, now))
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// Saved describes a report file found on disk.
type Saved struct {
	Path      string
	Days      int
	Generated time.Time
	Articles  int
}

var articleHeader = regexp.MustCompile(`^ARTICLE \d+$`)

// ListSaved returns the reports in dir written with prefix, newest first.
func ListSaved(dir, prefix string) ([]Saved, error) {
	if dir == "" {
		dir = "."
	}
	nameRe, err := regexp.Compile("^" + regexp.QuoteMeta(prefix) + `_(\d+)days_(\d{8}_\d{6})\.txt$`)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []Saved
	for _, de := range entries {
		if de.IsDir() {
			continue
		}
		m := nameRe.FindStringSubmatch(de.Name())
		if m == nil {
			continue
		}
		days, _ := strconv.Atoi(m[1])
		generated, err := time.ParseInLocation(StampLayout, m[2], time.Local)
		if err != nil {
			continue
		}
		path := filepath.Join(dir, de.Name())
		n, err := countArticles(path)
		if err != nil {
			return nil, err
		}
		out = append(out, Saved{Path: path, Days: days, Generated: generated, Articles: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Generated.After(out[j].Generated) })
	return out, nil
}

func countArticles(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 4<<20)
	for sc.Scan() {
		if articleHeader.MatchString(strings.TrimSpace(sc.Text())) {
			n++
		}
	}
	return n, sc.Err()
}
