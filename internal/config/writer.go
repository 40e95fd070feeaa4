package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// WriteConfig writes the default configuration to path (the user config path
// when empty). An existing file is backed up first unless force is false, in
// which case an existing file is left untouched and an error is returned.
func WriteConfig(path string, force bool) (string, error) {
	if strings.TrimSpace(path) == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = p
	}
	path = ExpandPath(path)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		if !force {
			return path, fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
		}
		if err := BackupFile(path); err != nil {
			return path, fmt.Errorf("failed to back up %s: %w", path, err)
		}
	}

	return path, os.WriteFile(path, DefaultYAML(), 0o644)
}

// BackupFile creates a backup of the specified file with a timestamp
func BackupFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	ts := time.Now().Format("20060102-150405")
	bak := path + ".bak-" + ts
	return os.WriteFile(bak, b, 0o644)
}
