// Package prefs handles tuber user preferences persistence.
// Preferences are stored in ~/.config/tuber/prefs.toml.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user preferences for tuber.
type Prefs struct {
	// Theme selects the UI color theme.
	Theme string `toml:"theme"`
	// PageSize is how many videos a feed or search page requests.
	PageSize int `toml:"page_size"`
	// RecordHistory controls whether watched videos are added to the
	// viewer's watch history.
	RecordHistory bool `toml:"record_history"`
}

const (
	defaultPrefsPath = "~/.config/tuber/prefs.toml"
	defaultTheme     = "Midnight"
	defaultPageSize  = 12
	maxPageSize      = 50
)

func defaults() Prefs {
	return Prefs{
		Theme:         defaultTheme,
		PageSize:      defaultPageSize,
		RecordHistory: true,
	}
}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from the given path. A missing or unreadable file
// yields defaults rather than an error; the app never refuses to start over
// preferences.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return defaults(), nil
	}

	// Missing or unreadable files degrade to defaults.
	raw, err := os.ReadFile(resolved)
	if err != nil {
		return defaults(), nil
	}

	prefs := defaults()
	if err := toml.Unmarshal(raw, &prefs); err != nil {
		return defaults(), nil
	}

	if strings.TrimSpace(prefs.Theme) == "" {
		prefs.Theme = defaultTheme
	}
	if prefs.PageSize <= 0 {
		prefs.PageSize = defaultPageSize
	}
	if prefs.PageSize > maxPageSize {
		prefs.PageSize = maxPageSize
	}

	return prefs, nil
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	raw, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, raw, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
