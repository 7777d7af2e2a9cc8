package main

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/jadenpxrk/promptpack/internal/classify"
)

// findLanguageFile returns the languages.yml to load: the explicit path if
// given, else the first one found in the config directory or the working
// directory. An empty result means none was found.
func findLanguageFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	var dirs []string
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", appName))
	}
	dirs = append(dirs, ".")
	for _, dir := range dirs {
		p := filepath.Join(dir, "languages.yml")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// loadTables returns the classification tables, extended with any
// languages.yml found. A broken language file is reported and ignored.
func loadTables(explicit string, logger *zap.Logger) classify.Tables {
	tables := classify.DefaultTables()
	p := findLanguageFile(explicit)
	if p == "" {
		return tables
	}
	langs, err := classify.LoadLanguageFile(p)
	if err != nil {
		logger.Warn("Could not load language definitions", zap.String("path", p), zap.Error(err))
		return tables
	}
	exts, names := tables.Merge(langs)
	logger.Debug("Loaded language definitions",
		zap.String("path", p),
		zap.Int("languages", len(langs)),
		zap.Int("extensions", exts),
		zap.Int("filenames", names))
	return tables
}
