package classify

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LanguageInfo holds the parts of a linguist-style language definition used
// for file detection.
type LanguageInfo struct {
	Type       string   `yaml:"type"` // programming, data, markup, prose
	Extensions []string `yaml:"extensions"`
	Filenames  []string `yaml:"filenames"`
	FenceName  string   `yaml:"fence"` // optional Markdown fence override
}

// LanguageMap maps language names (e.g. "Go") to their details.
type LanguageMap map[string]LanguageInfo

// LoadLanguageFile parses a languages.yml file.
func LoadLanguageFile(path string) (LanguageMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading language file %s: %w", path, err)
	}
	var langs LanguageMap
	if err := yaml.Unmarshal(data, &langs); err != nil {
		return nil, fmt.Errorf("error parsing language file %s: %w", path, err)
	}
	return langs, nil
}

// Merge adds the extensions and file names of langs to the tables. Entries
// already present are kept, so the built-in languages win. It returns the
// number of extensions and file names added.
func (t *Tables) Merge(langs LanguageMap) (exts, names int) {
	for langName, info := range langs {
		fence := info.FenceName
		if fence == "" {
			fence = strings.ToLower(strings.ReplaceAll(langName, " ", "-"))
		}
		for _, ext := range info.Extensions {
			ext = strings.ToLower(ext)
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			if !t.CodeExtensions[ext] {
				t.CodeExtensions[ext] = true
				exts++
			}
			if _, ok := t.Languages[ext]; !ok {
				t.Languages[ext] = fence
			}
		}
		for _, fname := range info.Filenames {
			// linguist matches file names case-sensitively
			if _, ok := t.SpecialNames[fname]; !ok {
				t.SpecialNames[fname] = fence
				names++
			}
		}
	}
	return exts, names
}
