package main

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
	"go.uber.org/zap"

	"github.com/jadenpxrk/promptpack/internal/classify"
)

// defaultExcludes are directory names never descended into.
var defaultExcludes = []string{
	".git", ".svn", ".hg", ".idea", ".vscode",
	"node_modules", "dist", "build", ".next", ".cache",
	".pytest_cache", ".mypy_cache", ".ruff_cache",
	".venv", "venv", "__pycache__",
}

// walker collects candidate files below a root directory.
type walker struct {
	root           string
	includes       []string
	excludes       map[string]bool
	followSymlinks bool
	hideEmpty      bool
	ignore         gitignore.IgnoreMatcher
	skip           map[string]bool // absolute paths never returned (the outputs)
	logger         *zap.Logger

	visited map[string]bool
	entries []classify.Entry
}

// collectFiles walks opts.Root and returns the candidate entries in walk
// order. Failing to walk the root is the only error returned; problems with
// individual paths are logged and skipped.
func collectFiles(opts runOptions, logger *zap.Logger) ([]classify.Entry, error) {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("error resolving root %s: %w", opts.Root, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("error accessing root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", root)
	}

	w := &walker{
		root:           root,
		includes:       opts.Includes,
		excludes:       mergeExcludes(opts.Excludes),
		followSymlinks: opts.FollowSymlinks,
		hideEmpty:      opts.HideEmpty,
		logger:         logger,
		visited:        map[string]bool{},
		skip:           map[string]bool{},
	}
	for _, out := range []string{opts.Out, opts.PDFFile} {
		if out == "" || out == "-" {
			continue
		}
		if abs, err := filepath.Abs(out); err == nil {
			w.skip[abs] = true
		}
	}
	if !opts.NoIgnore {
		w.ignore = loadGitignore(root, logger)
	}

	if err := w.walk(root, root); err != nil {
		return nil, fmt.Errorf("error walking directory %s: %w", root, err)
	}
	return w.entries, nil
}

func mergeExcludes(extra []string) map[string]bool {
	m := make(map[string]bool, len(defaultExcludes)+len(extra))
	for _, name := range defaultExcludes {
		m[name] = true
	}
	for _, name := range extra {
		if name = strings.TrimSpace(name); name != "" {
			m[name] = true
		}
	}
	return m
}

func loadGitignore(root string, logger *zap.Logger) gitignore.IgnoreMatcher {
	p := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(p); err != nil {
		return nil
	}
	m, err := gitignore.NewGitIgnore(p)
	if err != nil {
		logger.Warn("Could not parse .gitignore", zap.String("path", p), zap.Error(err))
		return nil
	}
	return m
}

// walk visits dir, which is physically located at realDir. The two differ
// below a followed directory symlink; relative paths are always computed
// from the logical dir so they stay under the scan root.
func (w *walker) walk(dir, realDir string) error {
	if real, err := filepath.EvalSymlinks(realDir); err == nil {
		if w.visited[real] {
			w.logger.Debug("Skipping already visited directory", zap.String("path", dir))
			return nil
		}
		w.visited[real] = true
	}

	return filepath.WalkDir(realDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == realDir {
				return err
			}
			w.logger.Warn("Error accessing path", zap.String("path", p), zap.Error(err))
			return nil
		}
		if p == realDir {
			return nil
		}

		rel, _ := filepath.Rel(realDir, p)
		logical := filepath.Join(dir, rel)
		relRoot, _ := filepath.Rel(w.root, logical)

		if d.Type()&fs.ModeSymlink != 0 {
			return w.symlink(logical, p, relRoot)
		}

		if d.IsDir() {
			if w.excludes[d.Name()] || w.ignored(logical, true) {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			if !w.hideEmpty {
				w.add(logical, p, relRoot, 0)
			}
			return nil
		}
		w.add(logical, p, relRoot, info.Size())
		return nil
	})
}

func (w *walker) symlink(logical, real, relRoot string) error {
	info, err := os.Stat(real)
	if err != nil {
		w.logger.Debug("Skipping broken symlink", zap.String("path", relRoot))
		return nil
	}
	if info.IsDir() {
		if !w.followSymlinks || w.excludes[filepath.Base(logical)] || w.ignored(logical, true) {
			return nil
		}
		target, err := filepath.EvalSymlinks(real)
		if err != nil {
			return nil
		}
		return w.walk(logical, target)
	}
	if info.Mode().IsRegular() {
		w.add(logical, real, relRoot, info.Size())
	}
	return nil
}

func (w *walker) add(logical, real, relRoot string, size int64) {
	rel := filepath.ToSlash(relRoot)
	if w.ignored(logical, false) {
		return
	}
	if len(w.includes) > 0 && !matchesAnyInclude(rel, w.includes) {
		return
	}
	if w.skip[logical] || w.skip[real] {
		w.logger.Debug("Skipping output file", zap.String("path", rel))
		return
	}
	if w.hideEmpty && size == 0 {
		return
	}
	e := classify.NewEntry(w.root, logical, size)
	e.Path = real
	w.entries = append(w.entries, e)
}

// ignored matches an absolute path; the matcher resolves it against the
// directory holding the .gitignore.
func (w *walker) ignored(abs string, isDir bool) bool {
	return w.ignore != nil && w.ignore.Match(abs, isDir)
}

// matchesAnyInclude reports whether rel matches one of the include globs. A
// relative glob matches any trailing run of path components, so "*.go"
// matches at every depth and "cmd/*.go" matches any cmd directory.
func matchesAnyInclude(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchSuffix(pattern, rel) {
			return true
		}
	}
	return false
}

func matchSuffix(pattern, rel string) bool {
	pattern = filepath.ToSlash(strings.TrimSpace(pattern))
	if pattern == "" {
		return false
	}
	if strings.HasPrefix(pattern, "/") {
		ok, _ := path.Match(strings.TrimPrefix(pattern, "/"), rel)
		return ok
	}
	pparts := strings.Split(pattern, "/")
	rparts := strings.Split(rel, "/")
	if len(pparts) > len(rparts) {
		return false
	}
	tail := strings.Join(rparts[len(rparts)-len(pparts):], "/")
	ok, _ := path.Match(pattern, tail)
	return ok
}
