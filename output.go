package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// clipboardWrite is swapped out in tests.
var clipboardWrite = clipboard.WriteAll

// writeOutput writes the document to out, or to stdout when out is "-" or
// empty. Parent directories are created and newlines are normalized to \n.
func writeOutput(doc, out string, stdout io.Writer) error {
	doc = normalizeNewlines(doc)
	if out == "" || out == "-" {
		if _, err := io.WriteString(stdout, doc); err != nil {
			return fmt.Errorf("error writing to stdout: %w", err)
		}
		return nil
	}

	if dir := filepath.Dir(out); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("error creating output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(out, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("error writing to file %s: %w", out, err)
	}
	return nil
}

func normalizeNewlines(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	return strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(s)
}

// copyToClipboard is best effort: a failure is reported but never fails the
// run. The human-readable notice only goes to an interactive stderr.
func copyToClipboard(doc string, stderr *os.File, logger *zap.Logger) bool {
	err := clipboardWrite(doc)
	interactive := stderr != nil && term.IsTerminal(int(stderr.Fd()))
	if err != nil {
		logger.Warn("Clipboard copy failed", zap.Error(err))
		if interactive {
			fmt.Fprintln(stderr, "\n[Clipboard copy failed. Install pbcopy, xclip, xsel or wl-clipboard.]")
		}
		return false
	}
	logger.Info("Copied document to clipboard", zap.Int("bytes", len(doc)))
	if interactive {
		fmt.Fprintln(stderr, "\n[Copied to clipboard ✅]")
	}
	return true
}
