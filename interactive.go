package main

import (
	"errors"
	"fmt"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"

	"github.com/jadenpxrk/promptpack/internal/classify"
)

// errPickerAborted is returned when the user leaves the picker without
// confirming a selection.
var errPickerAborted = errors.New("interactive selection aborted")

// pickEntries opens a fuzzy finder over the discovered files and returns
// the selected subset, keeping the original order. The preview shows how
// each file would be treated.
func pickEntries(entries []classify.Entry, c *classify.Classifier) ([]classify.Entry, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("no files found to select from")
	}

	idx, err := fuzzyfinder.FindMulti(
		entries,
		func(i int) string {
			return entries[i].RelPath
		},
		fuzzyfinder.WithHeader("Tab to select files, Enter to confirm"),
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return "Select the files to include in the prompt."
			}
			return describeEntry(entries[i], c)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, errPickerAborted
		}
		return nil, fmt.Errorf("fuzzy finder error: %w", err)
	}

	return selectIndices(entries, idx), nil
}

func selectIndices(entries []classify.Entry, idx []int) []classify.Entry {
	chosen := make(map[int]bool, len(idx))
	for _, i := range idx {
		chosen[i] = true
	}
	out := make([]classify.Entry, 0, len(idx))
	for i, e := range entries {
		if chosen[i] {
			out = append(out, e)
		}
	}
	return out
}

// describeEntry is the picker preview. Private files are only named, never
// read.
func describeEntry(e classify.Entry, c *classify.Classifier) string {
	if c.IsPrivate(e) {
		return fmt.Sprintf("Path: %s\nSize: %d bytes\nKind: %s\n\nPrivate file, skipped unless --include-private is set.",
			e.RelPath, e.Size, classify.PrivateSensitive)
	}
	cls := c.Classify(e)
	lang := cls.Language
	if lang == "" {
		lang = "-"
	}
	return fmt.Sprintf("Path: %s\nSize: %d bytes\nKind: %s\nLanguage: %s", e.RelPath, e.Size, cls.Kind(), lang)
}
