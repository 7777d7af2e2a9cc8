package main

import "github.com/jadenpxrk/promptpack/internal/assemble"

// runOptions is the fully resolved configuration of one run, after flags,
// environment and config file have been merged.
type runOptions struct {
	Root           string
	Out            string // "-" or empty for stdout
	Mode           assemble.Mode
	Sort           assemble.SortOrder
	TruncateN      int
	Includes       []string
	Excludes       []string
	FollowSymlinks bool
	HideEmpty      bool
	NoIgnore       bool
	IncludePrivate bool
	Redact         bool
	Clipboard      bool
	Interactive    bool

	PDFFile  string
	DocURLs  []string
	DocDepth int

	Tokenizer     string // tiktoken, huggingface or none
	Model         string
	TokenizerFile string

	LanguagesFile string
	Debug         bool
}

// assembleOptions is the slice of runOptions the core consumes.
func (o runOptions) assembleOptions(root string) assemble.Options {
	return assemble.Options{
		Root:           root,
		Window:         o.TruncateN,
		IncludePrivate: o.IncludePrivate,
		Redact:         o.Redact,
		Mode:           o.Mode,
	}
}
