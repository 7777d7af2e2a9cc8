package assemble

import (
	"fmt"
	"io"
	"strings"
)

const (
	binaryNotice    = "> ⚠️ Binary file, omitted from the prompt.\n\n"
	privateNotice   = "> 🔒 **Private file included**: it may contain secrets, only the first and last lines are shown.\n\n"
	truncatedNotice = "> 🔎 **Non-code text file, truncated** (first and last lines)\n\n"
	elision         = "\n…\n\n"
)

type modeText struct {
	title, intro, instruction string
}

var modeTexts = map[Mode]modeText{
	ModeExport: {
		title:       "# Project Prompt\n",
		intro:       "The following content is an export of the project as a **Markdown prompt**.\n",
		instruction: "> **Note**: This document is meant as input (prompt) for an LLM to understand the project.\n\n",
	},
	ModeAck: {
		title:       "# Context\n",
		intro:       "Please **read** the project below and **reply only** with `OK`.\n",
		instruction: "> **LLM instruction**: \"Analyze the content below and reply only `OK`.\"\n\n",
	},
	ModeDescribe: {
		title:       "# Task\n",
		intro:       "Please **describe** this project, its goals, architecture and main dependencies **based on the material below**.\n",
		instruction: "> **LLM instruction**: \"From the provided sources, produce a clear technical summary.\"\n\n",
	},
}

// Markdown returns the complete document: header, instruction, table of
// contents and file sections.
func (d *Document) Markdown() string {
	var b strings.Builder
	d.WriteHeader(&b)
	b.WriteString("\n---\n\n")
	b.WriteString(modeTexts[d.mode()].instruction)
	d.WriteBody(&b)
	return b.String()
}

// Body returns the table of contents and the file sections.
func (d *Document) Body() string {
	var b strings.Builder
	d.WriteBody(&b)
	return b.String()
}

// WriteHeader writes the title and the metadata block.
func (d *Document) WriteHeader(w io.Writer) {
	mt := modeTexts[d.mode()]
	lines := []string{
		mt.title,
		mt.intro,
		"## Metadata\n",
		fmt.Sprintf("- Root: `%s`", d.Root),
		fmt.Sprintf("- Date: `%s`", d.Generated.Format("2006-01-02T15:04:05")),
		fmt.Sprintf("- Go: `%s`", d.GoVersion),
		fmt.Sprintf("- Export ID: `%s`", d.ID),
		fmt.Sprintf("- Private files included: `%s`", yesNo(d.IncludePrivate)),
		fmt.Sprintf("- Redaction: `%s`", onOff(d.Redact)),
		fmt.Sprintf("- Skipped private files: `%d`", d.Stats.SkippedPrivate),
		fmt.Sprintf("- Redacted secrets: `%d`", d.Stats.RedactedHits),
		fmt.Sprintf("- Files: `%d`", d.Stats.Files),
	}
	if d.Tokens > 0 {
		lines = append(lines, fmt.Sprintf("- Estimated tokens: `%d`", d.Tokens))
	}
	io.WriteString(w, strings.Join(lines, "\n")+"\n")
}

// WriteBody writes the table of contents followed by one section per file.
func (d *Document) WriteBody(w io.Writer) {
	fmt.Fprintf(w, "# Table of Contents\n\n")
	for _, s := range d.Sections {
		fmt.Fprintf(w, "- [%s](#%s)\n", s.RelPath, s.Anchor)
	}
	fmt.Fprintf(w, "\n---\n\n")

	for _, s := range d.Sections {
		writeSection(w, s)
	}
}

func writeSection(w io.Writer, s Section) {
	fmt.Fprintf(w, "## %s\n\n", s.RelPath)
	fmt.Fprintf(w, "<a id=\"%s\"></a>\n\n", s.Anchor)

	if s.Private {
		io.WriteString(w, privateNotice)
	}
	if s.Binary {
		io.WriteString(w, binaryNotice)
		return
	}

	if s.Full {
		fence := Fence(s.Text)
		fmt.Fprintf(w, "%s%s\n", fence, s.Language)
		io.WriteString(w, withNewline(s.Text))
		fmt.Fprintf(w, "%s\n\n", fence)
		return
	}

	io.WriteString(w, truncatedNotice)
	fence := Fence(s.First, s.Last)
	fmt.Fprintf(w, "%s%s\n", fence, s.Language)
	io.WriteString(w, withNewline(s.First))
	if s.Elided {
		io.WriteString(w, elision)
		io.WriteString(w, withNewline(s.Last))
	}
	fmt.Fprintf(w, "%s\n\n", fence)
}

// Fence returns a backtick fence longer than any backtick run in texts, so
// file content can never close the block early.
func Fence(texts ...string) string {
	longest := 0
	for _, t := range texts {
		run := 0
		for i := 0; i < len(t); i++ {
			if t[i] == '`' {
				run++
				if run > longest {
					longest = run
				}
			} else {
				run = 0
			}
		}
	}
	if longest < 3 {
		return "```"
	}
	return strings.Repeat("`", longest+1)
}

func (d *Document) mode() Mode {
	if _, ok := modeTexts[d.Mode]; ok {
		return d.Mode
	}
	return ModeExport
}

func withNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
