package main

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/jung-kurt/gofpdf"

	"github.com/jadenpxrk/promptpack/internal/assemble"
)

const (
	pdfPageWidth  = 210 // A4, mm
	pdfMargin     = 10
	pdfLineHeight = 5
	pdfFontSize   = 9
	pdfTabWidth   = 4
)

// pdfWriter renders an assembled document with highlighted code. It reuses
// the sections of the Markdown document, so skipped private files and
// redacted secrets stay out of the PDF as well.
type pdfWriter struct {
	pdf   *gofpdf.Fpdf
	style *chroma.Style
	tr    func(string) string
}

func newPDFWriter() *pdfWriter {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)

	style := styles.Get("github")
	if style == nil {
		style = styles.Fallback
	}
	return &pdfWriter{
		pdf:   pdf,
		style: style,
		tr:    pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

// writePDF renders doc to path.
func writePDF(doc *assemble.Document, path string) error {
	w := newPDFWriter()
	w.render(doc)
	if err := w.pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to save PDF to %s: %w", path, err)
	}
	return nil
}

func (w *pdfWriter) render(doc *assemble.Document) {
	pdf := w.pdf
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", pdfFontSize+5)
	pdf.SetTextColor(0, 0, 0)
	w.cell(fmt.Sprintf("Project export: %s", doc.Root))
	pdf.Ln(pdfLineHeight / 2)

	pdf.SetFont("Helvetica", "", pdfFontSize)
	meta := []string{
		"Date: " + doc.Generated.Format("2006-01-02T15:04:05"),
		"Export ID: " + doc.ID,
		fmt.Sprintf("Files: %d", doc.Stats.Files),
		fmt.Sprintf("Skipped private files: %d", doc.Stats.SkippedPrivate),
		fmt.Sprintf("Redacted secrets: %d", doc.Stats.RedactedHits),
	}
	if doc.Tokens > 0 {
		meta = append(meta, fmt.Sprintf("Estimated tokens: %d", doc.Tokens))
	}
	w.cell(strings.Join(meta, "\n"))

	for _, sec := range doc.Sections {
		pdf.AddPage()
		w.section(sec)
	}
}

func (w *pdfWriter) section(sec assemble.Section) {
	pdf := w.pdf
	pdf.SetFont("Helvetica", "B", pdfFontSize+1)
	pdf.SetTextColor(0, 0, 0)
	w.cell("File: " + sec.RelPath)
	pdf.Ln(pdfLineHeight / 2)
	pdf.Line(pdfMargin, pdf.GetY(), pdfPageWidth-pdfMargin, pdf.GetY())
	pdf.Ln(pdfLineHeight / 2)

	pdf.SetFont("Helvetica", "I", pdfFontSize)
	if sec.Private {
		w.cell("Private file included, first and last lines only.")
	}
	switch {
	case sec.Binary:
		w.cell("Binary file, omitted.")
		return
	case !sec.Full:
		w.cell("Non-code text file, truncated.")
	}

	if sec.Full {
		w.code(sec.Text, sec)
		return
	}
	w.code(sec.First, sec)
	if sec.Elided {
		pdf.SetFont("Courier", "", pdfFontSize)
		pdf.SetTextColor(128, 128, 128)
		w.cell("...")
		w.code(sec.Last, sec)
	}
}

func (w *pdfWriter) cell(s string) {
	w.pdf.MultiCell(pdfPageWidth-2*pdfMargin, pdfLineHeight, w.tr(s), "", "L", false)
}

// code writes text token by token, coloring each with the chroma style.
// Falls back to plain text when the lexer fails.
func (w *pdfWriter) code(text string, sec assemble.Section) {
	pdf := w.pdf
	pdf.SetFont("Courier", "", pdfFontSize)

	iterator, err := lexerFor(sec, text).Tokenise(nil, text)
	if err != nil {
		pdf.SetTextColor(0, 0, 0)
		w.cell(text)
		return
	}
	for token := iterator(); token != chroma.EOF; token = iterator() {
		entry := w.style.Get(token.Type)
		fontStyle := ""
		if entry.Bold == chroma.Yes {
			fontStyle += "B"
		}
		if entry.Italic == chroma.Yes {
			fontStyle += "I"
		}
		pdf.SetFontStyle(fontStyle)

		c := entry.Colour
		if !c.IsSet() {
			c = w.style.Get(chroma.Text).Colour
		}
		if c.IsSet() {
			pdf.SetTextColor(int(c.Red()), int(c.Green()), int(c.Blue()))
		} else {
			pdf.SetTextColor(0, 0, 0)
		}
		pdf.Write(pdfLineHeight, w.tr(strings.ReplaceAll(token.Value, "\t", strings.Repeat(" ", pdfTabWidth))))
	}
	pdf.Ln(-1)
}

func lexerFor(sec assemble.Section, text string) chroma.Lexer {
	var lexer chroma.Lexer
	if sec.Language != "" {
		lexer = lexers.Get(sec.Language)
	}
	if lexer == nil {
		lexer = lexers.Match(sec.RelPath)
	}
	if lexer == nil {
		lexer = lexers.Analyse(text)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}
