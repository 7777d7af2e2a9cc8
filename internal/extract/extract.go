// Package extract reads file content for the document: whole files for code,
// head and tail windows for other text files.
package extract

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/emirpasic/gods/queues/circularbuffer"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jadenpxrk/promptpack/internal/classify"
)

// DefaultWindow is the number of head and tail lines kept for non-code text.
const DefaultWindow = 50

// Mode says how much of a file an extraction holds.
type Mode int

const (
	Full Mode = iota
	Truncated
)

func (m Mode) String() string {
	if m == Truncated {
		return "truncated"
	}
	return "full"
}

// Content is the text extracted from one entry.
//
// For Full, Text holds the whole decoded file. For Truncated, First holds up
// to Window leading lines and Last up to Window trailing lines, each line
// keeping its terminator. When the read fails, Err is set and Text (or the
// single element of First) holds a one-line error notice.
type Content struct {
	Mode   Mode
	Text   string
	First  []string
	Last   []string
	Lines  int // total lines scanned in Truncated mode
	Window int
	Err    error
}

// SingleWindow reports whether First and Last hold the same lines, which is
// the case when the file has no more lines than the window or the read
// failed.
func (c Content) SingleWindow() bool {
	return c.Err != nil || len(c.Last) == 0 || c.Lines <= c.Window
}

// Reader extracts content with a fixed truncation window.
type Reader struct {
	window int
}

// New returns a Reader; a non-positive window means DefaultWindow.
func New(window int) *Reader {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Reader{window: window}
}

// Window returns the configured truncation window.
func (r *Reader) Window() int {
	return r.window
}

// ReadFull reads the whole entry as text. Invalid UTF-8 bytes become U+FFFD.
func (r *Reader) ReadFull(e classify.Entry) Content {
	f, err := e.Open()
	if err != nil {
		return Content{Mode: Full, Text: errorLine(err), Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(transform.NewReader(f, unicode.UTF8.NewDecoder()))
	if err != nil {
		return Content{Mode: Full, Text: errorLine(err), Err: err}
	}
	return Content{Mode: Full, Text: string(data)}
}

// ReadWindow streams the entry line by line and keeps the first and last
// window lines. Memory use is bounded by the window, not the file size.
func (r *Reader) ReadWindow(e classify.Entry) Content {
	out := Content{Mode: Truncated, Window: r.window}

	f, err := e.Open()
	if err != nil {
		return failed(out, err)
	}
	defer f.Close()

	first := make([]string, 0, r.window)
	last := circularbuffer.New(r.window)
	br := bufio.NewReader(transform.NewReader(f, unicode.UTF8.NewDecoder()))
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			if out.Lines < r.window {
				first = append(first, line)
			}
			last.Enqueue(line)
			out.Lines++
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return failed(out, err)
		}
	}

	out.First = first
	out.Last = make([]string, 0, last.Size())
	for _, v := range last.Values() {
		out.Last = append(out.Last, v.(string))
	}
	return out
}

func failed(c Content, err error) Content {
	c.Err = err
	c.First = []string{errorLine(err) + "\n"}
	c.Last = nil
	c.Lines = 0
	return c
}

func errorLine(err error) string {
	return fmt.Sprintf("<<Read error: %v>>", err)
}
