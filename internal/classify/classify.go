package classify

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// SniffSize is how many leading bytes are inspected for a NUL byte.
const SniffSize = 2048

// Kind is the single label a file is routed by.
type Kind int

const (
	PlainText Kind = iota
	CodeLike
	Binary
	PrivateSensitive
)

func (k Kind) String() string {
	switch k {
	case CodeLike:
		return "code"
	case Binary:
		return "binary"
	case PrivateSensitive:
		return "private"
	default:
		return "text"
	}
}

// Entry describes one candidate file discovered under the scan root.
type Entry struct {
	Path    string // path used to open the file (or the source URL)
	RelPath string // slash-separated path relative to the scan root
	Size    int64
	MIME    string // MIME guess from the extension, may be empty
	Content []byte // preloaded content; when nil the file at Path is read
}

// NewEntry builds an Entry for a file on disk below root.
func NewEntry(root, filePath string, size int64) Entry {
	rel, err := filepath.Rel(root, filePath)
	if err != nil {
		rel = filePath
	}
	rel = filepath.ToSlash(rel)
	return Entry{
		Path:    filePath,
		RelPath: rel,
		Size:    size,
		MIME:    GuessMIME(path.Base(rel)),
	}
}

// Name returns the bare file name.
func (e Entry) Name() string {
	return path.Base(e.RelPath)
}

// Open returns a reader over the entry content.
func (e Entry) Open() (io.ReadCloser, error) {
	if e.Content != nil {
		return io.NopCloser(bytes.NewReader(e.Content)), nil
	}
	return os.Open(e.Path)
}

// Classification is the result of classifying one entry. Privacy is
// independent of the content-type flags.
type Classification struct {
	Binary   bool
	Private  bool
	Code     bool
	Language string
}

// Kind collapses the flags into one label, privacy first.
func (c Classification) Kind() Kind {
	switch {
	case c.Private:
		return PrivateSensitive
	case c.Binary:
		return Binary
	case c.Code:
		return CodeLike
	default:
		return PlainText
	}
}

// Classifier labels entries using a set of Tables.
type Classifier struct {
	tables Tables
}

// New returns a Classifier over the given tables.
func New(tables Tables) *Classifier {
	return &Classifier{tables: tables}
}

// Default returns a Classifier over DefaultTables.
func Default() *Classifier {
	return New(DefaultTables())
}

// Classify runs the binary, privacy and code tests. The content sniff is
// done at most once per call.
func (c *Classifier) Classify(e Entry) Classification {
	binary := c.IsBinary(e)
	return Classification{
		Binary:   binary,
		Private:  c.IsPrivate(e),
		Code:     c.isCode(e, binary),
		Language: c.Language(e),
	}
}

// IsBinary reports whether the entry looks binary. Files that cannot be
// opened or read are reported as binary.
func (c *Classifier) IsBinary(e Entry) bool {
	mt := e.MIME
	if mt == "" {
		mt = GuessMIME(e.Name())
	}
	if mt != "" {
		major, _, _ := strings.Cut(mt, "/")
		for _, m := range c.tables.BinaryMIMEMajors {
			if major == m {
				return true
			}
		}
		for _, t := range c.tables.BinaryMIMETypes {
			if mt == t {
				return true
			}
		}
	}

	r, err := e.Open()
	if err != nil {
		return true
	}
	defer r.Close()

	buf := make([]byte, SniffSize)
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	return bytes.IndexByte(buf[:n], 0) >= 0
}

// IsPrivate reports whether the bare name or the relative path matches one
// of the private patterns.
func (c *Classifier) IsPrivate(e Entry) bool {
	name := e.Name()
	for _, pub := range c.tables.PublicNames {
		if name == pub {
			return false
		}
	}
	for _, pattern := range c.tables.PrivatePatterns {
		if matchPrivate(pattern, name, e.RelPath) {
			return true
		}
	}
	return false
}

// IsCode reports whether the entry should be included in full.
func (c *Classifier) IsCode(e Entry) bool {
	if c.inCodeTables(e) {
		return true
	}
	return Ext(e.Name()) == "" && !c.IsBinary(e)
}

func (c *Classifier) isCode(e Entry, binary bool) bool {
	return c.inCodeTables(e) || (Ext(e.Name()) == "" && !binary)
}

func (c *Classifier) inCodeTables(e Entry) bool {
	name := e.Name()
	if _, ok := c.tables.SpecialNames[name]; ok {
		return true
	}
	if c.tables.CodeExtensions[strings.ToLower(name)] {
		return true
	}
	ext := strings.ToLower(Ext(name))
	return ext != "" && c.tables.CodeExtensions[ext]
}

// Language returns the fence language for the entry, or "".
func (c *Classifier) Language(e Entry) string {
	name := e.Name()
	if lang, ok := c.tables.SpecialNames[name]; ok {
		return lang
	}
	if e.MIME == "text/markdown" {
		return "markdown"
	}
	return c.tables.Languages[strings.ToLower(Ext(name))]
}

// Ext returns the extension of name the way a dotfile-aware path library
// would: ".bashrc" and "file." have none.
func Ext(name string) string {
	ext := filepath.Ext(name)
	if ext == name || ext == "." {
		return ""
	}
	return ext
}

// GuessMIME guesses a MIME type from the file extension, without
// parameters. It returns "" when nothing is known.
func GuessMIME(name string) string {
	ext := strings.ToLower(Ext(name))
	if ext == "" {
		return ""
	}
	if mt, ok := mimeOverrides[ext]; ok {
		return mt
	}
	mt, _, _ := strings.Cut(mime.TypeByExtension(ext), ";")
	return strings.TrimSpace(mt)
}

func matchPrivate(pattern, name, rel string) bool {
	if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
		// any trailing run of path components
		for sub := rel; ; {
			if ok, _ := path.Match(rest, sub); ok {
				return true
			}
			i := strings.IndexByte(sub, '/')
			if i < 0 {
				return false
			}
			sub = sub[i+1:]
		}
	}
	if ok, _ := path.Match(pattern, name); ok {
		return true
	}
	ok, _ := path.Match(pattern, rel)
	return ok
}
