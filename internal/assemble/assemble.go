package assemble

import (
	"fmt"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jadenpxrk/promptpack/internal/classify"
	"github.com/jadenpxrk/promptpack/internal/extract"
	"github.com/jadenpxrk/promptpack/internal/redact"
)

// Mode selects the header and the instruction given to the LLM.
type Mode string

const (
	ModeExport   Mode = "export"
	ModeAck      Mode = "ack"
	ModeDescribe Mode = "describe"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(s)); m {
	case ModeExport, ModeAck, ModeDescribe:
		return m, nil
	case "":
		return ModeExport, nil
	default:
		return "", fmt.Errorf("unsupported mode: %s. Use 'export', 'ack' or 'describe'", s)
	}
}

// SortOrder is how entries are ordered before assembly.
type SortOrder string

const (
	SortByPath SortOrder = "path"
	SortByName SortOrder = "name"
	SortNone   SortOrder = "none"
)

// ParseSortOrder validates a sort order name.
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(s)); o {
	case SortByPath, SortByName, SortNone:
		return o, nil
	case "":
		return SortByPath, nil
	default:
		return "", fmt.Errorf("unsupported sort order: %s. Use 'path', 'name' or 'none'", s)
	}
}

// SortEntries orders entries in place. Comparisons are case-insensitive and
// stable.
func SortEntries(entries []classify.Entry, order SortOrder) {
	switch order {
	case SortByName:
		sort.SliceStable(entries, func(i, j int) bool {
			return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
		})
	case SortByPath:
		sort.SliceStable(entries, func(i, j int) bool {
			return strings.ToLower(entries[i].RelPath) < strings.ToLower(entries[j].RelPath)
		})
	}
}

// Options is the configuration the assembler consumes.
type Options struct {
	Root           string
	Window         int
	IncludePrivate bool
	Redact         bool
	Mode           Mode
	Now            func() time.Time // defaults to time.Now
}

// Stats accumulates per-run counters.
type Stats struct {
	Files          int // sections emitted
	SkippedPrivate int
	RedactedHits   int
	Binary         int
	ReadErrors     int
}

// Section is one rendered file.
type Section struct {
	RelPath  string
	Anchor   string
	Language string
	Private  bool
	Binary   bool
	Full     bool   // whole content in Text
	Text     string // Full content, redacted
	First    string // head window, redacted
	Last     string // tail window, redacted; empty unless Elided
	Elided   bool
	Hits     int
	ReadErr  error
}

// Document is the assembled prompt.
type Document struct {
	Root           string
	Mode           Mode
	Generated      time.Time
	ID             string
	GoVersion      string
	IncludePrivate bool
	Redact         bool
	Tokens         int // estimated tokens of the body, 0 when unknown
	Sections       []Section
	Stats          Stats
}

// Assembler turns entries into a Document. It holds no state between
// Build calls.
type Assembler struct {
	opts       Options
	classifier *classify.Classifier
	reader     *extract.Reader
	redactor   *redact.Redactor
	logger     *zap.Logger
}

// New returns an Assembler. A nil classifier uses the default tables and a
// nil logger discards output.
func New(opts Options, classifier *classify.Classifier, logger *zap.Logger) *Assembler {
	if classifier == nil {
		classifier = classify.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Mode == "" {
		opts.Mode = ModeExport
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Assembler{
		opts:       opts,
		classifier: classifier,
		reader:     extract.New(opts.Window),
		redactor:   redact.New(opts.Redact),
		logger:     logger,
	}
}

// Build processes entries in the given order, one at a time.
func (a *Assembler) Build(entries []classify.Entry) *Document {
	doc := &Document{
		Root:           a.opts.Root,
		Mode:           a.opts.Mode,
		Generated:      a.opts.Now(),
		ID:             uuid.NewString(),
		GoVersion:      runtime.Version(),
		IncludePrivate: a.opts.IncludePrivate,
		Redact:         a.redactor.Enabled(),
	}

	for _, e := range entries {
		// decided before any read so skipped files are never opened
		if !a.opts.IncludePrivate && a.classifier.IsPrivate(e) {
			doc.Stats.SkippedPrivate++
			a.logger.Debug("Skipping private file", zap.Int("skipped", doc.Stats.SkippedPrivate))
			continue
		}

		cls := a.classifier.Classify(e)
		sec := a.section(e, cls)
		a.logger.Debug("Processed file",
			zap.String("path", e.RelPath),
			zap.Stringer("kind", cls.Kind()),
			zap.Bool("full", sec.Full),
			zap.Int("redactions", sec.Hits))

		if sec.Binary {
			doc.Stats.Binary++
		}
		if sec.ReadErr != nil {
			doc.Stats.ReadErrors++
			a.logger.Warn("Could not read file", zap.String("path", e.RelPath), zap.Error(sec.ReadErr))
		}
		doc.Stats.RedactedHits += sec.Hits
		doc.Sections = append(doc.Sections, sec)
	}
	doc.Stats.Files = len(doc.Sections)
	return doc
}

func (a *Assembler) section(e classify.Entry, cls classify.Classification) Section {
	sec := Section{
		RelPath:  e.RelPath,
		Anchor:   Anchor(e.RelPath),
		Language: cls.Language,
		Private:  cls.Private,
		Binary:   cls.Binary,
	}
	switch {
	case cls.Binary:
	case cls.Code && !cls.Private:
		c := a.reader.ReadFull(e)
		sec.Full = true
		sec.ReadErr = c.Err
		sec.Text = c.Text
		if c.Err == nil {
			sec.Text, sec.Hits = a.redactor.Redact(c.Text)
		}
	default:
		c := a.reader.ReadWindow(e)
		sec.ReadErr = c.Err
		sec.First = strings.Join(c.First, "")
		if c.Err != nil {
			break
		}
		var hits int
		sec.First, hits = a.redactor.Redact(sec.First)
		sec.Hits += hits
		if !c.SingleWindow() {
			sec.Elided = true
			sec.Last, hits = a.redactor.Redact(strings.Join(c.Last, ""))
			sec.Hits += hits
		}
	}
	return sec
}

var anchorReplacer = strings.NewReplacer("/", "-", `\`, "-", " ", "-")

// Anchor derives the in-document anchor id for a relative path.
func Anchor(relPath string) string {
	return anchorReplacer.Replace(strings.ToLower(relPath))
}
