package classify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, rel string, data []byte) Entry {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, data, 0o644))
	return NewEntry(dir, p, int64(len(data)))
}

func TestIsBinary(t *testing.T) {
	dir := t.TempDir()
	c := Default()

	tests := []struct {
		name string
		rel  string
		data []byte
		want bool
	}{
		{"png by extension", "logo.png", []byte("not really a png"), true},
		{"pdf by extension", "doc.pdf", []byte("%PDF"), true},
		{"zip by extension", "a.zip", []byte("PK"), true},
		{"font by extension", "f.woff2", []byte("x"), true},
		{"nul byte in head", "blob.dat", []byte("abc\x00def"), true},
		{"plain text", "notes.log", []byte("hello\nworld\n"), false},
		{"empty file", "empty.txt", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := writeFile(t, dir, tt.rel, tt.data)
			assert.Equal(t, tt.want, c.IsBinary(e))
		})
	}
}

func TestIsBinary_NulAfterSniffWindow(t *testing.T) {
	data := make([]byte, SniffSize+10)
	for i := range data {
		data[i] = 'a'
	}
	data[SniffSize+5] = 0
	e := writeFile(t, t.TempDir(), "late.bin.txt", data)
	assert.False(t, Default().IsBinary(e))
}

func TestIsBinary_UnreadableIsBinary(t *testing.T) {
	e := Entry{Path: filepath.Join(t.TempDir(), "gone.txt"), RelPath: "gone.txt"}
	assert.True(t, Default().IsBinary(e))
}

func TestIsBinary_PreloadedContent(t *testing.T) {
	e := Entry{Path: "https://example.com/docs", RelPath: "https://example.com/docs", MIME: "text/markdown", Content: []byte("# Docs\n")}
	assert.False(t, Default().IsBinary(e))
}

func TestIsPrivate(t *testing.T) {
	c := Default()
	tests := []struct {
		rel  string
		want bool
	}{
		{".env", true},
		{"config/.env", true},
		{".env.production", true},
		{".env.local", true},
		{"prod.env", true},
		{".env.example", false},
		{".env.template", false},
		{"certs/server.pem", true},
		{"tls.key", true},
		{"id_rsa", true},
		{"home/.ssh/id_ed25519", true},
		{"id_rsa.pub", false},
		{"credentials.json", true},
		{"gcp-credentials-prod.json", true},
		{"secrets.yaml", true},
		{"secrets.go", false},
		{".aws/credentials", true},
		{"deploy/.aws/credentials", true},
		{"a/b/.kube/config", true},
		{"infra/prod.tfvars", true},
		{"main.go", false},
		{"config/app.json", false},
		{"docs/credentials.md", false},
	}
	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			e := Entry{Path: tt.rel, RelPath: tt.rel}
			assert.Equal(t, tt.want, c.IsPrivate(e))
		})
	}
}

func TestIsPrivate_CaseSensitive(t *testing.T) {
	e := Entry{Path: "ID_RSA", RelPath: "ID_RSA"}
	assert.False(t, Default().IsPrivate(e))
}

func TestIsCode(t *testing.T) {
	dir := t.TempDir()
	c := Default()

	tests := []struct {
		rel  string
		data []byte
		want bool
	}{
		{"main.go", []byte("package main\n"), true},
		{"README.MD", []byte("# hi\n"), true},
		{"Dockerfile", []byte("FROM scratch\n"), true},
		{"dockerfile", []byte("FROM scratch\n"), true},
		{"Makefile", []byte("all:\n"), true},
		{"LICENSE", []byte("MIT\n"), true},
		{".gitignore", []byte("bin/\n"), true},
		{".env.example", []byte("A=1\n"), true},
		{"scripts/deploy", []byte("#!/bin/sh\necho hi\n"), true},
		{"scripts/blob", []byte("\x00\x01\x02"), false},
		{"server.log", []byte("line\n"), false},
		{"data.xml", []byte("<a/>\n"), false},
		{"yarn.lock", []byte("x\n"), false},
	}
	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			e := writeFile(t, dir, tt.rel, tt.data)
			assert.Equal(t, tt.want, c.IsCode(e))
			assert.Equal(t, tt.want, c.Classify(e).Code)
		})
	}
}

func TestLanguage(t *testing.T) {
	c := Default()
	tests := []struct {
		rel  string
		mime string
		want string
	}{
		{"main.go", "", "go"},
		{"App.TSX", "", "tsx"},
		{"Dockerfile", "", "docker"},
		{"Makefile", "", "make"},
		{"LICENSE", "", ""},
		{"notes.unknown", "", ""},
		{"https://example.com/guide", "text/markdown", "markdown"},
	}
	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Language(Entry{RelPath: tt.rel, MIME: tt.mime}))
		})
	}
}

func TestClassify_PrivateAndCode(t *testing.T) {
	e := writeFile(t, t.TempDir(), ".env", []byte("API_KEY=abc\n"))
	got := Default().Classify(e)
	assert.True(t, got.Private)
	assert.True(t, got.Code)
	assert.False(t, got.Binary)
	assert.Equal(t, PrivateSensitive, got.Kind())
}

func TestKind(t *testing.T) {
	assert.Equal(t, Binary, Classification{Binary: true, Code: true}.Kind())
	assert.Equal(t, CodeLike, Classification{Code: true}.Kind())
	assert.Equal(t, PlainText, Classification{}.Kind())
	assert.Equal(t, "private", PrivateSensitive.String())
}

func TestExt(t *testing.T) {
	assert.Equal(t, "", Ext(".bashrc"))
	assert.Equal(t, ".example", Ext(".env.example"))
	assert.Equal(t, ".go", Ext("main.go"))
	assert.Equal(t, "", Ext("Makefile"))
	assert.Equal(t, "", Ext("weird."))
}

func TestNewEntry(t *testing.T) {
	root := filepath.Join("tmp", "proj")
	e := NewEntry(root, filepath.Join(root, "assets", "logo.png"), 42)
	assert.Equal(t, "assets/logo.png", e.RelPath)
	assert.Equal(t, "logo.png", e.Name())
	assert.Equal(t, "image/png", e.MIME)
	assert.EqualValues(t, 42, e.Size)
}

func TestMerge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "languages.yml")
	yml := `
Nim:
  type: programming
  extensions: [".nim", "nims"]
  filenames: ["nim.cfg"]
Go:
  type: programming
  extensions: [".go"]
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	langs, err := LoadLanguageFile(path)
	require.NoError(t, err)

	tables := DefaultTables()
	exts, names := tables.Merge(langs)
	assert.Equal(t, 2, exts)
	assert.Equal(t, 1, names)

	c := New(tables)
	assert.Equal(t, "nim", c.Language(Entry{RelPath: "src/app.nims"}))
	assert.Equal(t, "go", c.Language(Entry{RelPath: "main.go"}))
	assert.True(t, c.inCodeTables(Entry{RelPath: "nim.cfg"}))
}

func TestLoadLanguageFile_Missing(t *testing.T) {
	_, err := LoadLanguageFile(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
