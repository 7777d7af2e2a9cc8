package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWriteOutput_Stdout(t *testing.T) {
	for _, out := range []string{"", "-"} {
		var buf bytes.Buffer
		require.NoError(t, writeOutput("# Doc\r\nbody\r\n", out, &buf))
		assert.Equal(t, "# Doc\nbody\n", buf.String())
	}
}

func TestWriteOutput_FileCreatesParents(t *testing.T) {
	out := filepath.Join(t.TempDir(), "a", "b", "prompt.md")
	var buf bytes.Buffer
	require.NoError(t, writeOutput("line\r\n", out, &buf))
	assert.Zero(t, buf.Len())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "line\n", string(data))
}

func TestWriteOutput_Failure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := writeOutput("doc", filepath.Join(blocker, "prompt.md"), &bytes.Buffer{})
	assert.Error(t, err)
}

func TestCopyToClipboard(t *testing.T) {
	orig := clipboardWrite
	t.Cleanup(func() { clipboardWrite = orig })

	var got string
	clipboardWrite = func(s string) error {
		got = s
		return nil
	}
	assert.True(t, copyToClipboard("doc", nil, zap.NewNop()))
	assert.Equal(t, "doc", got)

	clipboardWrite = func(string) error { return errors.New("no clipboard utility") }
	assert.False(t, copyToClipboard("doc", nil, zap.NewNop()))
}
