package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jadenpxrk/promptpack/internal/classify"
)

func TestSelectIndices_KeepsOrder(t *testing.T) {
	entries := []classify.Entry{{RelPath: "a"}, {RelPath: "b"}, {RelPath: "c"}, {RelPath: "d"}}
	got := selectIndices(entries, []int{3, 0, 2})
	assert.Equal(t, []string{"a", "c", "d"}, []string{got[0].RelPath, got[1].RelPath, got[2].RelPath})
	assert.Empty(t, selectIndices(entries, nil))
}

func TestDescribeEntry(t *testing.T) {
	c := classify.Default()

	priv := describeEntry(classify.Entry{Path: "/nonexistent/.env", RelPath: ".env", Size: 12}, c)
	assert.Contains(t, priv, "Private file")

	code := describeEntry(classify.Entry{RelPath: "main.go", Size: 13, Content: []byte("package main\n")}, c)
	assert.Contains(t, code, "Language: go")
	assert.Contains(t, code, "Kind: "+classify.CodeLike.String())
}

func TestPickEntries_Empty(t *testing.T) {
	_, err := pickEntries(nil, classify.Default())
	assert.Error(t, err)
}
