package preview_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hdrtidy/internal/preview"
)

func TestUnified(t *testing.T) {
	c := preview.Change{
		Path: "src/Tracker.cpp",
		Old:  []byte("#include \"Zone/Zone.h\"\nint x;\n"),
		New:  []byte("#include \"Zone.h\"\nint x;\n"),
	}

	patch, err := preview.Unified(c, preview.Options{})
	require.NoError(t, err)
	assert.Contains(t, patch, "--- a/src/Tracker.cpp\n")
	assert.Contains(t, patch, "+++ b/src/Tracker.cpp\n")
	assert.Contains(t, patch, "-#include \"Zone/Zone.h\"\n")
	assert.Contains(t, patch, "+#include \"Zone.h\"\n")
	assert.Contains(t, patch, " int x;\n")
}

func TestUnifiedNoChange(t *testing.T) {
	patch, err := preview.Unified(preview.Change{Path: "a", Old: []byte("x\n"), New: []byte("x\n")}, preview.Options{})
	require.NoError(t, err)
	assert.Empty(t, patch)
}

func TestWrite(t *testing.T) {
	changes := []preview.Change{
		{Path: "same.h", Old: []byte("a\n"), New: []byte("a\n")},
		{Path: "one.h", Old: []byte("a\n"), New: []byte("b\n")},
		{Path: "two.h", Old: []byte("c\n"), New: []byte("d\n")},
	}

	var buf bytes.Buffer
	require.NoError(t, preview.Write(&buf, changes, preview.Options{}))
	out := buf.String()

	assert.NotContains(t, out, "same.h")
	assert.Less(t, strings.Index(out, "one.h"), strings.Index(out, "two.h"))
	assert.Contains(t, out, "-a\n+b\n")
	assert.NotContains(t, out, "\x1b[")
}

func TestWriteColor(t *testing.T) {
	changes := []preview.Change{{Path: "one.h", Old: []byte("a\n"), New: []byte("b\n")}}

	var buf bytes.Buffer
	require.NoError(t, preview.Write(&buf, changes, preview.Options{Color: true}))
	assert.Contains(t, buf.String(), "\x1b[")
}
