package rewrite_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hdrtidy/internal/rewrite"
	"hdrtidy/pkg/block"
)

func TestScannerRewriter(t *testing.T) {
	content := "zero\none\ntwo\nthree\nfour"
	rw := rewrite.NewScannerRewriter(strings.NewReader(content))

	require.NoError(t, rw.CopyLinesUntil(1))
	require.NoError(t, rw.ReplaceLines(1, 2, []string{"ONE", "TWO", "TWO-B"}))
	require.NoError(t, rw.CopyRemainingLines())

	assert.Equal(t, "zero\nONE\nTWO\nTWO-B\nthree\nfour\n", string(rw.Bytes()))
}

func TestScannerRewriterReplacePastEnd(t *testing.T) {
	rw := rewrite.NewScannerRewriter(strings.NewReader("a\nb\n"))
	err := rw.ReplaceLines(1, 4, []string{"x"})
	require.Error(t, err)
}

func TestScannerRewriterReplaceBehindCursor(t *testing.T) {
	rw := rewrite.NewScannerRewriter(strings.NewReader("a\nb\nc\n"))
	require.NoError(t, rw.CopyLinesUntil(2))
	require.Error(t, rw.ReplaceLines(0, 1, nil))
}

func TestLineIndexOfByte(t *testing.T) {
	content := []byte("ab\ncd\n\nef")
	offsets := rewrite.BuildLineOffsets(content)
	assert.Equal(t, []int{0, 3, 6, 7}, offsets)

	tests := []struct {
		offset int
		want   int
	}{
		{offset: 0, want: 0},
		{offset: 2, want: 0},
		{offset: 3, want: 1},
		{offset: 6, want: 2},
		{offset: 8, want: 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rewrite.LineIndexOfByte(offsets, tt.offset), "offset %d", tt.offset)
	}
}

func TestSortRuns(t *testing.T) {
	lines := []string{
		"header",
		"#include \"b.h\"",
		"#include \"a.h\"",
		"#include \"b.h\"",
		"",
		"#include \"x.h\"",
		"#include \"z.h\"",
		"footer",
	}
	content := []byte(strings.Join(lines, "\n") + "\n")
	table := block.Table{{Start: 1, End: 3}, {Start: 5, End: 6}}

	got, err := rewrite.SortRuns(content, lines, table)
	require.NoError(t, err)

	want := strings.Join([]string{
		"header",
		"#include \"b.h\"",
		"#include \"a.h\"",
		"",
		"#include \"z.h\"",
		"#include \"x.h\"",
		"footer",
	}, "\n") + "\n"
	assert.Equal(t, want, string(got))
}

func TestSortRunsOutOfRange(t *testing.T) {
	lines := []string{"a", "b"}
	_, err := rewrite.SortRuns([]byte("a\nb\n"), lines, block.Table{{Start: 1, End: 2}})
	require.Error(t, err)
}

func TestMergeBlock(t *testing.T) {
	lines := []string{
		"project(Foo)",
		`traf_lib_include("detection" "Tracker")`,
		`traf_lib_include("detection" "Camera")`,
		"add_library(Foo)",
	}
	content := []byte(strings.Join(lines, "\n"))
	extra := []string{
		`traf_lib_include("detection" "Zone")`,
		`traf_lib_include("detection" "Camera")`,
	}

	got, err := rewrite.MergeBlock(content, lines, block.Run{Start: 1, End: 2}, extra)
	require.NoError(t, err)

	want := strings.Join([]string{
		"project(Foo)",
		`traf_lib_include("detection" "Camera")`,
		`traf_lib_include("detection" "Tracker")`,
		`traf_lib_include("detection" "Zone")`,
		"add_library(Foo)",
	}, "\n") + "\n"
	assert.Equal(t, want, string(got))
}

func TestMergeBlockOutOfRange(t *testing.T) {
	_, err := rewrite.MergeBlock([]byte("a\n"), []string{"a"}, block.Run{Start: 0, End: 3}, nil)
	require.Error(t, err)
}
