package rewrite

import (
	"bytes"
	"fmt"
	"slices"

	"hdrtidy/pkg/block"
)

// SortRuns rewrites content so that the lines of every run in table are
// deduplicated and sorted in descending order. lines must be the lines of
// content as returned by scan.Lines.
//
// Runs are applied against the original line numbers; a run that shrinks
// does not shift the runs after it.
func SortRuns(content []byte, lines []string, table block.Table) ([]byte, error) {
	rw := NewScannerRewriter(bytes.NewReader(content))
	for _, r := range table {
		if r.End >= len(lines) {
			return nil, fmt.Errorf("run %s is outside of %d lines", r, len(lines))
		}
		sorted := uniqueSorted(lines[r.Start:r.End+1], nil)
		slices.Reverse(sorted)
		if err := rw.ReplaceLines(r.Start, r.End, sorted); err != nil {
			return nil, err
		}
	}
	if err := rw.CopyRemainingLines(); err != nil {
		return nil, err
	}
	return rw.Bytes(), nil
}

// MergeBlock replaces the lines of run with the union of those lines and
// extra, deduplicated and sorted in ascending order.
func MergeBlock(content []byte, lines []string, run block.Run, extra []string) ([]byte, error) {
	if run.Start < 0 || run.End >= len(lines) {
		return nil, fmt.Errorf("run %s is outside of %d lines", run, len(lines))
	}
	merged := uniqueSorted(lines[run.Start:run.End+1], extra)

	rw := NewScannerRewriter(bytes.NewReader(content))
	if err := rw.ReplaceLines(run.Start, run.End, merged); err != nil {
		return nil, err
	}
	if err := rw.CopyRemainingLines(); err != nil {
		return nil, err
	}
	return rw.Bytes(), nil
}

func uniqueSorted(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	slices.Sort(out)
	return slices.Compact(out)
}
