package core

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"time"

	"hdrtidy/internal/preview"
	"hdrtidy/internal/report"
	"hdrtidy/internal/rewrite"
	"hdrtidy/internal/scan"
	"hdrtidy/pkg/block"
)

// LocateBlocks returns the runs of consecutive lines of path that match re,
// and the largest of them. A file without any matching line yields an error
// wrapping block.ErrInvalidArgument.
func LocateBlocks(path string, re *regexp.Regexp) (block.Table, block.Run, error) {
	_, matches, err := scan.File(path, re)
	if err != nil {
		return nil, block.Run{}, err
	}
	table, largest, err := block.Locate(matches)
	if err != nil {
		return nil, block.Run{}, fmt.Errorf("%s: %w", path, err)
	}
	return table, largest, nil
}

// SortBlocks deduplicates and sorts, in descending order, every run of
// consecutive lines of path matching re. The file is rewritten unless dryRun
// is set. The returned change is nil when the file is already sorted.
func SortBlocks(path string, re *regexp.Regexp, dryRun bool) (*preview.Change, block.Table, error) {
	old, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	lines, err := scan.Lines(bytes.NewReader(old))
	if err != nil {
		return nil, nil, fmt.Errorf("error reading file %s: %w", path, err)
	}
	table, _, err := block.Locate(scan.MatchLines(lines, re))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	updated, err := rewrite.SortRuns(old, lines, table)
	if err != nil {
		return nil, nil, fmt.Errorf("sorting %s: %w", path, err)
	}
	if bytes.Equal(updated, old) {
		return nil, table, nil
	}
	if !dryRun {
		if err := writeFile(path, updated); err != nil {
			return nil, nil, err
		}
	}
	return &preview.Change{Path: path, Old: old, New: updated}, table, nil
}

// NewReport assembles the report of a run from its results.
func NewReport(root string, dryRun bool, createdAt time.Time, results []*Result) *report.Report {
	r := &report.Report{Root: root, DryRun: dryRun, CreatedAt: createdAt}
	for _, res := range results {
		r.Libs = append(r.Libs, res.Report)
	}
	return r
}

// Changes flattens the changes of all results, in order.
func Changes(results []*Result) []preview.Change {
	var out []preview.Change
	for _, res := range results {
		out = append(out, res.Changes...)
	}
	return out
}
