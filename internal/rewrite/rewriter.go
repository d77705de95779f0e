// Package rewrite splices blocks of whole lines back into file content.
package rewrite

// LineRewriter lets you copy/cut/paste at the granularity of whole lines.
type LineRewriter interface {
	// CopyLinesUntil writes original lines [0..lineIndex-1], positioning the scanner at lineIndex.
	CopyLinesUntil(lineIndex int) error

	// ReplaceLines replaces all original lines from startLine through endLine (inclusive)
	// with newLines (each element is one line, without a trailing '\n').
	// The scanner is left at endLine+1.
	ReplaceLines(startLine, endLine int, newLines []string) error

	// CopyRemainingLines writes all leftover original lines (from current scanner position to EOF).
	CopyRemainingLines() error

	// Bytes returns the fully rewritten buffer.
	Bytes() []byte
}
