package rewrite

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sort"
)

const maxLineSize = 4 * 1024 * 1024

// ScannerRewriter implements LineRewriter using bufio.Scanner.
// Every line it writes ends with '\n', including the last one.
type ScannerRewriter struct {
	scanner  *bufio.Scanner
	output   bytes.Buffer
	lineNo   int  // how many lines have been consumed (scanned) so far
	finished bool // true once we've reached EOF
}

// NewScannerRewriter constructs a ScannerRewriter over the original content.
func NewScannerRewriter(r io.Reader) *ScannerRewriter {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &ScannerRewriter{scanner: s}
}

// CopyLinesUntil writes original lines [0..lineIndex-1] to output and positions the scanner at lineIndex.
func (rw *ScannerRewriter) CopyLinesUntil(lineIndex int) error {
	if rw.finished {
		return nil
	}
	for rw.lineNo < lineIndex {
		if !rw.scanner.Scan() {
			rw.finished = true
			return rw.scanner.Err()
		}
		rw.output.Write(rw.scanner.Bytes())
		rw.output.WriteByte('\n')
		rw.lineNo++
	}
	return rw.scanner.Err()
}

// ReplaceLines replaces all original lines from startLine..endLine (inclusive) with newLines.
func (rw *ScannerRewriter) ReplaceLines(startLine, endLine int, newLines []string) error {
	if startLine < rw.lineNo || endLine < startLine {
		return fmt.Errorf("cannot replace lines %d-%d: scanner is at line %d", startLine, endLine, rw.lineNo)
	}
	if err := rw.CopyLinesUntil(startLine); err != nil {
		return err
	}
	// Consume the replaced range without writing it.
	for rw.lineNo <= endLine {
		if !rw.scanner.Scan() {
			rw.finished = true
			if err := rw.scanner.Err(); err != nil {
				return err
			}
			return fmt.Errorf("cannot replace lines %d-%d: content ends at line %d", startLine, endLine, rw.lineNo)
		}
		rw.lineNo++
	}
	for _, nl := range newLines {
		rw.output.WriteString(nl)
		rw.output.WriteByte('\n')
	}
	return nil
}

// CopyRemainingLines writes all lines from the current scanner position through EOF.
func (rw *ScannerRewriter) CopyRemainingLines() error {
	if rw.finished {
		return nil
	}
	for rw.scanner.Scan() {
		rw.output.Write(rw.scanner.Bytes())
		rw.output.WriteByte('\n')
		rw.lineNo++
	}
	rw.finished = true
	return rw.scanner.Err()
}

// Bytes returns the fully rewritten buffer.
func (rw *ScannerRewriter) Bytes() []byte {
	return rw.output.Bytes()
}

// BuildLineOffsets returns a slice of byte offsets where each new line begins.
// E.g. if content[0]=='a' and content[5]=='\n', then offsets = [0,6,...].
func BuildLineOffsets(content []byte) []int {
	offsets := []int{0}
	for i, b := range content {
		if b == '\n' && i+1 < len(content) {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

// LineIndexOfByte returns the 0-based line index that contains offset, given
// the line offsets produced by BuildLineOffsets.
func LineIndexOfByte(lineOffsets []int, offset int) int {
	i := sort.Search(len(lineOffsets), func(i int) bool {
		return lineOffsets[i] > offset
	})
	if i == 0 {
		return 0
	}
	return i - 1
}
