package scan

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
)

// maxLineSize bounds a single line; generated sources can exceed bufio's 64K default.
const maxLineSize = 4 * 1024 * 1024

// Lines reads r line by line and returns each line without its terminator.
// A trailing "\r" is dropped as well, so CRLF files come back as plain lines.
func Lines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// MatchLines returns the 0-based indexes of the lines containing a match of re,
// in ascending order.
func MatchLines(lines []string, re *regexp.Regexp) []int {
	var matches []int
	for i, line := range lines {
		if re.MatchString(line) {
			matches = append(matches, i)
		}
	}
	return matches
}

// File reads the file at path and returns its lines together with the
// indexes of the lines matching re.
func File(path string, re *regexp.Regexp) ([]string, []int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer f.Close()

	lines, err := Lines(f)
	if err != nil {
		return nil, nil, fmt.Errorf("error reading file %s: %w", path, err)
	}
	return lines, MatchLines(lines, re), nil
}
