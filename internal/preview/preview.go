// Package preview renders pending file changes as unified diffs.
// It uses github.com/pmezard/go-difflib/difflib for the patch and
// github.com/fatih/color to highlight it on a terminal.
package preview

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	difflib "github.com/pmezard/go-difflib/difflib"
)

// Change is the old and new content of one file.
type Change struct {
	Path string
	Old  []byte
	New  []byte
}

// Options controls patch rendering.
type Options struct {
	// Context is the number of context lines around each hunk. 0 means 3.
	Context int
	// Color highlights added and removed lines.
	Color bool
}

// Unified returns the unified diff of a change, or "" when nothing changed.
func Unified(c Change, opt Options) (string, error) {
	ctx := opt.Context
	if ctx <= 0 {
		ctx = 3
	}
	u := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(c.Old)),
		B:        difflib.SplitLines(string(c.New)),
		FromFile: "a/" + strings.TrimPrefix(c.Path, "/"),
		ToFile:   "b/" + strings.TrimPrefix(c.Path, "/"),
		Context:  ctx,
	}
	return difflib.GetUnifiedDiffString(u)
}

// Write renders every change to w, in order.
func Write(w io.Writer, changes []Change, opt Options) error {
	p := newPalette(opt.Color)
	for _, c := range changes {
		patch, err := Unified(c, opt)
		if err != nil {
			return fmt.Errorf("diffing %s: %w", c.Path, err)
		}
		if patch == "" {
			continue
		}
		for _, line := range strings.SplitAfter(patch, "\n") {
			if line == "" {
				continue
			}
			if _, err := io.WriteString(w, p.paint(line)); err != nil {
				return err
			}
		}
	}
	return nil
}

type palette struct {
	header, hunk, add, del *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		header: color.New(color.Bold),
		hunk:   color.New(color.FgCyan),
		add:    color.New(color.FgGreen),
		del:    color.New(color.FgRed),
	}
	for _, c := range []*color.Color{p.header, p.hunk, p.add, p.del} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) paint(line string) string {
	body := strings.TrimSuffix(line, "\n")
	nl := line[len(body):]
	switch {
	case strings.HasPrefix(body, "+++"), strings.HasPrefix(body, "---"):
		return p.header.Sprint(body) + nl
	case strings.HasPrefix(body, "@@"):
		return p.hunk.Sprint(body) + nl
	case strings.HasPrefix(body, "+"):
		return p.add.Sprint(body) + nl
	case strings.HasPrefix(body, "-"):
		return p.del.Sprint(body) + nl
	default:
		return line
	}
}
