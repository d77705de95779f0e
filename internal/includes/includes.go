// Package includes flattens library-qualified #include directives.
//
// `#include "Tracker/Tracker.h"` becomes `#include "Tracker.h"` when Tracker is
// a known library; the library is then recorded as a dependency so the caller
// can register it with the build.
package includes

import (
	"regexp"
	"sort"
	"strings"

	"hdrtidy/internal/libtree"
	"hdrtidy/internal/rewrite"
)

// Pattern matches a quoted include with a directory part. The library is
// everything up to the last slash.
var Pattern = regexp.MustCompile(`#include "(.*)/(.*)"\n`)

// Rewrite is one flattened include.
type Rewrite struct {
	Line   int    `json:"line"` // 0-based
	Lib    string `json:"lib"`
	Header string `json:"header"`
}

// Result is the outcome of cleaning one file.
type Result struct {
	Text     string
	Matches  int
	Rewrites []Rewrite
	// Deps maps a family name to the libraries of that family the file includes.
	Deps    map[string]map[string]struct{}
	Unknown map[string]struct{}
}

// Changed reports whether the rewritten text differs from the input.
func (r *Result) Changed() bool {
	return len(r.Rewrites) > 0
}

// Cleaner rewrites the includes of the files of one library.
type Cleaner struct {
	catalog *libtree.Catalog
	self    libtree.Lib
}

// NewCleaner returns a Cleaner for files belonging to self.
func NewCleaner(catalog *libtree.Catalog, self libtree.Lib) *Cleaner {
	return &Cleaner{catalog: catalog, self: self}
}

// Clean rewrites every include of a known library in text and classifies the
// included libraries. Includes of unknown libraries are left as they are.
// CRLF line endings are read as LF, so a file with any rewrite comes back
// with LF endings throughout; a file without one is returned untouched.
func (c *Cleaner) Clean(raw string) *Result {
	res := &Result{
		Text:    raw,
		Deps:    make(map[string]map[string]struct{}),
		Unknown: make(map[string]struct{}),
	}
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	matches := Pattern.FindAllStringSubmatchIndex(text, -1)
	res.Matches = len(matches)
	if len(matches) == 0 {
		return res
	}

	offsets := rewrite.BuildLineOffsets([]byte(text))
	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, m := range matches {
		lib := text[m[2]:m[3]]
		header := text[m[4]:m[5]]
		c.classify(res, lib)

		if !c.catalog.Known(lib) {
			continue
		}
		b.WriteString(text[last:m[0]])
		b.WriteString(`#include "` + header + "\"\n")
		last = m[1]
		res.Rewrites = append(res.Rewrites, Rewrite{
			Line:   rewrite.LineIndexOfByte(offsets, m[0]),
			Lib:    lib,
			Header: header,
		})
	}
	if len(res.Rewrites) == 0 {
		return res
	}
	b.WriteString(text[last:])
	res.Text = b.String()
	return res
}

func (c *Cleaner) classify(res *Result, lib string) {
	fam, ok := c.catalog.Owner(lib)
	if !ok {
		res.Unknown[lib] = struct{}{}
		return
	}
	if fam.Name == c.self.Family && lib == c.self.Name {
		return
	}
	set, ok := res.Deps[fam.Name]
	if !ok {
		set = make(map[string]struct{})
		res.Deps[fam.Name] = set
	}
	set[lib] = struct{}{}
}

// Sorted returns the members of set in ascending order.
func Sorted(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
