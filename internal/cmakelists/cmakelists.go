// Package cmakelists maintains the block of library registration calls in a
// CMakeLists.txt, e.g.
//
//	traf_lib_include("detection" "Tracker")
//	traf_lib_include("detection" "Zone")
package cmakelists

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"

	"hdrtidy/internal/rewrite"
	"hdrtidy/internal/scan"
	"hdrtidy/pkg/block"
)

// DefaultFunction is the CMake function used to register a dependency.
const DefaultFunction = "traf_lib_include"

// ErrNoBlock is returned when the file has no registration line for the family.
var ErrNoBlock = errors.New("no registration block")

// Registrar renders and locates registration calls of one CMake function.
type Registrar struct {
	Function string
}

// Line renders the registration of lib in family.
func (r Registrar) Line(family, lib string) string {
	return fmt.Sprintf(`%s("%s" "%s")`, r.function(), family, lib)
}

// Pattern matches the registration lines of family.
func (r Registrar) Pattern(family string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(r.function()) + `\("` + regexp.QuoteMeta(family) + `" "(.*)"\)`)
}

// Update is the outcome of registering libraries in one file.
type Update struct {
	Block   block.Run
	Content []byte
	Changed bool
}

// Register merges a registration line for each of libs into the largest
// block of family registrations in content. The merged block is
// deduplicated and sorted. content is not modified.
func (r Registrar) Register(content []byte, family string, libs []string) (*Update, error) {
	lines, err := scan.Lines(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	matches := scan.MatchLines(lines, r.Pattern(family))
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w for %q", ErrNoBlock, family)
	}
	_, largest, err := block.Locate(matches)
	if err != nil {
		return nil, err
	}

	extra := make([]string, 0, len(libs))
	for _, lib := range libs {
		extra = append(extra, r.Line(family, lib))
	}
	out, err := rewrite.MergeBlock(content, lines, largest, extra)
	if err != nil {
		return nil, err
	}
	return &Update{
		Block:   largest,
		Content: out,
		Changed: !bytes.Equal(out, content),
	}, nil
}

func (r Registrar) function() string {
	if r.Function == "" {
		return DefaultFunction
	}
	return r.Function
}
