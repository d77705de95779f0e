// Package block finds contiguous runs of matching line indexes.
//
// A caller scans a file top to bottom, collects the 0-based indexes of lines
// matching some pattern, and hands them to Locate. The result is every maximal
// run of consecutive indexes plus the largest one, which is usually the block
// of #include or registration lines the caller wants to rewrite.
package block

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidArgument is returned when the match sequence is empty, contains a
// negative index or is not strictly increasing.
var ErrInvalidArgument = errors.New("invalid argument")

// Run is a maximal range of consecutive matching line indexes, inclusive on
// both ends.
type Run struct {
	Start int
	End   int
}

// Len returns the number of lines covered by the run.
func (r Run) Len() int {
	return r.End - r.Start + 1
}

func (r Run) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// Table maps each run's start index to its end index. Runs are kept in the
// order they were found, which is also ascending Start order.
type Table []Run

// End returns the end index of the run starting at start.
func (t Table) End(start int) (int, bool) {
	i := sort.Search(len(t), func(i int) bool { return t[i].Start >= start })
	if i < len(t) && t[i].Start == start {
		return t[i].End, true
	}
	return 0, false
}

// Starts returns the run starts in table order.
func (t Table) Starts() []int {
	out := make([]int, len(t))
	for i, r := range t {
		out[i] = r.Start
	}
	return out
}

// Largest returns the longest run. Ties go to the run with the earliest
// start. The second result is false for an empty table.
func (t Table) Largest() (Run, bool) {
	if len(t) == 0 {
		return Run{}, false
	}
	best := t[0]
	for _, r := range t[1:] {
		if r.Len() > best.Len() {
			best = r
		}
	}
	return best, true
}

// Locate partitions matches into runs of consecutive indexes and returns
// them together with the largest run.
func Locate(matches []int) (Table, Run, error) {
	if err := validate(matches); err != nil {
		return nil, Run{}, err
	}

	var table Table
	begin, end := 0, 0
	for i := 1; i < len(matches); i++ {
		if matches[i] == matches[end]+1 {
			end = i
			continue
		}
		table = append(table, Run{Start: matches[begin], End: matches[end]})
		begin, end = i, i
	}
	// The last open run is never closed inside the loop.
	table = append(table, Run{Start: matches[begin], End: matches[end]})

	largest, _ := table.Largest()
	return table, largest, nil
}

func validate(matches []int) error {
	if len(matches) == 0 {
		return fmt.Errorf("%w: empty match sequence", ErrInvalidArgument)
	}
	if matches[0] < 0 {
		return fmt.Errorf("%w: negative line index %d", ErrInvalidArgument, matches[0])
	}
	for i := 1; i < len(matches); i++ {
		if matches[i] <= matches[i-1] {
			return fmt.Errorf("%w: line index %d at position %d does not follow %d",
				ErrInvalidArgument, matches[i], i, matches[i-1])
		}
	}
	return nil
}
