// Package report records what a cleaning run changed, so it can be reviewed
// after the fact.
package report

import (
	"sort"
	"time"
)

// Report is the outcome of one run over a set of libraries.
// It is serialized as JSON so it can be reviewed after the run.
type Report struct {
	Root      string      `json:"root"`
	DryRun    bool        `json:"dry_run"`
	CreatedAt time.Time   `json:"created_at"`
	Libs      []LibReport `json:"libs"`
}

// LibReport describes the changes made to a single library.
type LibReport struct {
	Lib    string `json:"lib"`
	Family string `json:"family"`

	// Deps maps a family name to the libraries of that family this one includes.
	Deps    map[string][]string `json:"deps,omitempty"`
	Unknown []string            `json:"unknown,omitempty"`
	Files   []FileReport        `json:"files,omitempty"`

	// Registered lists, per family, the libraries merged into the CMakeLists
	// block; Unregistered those that had no block to go into.
	Registered   map[string][]string `json:"registered,omitempty"`
	Unregistered map[string][]string `json:"unregistered,omitempty"`

	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished"`
}

// FileReport lists the flattened includes of one file.
type FileReport struct {
	Path  string `json:"path"`
	Lines []int  `json:"lines"` // 1-based
}

// Duration returns how long the library took to process.
func (l *LibReport) Duration() time.Duration {
	if l.Started.IsZero() || l.Finished.IsZero() {
		return 0
	}
	return l.Finished.Sub(l.Started)
}

// Rewrites returns the number of flattened includes across all files.
func (l *LibReport) Rewrites() int {
	n := 0
	for _, f := range l.Files {
		n += len(f.Lines)
	}
	return n
}

// DepCount returns the number of dependencies across all families.
func (l *LibReport) DepCount() int {
	n := 0
	for _, libs := range l.Deps {
		n += len(libs)
	}
	return n
}

// Families returns the family names in Deps, sorted.
func (l *LibReport) Families() []string {
	out := make([]string, 0, len(l.Deps))
	for fam := range l.Deps {
		out = append(out, fam)
	}
	sort.Strings(out)
	return out
}

// Lib returns the report of the named library.
func (r *Report) Lib(name string) (*LibReport, bool) {
	for i := range r.Libs {
		if r.Libs[i].Lib == name {
			return &r.Libs[i], true
		}
	}
	return nil, false
}
