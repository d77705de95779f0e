package report

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLibReport_Duration(t *testing.T) {
	now := time.Now()
	later := now.Add(3 * time.Second)

	tests := []struct {
		name     string
		started  time.Time
		finished time.Time
		want     time.Duration
	}{
		{name: "not started", want: 0},
		{name: "not finished", started: now, want: 0},
		{name: "finished", started: now, finished: later, want: 3 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lr := &LibReport{Started: tt.started, Finished: tt.finished}
			if got := lr.Duration(); got != tt.want {
				t.Errorf("Duration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLibReport_Counts(t *testing.T) {
	lr := &LibReport{
		Deps: map[string][]string{
			"xstream":   {"Stream"},
			"detection": {"Camera", "Zone"},
		},
		Files: []FileReport{
			{Path: "a.cpp", Lines: []int{1, 2}},
			{Path: "a.h", Lines: []int{7}},
		},
	}
	if got := lr.Rewrites(); got != 3 {
		t.Errorf("Rewrites() = %d, want 3", got)
	}
	if got := lr.DepCount(); got != 3 {
		t.Errorf("DepCount() = %d, want 3", got)
	}
	if got := lr.Families(); !reflect.DeepEqual(got, []string{"detection", "xstream"}) {
		t.Errorf("Families() = %v", got)
	}
}

func TestReport_Lib(t *testing.T) {
	r := &Report{Libs: []LibReport{{Lib: "A"}, {Lib: "B"}}}
	lr, ok := r.Lib("B")
	if !ok || lr.Lib != "B" {
		t.Fatalf("Lib(B) = %v, %v", lr, ok)
	}
	if _, ok := r.Lib("C"); ok {
		t.Errorf("Lib(C) should not be found")
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	store := NewFileStore(path)

	empty, err := store.Load()
	if err != nil {
		t.Fatalf("Load() on missing file: %v", err)
	}
	if len(empty.Libs) != 0 {
		t.Errorf("expected empty report, got %+v", empty)
	}

	started := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	want := &Report{
		Root:      "/src",
		DryRun:    true,
		CreatedAt: started,
		Libs: []LibReport{{
			Lib:        "Tracker",
			Family:     "detection",
			Deps:       map[string][]string{"detection": {"Zone"}},
			Unknown:    []string{"boost"},
			Files:      []FileReport{{Path: "Tracker.cpp", Lines: []int{3}}},
			Registered: map[string][]string{"detection": {"Zone"}},
			Started:    started,
			Finished:   started.Add(time.Second),
		}},
	}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestMemoryStore_Copies(t *testing.T) {
	store := NewMemoryStore()
	r := &Report{Libs: []LibReport{{Lib: "A"}}}
	if err := store.Save(r); err != nil {
		t.Fatal(err)
	}
	r.Libs[0].Lib = "mutated"

	got, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if got.Libs[0].Lib != "A" {
		t.Errorf("stored report was mutated: %+v", got)
	}
}
