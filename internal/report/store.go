package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

// Store abstracts report persistence for testability.
type Store interface {
	Load() (*Report, error)
	Save(*Report) error
}

// FileStore implements Store using a JSON file.
type FileStore struct {
	File string
}

func NewFileStore(file string) *FileStore {
	return &FileStore{File: file}
}

// Load reads the report. A missing or empty file yields an empty report.
func (fs *FileStore) Load() (*Report, error) {
	f, err := os.Open(fs.File)
	if errors.Is(err, os.ErrNotExist) {
		return &Report{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r Report
	if err := json.NewDecoder(f).Decode(&r); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding report %s: %w", fs.File, err)
	}
	return &r, nil
}

func (fs *FileStore) Save(r *Report) error {
	f, err := os.Create(fs.File)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		f.Close()
		return fmt.Errorf("encoding report %s: %w", fs.File, err)
	}
	return f.Close()
}

// MemoryStore implements Store for testing (no disk I/O).
type MemoryStore struct {
	mu     sync.Mutex
	report *Report
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (ms *MemoryStore) Load() (*Report, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.report == nil {
		return &Report{}, nil
	}
	// Return a copy to avoid mutation
	cpy := *ms.report
	cpy.Libs = append([]LibReport(nil), ms.report.Libs...)
	return &cpy, nil
}

func (ms *MemoryStore) Save(r *Report) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	cpy := *r
	cpy.Libs = append([]LibReport(nil), r.Libs...)
	ms.report = &cpy
	return nil
}
