// Package libtree describes a source tree organised as library families,
// e.g. detection/libs/<Lib> with public headers under detection/inc/<Lib>.
package libtree

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
)

// CMakeListsName is the build file each library carries in its source dir.
const CMakeListsName = "CMakeLists.txt"

// Family is one group of libraries sharing a libs and an inc directory.
type Family struct {
	Name    string
	LibsDir string // absolute
	IncDir  string // absolute
	Libs    []string
}

// Has reports whether lib is a library of the family.
func (f Family) Has(lib string) bool {
	_, found := slices.BinarySearch(f.Libs, lib)
	return found
}

// Catalog holds every family, in lookup order.
type Catalog struct {
	Families []Family
}

// Layout names a family and its directories relative to the tree root.
type Layout struct {
	Name string
	Libs string
	Inc  string
}

// Load lists the libraries of each family. A library is any immediate
// subdirectory of the family's libs directory.
func Load(root string, layouts []Layout) (*Catalog, error) {
	cat := &Catalog{}
	for _, l := range layouts {
		fam := Family{
			Name:    l.Name,
			LibsDir: resolve(root, l.Libs),
			IncDir:  resolve(root, l.Inc),
		}
		libs, err := subdirectories(fam.LibsDir)
		if err != nil {
			return nil, fmt.Errorf("listing %s libraries: %w", l.Name, err)
		}
		fam.Libs = libs
		cat.Families = append(cat.Families, fam)
	}
	return cat, nil
}

// Family returns the family with the given name.
func (c *Catalog) Family(name string) (Family, bool) {
	for _, f := range c.Families {
		if f.Name == name {
			return f, true
		}
	}
	return Family{}, false
}

// Owner returns the first family that contains lib.
func (c *Catalog) Owner(lib string) (Family, bool) {
	for _, f := range c.Families {
		if f.Has(lib) {
			return f, true
		}
	}
	return Family{}, false
}

// Known reports whether lib belongs to any family.
func (c *Catalog) Known(lib string) bool {
	_, ok := c.Owner(lib)
	return ok
}

// Lib returns the library named name in family, or an error when the family
// does not list it.
func (c *Catalog) Lib(family, name string) (Lib, error) {
	f, ok := c.Family(family)
	if !ok {
		return Lib{}, fmt.Errorf("unknown family %q", family)
	}
	if !f.Has(name) {
		return Lib{}, fmt.Errorf("library %q not found in %s", name, f.LibsDir)
	}
	return Lib{Name: name, Family: f.Name, SourceDir: filepath.Join(f.LibsDir, name), IncDir: filepath.Join(f.IncDir, name)}, nil
}

// Libs returns every library of family.
func (c *Catalog) Libs(family string) ([]Lib, error) {
	f, ok := c.Family(family)
	if !ok {
		return nil, fmt.Errorf("unknown family %q", family)
	}
	out := make([]Lib, 0, len(f.Libs))
	for _, name := range f.Libs {
		lib, err := c.Lib(family, name)
		if err != nil {
			return nil, err
		}
		out = append(out, lib)
	}
	return out, nil
}

// Lib is a single library and the directories its files live in.
type Lib struct {
	Name      string
	Family    string
	SourceDir string
	IncDir    string
}

// CMakeLists returns the path of the library's build file.
func (l Lib) CMakeLists() string {
	return filepath.Join(l.SourceDir, CMakeListsName)
}

// Sources returns the headers and translation units of the library: *.h and
// *.cpp anywhere under its source dir and *.h under its public include dir.
// Paths are sorted. A missing include dir is not an error.
func (l Lib) Sources() ([]string, error) {
	src, err := collect(l.SourceDir, ".h", ".cpp")
	if err != nil {
		return nil, err
	}
	inc, err := collect(l.IncDir, ".h")
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	files := append(src, inc...)
	sort.Strings(files)
	return slices.Compact(files), nil
}

func collect(dir string, exts ...string) ([]string, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, err
	}
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if slices.Contains(exts, filepath.Ext(path)) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	return files, nil
}

func subdirectories(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func resolve(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}
