package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"hdrtidy/internal/clock"
	"hdrtidy/internal/cmakelists"
	"hdrtidy/internal/includes"
	"hdrtidy/internal/libtree"
	"hdrtidy/internal/preview"
	"hdrtidy/internal/report"
)

// Options controls a cleaning run.
type Options struct {
	// DryRun computes every change without writing any file.
	DryRun bool
	// Jobs bounds how many libraries are cleaned at once.
	Jobs      int
	Registrar cmakelists.Registrar
}

// Result is what cleaning one library produced.
type Result struct {
	Report  report.LibReport
	Changes []preview.Change
}

// Cleaner flattens includes and registers dependencies for the libraries of
// a catalog.
type Cleaner struct {
	catalog *libtree.Catalog
	opts    Options
	log     *zap.Logger
	clock   clock.Clock
}

// NewCleaner returns a Cleaner over catalog.
func NewCleaner(catalog *libtree.Catalog, opts Options, log *zap.Logger, clk clock.Clock) *Cleaner {
	if opts.Jobs < 1 {
		opts.Jobs = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Cleaner{catalog: catalog, opts: opts, log: log, clock: clk}
}

// CleanAll cleans libs concurrently, at most Options.Jobs at a time. Results
// are returned in the order of libs. The first failure cancels the libraries
// that have not started yet.
func (c *Cleaner) CleanAll(ctx context.Context, libs []libtree.Lib) ([]*Result, error) {
	start := c.clock.Now()
	results := make([]*Result, len(libs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Jobs)
	for i, lib := range libs {
		i, lib := i, lib
		g.Go(func() error {
			res, err := c.CleanLib(ctx, lib)
			if err != nil {
				return fmt.Errorf("cleaning %s: %w", lib.Name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	c.log.Info("Cleaned libraries", zap.Int("libs", len(libs)), zap.Duration("took", c.clock.Since(start)))
	return results, nil
}

// CleanLib flattens the includes of every source file of lib and registers
// the libraries they pulled in with lib's CMakeLists.txt.
func (c *Cleaner) CleanLib(ctx context.Context, lib libtree.Lib) (*Result, error) {
	log := c.log.With(zap.String("lib", lib.Name), zap.String("family", lib.Family))
	res := &Result{Report: report.LibReport{
		Lib:     lib.Name,
		Family:  lib.Family,
		Started: c.clock.Now(),
	}}

	files, err := lib.Sources()
	if err != nil {
		return nil, fmt.Errorf("collecting sources: %w", err)
	}
	log.Debug("Collected sources", zap.Int("files", len(files)))

	deps := make(map[string]map[string]struct{})
	unknown := make(map[string]struct{})
	cleaner := includes.NewCleaner(c.catalog, lib)
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		old, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		out := cleaner.Clean(string(old))
		log.Debug("Scanned includes", zap.String("path", path), zap.Int("matches", out.Matches), zap.Int("rewrites", len(out.Rewrites)))

		for fam, set := range out.Deps {
			if deps[fam] == nil {
				deps[fam] = make(map[string]struct{})
			}
			for name := range set {
				deps[fam][name] = struct{}{}
			}
		}
		for name := range out.Unknown {
			unknown[name] = struct{}{}
		}
		if !out.Changed() {
			continue
		}

		fr := report.FileReport{Path: path}
		for _, rw := range out.Rewrites {
			fr.Lines = append(fr.Lines, rw.Line+1)
		}
		res.Report.Files = append(res.Report.Files, fr)
		if err := c.apply(res, path, old, []byte(out.Text)); err != nil {
			return nil, err
		}
	}

	if len(unknown) > 0 {
		res.Report.Unknown = includes.Sorted(unknown)
	}
	if len(deps) > 0 {
		res.Report.Deps = make(map[string][]string, len(deps))
		for fam, set := range deps {
			res.Report.Deps[fam] = includes.Sorted(set)
		}
	}
	if len(res.Report.Unknown) > 0 {
		log.Info("Unknown libraries", zap.Strings("libs", res.Report.Unknown))
	}

	if err := c.register(res, lib, log); err != nil {
		return nil, err
	}

	res.Report.Finished = c.clock.Now()
	log.Info("Cleaned library",
		zap.Int("files", len(res.Report.Files)),
		zap.Int("rewrites", res.Report.Rewrites()),
		zap.Int("deps", res.Report.DepCount()),
		zap.Duration("took", res.Report.Duration()))
	return res, nil
}

// register merges the detected dependencies into lib's CMakeLists.txt, one
// family at a time in catalog order.
func (c *Cleaner) register(res *Result, lib libtree.Lib, log *zap.Logger) error {
	if len(res.Report.Deps) == 0 {
		return nil
	}
	path := lib.CMakeLists()
	old, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn("No CMakeLists.txt, dependencies left unregistered", zap.String("path", path))
		for fam, names := range res.Report.Deps {
			addTo(&res.Report.Unregistered, fam, names)
		}
		return nil
	}
	if err != nil {
		return err
	}

	content := old
	for _, fam := range c.catalog.Families {
		names := res.Report.Deps[fam.Name]
		if len(names) == 0 {
			continue
		}
		up, err := c.opts.Registrar.Register(content, fam.Name, names)
		if errors.Is(err, cmakelists.ErrNoBlock) {
			log.Warn("No registration block, dependencies left unregistered",
				zap.String("path", path),
				zap.String("deps_family", fam.Name),
				zap.Strings("libs", names))
			addTo(&res.Report.Unregistered, fam.Name, names)
			continue
		}
		if err != nil {
			return fmt.Errorf("registering %s dependencies in %s: %w", fam.Name, path, err)
		}
		log.Debug("Located registration block",
			zap.String("deps_family", fam.Name),
			zap.Int("begin", up.Block.Start),
			zap.Int("end", up.Block.End))
		addTo(&res.Report.Registered, fam.Name, names)
		content = up.Content
	}
	if bytes.Equal(content, old) {
		return nil
	}
	return c.apply(res, path, old, content)
}

// apply records a change and, unless this is a dry run, writes it.
func (c *Cleaner) apply(res *Result, path string, old, updated []byte) error {
	res.Changes = append(res.Changes, preview.Change{Path: path, Old: old, New: updated})
	if c.opts.DryRun {
		return nil
	}
	return writeFile(path, updated)
}

func addTo(m *map[string][]string, key string, names []string) {
	if *m == nil {
		*m = make(map[string][]string)
	}
	(*m)[key] = append((*m)[key], names...)
}

// writeFile replaces the content of an existing file, keeping its mode.
func writeFile(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
