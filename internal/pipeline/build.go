// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"juvixdoc/internal/todos"
	"juvixdoc/internal/wikilink"
)

// skipDirs are tree entries a build never descends into.
var skipDirs = map[string]struct{}{
	".git":         {},
	".juvix-build": {},
	".juvixdoc":    {},
	".hooks":       {},
	"node_modules": {},
}

// BuildOptions tune one tree build.
type BuildOptions struct {
	// Force clears the render cache before the build, recompiling every
	// module regardless of content hashes.
	Force bool
	// KeepGoing processes every page even after failures, then reports
	// them all joined.
	KeepGoing bool
	// CheckOnly compiles pages without writing any output.
	CheckOnly bool
}

// Summary aggregates the outcome of a tree build.
type Summary struct {
	// Pages counts Markdown pages processed; Copied counts other files
	// mirrored to the output tree.
	Pages  int
	Copied int
	// Compiled and Cached count module renders across all pages.
	Compiled int
	Cached   int
	// Failed counts pages downgraded to a failure admonition.
	Failed int
	// Todos collects todo admonitions from every page.
	Todos []todos.Todo
}

// Build processes the configured docs tree into the output tree. Pages run
// concurrently, bounded by the configured job count. With KeepGoing, all
// page errors are joined; otherwise the first error cancels the build.
func (p *Pipeline) Build(ctx context.Context, opts BuildOptions) (*Summary, error) {
	if opts.Force {
		if err := p.store.Clear(); err != nil {
			return nil, fmt.Errorf("clear render cache: %w", err)
		}
	}

	if p.cfg.Wikilinks.Enabled {
		idx, err := p.indexLinks()
		if err != nil {
			return nil, err
		}
		p.links = idx
	}

	jobs := p.cfg.Build.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	var (
		mu      sync.Mutex
		summary Summary
		failed  []error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	walkErr := filepath.WalkDir(p.cfg.DocsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if _, skip := skipDirs[d.Name()]; skip {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(p.cfg.DocsDir, path)
		if err != nil {
			return err
		}

		g.Go(func() error {
			perr := p.buildFile(gctx, path, rel, opts, &mu, &summary)
			if perr != nil && opts.KeepGoing {
				mu.Lock()
				failed = append(failed, perr)
				mu.Unlock()
				return nil
			}
			return perr
		})
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if walkErr != nil {
		return nil, fmt.Errorf("walk docs tree: %w", walkErr)
	}
	if len(failed) > 0 {
		return &summary, errors.Join(failed...)
	}
	return &summary, nil
}

// indexLinks walks the docs tree once before the build proper and indexes
// every page's link aliases, so cross-page [[Alias]] references resolve
// regardless of processing order.
func (p *Pipeline) indexLinks() (*wikilink.Index, error) {
	idx := wikilink.NewIndex()
	err := filepath.WalkDir(p.cfg.DocsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if _, skip := skipDirs[d.Name()]; skip {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".md") {
			return nil
		}
		rel, err := filepath.Rel(p.cfg.DocsDir, path)
		if err != nil {
			return err
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", rel, err)
		}
		idx.IndexPage(OutputPath(filepath.ToSlash(rel)), string(raw))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("index wiki links: %w", err)
	}
	return idx, nil
}

// buildFile dispatches one tree entry: Markdown pages go through the
// pipeline, everything else is copied verbatim.
func (p *Pipeline) buildFile(ctx context.Context, path, rel string, opts BuildOptions, mu *sync.Mutex, summary *Summary) error {
	if !strings.HasSuffix(rel, ".md") {
		if opts.CheckOnly {
			return nil
		}
		if err := p.copyFile(path, filepath.Join(p.cfg.OutputDir, rel)); err != nil {
			return err
		}
		mu.Lock()
		summary.Copied++
		mu.Unlock()
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", rel, err)
	}

	doc, err := p.ProcessDocument(ctx, filepath.ToSlash(rel), string(raw))
	if err != nil {
		return err
	}

	if p.cfg.Todos.Report {
		for _, t := range doc.Todos {
			p.logger.Info("todo", "at", t.String())
		}
	}

	if !opts.CheckOnly {
		dst := filepath.Join(p.cfg.OutputDir, filepath.FromSlash(doc.OutPath))
		if err := writeFile(dst, []byte(doc.Output)); err != nil {
			return err
		}
	}

	mu.Lock()
	summary.Pages++
	summary.Compiled += doc.Compiled
	summary.Cached += doc.Cached
	if doc.Failed {
		summary.Failed++
	}
	summary.Todos = append(summary.Todos, doc.Todos...)
	mu.Unlock()

	p.logger.Debug("page processed",
		"path", rel, "compiled", doc.Compiled, "cached", doc.Cached)
	return nil
}

func (p *Pipeline) copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}
	return writeFile(dst, data)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
