// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"juvixdoc/internal/assemble"
	"juvixdoc/internal/cache"
	"juvixdoc/internal/config"
	"juvixdoc/internal/fence"
	"juvixdoc/internal/juvix"
	"juvixdoc/internal/snippet"
	"juvixdoc/internal/splice"
	"juvixdoc/internal/todos"
	"juvixdoc/internal/wikilink"
)

// SourceSuffix marks pages that carry embedded Juvix and are renamed on
// output: "index.juvix.md" becomes "index.md".
const SourceSuffix = ".juvix.md"

// Pipeline turns source pages into rendered Markdown.
type Pipeline struct {
	cfg    *config.Config
	comp   juvix.Compiler
	store  *cache.Store
	snips  *snippet.Resolver
	links  *wikilink.Index
	logger *log.Logger
}

// New assembles a Pipeline from its collaborators. store may be nil to
// disable the render cache; comp may be nil only when Juvix processing is
// disabled in cfg.
func New(cfg *config.Config, comp juvix.Compiler, store *cache.Store, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = log.Default()
	}
	return &Pipeline{
		cfg:   cfg,
		comp:  comp,
		store: store,
		snips: &snippet.Resolver{
			BasePaths: cfg.Snippets.BasePaths,
			Check:     cfg.Snippets.Check,
		},
		logger: logger,
	}
}

// SetLinks installs the page-alias index used to rewrite [[Alias]] links.
// Build installs one automatically; callers driving ProcessDocument
// directly set their own.
func (p *Pipeline) SetLinks(idx *wikilink.Index) {
	p.links = idx
}

// Document is the outcome of processing one page.
type Document struct {
	// Path is the source path, relative to the docs root.
	Path string
	// OutPath is the destination path relative to the output root, with the
	// ".juvix.md" suffix collapsed to ".md".
	OutPath string
	// Output is the processed Markdown.
	Output string
	// Todos lists the todo admonitions found in the page.
	Todos []todos.Todo
	// Compiled and Cached count module renders by how they were satisfied.
	Compiled int
	Cached   int
	// Failed is set when a compile failure was downgraded to an admonition.
	Failed bool
}

// CompileFailure wraps a compiler rejection with positions translated from
// assembled-module lines back to page lines.
type CompileFailure struct {
	Path        string
	Diagnostics []PageDiagnostic
	cause       error
}

// PageDiagnostic is a compiler diagnostic located on the source page.
type PageDiagnostic struct {
	// Block is the order of the fence the diagnostic falls in.
	Block int
	// Line is the 1-based page line, or 0 when the position is unmappable.
	Line    int
	Message string
}

func (e *CompileFailure) Error() string {
	if len(e.Diagnostics) == 0 {
		return fmt.Sprintf("%s: compilation failed", e.Path)
	}
	d := e.Diagnostics[0]
	return fmt.Sprintf("%s:%d: %s", e.Path, d.Line, d.Message)
}

func (e *CompileFailure) Unwrap() error { return e.cause }

// OutputPath maps a source-relative page path to its output-relative path.
func OutputPath(rel string) string {
	if base, ok := strings.CutSuffix(rel, SourceSuffix); ok {
		return base + ".md"
	}
	return rel
}

// ProcessDocument runs one page through the full pipeline. Structural fence
// errors, directive validation errors, and extraction failures always abort
// the page; compile failures abort or degrade to an admonition according to
// the configured failure mode.
func (p *Pipeline) ProcessDocument(ctx context.Context, rel, text string) (*Document, error) {
	doc := &Document{Path: rel, OutPath: OutputPath(rel)}

	text, err := p.snips.Process(text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rel, err)
	}

	if p.links != nil {
		resolved, broken := p.links.Resolve(doc.OutPath, text)
		text = resolved
		for _, bl := range broken {
			if p.cfg.Wikilinks.Check {
				return nil, &wikilink.BrokenError{Page: rel, Alias: bl.Alias, Line: bl.Line}
			}
			p.logger.Warn("broken wiki link",
				"path", rel, "alias", bl.Alias, "line", bl.Line)
		}
	}

	text, found := todos.Process(rel, text, todos.Options{Keep: p.cfg.Todos.Keep})
	doc.Todos = found

	blocks, err := fence.Scan(text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rel, err)
	}
	if len(blocks) == 0 || !p.cfg.Juvix.Enabled {
		doc.Output = detag(text, blocks)
		return doc, nil
	}

	modules, err := assemble.Build(blocks)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rel, err)
	}

	fragments := make(map[int][]string, len(blocks))
	for i := range modules {
		m := &modules[i]

		result, hit, err := p.render(ctx, m)
		if err != nil {
			failure := p.attribute(rel, m, err)
			// Only compiler rejections degrade to an admonition; timeouts
			// and infrastructure errors abort in either mode.
			var cf *CompileFailure
			if p.cfg.Build.OnFailure == config.FailureAdmonition && errors.As(failure, &cf) {
				p.logger.Warn("compilation failed, emitting failure admonition",
					"path", rel, "error", failure)
				doc.Output = failureDocument(text, blocks, failure)
				doc.Failed = true
				return doc, nil
			}
			return nil, failure
		}
		if hit {
			doc.Cached++
		} else {
			doc.Compiled++
		}

		mf, err := splice.BlockFragments(m, result)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", rel, err)
		}
		for order, lines := range mf {
			fragments[order] = lines
		}
	}

	doc.Output = splice.Document(text, blocks, fragments)
	return doc, nil
}

// render satisfies a module render from the cache or the compiler. The hit
// return reports a cache hit.
func (p *Pipeline) render(ctx context.Context, m *assemble.Module) (*juvix.Result, bool, error) {
	key := cache.Sum(m.Text())
	if cached, ok := p.store.Get(key); ok {
		return &juvix.Result{Lines: strings.Split(cached, "\n")}, true, nil
	}

	result, err := p.comp.Render(ctx, m.Text())
	if err != nil {
		return nil, false, err
	}

	if err := p.store.Put(key, strings.Join(result.Lines, "\n")); err != nil {
		p.logger.Warn("render cache write failed", "error", err)
	}
	return result, false, nil
}

// attribute translates a compiler error's positions to page coordinates.
// Non-compile errors (timeouts, infrastructure) pass through untouched.
func (p *Pipeline) attribute(rel string, m *assemble.Module, err error) error {
	var ce *juvix.CompileError
	if !errors.As(err, &ce) {
		return fmt.Errorf("%s: %w", rel, err)
	}

	failure := &CompileFailure{Path: rel, cause: ce}
	for _, d := range ce.Diagnostics {
		order, line := splice.Attribute(m, d)
		failure.Diagnostics = append(failure.Diagnostics, PageDiagnostic{
			Block:   order,
			Line:    line,
			Message: d.Message,
		})
	}
	return failure
}

// detag rewrites each Juvix fence as a plain code fence so disabled or
// compiler-less builds still produce readable pages. Hidden blocks are
// dropped as usual.
func detag(text string, blocks []fence.CodeBlock) string {
	if len(blocks) == 0 {
		return text
	}
	fragments := make(map[int][]string, len(blocks))
	for _, b := range blocks {
		frag := make([]string, 0, len(b.Lines)+2)
		frag = append(frag, "```")
		frag = append(frag, b.Lines...)
		frag = append(frag, "```")
		fragments[b.Order] = frag
	}
	return splice.Document(text, blocks, fragments)
}

// failureDocument renders the admonition fallback: a "!!! failure" block is
// inserted where the first diagnostic points (or at the top of the page),
// and every Juvix fence is de-tagged so the page still shows its source.
func failureDocument(text string, blocks []fence.CodeBlock, err error) string {
	var b strings.Builder
	b.WriteString("!!! failure\n\n")
	var cf *CompileFailure
	if errors.As(err, &cf) && len(cf.Diagnostics) > 0 {
		for _, d := range cf.Diagnostics {
			fmt.Fprintf(&b, "    %s (line %d)\n", d.Message, d.Line)
		}
	} else {
		fmt.Fprintf(&b, "    %s\n", err.Error())
	}
	b.WriteString("\n")
	b.WriteString(detag(text, blocks))
	return b.String()
}
