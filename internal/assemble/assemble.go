// SPDX-License-Identifier: MPL-2.0

package assemble

import (
	"fmt"
	"regexp"
	"strings"

	"juvixdoc/internal/fence"
)

// Span attributes a half-open line range of assembled source to the
// originating code block.
type Span struct {
	// Start and End delimit the range [Start, End) of 0-based lines in the
	// assembled source.
	Start int
	End   int
	// Order is the originating block's position among the document's Juvix
	// fences.
	Order int
}

// Module is one compilable unit. Source concatenates the contributing fence
// bodies in document order; Provenance maps every source line back to its
// fence.
type Module struct {
	// Source is the assembled module source, one entry per line.
	Source []string

	// Provenance lists one span per contributing block, in order, covering
	// the whole of Source.
	Provenance []Span

	// Blocks are the contributing code blocks in document order. A
	// standalone module has exactly one.
	Blocks []fence.CodeBlock

	// Standalone marks a singleton module from a standalone block.
	Standalone bool
}

// Text returns the assembled source as a single string.
func (m *Module) Text() string {
	return strings.Join(m.Source, "\n")
}

// BlockAt returns the order of the block owning the given 0-based assembled
// source line. Lines outside every span (which cannot occur for line numbers
// produced by the compiler on valid input, but can for defensive callers)
// resolve to the nearest span.
func (m *Module) BlockAt(line int) int {
	best := -1
	bestDist := -1
	for _, s := range m.Provenance {
		if line >= s.Start && line < s.End {
			return s.Order
		}
		d := s.Start - line
		if line >= s.End {
			d = line - s.End + 1
		}
		if best == -1 || d < bestDist {
			best = s.Order
			bestDist = d
		}
	}
	return best
}

// DuplicateModuleError reports a second top-level module declaration inside
// a merged group. The first block of a group supplies the single permitted
// module header; this is a structural contract of the source document and is
// never auto-fixed.
type DuplicateModuleError struct {
	// Order is the offending block's position among the document's fences.
	Order int
	// Line is the 1-based document line of the offending fence.
	Line int
	// Name is the duplicate module name.
	Name string
}

// Error implements the error interface.
func (e *DuplicateModuleError) Error() string {
	return fmt.Sprintf("line %d: duplicate module declaration %q in code block %d",
		e.Line, e.Name, e.Order)
}

// Groups partitions blocks into assembly groups: standalone singletons plus
// at most one merged group holding every non-standalone block of the
// document. Group order follows the document position of each group's first
// block. The function is pure; it never inspects document-global state.
func Groups(blocks []fence.CodeBlock) [][]fence.CodeBlock {
	var groups [][]fence.CodeBlock
	merged := -1

	for _, b := range blocks {
		if b.Directive.Standalone {
			groups = append(groups, []fence.CodeBlock{b})
			continue
		}
		if merged == -1 {
			merged = len(groups)
			groups = append(groups, nil)
		}
		groups[merged] = append(groups[merged], b)
	}

	return groups
}

// Build partitions the document's blocks and assembles one module per group.
// It fails on the first structural violation, producing no module for the
// affected group or any group after it.
func Build(blocks []fence.CodeBlock) ([]Module, error) {
	var modules []Module
	for _, group := range Groups(blocks) {
		m, err := assembleGroup(group)
		if err != nil {
			return nil, err
		}
		modules = append(modules, m)
	}
	return modules, nil
}

// assembleGroup concatenates the group's bodies and records provenance.
// Exactly one top-level module declaration is permitted across the group.
func assembleGroup(group []fence.CodeBlock) (Module, error) {
	m := Module{
		Blocks:     group,
		Standalone: len(group) == 1 && group[0].Directive.Standalone,
	}

	headerSeen := false
	for _, b := range group {
		for _, d := range topLevelModuleDecls(b.Lines) {
			if headerSeen {
				return Module{}, &DuplicateModuleError{
					Order: b.Order,
					Line:  b.StartLine + d.line + 1,
					Name:  d.name,
				}
			}
			headerSeen = true
		}

		start := len(m.Source)
		m.Source = append(m.Source, b.Lines...)
		m.Provenance = append(m.Provenance, Span{
			Start: start,
			End:   len(m.Source),
			Order: b.Order,
		})
	}

	return m, nil
}

var (
	moduleDeclRe = regexp.MustCompile(`(?:^|\s)module\s+([A-Za-z_][\w'.]*)\s*;`)
	endDeclRe    = regexp.MustCompile(`(?:^|\s)end\s*;`)
)

// moduleDecl is a module declaration found inside a block, with its 0-based
// line within the block body.
type moduleDecl struct {
	name string
	line int
}

// topLevelModuleDecls returns the block's unbalanced module declarations in
// order of appearance. Inner modules are always closed by a matching "end;"
// within the same block, so a declaration is top-level exactly when the
// block's own text leaves it open.
func topLevelModuleDecls(lines []string) []moduleDecl {
	var open []moduleDecl

	for i, l := range lines {
		decls := moduleDeclRe.FindAllStringSubmatch(l, -1)
		ends := len(endDeclRe.FindAllString(l, -1))

		for _, d := range decls {
			open = append(open, moduleDecl{name: d[1], line: i})
		}
		for ; ends > 0 && len(open) > 0; ends-- {
			open = open[:len(open)-1]
		}
	}

	return open
}
