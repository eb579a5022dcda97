// SPDX-License-Identifier: MPL-2.0

package splice

import (
	"fmt"
	"strings"

	"juvixdoc/internal/assemble"
	"juvixdoc/internal/fence"
	"juvixdoc/internal/juvix"
)

// BlockFragments splits a module's rendering back per originating block via
// provenance. Statement-extraction truncation is applied here; the hide
// decision is deferred to Document so extraction errors surface even for
// blocks that end up hidden only when extraction was actually requested.
func BlockFragments(m *assemble.Module, r *juvix.Result) (map[int][]string, error) {
	fragments := make(map[int][]string, len(m.Blocks))

	for i, span := range m.Provenance {
		start, end := span.Start, span.End
		if start > len(r.Lines) {
			start = len(r.Lines)
		}
		if end > len(r.Lines) {
			end = len(r.Lines)
		}
		lines := r.Lines[start:end]

		block := m.Blocks[i]
		if ex := block.Directive.Extract; ex != nil {
			// The range is computed on the block's source and applied to its
			// rendering; both are line-aligned.
			from, to, err := assemble.StatementRange(block.Lines, ex.Module, ex.Count)
			if err != nil {
				return nil, fmt.Errorf("code block %d: %w", block.Order, err)
			}
			if to > len(lines) {
				to = len(lines)
			}
			if from > to {
				from = to
			}
			lines = lines[from:to]
		}

		fragments[span.Order] = lines
	}

	return fragments, nil
}

// Document rebuilds the source document, substituting each Juvix fence with
// its rendered fragment in document order. Hidden blocks emit zero bytes:
// no fragment, no placeholder, not even a blank line. Text outside Juvix
// fences is preserved byte for byte, so a document without Juvix fences is
// returned unchanged.
func Document(text string, blocks []fence.CodeBlock, fragments map[int][]string) string {
	if len(blocks) == 0 {
		return text
	}

	lines := strings.Split(text, "\n")
	var out []string
	next := 0

	for _, b := range blocks {
		// StartLine/EndLine are 1-based fence marker lines.
		out = append(out, lines[next:b.StartLine-1]...)
		next = b.EndLine

		if b.Directive.Hidden {
			continue
		}
		out = append(out, fragments[b.Order]...)
	}
	out = append(out, lines[next:]...)

	return strings.Join(out, "\n")
}

// Attribute maps a diagnostic positioned in assembled source to the nearest
// originating fence, returning the block order and the 1-based document line
// the document author should look at.
func Attribute(m *assemble.Module, d juvix.Diagnostic) (order, docLine int) {
	idx := d.Line - 1
	if idx < 0 {
		idx = 0
	}
	order = m.BlockAt(idx)

	for i, span := range m.Provenance {
		if span.Order != order {
			continue
		}
		offset := idx - span.Start
		if offset < 0 {
			offset = 0
		}
		if limit := span.End - span.Start - 1; offset > limit && limit >= 0 {
			offset = limit
		}
		// The fence body starts on the line after the opening marker.
		return order, m.Blocks[i].StartLine + 1 + offset
	}
	return order, 0
}
