// SPDX-License-Identifier: MPL-2.0

package assemble

import (
	"fmt"
	"regexp"
	"strings"
)

// ExtractionError reports a failed extract-module-statements directive: the
// named inner module is absent, or it has fewer top-level statements than
// requested. Extraction is never silently truncated or padded.
type ExtractionError struct {
	// Module is the inner module named by the directive.
	Module string
	// Requested is the statement count asked for.
	Requested int
	// Found is the number of statements actually present. Meaningless when
	// NotFound is set.
	Found int
	// NotFound marks a missing inner module.
	NotFound bool
}

// Error implements the error interface.
func (e *ExtractionError) Error() string {
	if e.NotFound {
		return fmt.Sprintf("inner module %q not found", e.Module)
	}
	return fmt.Sprintf("inner module %q has %d top-level statements, %d requested",
		e.Module, e.Found, e.Requested)
}

// tokenRe matches, left to right, the three constructs that delimit
// statements: a module declaration, an "end;" terminator, and a bare
// statement-terminating semicolon. The declaration's name is capture
// group 1.
var tokenRe = regexp.MustCompile(`\bmodule\s+([A-Za-z_][\w'.]*)\s*;|\bend\s*;|;`)

// StatementRange locates the first count top-level statements of the named
// inner module within a block's source lines and returns the 0-based,
// half-open line range covering them. The search is an exact, case-sensitive
// name match; the first matching declaration wins. A nested module together
// with its "end;" counts as a single statement of the enclosing module.
//
// Because rendered markup is line-addressable, the returned range applies
// equally to the block's source lines and to its rendered lines.
func StatementRange(lines []string, module string, count int) (start, end int, err error) {
	declLine, declEnd := findModuleDecl(lines, module)
	if declLine < 0 {
		return 0, 0, &ExtractionError{Module: module, Requested: count, NotFound: true}
	}

	// Statements begin on the declaration line only when source follows the
	// declaration on that same line.
	start = declLine + 1
	if strings.TrimSpace(lines[declLine][declEnd:]) != "" {
		start = declLine
	}
	if count == 0 {
		return start, start, nil
	}

	depth := 0
	counted := 0

	for i := declLine; i < len(lines); i++ {
		from := 0
		if i == declLine {
			from = declEnd
		}
		for _, loc := range tokenRe.FindAllStringSubmatchIndex(lines[i][from:], -1) {
			tok := lines[i][from+loc[0] : from+loc[1]]
			switch {
			case loc[2] >= 0: // nested module declaration
				depth++
			case containsEnd(tok):
				if depth == 0 {
					// "end;" at the module's own level closes it.
					return 0, 0, &ExtractionError{Module: module, Requested: count, Found: counted}
				}
				depth--
				if depth == 0 {
					counted++
				}
			default: // bare statement terminator
				if depth == 0 {
					counted++
				}
			}
			if counted == count {
				return start, i + 1, nil
			}
		}
	}

	return 0, 0, &ExtractionError{Module: module, Requested: count, Found: counted}
}

// findModuleDecl returns the 0-based line and end offset (within that line)
// of the first declaration of the named module, or (-1, -1).
func findModuleDecl(lines []string, module string) (line, end int) {
	for i, l := range lines {
		for _, loc := range tokenRe.FindAllStringSubmatchIndex(l, -1) {
			if loc[2] < 0 {
				continue
			}
			if l[loc[2]:loc[3]] == module {
				return i, loc[1]
			}
		}
	}
	return -1, -1
}

// containsEnd distinguishes an "end;" token from a bare semicolon match.
func containsEnd(tok string) bool {
	return len(tok) > 1
}
