// SPDX-License-Identifier: MPL-2.0

package juvix

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Diagnostic is one positioned message from the compiler. Positions refer to
// the assembled source sent to the bridge, 1-based.
type Diagnostic struct {
	Line    int
	Column  int
	Message string
}

// String renders the diagnostic in the conventional line:col form.
func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%d:%d: %s", d.Line, d.Column, d.Message)
	}
	return d.Message
}

// CompileError is a parse or typecheck failure reported by the compiler.
// At least one diagnostic is always present; a failure whose output could
// not be parsed positionally still carries the raw message.
type CompileError struct {
	Diagnostics []Diagnostic
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	if len(e.Diagnostics) == 1 {
		return "juvix: " + e.Diagnostics[0].String()
	}
	parts := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		parts[i] = d.String()
	}
	return fmt.Sprintf("juvix: %d errors:\n  %s", len(e.Diagnostics), strings.Join(parts, "\n  "))
}

// TimeoutError marks a compiler invocation that exceeded its bound. The
// compile is deterministic, so the failure is terminal for the document's
// render pass; no retry is attempted.
type TimeoutError struct {
	Timeout time.Duration
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("juvix: compiler invocation exceeded %s", e.Timeout)
}

// diagnosticRe matches the compiler's "path:line:col-endcol: error: message"
// diagnostic lines, with the path and column span optional.
var diagnosticRe = regexp.MustCompile(`^(?:[^\s:]+:)?(\d+):(\d+)(?:-\d+)?:?\s*(?:error:?\s*)?(.+)$`)

// parseCompileError turns the compiler's stderr into a CompileError. Lines
// that carry no position are folded into the preceding diagnostic's message,
// matching the compiler's multi-line error layout.
func parseCompileError(stderr string) *CompileError {
	ce := &CompileError{}

	for _, raw := range strings.Split(stderr, "\n") {
		line := strings.TrimRight(raw, " \t")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if m := diagnosticRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			l, _ := strconv.Atoi(m[1])
			col, _ := strconv.Atoi(m[2])
			ce.Diagnostics = append(ce.Diagnostics, Diagnostic{
				Line:    l,
				Column:  col,
				Message: strings.TrimSpace(m[3]),
			})
			continue
		}
		if n := len(ce.Diagnostics); n > 0 {
			ce.Diagnostics[n-1].Message += "\n" + strings.TrimSpace(line)
		} else {
			ce.Diagnostics = append(ce.Diagnostics, Diagnostic{Message: strings.TrimSpace(line)})
		}
	}

	if len(ce.Diagnostics) == 0 {
		ce.Diagnostics = []Diagnostic{{Message: "compiler failed without diagnostics"}}
	}
	return ce
}
