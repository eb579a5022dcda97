// SPDX-License-Identifier: MPL-2.0

package juvix

import (
	"strings"
	"testing"
)

func TestParseCompileError_Positioned(t *testing.T) {
	t.Parallel()

	stderr := "Everything.juvix:4:3-7: error: symbol not in scope: x\n"
	ce := parseCompileError(stderr)

	if len(ce.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %v", ce.Diagnostics)
	}
	d := ce.Diagnostics[0]
	if d.Line != 4 || d.Column != 3 {
		t.Errorf("position = %d:%d, want 4:3", d.Line, d.Column)
	}
	if !strings.Contains(d.Message, "symbol not in scope") {
		t.Errorf("message = %q", d.Message)
	}
}

func TestParseCompileError_ContinuationLines(t *testing.T) {
	t.Parallel()

	stderr := "Top.juvix:2:1: error: type mismatch\n  expected Nat\n  found String\n"
	ce := parseCompileError(stderr)

	if len(ce.Diagnostics) != 1 {
		t.Fatalf("continuation lines should fold into one diagnostic, got %v", ce.Diagnostics)
	}
	msg := ce.Diagnostics[0].Message
	if !strings.Contains(msg, "expected Nat") || !strings.Contains(msg, "found String") {
		t.Errorf("message = %q", msg)
	}
}

func TestParseCompileError_Unpositioned(t *testing.T) {
	t.Parallel()

	ce := parseCompileError("internal compiler crash\n")
	if len(ce.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %v", ce.Diagnostics)
	}
	if ce.Diagnostics[0].Line != 0 {
		t.Errorf("crash output should carry no position, got %+v", ce.Diagnostics[0])
	}
}

func TestParseCompileError_Empty(t *testing.T) {
	t.Parallel()

	ce := parseCompileError("")
	if len(ce.Diagnostics) != 1 {
		t.Fatalf("an empty stderr must still yield one diagnostic")
	}
}
